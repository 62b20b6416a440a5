// Package frames translates the telephony media-stream protocol and the
// agent conversation protocol into a small internal event vocabulary.
package frames

import (
	"encoding/json"
	"fmt"
)

// Source names the socket a frame was read from.
type Source string

const (
	SourceTelephony Source = "telephony"
	SourceAgent     Source = "agent"
)

// TelephonyEvent is a decoded frame from the telephony socket.
type TelephonyEvent interface {
	telephonyEvent()
}

// AgentEvent is a decoded frame from the agent socket.
type AgentEvent interface {
	agentEvent()
}

// Start opens a media stream.
type Start struct {
	StreamID       string
	CallID         string
	CallerIdentity string
	CustomParams   map[string]string
}

// Media carries one chunk of caller audio as opaque base64 text.
type Media struct {
	Payload string
}

type Stop struct{}

// TelephonyUnknown is any event type the bridge does not act on (connected, mark, dtmf...).
type TelephonyUnknown struct {
	RawType string
}

func (Start) telephonyEvent()            {}
func (Media) telephonyEvent()            {}
func (Stop) telephonyEvent()             {}
func (TelephonyUnknown) telephonyEvent() {}

// AgentAudio carries synthesized speech as opaque base64 text.
type AgentAudio struct {
	Payload string
}

type AgentInterruption struct{}

// AgentPing must be answered with a pong echoing EventID verbatim.
type AgentPing struct {
	EventID json.RawMessage
}

type AgentSessionMetadata struct {
	ConversationID string
}

type AgentEndOfConversation struct{}

// AgentTranscript is a user or agent utterance reported by the agent runtime.
type AgentTranscript struct {
	Role string
	Text string
}

type AgentUnknown struct {
	RawType string
}

func (AgentAudio) agentEvent()             {}
func (AgentInterruption) agentEvent()      {}
func (AgentPing) agentEvent()              {}
func (AgentSessionMetadata) agentEvent()   {}
func (AgentEndOfConversation) agentEvent() {}
func (AgentTranscript) agentEvent()        {}
func (AgentUnknown) agentEvent()           {}

const (
	RoleUser  = "user"
	RoleAgent = "agent"
)

// DecodeError reports a frame that could not be turned into an event. The
// frame is discarded and the socket stays open.
type DecodeError struct {
	Source Source
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode %s frame: %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("decode %s frame: %s", e.Source, e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func decodeErr(source Source, reason string, err error) *DecodeError {
	return &DecodeError{Source: source, Reason: reason, Err: err}
}
