package twilio

import (
	"fmt"
	"sort"

	"github.com/twilio/twilio-go/twiml"
)

const streamName = "voice-bridge-stream"

// RejectMessage is spoken to inbound callers that fail the directory lookup.
const RejectMessage = "We could not verify your number. Goodbye."

// StreamMarkup connects the call to the media stream at wsURL. Parameters are
// passed through to the stream's start frame as customParameters.
func StreamMarkup(wsURL string, params map[string]string) (string, error) {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	inner := make([]twiml.Element, 0, len(names))
	for _, name := range names {
		inner = append(inner, twiml.VoiceParameter{Name: name, Value: params[name]})
	}

	stream := twiml.VoiceStream{
		Name:          streamName,
		Url:           wsURL,
		InnerElements: inner,
	}
	connect := twiml.VoiceConnect{
		InnerElements: []twiml.Element{stream},
	}

	markup, err := twiml.Voice([]twiml.Element{connect})
	if err != nil {
		return "", fmt.Errorf("failed to build stream twiml: %w", err)
	}
	return markup, nil
}

// RejectMarkup says RejectMessage and hangs up.
func RejectMarkup() (string, error) {
	say := &twiml.VoiceSay{Message: RejectMessage}
	markup, err := twiml.Voice([]twiml.Element{say, &twiml.VoiceHangup{}})
	if err != nil {
		return "", fmt.Errorf("failed to build reject twiml: %w", err)
	}
	return markup, nil
}

// HangupMarkup is the directive sent inline in the teardown twiml frame.
func HangupMarkup() (string, error) {
	markup, err := twiml.Voice([]twiml.Element{&twiml.VoiceHangup{}})
	if err != nil {
		return "", fmt.Errorf("failed to build hangup twiml: %w", err)
	}
	return markup, nil
}
