package frames

import (
	"encoding/json"
)

type agentEnvelope struct {
	Type       string `json:"type"`
	AudioEvent *struct {
		AudioBase64 string `json:"audio_base_64"`
	} `json:"audio_event"`
	Audio *struct {
		Chunk string `json:"chunk"`
	} `json:"audio"`
	PingEvent *struct {
		EventID json.RawMessage `json:"event_id"`
	} `json:"ping_event"`
	MetadataEvent *struct {
		ConversationID string `json:"conversation_id"`
	} `json:"conversation_initiation_metadata_event"`
	UserTranscriptionEvent *struct {
		UserTranscript string `json:"user_transcript"`
	} `json:"user_transcription_event"`
	AgentResponseEvent *struct {
		AgentResponse string `json:"agent_response"`
	} `json:"agent_response_event"`
}

// DecodeAgent parses one text frame from the agent socket.
func DecodeAgent(data []byte) (AgentEvent, error) {
	var env agentEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, decodeErr(SourceAgent, "malformed json", err)
	}

	switch env.Type {
	case "":
		return nil, decodeErr(SourceAgent, "missing type", nil)

	case "audio":
		payload := ""
		if env.AudioEvent != nil {
			payload = env.AudioEvent.AudioBase64
		}
		if payload == "" && env.Audio != nil {
			payload = env.Audio.Chunk
		}
		if payload == "" {
			return nil, decodeErr(SourceAgent, "audio without payload", nil)
		}
		return AgentAudio{Payload: payload}, nil

	case "interruption":
		return AgentInterruption{}, nil

	case "ping":
		if env.PingEvent == nil || len(env.PingEvent.EventID) == 0 || string(env.PingEvent.EventID) == "null" {
			return nil, decodeErr(SourceAgent, "ping without event_id", nil)
		}
		return AgentPing{EventID: env.PingEvent.EventID}, nil

	case "conversation_initiation_metadata":
		if env.MetadataEvent == nil || env.MetadataEvent.ConversationID == "" {
			return nil, decodeErr(SourceAgent, "metadata without conversation_id", nil)
		}
		return AgentSessionMetadata{ConversationID: env.MetadataEvent.ConversationID}, nil

	case "end_of_conversation":
		return AgentEndOfConversation{}, nil

	case "user_transcript":
		if env.UserTranscriptionEvent == nil {
			return nil, decodeErr(SourceAgent, "user_transcript without event", nil)
		}
		return AgentTranscript{Role: RoleUser, Text: env.UserTranscriptionEvent.UserTranscript}, nil

	case "agent_response":
		if env.AgentResponseEvent == nil {
			return nil, decodeErr(SourceAgent, "agent_response without event", nil)
		}
		return AgentTranscript{Role: RoleAgent, Text: env.AgentResponseEvent.AgentResponse}, nil

	default:
		return AgentUnknown{RawType: env.Type}, nil
	}
}

// UserAudioChunk forwards caller audio to the agent.
type UserAudioChunk struct {
	UserAudioChunk string `json:"user_audio_chunk"`
}

// Pong answers an AgentPing.
type Pong struct {
	Type    string          `json:"type"`
	EventID json.RawMessage `json:"event_id"`
}

// EndConversation asks the agent to finish the conversation.
type EndConversation struct {
	Type string `json:"type"`
}

// InitiationClientData is the first frame sent on a new agent socket.
type InitiationClientData struct {
	Type                       string         `json:"type"`
	ConversationConfigOverride ConfigOverride `json:"conversation_config_override"`
	ClientData                 *ClientData    `json:"client_data,omitempty"`
}

type ConfigOverride struct {
	Agent AgentOverride `json:"agent"`
}

type AgentOverride struct {
	Prompt       PromptOverride `json:"prompt"`
	FirstMessage string         `json:"first_message"`
}

type PromptOverride struct {
	Prompt string `json:"prompt"`
}

// ClientData exposes dynamic variables the agent can reference mid-conversation.
type ClientData struct {
	DynamicVariables map[string]string `json:"dynamic_variables"`
}

func NewUserAudioChunk(payload string) UserAudioChunk {
	return UserAudioChunk{UserAudioChunk: payload}
}

func NewPong(eventID json.RawMessage) Pong {
	return Pong{Type: "pong", EventID: eventID}
}

func NewEndConversation() EndConversation {
	return EndConversation{Type: "end_conversation"}
}

// NewInitiationClientData builds the session configuration frame. A nil or
// empty vars map omits client_data entirely.
func NewInitiationClientData(prompt, firstMessage string, vars map[string]string) InitiationClientData {
	frame := InitiationClientData{
		Type: "conversation_initiation_client_data",
		ConversationConfigOverride: ConfigOverride{
			Agent: AgentOverride{
				Prompt:       PromptOverride{Prompt: prompt},
				FirstMessage: firstMessage,
			},
		},
	}
	if len(vars) > 0 {
		frame.ClientData = &ClientData{DynamicVariables: vars}
	}
	return frame
}
