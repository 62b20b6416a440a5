package frames

import (
	"encoding/base64"
	"encoding/json"
)

// Custom parameters read for the caller identity, in order of preference.
const (
	ParamCallerPhone = "caller_phone"
	ParamNumber      = "number"
	ParamPrompt      = "prompt"
)

const unknownCaller = "unknown"

type telephonyEnvelope struct {
	Event     string `json:"event"`
	StreamSid string `json:"streamSid"`
	Start     *struct {
		StreamSid        string            `json:"streamSid"`
		CallSid          string            `json:"callSid"`
		CustomParameters map[string]string `json:"customParameters"`
	} `json:"start"`
	Media *struct {
		Payload string `json:"payload"`
		Track   string `json:"track"`
	} `json:"media"`
}

// DecodeTelephony parses one text frame from the telephony socket.
func DecodeTelephony(data []byte) (TelephonyEvent, error) {
	var env telephonyEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, decodeErr(SourceTelephony, "malformed json", err)
	}

	switch env.Event {
	case "":
		return nil, decodeErr(SourceTelephony, "missing event", nil)

	case "start":
		if env.Start == nil || env.Start.StreamSid == "" {
			return nil, decodeErr(SourceTelephony, "start without streamSid", nil)
		}
		params := env.Start.CustomParameters
		if params == nil {
			params = map[string]string{}
		}
		return Start{
			StreamID:       env.Start.StreamSid,
			CallID:         env.Start.CallSid,
			CallerIdentity: callerIdentity(params),
			CustomParams:   params,
		}, nil

	case "media":
		if env.Media == nil || env.Media.Payload == "" {
			return nil, decodeErr(SourceTelephony, "media without payload", nil)
		}
		// Payloads are forwarded untouched; only their encoding is checked.
		if _, err := base64.StdEncoding.DecodeString(env.Media.Payload); err != nil {
			return nil, decodeErr(SourceTelephony, "media payload is not base64", err)
		}
		return Media{Payload: env.Media.Payload}, nil

	case "stop":
		return Stop{}, nil

	default:
		return TelephonyUnknown{RawType: env.Event}, nil
	}
}

func callerIdentity(params map[string]string) string {
	if v := params[ParamCallerPhone]; v != "" {
		return v
	}
	if v := params[ParamNumber]; v != "" {
		return v
	}
	return unknownCaller
}

// TelephonyMedia plays agent audio to the caller.
type TelephonyMedia struct {
	Event     string       `json:"event"`
	StreamSid string       `json:"streamSid"`
	Media     MediaPayload `json:"media"`
}

type MediaPayload struct {
	Payload string `json:"payload"`
}

// TelephonyControl is a clear, mark_done or twiml directive.
type TelephonyControl struct {
	Event     string `json:"event"`
	StreamSid string `json:"streamSid"`
	Twiml     string `json:"twiml,omitempty"`
}

func NewTelephonyMedia(streamSid, payload string) TelephonyMedia {
	return TelephonyMedia{Event: "media", StreamSid: streamSid, Media: MediaPayload{Payload: payload}}
}

// NewClear tells the telephony side to drop audio it has buffered for playback.
func NewClear(streamSid string) TelephonyControl {
	return TelephonyControl{Event: "clear", StreamSid: streamSid}
}

func NewMarkDone(streamSid string) TelephonyControl {
	return TelephonyControl{Event: "mark_done", StreamSid: streamSid}
}

// NewTwiML carries inline call-control markup, used for hangups.
func NewTwiML(streamSid, markup string) TelephonyControl {
	return TelephonyControl{Event: "twiml", StreamSid: streamSid, Twiml: markup}
}

// HangupSequence is the ordered set of frames that ends a call on the telephony side.
func HangupSequence(streamSid, hangupMarkup string) []TelephonyControl {
	return []TelephonyControl{
		NewMarkDone(streamSid),
		NewClear(streamSid),
		NewTwiML(streamSid, hangupMarkup),
	}
}
