package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"voice-bridge/internal/observability"
	"voice-bridge/internal/voicecall/call"
	"voice-bridge/internal/voicecall/frames"
	"voice-bridge/internal/voicecall/records"
	"voice-bridge/internal/voicecall/socket"
	"voice-bridge/internal/voicecall/twilio"
)

// CallerDirectory looks inbound callers up before their call is connected
type CallerDirectory interface {
	CheckCaller(ctx context.Context, phone string) (call.Authorization, error)
}

// CallPlacer starts outbound calls through the telephony provider
type CallPlacer interface {
	PlaceCall(ctx context.Context, from, to, callbackURL string) (string, error)
}

// MediaBridge runs accepted media streams and exposes the live calls
type MediaBridge interface {
	Serve(ctx context.Context, direction call.Direction, telephony socket.FrameConn)
	Lookup(id string) (call.Record, bool)
}

// RecordReader reads retained call records
type RecordReader interface {
	Get(ctx context.Context, key string) (call.Record, error)
}

var (
	ErrMissingPhoneNumber  = errors.New("phone number is required")
	ErrCallPlacementFailed = errors.New("failed to place outbound call")
	ErrCallNotFound        = errors.New("call not found")
	ErrInvalidDirection    = errors.New("invalid call direction")
)

const (
	inboundStreamPath  = "/api/phone/media-stream/inbound"
	outboundStreamPath = "/api/phone/media-stream/outbound"
	outboundTwiMLPath  = "/api/phone/outbound/twiml"
)

type Config struct {
	// PublicHost replaces the request host in generated URLs when set
	PublicHost string
	// FromNumber is the caller id for outbound calls
	FromNumber string
}

type VoiceCallProcessor struct {
	directory CallerDirectory
	placer    CallPlacer
	bridge    MediaBridge
	records   RecordReader
	cfg       Config
	logger    *observability.Logger
}

func New(directory CallerDirectory, placer CallPlacer, bridge MediaBridge, records RecordReader, cfg Config, logger *observability.Logger) *VoiceCallProcessor {
	return &VoiceCallProcessor{
		directory: directory,
		placer:    placer,
		bridge:    bridge,
		records:   records,
		cfg:       cfg,
		logger:    logger,
	}
}

// AnswerInbound returns the markup for an incoming call. Callers the directory
// does not recognise are told so and hung up on.
func (p *VoiceCallProcessor) AnswerInbound(ctx context.Context, requestHost, from string) (string, error) {
	if from == "" {
		return "", ErrMissingPhoneNumber
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "caller_phone", Value: from})

	auth, err := p.directory.CheckCaller(ctx, from)
	if err != nil {
		p.logger.InfoWithError(ctx, "caller lookup failed, rejecting call", err)
	}
	if err != nil || !auth.Authorized {
		p.logger.Info(ctx, "inbound caller not authorized")
		markup, err := twilio.RejectMarkup()
		if err != nil {
			p.logger.Error(ctx, "failed to build reject markup", err)
			return "", err
		}
		return markup, nil
	}

	markup, err := twilio.StreamMarkup(p.streamURL(requestHost, inboundStreamPath), map[string]string{
		frames.ParamCallerPhone: from,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to build stream markup", err)
		return "", err
	}
	p.logger.Info(ctx, "inbound call connected to media stream")
	return markup, nil
}

// PlaceOutboundCall dials number and returns the provider call id. The
// provider fetches OutboundTwiML once the call is answered.
func (p *VoiceCallProcessor) PlaceOutboundCall(ctx context.Context, requestHost, number, prompt string) (string, error) {
	if number == "" {
		return "", ErrMissingPhoneNumber
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "dialed_number", Value: number})

	query := url.Values{}
	query.Set(frames.ParamNumber, number)
	if prompt != "" {
		query.Set(frames.ParamPrompt, prompt)
	}
	callback := url.URL{
		Scheme:   "https",
		Host:     p.host(requestHost),
		Path:     outboundTwiMLPath,
		RawQuery: query.Encode(),
	}

	callSID, err := p.placer.PlaceCall(ctx, p.cfg.FromNumber, number, callback.String())
	if err != nil {
		p.logger.Error(ctx, "failed to place outbound call", err)
		return "", fmt.Errorf("%w: %w", ErrCallPlacementFailed, err)
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "call_sid", Value: callSID})
	p.logger.Info(ctx, "outbound call placed")
	return callSID, nil
}

// OutboundTwiML connects an answered outbound call to the media stream,
// carrying the dialed number and prompt as stream parameters.
func (p *VoiceCallProcessor) OutboundTwiML(ctx context.Context, requestHost, number, prompt string) (string, error) {
	if number == "" {
		return "", ErrMissingPhoneNumber
	}

	params := map[string]string{frames.ParamNumber: number}
	if prompt != "" {
		params[frames.ParamPrompt] = prompt
	}
	markup, err := twilio.StreamMarkup(p.streamURL(requestHost, outboundStreamPath), params)
	if err != nil {
		p.logger.Error(ctx, "failed to build outbound stream markup", err)
		return "", err
	}
	return markup, nil
}

// ServeMediaStream bridges an upgraded telephony socket until it closes.
func (p *VoiceCallProcessor) ServeMediaStream(ctx context.Context, direction call.Direction, conn socket.FrameConn) error {
	if !direction.Valid() {
		return ErrInvalidDirection
	}
	p.bridge.Serve(ctx, direction, conn)
	return nil
}

// GetCallRecord returns the live call when one matches, else the retained record.
func (p *VoiceCallProcessor) GetCallRecord(ctx context.Context, id string) (call.Record, error) {
	if rec, ok := p.bridge.Lookup(id); ok {
		return rec, nil
	}

	rec, err := p.records.Get(ctx, id)
	if errors.Is(err, records.ErrNotFound) {
		return call.Record{}, ErrCallNotFound
	}
	if err != nil {
		ctx = observability.WithFields(ctx, observability.Field{Key: "call_id", Value: id})
		p.logger.Error(ctx, "failed to read call record", err)
		return call.Record{}, fmt.Errorf("failed to read call record: %w", err)
	}
	return rec, nil
}

func (p *VoiceCallProcessor) host(requestHost string) string {
	if p.cfg.PublicHost != "" {
		return p.cfg.PublicHost
	}
	return requestHost
}

func (p *VoiceCallProcessor) streamURL(requestHost, path string) string {
	u := url.URL{Scheme: "wss", Host: p.host(requestHost), Path: path}
	return u.String()
}
