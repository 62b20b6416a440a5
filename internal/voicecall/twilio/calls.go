package twilio

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"voice-bridge/internal/observability"

	api "github.com/twilio/twilio-go/rest/api/v2010"
)

var ErrMissingCallSID = errors.New("twilio returned no call sid")

type CallPlacer struct {
	calls  callCreator
	logger *observability.Logger
}

func NewCallPlacer(accountSID, authToken string, logger *observability.Logger) *CallPlacer {
	return &CallPlacer{calls: newRestService(accountSID, authToken), logger: logger}
}

func newCallPlacer(calls callCreator, logger *observability.Logger) *CallPlacer {
	return &CallPlacer{calls: calls, logger: logger}
}

// PlaceCall dials to from the configured number. Twilio fetches callbackURL
// once the callee answers to learn where to stream the audio.
func (p *CallPlacer) PlaceCall(ctx context.Context, from, to, callbackURL string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	params := &api.CreateCallParams{}
	params.SetFrom(from)
	params.SetTo(to)
	params.SetUrl(callbackURL)
	params.SetMethod(http.MethodPost)

	resp, err := p.calls.CreateCall(params)
	if err != nil {
		p.logger.Error(ctx, "failed to create twilio call", err)
		return "", fmt.Errorf("failed to create call: %w", err)
	}
	if resp == nil || resp.Sid == nil || *resp.Sid == "" {
		return "", ErrMissingCallSID
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "call_sid", Value: *resp.Sid})
	p.logger.Info(ctx, "outbound call created")
	return *resp.Sid, nil
}
