package twilio

import (
	"context"
	"errors"
	"fmt"

	"voice-bridge/internal/observability"

	api "github.com/twilio/twilio-go/rest/api/v2010"
)

var ErrMissingMessageSID = errors.New("twilio returned no message sid")

// MessageSender delivers SMS, such as the debtor panel link the agent offers
// during a call.
type MessageSender struct {
	messages messageCreator
	logger   *observability.Logger
}

func NewMessageSender(accountSID, authToken string, logger *observability.Logger) *MessageSender {
	return &MessageSender{messages: newRestService(accountSID, authToken), logger: logger}
}

func newMessageSender(messages messageCreator, logger *observability.Logger) *MessageSender {
	return &MessageSender{messages: messages, logger: logger}
}

// SendMessage sends body to the recipient and returns the message sid.
func (s *MessageSender) SendMessage(ctx context.Context, from, to, body string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	params := &api.CreateMessageParams{}
	params.SetFrom(from)
	params.SetTo(to)
	params.SetBody(body)

	resp, err := s.messages.CreateMessage(params)
	if err != nil {
		s.logger.Error(ctx, "failed to create twilio message", err)
		return "", fmt.Errorf("failed to create message: %w", err)
	}
	if resp == nil || resp.Sid == nil || *resp.Sid == "" {
		return "", ErrMissingMessageSID
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "message_sid", Value: *resp.Sid})
	s.logger.Info(ctx, "sms sent")
	return *resp.Sid, nil
}
