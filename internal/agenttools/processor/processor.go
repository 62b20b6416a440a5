package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"voice-bridge/internal/clients/stripe"
	"voice-bridge/internal/observability"
	"voice-bridge/internal/voicecall/agent"
)

// MessageSender delivers SMS through the telephony provider
type MessageSender interface {
	SendMessage(ctx context.Context, from, to, body string) (string, error)
}

// PaymentLinker creates hosted payment pages for a debt
type PaymentLinker interface {
	CreatePaymentLink(ctx context.Context, req stripe.PaymentLinkRequest) (stripe.PaymentLink, error)
}

var (
	ErrMissingRecipient  = errors.New("recipient is required")
	ErrEmptyMessage      = errors.New("message body is required")
	ErrMessageFailed     = errors.New("failed to send message")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrPaymentsDisabled  = errors.New("payments are not configured")
	ErrPaymentRejected   = errors.New("payment link request rejected")
	ErrPaymentLinkFailed = errors.New("failed to create payment link")
	ErrUnknownPrompt     = errors.New("unknown prompt")
)

type Config struct {
	// FromNumber is the sender id for SMS
	FromNumber string
}

// PaymentLinkInput is a payment link request with the amount in major units,
// e.g. 150.50 PLN.
type PaymentLinkInput struct {
	Amount   float64
	Currency string
	DebtorID string
	CaseID   string
	Live     bool
}

type AgentToolsProcessor struct {
	messages MessageSender
	payments PaymentLinker
	cfg      Config
	logger   *observability.Logger
}

func New(messages MessageSender, payments PaymentLinker, cfg Config, logger *observability.Logger) *AgentToolsProcessor {
	return &AgentToolsProcessor{
		messages: messages,
		payments: payments,
		cfg:      cfg,
		logger:   logger,
	}
}

// SendSMS texts body to the debtor and returns the provider message id.
func (p *AgentToolsProcessor) SendSMS(ctx context.Context, to, body string) (string, error) {
	if to == "" {
		return "", ErrMissingRecipient
	}
	if strings.TrimSpace(body) == "" {
		return "", ErrEmptyMessage
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "recipient", Value: to})

	sid, err := p.messages.SendMessage(ctx, p.cfg.FromNumber, to, body)
	if err != nil {
		p.logger.Error(ctx, "failed to send sms", err)
		return "", fmt.Errorf("%w: %w", ErrMessageFailed, err)
	}
	return sid, nil
}

func (p *AgentToolsProcessor) CreatePaymentLink(ctx context.Context, in PaymentLinkInput) (stripe.PaymentLink, error) {
	if in.Amount <= 0 || math.IsNaN(in.Amount) || math.IsInf(in.Amount, 0) {
		return stripe.PaymentLink{}, ErrInvalidAmount
	}
	minor := int64(math.Round(in.Amount * 100))
	if minor <= 0 {
		return stripe.PaymentLink{}, ErrInvalidAmount
	}
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "case_id", Value: in.CaseID},
		observability.Field{Key: "amount_minor", Value: minor},
	)

	link, err := p.payments.CreatePaymentLink(ctx, stripe.PaymentLinkRequest{
		Amount:   minor,
		Currency: in.Currency,
		DebtorID: in.DebtorID,
		CaseID:   in.CaseID,
		Live:     in.Live,
	})
	switch {
	case errors.Is(err, stripe.ErrNotConfigured):
		p.logger.Warn(ctx, "payment link requested but stripe is not configured for this environment")
		return stripe.PaymentLink{}, ErrPaymentsDisabled
	case errors.Is(err, stripe.ErrInvalidRequest):
		p.logger.InfoWithError(ctx, "payment link request rejected", err)
		return stripe.PaymentLink{}, fmt.Errorf("%w: %w", ErrPaymentRejected, err)
	case err != nil:
		p.logger.Error(ctx, "failed to create payment link", err)
		return stripe.PaymentLink{}, fmt.Errorf("%w: %w", ErrPaymentLinkFailed, err)
	}
	return link, nil
}

// PreviewPrompt renders a named prompt for the given debtor context.
func (p *AgentToolsProcessor) PreviewPrompt(ctx context.Context, name string, params agent.PreviewParams) (agent.PromptPreview, error) {
	preview, err := agent.PreviewPrompt(agent.PromptKind(name), params)
	if errors.Is(err, agent.ErrUnknownPrompt) {
		return agent.PromptPreview{}, fmt.Errorf("%w: %q", ErrUnknownPrompt, name)
	}
	if err != nil {
		ctx = observability.WithFields(ctx, observability.Field{Key: "prompt", Value: name})
		p.logger.Error(ctx, "failed to render prompt", err)
		return agent.PromptPreview{}, err
	}
	return preview, nil
}
