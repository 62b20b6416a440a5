package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"voice-bridge/internal/observability"
	"voice-bridge/internal/voicecall/call"
)

var ErrNoEndpoint = errors.New("no notification endpoint for direction")

// DeliveryError is a failed notification delivery. Status is zero when the
// request never produced a response.
type DeliveryError struct {
	Status int
	Body   string
	Err    error
}

func (e *DeliveryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("notification delivery failed: %v", e.Err)
	}
	return fmt.Sprintf("notification delivery failed: status %d: %s", e.Status, e.Body)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// Endpoints maps each call direction to its webhook url.
type Endpoints map[call.Direction]string

// Dispatcher delivers call summaries to the notification webhook, once.
type Dispatcher struct {
	endpoints  Endpoints
	authToken  string
	authScheme string
	httpClient *http.Client
	logger     *observability.Logger
}

func NewDispatcher(endpoints Endpoints, authToken, authScheme string, logger *observability.Logger) *Dispatcher {
	return &Dispatcher{
		endpoints:  endpoints,
		authToken:  authToken,
		authScheme: authScheme,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Dispatch posts n to the endpoint configured for its direction. There is no
// retry; the caller decides what a failure means.
func (d *Dispatcher) Dispatch(ctx context.Context, n call.Notification) error {
	endpoint, ok := d.endpoints[n.Direction]
	if !ok || endpoint == "" {
		return fmt.Errorf("%w: %s", ErrNoEndpoint, n.Direction)
	}
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "conversation_id", Value: n.ConversationID},
	)

	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", d.authorization())

	startTime := time.Now()
	resp, err := d.httpClient.Do(req)
	if err != nil {
		d.logger.Error(ctx, "notification request failed", err)
		return &DeliveryError{Err: err}
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 10240))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		d.logger.Warn(ctx, fmt.Sprintf("notification rejected: status %d body %s", resp.StatusCode, string(bodyBytes)))
		return &DeliveryError{Status: resp.StatusCode, Body: string(bodyBytes)}
	}

	d.logger.Metrics(ctx,
		observability.MetricField{Key: "notification_status", Value: resp.StatusCode},
		observability.MetricField{Key: "notification_latency_ms", Value: time.Since(startTime).Milliseconds()},
	)
	return nil
}

func (d *Dispatcher) authorization() string {
	if d.authScheme == "" {
		return d.authToken
	}
	return d.authScheme + " " + d.authToken
}
