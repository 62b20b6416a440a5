package directory

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

var ErrEmptyPhone = errors.New("phone number is required")

type checkRequest struct {
	Phone string `json:"phone"`
}

// Client looks callers up in the external case directory.
type Client struct {
	checkURL   string
	httpClient *http.Client
	logger     *observability.Logger
}

func NewClient(checkURL string, timeout time.Duration, logger *observability.Logger) *Client {
	return &Client{
		checkURL: checkURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// CheckCaller reports whether phone belongs to a known debtor. A 200 response
// authorizes the caller and carries the context record; any other status is
// an unauthorized caller, not an error. Transport and parse failures return an
// unauthorized result together with the error.
func (c *Client) CheckCaller(ctx context.Context, phone string) (call.Authorization, error) {
	if phone == "" {
		return call.Authorization{}, ErrEmptyPhone
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "caller_phone", Value: phone})

	payload, err := json.Marshal(checkRequest{Phone: phone})
	if err != nil {
		return call.Authorization{}, fmt.Errorf("failed to marshal directory request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.checkURL, bytes.NewReader(payload))
	if err != nil {
		return call.Authorization{}, fmt.Errorf("failed to create directory request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error(ctx, "directory lookup failed", err)
		return call.Authorization{}, fmt.Errorf("failed to call directory: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		c.logger.Info(ctx, fmt.Sprintf("caller not found in directory (status %d)", resp.StatusCode))
		return call.Authorization{Authorized: false}, nil
	}

	var record call.ContextRecord
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&record); err != nil {
		c.logger.Error(ctx, "failed to parse directory response", err)
		return call.Authorization{}, fmt.Errorf("failed to parse directory response: %w", err)
	}

	c.logger.Info(ctx, "caller authorized by directory")
	return call.Authorization{Authorized: true, Record: &record}, nil
}
