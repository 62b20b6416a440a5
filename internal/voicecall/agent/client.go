package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"voice-bridge/internal/observability"
	"voice-bridge/internal/voicecall/socket"
)

const signedURLPath = "/v1/convai/conversation/get_signed_url"

var ErrUpstreamConnect = errors.New("agent upstream connect failed")

// UpstreamConnectError describes why an agent socket could not be opened.
type UpstreamConnectError struct {
	Stage  string
	Status int
	Err    error
}

func (e *UpstreamConnectError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s: status %d", ErrUpstreamConnect, e.Stage, e.Status)
	}
	return fmt.Sprintf("%s: %s: %v", ErrUpstreamConnect, e.Stage, e.Err)
}

func (e *UpstreamConnectError) Is(target error) bool { return target == ErrUpstreamConnect }

func (e *UpstreamConnectError) Unwrap() error { return e.Err }

type signedURLResponse struct {
	SignedURL string `json:"signed_url"`
}

// Client opens sessions with the conversational agent.
type Client struct {
	apiKey     string
	agentID    string
	baseURL    string
	httpClient *http.Client
	logger     *observability.Logger
}

func NewClient(apiKey, agentID, baseURL string, logger *observability.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		agentID: agentID,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// ResolveEndpoint asks the agent platform for a one-time websocket url.
func (c *Client) ResolveEndpoint(ctx context.Context) (string, error) {
	endpoint := c.baseURL + signedURLPath + "?agent_id=" + url.QueryEscape(c.agentID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", &UpstreamConnectError{Stage: "signed url request", Err: err}
	}
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &UpstreamConnectError{Stage: "signed url", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.Warn(ctx, fmt.Sprintf("signed url request rejected: %d %s", resp.StatusCode, string(body)))
		return "", &UpstreamConnectError{Stage: "signed url", Status: resp.StatusCode}
	}

	var out signedURLResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &UpstreamConnectError{Stage: "signed url response", Err: err}
	}
	if out.SignedURL == "" {
		return "", &UpstreamConnectError{Stage: "signed url response", Err: errors.New("empty signed_url")}
	}
	return out.SignedURL, nil
}

// Dial opens the agent socket at a url returned by ResolveEndpoint.
func (c *Client) Dial(ctx context.Context, signedURL string) (socket.FrameConn, error) {
	conn, err := socket.Dial(ctx, signedURL)
	if err != nil {
		return nil, &UpstreamConnectError{Stage: "dial", Err: err}
	}
	return conn, nil
}
