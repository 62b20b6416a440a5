package socket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// Close codes the bridge distinguishes.
const (
	CodeNormalClosure = websocket.CloseNormalClosure
	CodeNoStatus      = websocket.CloseNoStatusReceived
	CodeAbnormal      = websocket.CloseAbnormalClosure
	CodeInternalError = websocket.CloseInternalServerErr
)

var ErrClosed = errors.New("socket closed")

// CloseError is returned by ReadFrame once the peer or the transport ended the connection.
type CloseError struct {
	Code int
	Text string
}

func (e *CloseError) Error() string {
	if e.Text != "" {
		return fmt.Sprintf("socket closed with code %d: %s", e.Code, e.Text)
	}
	return fmt.Sprintf("socket closed with code %d", e.Code)
}

// CloseCode extracts the close code from a ReadFrame error. Errors that
// carry no code are reported as an abnormal closure.
func CloseCode(err error) int {
	var ce *CloseError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return CodeAbnormal
}

// FrameConn is one leg of a bridged call.
type FrameConn interface {
	ReadFrame() ([]byte, error)
	WriteJSON(v any) error
	Close() error
	IsOpen() bool
}

// Conn serialises writes onto a gorilla connection and tracks whether it is still usable.
type Conn struct {
	ws         *websocket.Conn
	writeMutex sync.Mutex
	open       atomic.Bool
	closeOnce  sync.Once
}

const writeWait = 5 * time.Second

func New(ws *websocket.Conn) *Conn {
	c := &Conn{ws: ws}
	c.open.Store(true)
	return c
}

func (c *Conn) ReadFrame() ([]byte, error) {
	for {
		msgType, msg, err := c.ws.ReadMessage()
		if err != nil {
			c.open.Store(false)
			var wsErr *websocket.CloseError
			if errors.As(err, &wsErr) {
				return nil, &CloseError{Code: wsErr.Code, Text: wsErr.Text}
			}
			return nil, &CloseError{Code: CodeAbnormal, Text: err.Error()}
		}
		if msgType == websocket.TextMessage || msgType == websocket.BinaryMessage {
			return msg, nil
		}
	}
}

func (c *Conn) WriteJSON(v any) error {
	if !c.open.Load() {
		return ErrClosed
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal frame: %w", err)
	}

	c.writeMutex.Lock()
	defer c.writeMutex.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// Close sends a normal closure frame and releases the connection. Safe to call more than once.
func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.open.Store(false)
		c.writeMutex.Lock()
		_ = c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait))
		c.writeMutex.Unlock()
		err = c.ws.Close()
	})
	return err
}

func (c *Conn) IsOpen() bool {
	return c.open.Load()
}

// Upgrader accepts telephony media-stream connections.
var Upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		// Media streams come from the telephony provider, not browsers.
		return true
	},
}

// Upgrade switches an HTTP request to a websocket connection.
func Upgrade(w http.ResponseWriter, r *http.Request) (*Conn, error) {
	ws, err := Upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, fmt.Errorf("upgrade: %w", err)
	}
	return New(ws), nil
}

// Dial opens a client connection, used for the agent leg.
func Dial(ctx context.Context, url string) (*Conn, error) {
	ws, resp, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial %s: status %d: %w", redact(url), resp.StatusCode, err)
		}
		return nil, fmt.Errorf("dial %s: %w", redact(url), err)
	}
	return New(ws), nil
}

// redact drops the query string, which carries one-time credentials on signed urls.
func redact(url string) string {
	base, _, _ := strings.Cut(url, "?")
	return base
}
