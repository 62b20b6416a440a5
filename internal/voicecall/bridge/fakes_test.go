package bridge

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"voice-bridge/internal/voicecall/socket"
)

// fakeConn is a scripted socket. Frames pushed by the test are handed to the
// reader one at a time; everything written is recorded as decoded JSON.
type fakeConn struct {
	t        *testing.T
	incoming chan []byte
	closed   chan struct{}
	once     sync.Once
	open     atomic.Bool

	mu      sync.Mutex
	code    int
	written []map[string]any
}

func newFakeConn(t *testing.T) *fakeConn {
	c := &fakeConn{
		t:        t,
		incoming: make(chan []byte),
		closed:   make(chan struct{}),
	}
	c.open.Store(true)
	return c
}

func (c *fakeConn) ReadFrame() ([]byte, error) {
	select {
	case data := <-c.incoming:
		return data, nil
	case <-c.closed:
		c.mu.Lock()
		defer c.mu.Unlock()
		return nil, &socket.CloseError{Code: c.code}
	}
}

func (c *fakeConn) WriteJSON(v any) error {
	if !c.open.Load() {
		return socket.ErrClosed
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	c.mu.Lock()
	c.written = append(c.written, m)
	c.mu.Unlock()
	return nil
}

func (c *fakeConn) Close() error {
	c.closeWith(socket.CodeAbnormal)
	return nil
}

func (c *fakeConn) IsOpen() bool { return c.open.Load() }

// remoteClose simulates the peer ending the connection with code.
func (c *fakeConn) remoteClose(code int) { c.closeWith(code) }

func (c *fakeConn) closeWith(code int) {
	c.once.Do(func() {
		c.mu.Lock()
		c.code = code
		c.mu.Unlock()
		c.open.Store(false)
		close(c.closed)
	})
}

// push delivers a frame to the reader. It is a no-op once the socket closed.
func (c *fakeConn) push(frame string) {
	c.t.Helper()
	select {
	case c.incoming <- []byte(frame):
	case <-c.closed:
	case <-time.After(2 * time.Second):
		c.t.Fatalf("frame was never read: %s", frame)
	}
}

func (c *fakeConn) frames() []map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]map[string]any(nil), c.written...)
}

// kinds lists the event or type field of every written frame.
func (c *fakeConn) kinds() []string {
	var out []string
	for _, f := range c.frames() {
		if v, ok := f["event"].(string); ok {
			out = append(out, v)
			continue
		}
		if v, ok := f["type"].(string); ok {
			out = append(out, v)
			continue
		}
		if _, ok := f["user_audio_chunk"]; ok {
			out = append(out, "user_audio_chunk")
		}
	}
	return out
}

func (c *fakeConn) count(kind string) int {
	n := 0
	for _, k := range c.kinds() {
		if k == kind {
			n++
		}
	}
	return n
}

func (c *fakeConn) isClosed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}
