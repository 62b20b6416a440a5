package bridge

import (
	"errors"
	"sync"
)

var ErrDuplicateStream = errors.New("stream already registered")

// Registry tracks live sessions by stream id.
type Registry interface {
	Put(streamID string, s *Session) error
	Get(streamID string) (*Session, bool)
	// Find matches either a stream id or a provider call id.
	Find(id string) (*Session, bool)
	Remove(streamID string)
	Len() int
}

type MemoryRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{sessions: make(map[string]*Session)}
}

func (r *MemoryRegistry) Put(streamID string, s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.sessions[streamID]; exists {
		return ErrDuplicateStream
	}
	r.sessions[streamID] = s
	return nil
}

func (r *MemoryRegistry) Get(streamID string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[streamID]
	return s, ok
}

func (r *MemoryRegistry) Find(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.sessions[id]; ok {
		return s, true
	}
	for _, s := range r.sessions {
		if s.callID != "" && s.callID == id {
			return s, true
		}
	}
	return nil, false
}

func (r *MemoryRegistry) Remove(streamID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, streamID)
}

func (r *MemoryRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
