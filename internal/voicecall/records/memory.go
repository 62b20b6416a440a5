package records

import (
	"context"
	"sync"
	"time"

	"voice-bridge/internal/voicecall/call"
)

type entry struct {
	rec       call.Record
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// MemoryStore keeps records in process memory and drops them after ttl.
type MemoryStore struct {
	mu     sync.RWMutex
	items  map[string]entry
	ttl    time.Duration
	now    func() time.Time
	stopCh chan struct{}
	once   sync.Once
}

// NewMemoryStore starts a store whose expired entries are swept every cleanupInterval.
func NewMemoryStore(ttl, cleanupInterval time.Duration) *MemoryStore {
	s := &MemoryStore{
		items:  make(map[string]entry),
		ttl:    ttl,
		now:    time.Now,
		stopCh: make(chan struct{}),
	}
	if cleanupInterval > 0 {
		go s.cleanupLoop(cleanupInterval)
	}
	return s
}

func (s *MemoryStore) Save(_ context.Context, rec call.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.Transcript = append([]call.TranscriptLine(nil), rec.Transcript...)
	key := rec.Key()
	s.items[key] = entry{rec: rec, expiresAt: s.now().Add(s.ttl)}
	// A record first saved under its stream id moves once the call id is known.
	if rec.CallID != "" && rec.StreamID != "" && rec.StreamID != key {
		delete(s.items, rec.StreamID)
	}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (call.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.items[key]
	if !ok || e.expired(s.now()) {
		return call.Record{}, ErrNotFound
	}
	rec := e.rec
	rec.Transcript = append([]call.TranscriptLine(nil), e.rec.Transcript...)
	return rec, nil
}

// Len returns the number of unexpired records.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	n := 0
	for _, e := range s.items {
		if !e.expired(now) {
			n++
		}
	}
	return n
}

// Stop ends the cleanup goroutine.
func (s *MemoryStore) Stop() {
	s.once.Do(func() { close(s.stopCh) })
}

func (s *MemoryStore) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

func (s *MemoryStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, e := range s.items {
		if e.expired(now) {
			delete(s.items, k)
		}
	}
}
