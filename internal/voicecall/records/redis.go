package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redisclient "voice-bridge/internal/clients/redis"
	"voice-bridge/internal/voicecall/call"
)

const keyPrefix = "voice-bridge:call:"

// RedisStore shares call summaries across instances. Transcripts are not
// written; they stay in the memory of the process that handled the call.
type RedisStore struct {
	client *redisclient.Client
	ttl    time.Duration
}

func NewRedisStore(client *redisclient.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Save(ctx context.Context, rec call.Record) error {
	rec.Transcript = nil
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal call record: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+rec.Key(), data, s.ttl); err != nil {
		return fmt.Errorf("failed to save call record: %w", err)
	}
	if rec.CallID != "" && rec.StreamID != "" {
		if err := s.client.Del(ctx, keyPrefix+rec.StreamID); err != nil {
			return fmt.Errorf("failed to drop stream record: %w", err)
		}
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (call.Record, error) {
	data, err := s.client.Get(ctx, keyPrefix+key)
	if errors.Is(err, redisclient.ErrKeyNotFound) {
		return call.Record{}, ErrNotFound
	}
	if err != nil {
		return call.Record{}, fmt.Errorf("failed to load call record: %w", err)
	}

	var rec call.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return call.Record{}, fmt.Errorf("failed to decode call record: %w", err)
	}
	return rec, nil
}

// Layered reads from and writes to every store in order. Get returns the
// first hit, so a fast local store should come first.
type Layered []Store

func (l Layered) Save(ctx context.Context, rec call.Record) error {
	var errs []error
	for _, s := range l {
		if err := s.Save(ctx, rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (l Layered) Get(ctx context.Context, key string) (call.Record, error) {
	var lastErr error = ErrNotFound
	for _, s := range l {
		rec, err := s.Get(ctx, key)
		if err == nil {
			return rec, nil
		}
		if !errors.Is(err, ErrNotFound) {
			lastErr = err
		}
	}
	return call.Record{}, lastErr
}
