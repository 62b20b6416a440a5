package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"voice-bridge/internal/clients/redis"
	"voice-bridge/internal/observability"

	"github.com/google/uuid"
)

// Result represents the result of a rate limit check
type Result struct {
	Allowed      bool      `json:"allowed"`
	Limit        int       `json:"limit"`
	Remaining    int       `json:"remaining"`
	ResetAt      time.Time `json:"reset_at"`
	RetryAfterMs int       `json:"retry_after_ms,omitempty"`
}

// Service limits how often a client may trigger an action within a sliding window
type Service struct {
	redis  *redis.Client
	limit  int
	window time.Duration
	prefix string
	logger *observability.Logger
	now    func() time.Time

	mu        sync.Mutex
	local     map[string][]time.Time
	lastSweep time.Time
}

// NewService creates a limiter allowing limit requests per window. A nil or
// disabled redis client keeps the window in process memory.
func NewService(redis *redis.Client, prefix string, limit int, window time.Duration, logger *observability.Logger) *Service {
	return &Service{
		redis:  redis,
		limit:  limit,
		window: window,
		prefix: prefix,
		logger: logger,
		now:    time.Now,
		local:  make(map[string][]time.Time),
	}
}

// Check records a request for key when it is within the limit
func (s *Service) Check(ctx context.Context, key string) (Result, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "rate_limit_key", Value: key},
		observability.Field{Key: "rate_limit", Value: s.limit},
	)

	// Redis keeps the window shared between instances
	if s.redis.IsEnabled() {
		result, err := s.checkRedis(ctx, key)
		if err != nil {
			s.logger.InfoWithError(ctx, "Redis rate limit check failed, falling back to memory", err)
			return s.checkMemory(key), nil
		}
		return result, nil
	}
	return s.checkMemory(key), nil
}

func (s *Service) checkRedis(ctx context.Context, key string) (Result, error) {
	redisKey := fmt.Sprintf("rl:%s:%s", s.prefix, key)
	now := s.now()

	count, err := s.redis.WindowCount(ctx, redisKey, now.Add(-s.window))
	if err != nil {
		return Result{}, err
	}

	if int(count) >= s.limit {
		oldest, ok, err := s.redis.WindowOldest(ctx, redisKey)
		if err != nil || !ok {
			return s.denied(now, now), nil
		}
		return s.denied(now, oldest), nil
	}

	member := fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString())
	if err := s.redis.WindowAdd(ctx, redisKey, member, now, 2*s.window); err != nil {
		return Result{}, err
	}

	return Result{
		Allowed:   true,
		Limit:     s.limit,
		Remaining: s.limit - int(count) - 1,
		ResetAt:   now.Add(s.window),
	}, nil
}

func (s *Service) checkMemory(key string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	since := now.Add(-s.window)

	if now.Sub(s.lastSweep) >= s.window {
		s.sweep(since)
		s.lastSweep = now
	}

	hits := s.local[key]
	kept := hits[:0]
	for _, at := range hits {
		if !at.Before(since) {
			kept = append(kept, at)
		}
	}

	if len(kept) >= s.limit {
		s.local[key] = kept
		return s.denied(now, kept[0])
	}

	s.local[key] = append(kept, now)
	return Result{
		Allowed:   true,
		Limit:     s.limit,
		Remaining: s.limit - len(kept) - 1,
		ResetAt:   now.Add(s.window),
	}
}

// sweep drops keys whose newest hit has left the window. Callers hold mu.
func (s *Service) sweep(since time.Time) {
	for key, hits := range s.local {
		if len(hits) == 0 || hits[len(hits)-1].Before(since) {
			delete(s.local, key)
		}
	}
}

func (s *Service) denied(now, oldest time.Time) Result {
	resetAt := oldest.Add(s.window)
	retryAfter := resetAt.Sub(now)
	if retryAfter < 0 {
		retryAfter = 0
	}
	return Result{
		Allowed:      false,
		Limit:        s.limit,
		Remaining:    0,
		ResetAt:      resetAt,
		RetryAfterMs: int(retryAfter.Milliseconds()),
	}
}
