package directory

import (
	"context"
	"sync"
	"time"

	"voice-bridge/internal/voicecall/call"
)

// Checker is anything that can answer a caller lookup.
type Checker interface {
	CheckCaller(ctx context.Context, phone string) (call.Authorization, error)
}

type cachedAuth struct {
	auth      call.Authorization
	expiresAt time.Time
}

// CachingChecker remembers lookup outcomes for a short time so the inbound
// webhook and the media stream that follows it share one directory request.
// Failed lookups are never cached.
type CachingChecker struct {
	next Checker
	ttl  time.Duration
	now  func() time.Time

	mu        sync.Mutex
	entries   map[string]cachedAuth
	lastSweep time.Time
}

func NewCachingChecker(next Checker, ttl time.Duration) *CachingChecker {
	return &CachingChecker{
		next:    next,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cachedAuth),
	}
}

func (c *CachingChecker) CheckCaller(ctx context.Context, phone string) (call.Authorization, error) {
	if auth, ok := c.get(phone); ok {
		return auth, nil
	}

	auth, err := c.next.CheckCaller(ctx, phone)
	if err != nil {
		return auth, err
	}
	c.put(phone, auth)
	return copyAuth(auth), nil
}

func (c *CachingChecker) get(phone string) (call.Authorization, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[phone]
	if !ok || !c.now().Before(entry.expiresAt) {
		return call.Authorization{}, false
	}
	return copyAuth(entry.auth), true
}

func (c *CachingChecker) put(phone string, auth call.Authorization) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if now.Sub(c.lastSweep) >= c.ttl {
		for key, entry := range c.entries {
			if !now.Before(entry.expiresAt) {
				delete(c.entries, key)
			}
		}
		c.lastSweep = now
	}
	c.entries[phone] = cachedAuth{auth: copyAuth(auth), expiresAt: now.Add(c.ttl)}
}

func copyAuth(auth call.Authorization) call.Authorization {
	if auth.Record != nil {
		rec := *auth.Record
		auth.Record = &rec
	}
	return auth
}
