// Package records retains call summaries after the live session is gone so
// transcript lookups keep working for a while.
package records

import (
	"context"
	"errors"

	"voice-bridge/internal/voicecall/call"
)

var ErrNotFound = errors.New("call record not found")

// Store retains call records keyed by Record.Key.
type Store interface {
	Save(ctx context.Context, rec call.Record) error
	Get(ctx context.Context, key string) (call.Record, error)
}
