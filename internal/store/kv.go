package store

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned when a slot has never been written.
var ErrMiss = errors.New("kv miss")

// KV is the byte-string slot store the session persists into. Persistence is
// best-effort: callers treat every error as non-fatal.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}
