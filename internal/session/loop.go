package session

import (
	"context"
	"sync"
	"time"
)

// Loop is a cancellable fixed-period task. The timer, sync, and playback
// ticks each get their own Loop so they start and stop independently.
// Stop prevents future ticks; a tick already executing settles on its own
// (downstream status writes are idempotent, so that is harmless).
type Loop struct {
	period time.Duration
	fn     func(ctx context.Context)

	mu     sync.Mutex
	cancel context.CancelFunc
}

func NewLoop(period time.Duration, fn func(ctx context.Context)) *Loop {
	return &Loop{period: period, fn: fn}
}

// Start begins ticking. No-op when already running.
func (l *Loop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel

	go func() {
		ticker := time.NewTicker(l.period)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.fn(ctx)
			}
		}
	}()
}

// Stop cancels future ticks. No-op when not running.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

// Running reports whether the loop is scheduled.
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cancel != nil
}
