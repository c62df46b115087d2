package cloud

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/CCAUCAM/analogue-mission-observer/internal/domain"
	"github.com/CCAUCAM/analogue-mission-observer/internal/store"
)

// Loop status values surfaced as the aggregate send indicator.
const (
	LoopIdle    = "idle"
	LoopSending = "sending"
	LoopOK      = "ok"
	LoopFail    = "fail"
)

// Metrics 同步队列统计
type Metrics struct {
	mu sync.RWMutex

	Attempts  int64 // delivery attempts
	Succeeded int64 // attempts that completed
	Failed    int64 // attempts that errored

	LastAttemptAt time.Time
	StartTime     time.Time
}

// Snapshot returns a copy without the lock (thread safe).
func (m *Metrics) Snapshot() Metrics {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Metrics{
		Attempts:      m.Attempts,
		Succeeded:     m.Succeeded,
		Failed:        m.Failed,
		LastAttemptAt: m.LastAttemptAt,
		StartTime:     m.StartTime,
	}
}

func (m *Metrics) recordAttempt(ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Attempts++
	if ok {
		m.Succeeded++
	} else {
		m.Failed++
	}
	m.LastAttemptAt = time.Now()
}

// SyncQueue drives at-least-once delivery of live records. Per record:
// pending -> ok, pending -> fail -> ... -> ok, or fail forever under a
// sustained outage. Retry is unbounded in attempts and bounded only in
// rate: one record per tick, earliest created first, so attempts never race
// for the same record and delivery stays chronological.
type SyncQueue struct {
	records *store.RecordStore
	sink    Sink
	logger  *zap.Logger

	mu sync.RWMutex
	// intervalMinutes reads the current session setting at send time; the
	// payload carries it but records don't. Wired via SetIntervalSource
	// during session construction, before the delivery loop starts.
	intervalMinutes func() int
	enabled         bool
	loopStatus      string
	lastSendAt      int64 // epoch millis, 0 = never

	metrics Metrics
}

func NewSyncQueue(records *store.RecordStore, sink Sink, logger *zap.Logger) *SyncQueue {
	q := &SyncQueue{
		records:    records,
		sink:       sink,
		logger:     logger,
		enabled:    sink != nil,
		loopStatus: LoopIdle,
	}
	q.metrics.StartTime = time.Now()
	return q
}

// SetIntervalSource wires where the payload's interval length is read from
// at send time. The session sets this on itself during construction, before
// the delivery loop starts.
func (q *SyncQueue) SetIntervalSource(fn func() int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.intervalMinutes = fn
}

func (q *SyncQueue) currentInterval() int {
	q.mu.RLock()
	fn := q.intervalMinutes
	q.mu.RUnlock()
	if fn == nil {
		return 1
	}
	return fn()
}

// Enabled reports whether the loop schedules new attempts.
func (q *SyncQueue) Enabled() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.enabled
}

// SetEnabled toggles scheduling. Turning the queue off stops future
// attempts but never touches already-set record statuses.
func (q *SyncQueue) SetEnabled(on bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.sink == nil {
		on = false
	}
	q.enabled = on
	if !on {
		q.loopStatus = LoopIdle
	}
}

// QueueStatus is the aggregate indicator served to clients.
type QueueStatus struct {
	Enabled    bool   `json:"enabled"`
	LoopStatus string `json:"loop_status"`
	LastSendAt int64  `json:"last_send_at,omitempty"`
	Pending    int    `json:"pending"`
	Attempts   int64  `json:"attempts"`
	Succeeded  int64  `json:"succeeded"`
	Failed     int64  `json:"failed"`
}

func (q *SyncQueue) Status() QueueStatus {
	q.mu.RLock()
	enabled := q.enabled
	loopStatus := q.loopStatus
	lastSendAt := q.lastSendAt
	q.mu.RUnlock()

	pending := 0
	for _, r := range q.records.Records() {
		if r.SyncEligible() {
			pending++
		}
	}

	m := q.metrics.Snapshot()
	return QueueStatus{
		Enabled:    enabled,
		LoopStatus: loopStatus,
		LastSendAt: lastSendAt,
		Pending:    pending,
		Attempts:   m.Attempts,
		Succeeded:  m.Succeeded,
		Failed:     m.Failed,
	}
}

// Tick selects at most one eligible record — the earliest created, with
// insertion order breaking timestamp ties — and attempts delivery. Called
// once per loop period; the loop runs sequentially, so at most one send is
// in flight at a time.
func (q *SyncQueue) Tick(ctx context.Context) {
	if !q.Enabled() {
		return
	}

	candidate, ok := q.nextCandidate()
	if !ok {
		q.setLoopStatus(LoopIdle)
		return
	}

	q.setLoopStatus(LoopSending)
	err := q.sink.Send(ctx, PayloadFor(&candidate, q.currentInterval()))
	q.metrics.recordAttempt(err == nil)

	if err != nil {
		// Record stays retry-eligible for the next tick. No backoff, no
		// attempt cap: under a sustained outage a record retries forever
		// (known resource concern for very long unreachable-sink sessions).
		q.records.SetCloudStatus(ctx, candidate.ID, domain.CloudFail)
		q.setLoopStatus(LoopFail)
		q.logger.Warn("observation delivery failed",
			zap.String("record_id", candidate.ID),
			zap.Error(err),
		)
		return
	}

	q.records.SetCloudStatus(ctx, candidate.ID, domain.CloudOK)
	q.mu.Lock()
	q.loopStatus = LoopOK
	q.lastSendAt = time.Now().UnixMilli()
	q.mu.Unlock()
}

func (q *SyncQueue) nextCandidate() (domain.Record, bool) {
	var best domain.Record
	found := false
	for _, r := range q.records.Records() {
		if !r.SyncEligible() {
			continue
		}
		if !found || r.CreatedAt < best.CreatedAt {
			best = r
			found = true
		}
	}
	return best, found
}

func (q *SyncQueue) setLoopStatus(s string) {
	q.mu.Lock()
	q.loopStatus = s
	q.mu.Unlock()
}
