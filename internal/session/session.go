// Package session holds the explicit session context: settings, the
// interval timer, playback state, and the periodic loops that drive them.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/CCAUCAM/analogue-mission-observer/internal/cloud"
	"github.com/CCAUCAM/analogue-mission-observer/internal/config"
	"github.com/CCAUCAM/analogue-mission-observer/internal/domain"
	"github.com/CCAUCAM/analogue-mission-observer/internal/store"
	"github.com/CCAUCAM/analogue-mission-observer/internal/timeline"
)

// Fixed option lists for session metadata.
var (
	ObserverOptions = []string{"Observer 1", "Observer 2", "Observer 3"}
	SiteOptions     = []string{"Habitat A", "Habitat B", "Control Room", "Lab Module", "Airlock / EVA Prep"}
)

// User-visible validation outcomes. These strings surface directly as
// status messages.
var (
	ErrNotRunning    = errors.New("Press Start to begin recording.")
	ErrBadgeRequired = errors.New("Enter a badge number before recording.")
)

// timerTickPeriod is how often the interval timer re-evaluates elapsed
// time. The interval boundary itself advances drift-free in whole interval
// lengths.
const timerTickPeriod = 250 * time.Millisecond

// Session is the process-wide observation session. All shared state is
// behind one mutex; loops and HTTP handlers mutate through it.
type Session struct {
	records *store.RecordStore
	queue   *cloud.SyncQueue
	logger  *zap.Logger
	now     func() time.Time

	timerLoop    *Loop
	syncLoop     *Loop
	playbackLoop *Loop

	mu sync.RWMutex

	observer        string
	site            string
	intervalMinutes int

	running       bool
	intervalIndex int
	intervalStart int64 // epoch millis, 0 = never started

	playback     timeline.Playback
	lastRecorded string
}

// New wires the session context. Loops are created but not started; Start,
// SetAutoSend, and SetPlaying control them individually. The queue's
// interval source is wired here, before the sync loop starts, so a tick
// never races session construction.
func New(cfg config.SessionConfig, syncTick time.Duration, records *store.RecordStore, queue *cloud.SyncQueue, logger *zap.Logger) *Session {
	s := &Session{
		records:         records,
		queue:           queue,
		logger:          logger,
		now:             time.Now,
		observer:        cfg.Observer,
		site:            cfg.Site,
		intervalMinutes: cfg.IntervalMinutes,
		playback:        timeline.NewPlayback(),
	}
	queue.SetIntervalSource(s.IntervalMinutes)
	s.timerLoop = NewLoop(timerTickPeriod, func(context.Context) { s.TimerTick() })
	s.syncLoop = NewLoop(syncTick, queue.Tick)
	s.playbackLoop = NewLoop(timeline.TickMillis*time.Millisecond, func(context.Context) { s.PlaybackTick() })
	if queue.Enabled() {
		s.syncLoop.Start()
	}
	return s
}

// SetClock replaces the time source (tests).
func (s *Session) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Queue exposes the sync queue for status handlers.
func (s *Session) Queue() *cloud.SyncQueue { return s.queue }

// Records exposes the record store.
func (s *Session) Records() *store.RecordStore { return s.records }

func (s *Session) intervalSeconds() int {
	secs := s.intervalMinutes * 60
	if secs < 1 {
		secs = 1
	}
	return secs
}

// Settings returns observer, site, and the interval length.
func (s *Session) Settings() (observer, site string, intervalMinutes int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.observer, s.site, s.intervalMinutes
}

// SetObserver selects from the fixed observer list.
func (s *Session) SetObserver(name string) error {
	if !containsOption(ObserverOptions, name) {
		return fmt.Errorf("unknown observer option: %q", name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer = name
	return nil
}

// SetSite selects from the fixed site list.
func (s *Session) SetSite(name string) error {
	if !containsOption(SiteOptions, name) {
		return fmt.Errorf("unknown site option: %q", name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.site = name
	return nil
}

// SetIntervalMinutes adjusts the recording window length (>= 1 minute).
func (s *Session) SetIntervalMinutes(m int) error {
	if m < 1 {
		return fmt.Errorf("interval must be at least 1 minute, got %d", m)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.intervalMinutes = m
	return nil
}

// IntervalMinutes returns the current window length; the sync queue reads
// this at send time.
func (s *Session) IntervalMinutes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.intervalMinutes
}

// Start begins recording at interval 0.
func (s *Session) Start() {
	s.mu.Lock()
	s.intervalStart = s.now().UnixMilli()
	s.intervalIndex = 0
	s.running = true
	s.mu.Unlock()
	s.timerLoop.Start()
}

// PauseResume toggles the timer. Resuming keeps the interval index but
// restarts the current window from now.
func (s *Session) PauseResume() (running bool) {
	s.mu.Lock()
	if s.running {
		s.running = false
		s.mu.Unlock()
		s.timerLoop.Stop()
		return false
	}
	s.intervalStart = s.now().UnixMilli()
	s.running = true
	s.mu.Unlock()
	s.timerLoop.Start()
	return true
}

// Reset stops the timer and destroys every record — the only bulk delete
// besides a replace import.
func (s *Session) Reset(ctx context.Context) {
	s.timerLoop.Stop()
	s.playbackLoop.Stop()
	s.mu.Lock()
	s.running = false
	s.intervalStart = 0
	s.intervalIndex = 0
	s.playback = timeline.NewPlayback()
	s.lastRecorded = ""
	s.mu.Unlock()
	s.records.Clear(ctx)
}

// TimerTick advances the interval boundary. When a full interval has
// elapsed the index increments and the window start moves forward by
// exactly one interval length, so boundaries never drift.
func (s *Session) TimerTick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running || s.intervalStart == 0 {
		return
	}
	secs := int64(s.intervalSeconds())
	elapsed := (s.now().UnixMilli() - s.intervalStart) / 1000
	if elapsed >= secs {
		s.intervalIndex++
		s.intervalStart += secs * 1000
	}
}

// IntervalLabel renders the current window as "HH:MM–HH:MM", or "—" before
// the first start.
func (s *Session) IntervalLabel() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.intervalLabelLocked()
}

func (s *Session) intervalLabelLocked() string {
	if s.intervalStart == 0 {
		return "—"
	}
	start := time.UnixMilli(s.intervalStart)
	end := start.Add(time.Duration(s.intervalSeconds()) * time.Second)
	return start.Format("15:04") + "–" + end.Format("15:04")
}

// CaptureInput is one tap on the floorplan.
type CaptureInput struct {
	Badge    string
	Role     string
	Activity string
	IsGroup  bool
	X        float64
	Y        float64
	Note     string
}

// Capture validates input and appends a live record. No partial record is
// ever exposed to the store: validation happens before construction.
func (s *Session) Capture(ctx context.Context, in CaptureInput) (domain.Record, error) {
	s.mu.Lock()

	if !s.running || s.intervalStart == 0 {
		s.mu.Unlock()
		return domain.Record{}, ErrNotRunning
	}
	badge := strings.TrimSpace(in.Badge)
	if badge == "" {
		s.mu.Unlock()
		return domain.Record{}, ErrBadgeRequired
	}
	if !domain.ValidRole(in.Role) {
		s.mu.Unlock()
		return domain.Record{}, fmt.Errorf("unknown role: %q", in.Role)
	}
	if !domain.ValidActivity(in.Activity) {
		s.mu.Unlock()
		return domain.Record{}, fmt.Errorf("unknown activity: %q", in.Activity)
	}

	x := domain.Clamp01(in.X)
	y := domain.Clamp01(in.Y)

	status := domain.CloudFail
	if s.queue.Enabled() {
		status = domain.CloudPending
	}

	rec := domain.Record{
		ID:            domain.NewID(),
		CreatedAt:     s.now().UnixMilli(),
		IntervalIndex: s.intervalIndex,
		IntervalLabel: s.intervalLabelLocked(),
		ObserverName:  s.observer,
		BuildingSite:  s.site,
		BadgeNumber:   badge,
		Role:          domain.Role(in.Role),
		Activity:      domain.Activity(in.Activity),
		IsGroup:       in.IsGroup,
		X:             x,
		Y:             y,
		Zone:          s.records.ResolveZone(x, y),
		Note:          in.Note,
		CloudStatus:   status,
		Source:        domain.SourceLive,
	}
	s.lastRecorded = captureSummary(&rec)
	s.mu.Unlock()

	s.records.Add(ctx, rec)
	return rec, nil
}

func captureSummary(r *domain.Record) string {
	roleLabel := string(r.Role)
	for _, ri := range domain.Roles {
		if ri.Key == r.Role {
			roleLabel = ri.Label
		}
	}
	activityLabel := string(r.Activity)
	for _, ai := range domain.Activities {
		if ai.Key == r.Activity {
			activityLabel = ai.Label
		}
	}
	return fmt.Sprintf("Recorded: badge %s · %s · %s · %s", r.BadgeNumber, roleLabel, activityLabel, r.Zone)
}

// SetAutoSend toggles the delivery loop. Off stops scheduling; statuses
// already set stay as they are.
func (s *Session) SetAutoSend(on bool) {
	s.queue.SetEnabled(on)
	if s.queue.Enabled() {
		s.syncLoop.Start()
	} else {
		s.syncLoop.Stop()
	}
}

// Playback returns a copy of the playback state.
func (s *Session) Playback() timeline.Playback {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.playback
}

// SetPlaybackEnabled toggles replay windowing.
func (s *Session) SetPlaybackEnabled(on bool) {
	s.mu.Lock()
	s.playback.SetEnabled(on)
	s.mu.Unlock()
	s.playbackLoop.Stop()
}

// SetPlaying starts or stops playback advancement.
func (s *Session) SetPlaying(on bool) {
	s.mu.Lock()
	if !s.playback.Enabled {
		on = false
	}
	s.playback.Playing = on
	s.mu.Unlock()
	if on {
		s.playbackLoop.Start()
	} else {
		s.playbackLoop.Stop()
	}
}

// SetPlaybackSpeed sets the 1/2/4/8× multiplier.
func (s *Session) SetPlaybackSpeed(speed int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.playback.SetSpeed(speed) {
		return fmt.Errorf("playback speed must be 1, 2, 4, or 8, got %d", speed)
	}
	return nil
}

// SetPlaybackPosition moves the slider (0..1000).
func (s *Session) SetPlaybackPosition(pos int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playback.SetPosition(pos)
}

// PlaybackTick advances the slider one step and stops the loop when the
// end is reached.
func (s *Session) PlaybackTick() {
	sorted := timeline.Sorted(s.records.Records())
	minT, maxT, ok := timeline.Window(sorted)
	if !ok {
		return
	}
	s.mu.Lock()
	s.playback.Advance(minT, maxT)
	stopped := !s.playback.Playing
	s.mu.Unlock()
	if stopped {
		s.playbackLoop.Stop()
	}
}

// EnablePlaybackAfterImport mirrors the import flow: playback on, slider
// at the end, transport stopped.
func (s *Session) EnablePlaybackAfterImport() {
	s.mu.Lock()
	s.playback.Enabled = true
	s.playback.Position = 1000
	s.playback.Playing = false
	s.mu.Unlock()
	s.playbackLoop.Stop()
}

// Review derives the record view: canonical timeline, filters, then the
// playback cutoff when enabled.
func (s *Session) Review(f timeline.Filter) ([]domain.Record, *float64) {
	sorted := timeline.Sorted(s.records.Records())
	filtered := timeline.Apply(sorted, f)

	s.mu.RLock()
	pb := s.playback
	s.mu.RUnlock()

	if !pb.Enabled {
		return filtered, nil
	}
	minT, maxT, ok := timeline.Window(sorted)
	if !ok {
		return filtered, nil
	}
	cutoff := timeline.Cutoff(minT, maxT, pb.Position)
	return timeline.CutAt(filtered, cutoff), &cutoff
}

// Status is the session snapshot served to clients.
type Status struct {
	Running         bool   `json:"running"`
	Observer        string `json:"observer"`
	Site            string `json:"site"`
	IntervalMinutes int    `json:"interval_minutes"`
	IntervalIndex   int    `json:"interval_index"`
	IntervalLabel   string `json:"interval_label"`
	TimeLeftSeconds int    `json:"time_left_seconds"`
	RecordCount     int    `json:"record_count"`
	IntervalCount   int    `json:"interval_count"`
	LastRecorded    string `json:"last_recorded,omitempty"`

	Playback timeline.Playback `json:"playback"`
}

// Status assembles the snapshot.
func (s *Session) Status() Status {
	records := s.records.Records()

	s.mu.RLock()
	defer s.mu.RUnlock()

	secs := s.intervalSeconds()
	timeLeft := secs
	if s.running && s.intervalStart != 0 {
		elapsed := int((s.now().UnixMilli() - s.intervalStart) / 1000)
		if elapsed < 0 {
			elapsed = 0
		}
		if elapsed > secs {
			elapsed = secs
		}
		timeLeft = secs - elapsed
	}

	intervalCount := 0
	for i := range records {
		if records[i].IntervalIndex == s.intervalIndex {
			intervalCount++
		}
	}

	return Status{
		Running:         s.running,
		Observer:        s.observer,
		Site:            s.site,
		IntervalMinutes: s.intervalMinutes,
		IntervalIndex:   s.intervalIndex,
		IntervalLabel:   s.intervalLabelLocked(),
		TimeLeftSeconds: timeLeft,
		RecordCount:     len(records),
		IntervalCount:   intervalCount,
		LastRecorded:    s.lastRecorded,
		Playback:        s.playback,
	}
}

// Close stops every loop.
func (s *Session) Close() {
	s.timerLoop.Stop()
	s.syncLoop.Stop()
	s.playbackLoop.Stop()
}

func containsOption(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}
