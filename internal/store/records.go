package store

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/CCAUCAM/analogue-mission-observer/internal/domain"
	"github.com/CCAUCAM/analogue-mission-observer/internal/zones"
)

// KV slot keys for the two persisted JSON arrays.
const (
	ZonesSlot   = "obs:zones"
	RecordsSlot = "obs:records"
)

// RecordStore is the authoritative in-memory record and zone list for the
// session. Every mutation is mirrored into the KV slots best-effort; a
// failed write only costs durability across restarts, never correctness,
// so persistence errors are logged at warn and swallowed.
//
// Records keep insertion order; the timeline sort happens downstream.
type RecordStore struct {
	mu      sync.RWMutex
	records []domain.Record
	zones   []domain.ZoneRect

	kv     KV
	logger *zap.Logger
}

func NewRecordStore(kv KV, logger *zap.Logger) *RecordStore {
	return &RecordStore{
		kv:     kv,
		logger: logger,
	}
}

// Load reads both slots. Missing slots, parse failures, and non-array
// payloads all leave the corresponding list empty.
func (s *RecordStore) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if raw, err := s.kv.Get(ctx, ZonesSlot); err == nil {
		var zs []domain.ZoneRect
		if jsonErr := json.Unmarshal([]byte(raw), &zs); jsonErr == nil {
			s.zones = zs
		} else {
			s.logger.Warn("ignoring unparseable zones slot", zap.Error(jsonErr))
		}
	} else if err != ErrMiss {
		s.logger.Warn("failed to read zones slot", zap.Error(err))
	}

	if raw, err := s.kv.Get(ctx, RecordsSlot); err == nil {
		var rs []domain.Record
		if jsonErr := json.Unmarshal([]byte(raw), &rs); jsonErr == nil {
			s.records = rs
		} else {
			s.logger.Warn("ignoring unparseable records slot", zap.Error(jsonErr))
		}
	} else if err != ErrMiss {
		s.logger.Warn("failed to read records slot", zap.Error(err))
	}
}

// Records returns a copy of the record list in insertion order.
func (s *RecordStore) Records() []domain.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Count returns the number of records in the store.
func (s *RecordStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Add appends one record and persists.
func (s *RecordStore) Add(ctx context.Context, r domain.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r)
	s.persistRecords(ctx)
}

// ReplaceAll installs rs as the whole record list ("replace" import).
func (s *RecordStore) ReplaceAll(ctx context.Context, rs []domain.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]domain.Record(nil), rs...)
	s.persistRecords(ctx)
}

// AppendAll unions rs onto the current list ("append" import).
func (s *RecordStore) AppendAll(ctx context.Context, rs []domain.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rs...)
	s.persistRecords(ctx)
}

// Clear drops every record (session reset).
func (s *RecordStore) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	s.persistRecords(ctx)
}

// SetCloudStatus updates one record's delivery status. The write is
// idempotent, so a stale settle after the queue is disabled is harmless.
func (s *RecordStore) SetCloudStatus(ctx context.Context, id string, status domain.CloudStatus) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i].CloudStatus = status
			s.persistRecords(ctx)
			return true
		}
	}
	return false
}

// Zones returns a copy of the zone rectangle list in resolution order.
func (s *RecordStore) Zones() []domain.ZoneRect {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ZoneRect, len(s.zones))
	copy(out, s.zones)
	return out
}

// PrependZone puts z at the head of the list so the newest zone wins
// resolution ties.
func (s *RecordStore) PrependZone(ctx context.Context, z domain.ZoneRect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zones = append([]domain.ZoneRect{z}, s.zones...)
	s.persistZones(ctx)
}

// DeleteZone removes the zone with the given id.
func (s *RecordStore) DeleteZone(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.zones {
		if s.zones[i].ID == id {
			s.zones = append(s.zones[:i], s.zones[i+1:]...)
			s.persistZones(ctx)
			return true
		}
	}
	return false
}

// ResolveZone resolves a point against the current rectangles.
func (s *RecordStore) ResolveZone(x, y float64) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return zones.Resolve(x, y, s.zones)
}

// RecomputeZones reassigns every record's zone from the current rectangles
// and returns the record count. Explicit batch operation, see zones package.
func (s *RecordStore) RecomputeZones(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = zones.RecomputeAll(s.records, s.zones)
	s.persistRecords(ctx)
	return len(s.records)
}

func (s *RecordStore) persistRecords(ctx context.Context) {
	buf, err := json.Marshal(s.records)
	if err != nil {
		s.logger.Warn("failed to encode records slot", zap.Error(err))
		return
	}
	if err := s.kv.Set(ctx, RecordsSlot, string(buf), 0); err != nil {
		s.logger.Warn("failed to persist records slot", zap.Error(err))
	}
}

func (s *RecordStore) persistZones(ctx context.Context) {
	buf, err := json.Marshal(s.zones)
	if err != nil {
		s.logger.Warn("failed to encode zones slot", zap.Error(err))
		return
	}
	if err := s.kv.Set(ctx, ZonesSlot, string(buf), 0); err != nil {
		s.logger.Warn("failed to persist zones slot", zap.Error(err))
	}
}
