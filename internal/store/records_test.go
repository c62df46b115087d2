package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/CCAUCAM/analogue-mission-observer/internal/domain"
	"github.com/CCAUCAM/analogue-mission-observer/internal/zones"
)

func newTestStore(t *testing.T) (*RecordStore, KV) {
	t.Helper()
	kv := NewMemoryKV()
	return NewRecordStore(kv, zap.NewNop()), kv
}

func TestRecordStorePersistsAndReloads(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestStore(t)

	s.Add(ctx, domain.Record{ID: "r1", CreatedAt: 1, Zone: "Galley"})
	s.Add(ctx, domain.Record{ID: "r2", CreatedAt: 2})
	z, ok := zones.NewRect("Galley", 0, 0, 0.5, 0.5, 1)
	require.True(t, ok)
	s.PrependZone(ctx, z)

	// a fresh store over the same KV sees the same state
	reloaded := NewRecordStore(kv, zap.NewNop())
	reloaded.Load(ctx)
	require.Len(t, reloaded.Records(), 2)
	assert.Equal(t, "r1", reloaded.Records()[0].ID)
	require.Len(t, reloaded.Zones(), 1)
	assert.Equal(t, "Galley", reloaded.Zones()[0].Name)
}

func TestRecordStoreLoadToleratesGarbage(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ctx, RecordsSlot, "{not json", 0))
	require.NoError(t, kv.Set(ctx, ZonesSlot, `"not an array"`, 0))

	s := NewRecordStore(kv, zap.NewNop())
	s.Load(ctx)
	assert.Empty(t, s.Records())
	assert.Empty(t, s.Zones())
}

func TestSetCloudStatus(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	s.Add(ctx, domain.Record{ID: "r1", CloudStatus: domain.CloudPending})

	assert.True(t, s.SetCloudStatus(ctx, "r1", domain.CloudOK))
	assert.Equal(t, domain.CloudOK, s.Records()[0].CloudStatus)
	assert.False(t, s.SetCloudStatus(ctx, "missing", domain.CloudOK))
}

func TestReplaceAppendClear(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	s.Add(ctx, domain.Record{ID: "r1"})

	s.ReplaceAll(ctx, []domain.Record{{ID: "i1"}, {ID: "i2"}})
	require.Len(t, s.Records(), 2)
	assert.Equal(t, "i1", s.Records()[0].ID)

	s.AppendAll(ctx, []domain.Record{{ID: "i3"}})
	assert.Len(t, s.Records(), 3)

	s.Clear(ctx)
	assert.Empty(t, s.Records())
}

func TestZoneOrderingAndResolution(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	older, _ := zones.NewRect("Old", 0, 0, 1, 1, 1)
	newer, _ := zones.NewRect("New", 0, 0, 0.5, 0.5, 2)
	s.PrependZone(ctx, older)
	s.PrependZone(ctx, newer)

	// most recently drawn wins the overlap
	assert.Equal(t, "New", s.ResolveZone(0.2, 0.2))
	assert.Equal(t, "Old", s.ResolveZone(0.8, 0.8))

	require.True(t, s.DeleteZone(ctx, newer.ID))
	assert.Equal(t, "Old", s.ResolveZone(0.2, 0.2))
	assert.False(t, s.DeleteZone(ctx, newer.ID))
}

func TestRecomputeZones(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	s.Add(ctx, domain.Record{ID: "r1", X: 0.2, Y: 0.2, Zone: "Stale"})

	z, _ := zones.NewRect("Galley", 0, 0, 0.5, 0.5, 1)
	s.PrependZone(ctx, z)

	// zone edits alone do not rewrite records
	assert.Equal(t, "Stale", s.Records()[0].Zone)

	n := s.RecomputeZones(ctx)
	assert.Equal(t, 1, n)
	assert.Equal(t, "Galley", s.Records()[0].Zone)
}
