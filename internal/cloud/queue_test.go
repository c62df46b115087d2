package cloud

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/CCAUCAM/analogue-mission-observer/internal/domain"
	"github.com/CCAUCAM/analogue-mission-observer/internal/store"
)

type fakeSink struct {
	sent []ObservationPayload
	err  error
}

func (f *fakeSink) Send(_ context.Context, p ObservationPayload) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, p)
	return nil
}

func newQueueFixture(t *testing.T) (*SyncQueue, *store.RecordStore, *fakeSink) {
	t.Helper()
	records := store.NewRecordStore(store.NewMemoryKV(), zap.NewNop())
	sink := &fakeSink{}
	q := NewSyncQueue(records, sink, zap.NewNop())
	q.SetIntervalSource(func() int { return 5 })
	return q, records, sink
}

func liveRecord(id string, at int64) domain.Record {
	return domain.Record{
		ID:          id,
		CreatedAt:   at,
		BadgeNumber: "B-" + id,
		Source:      domain.SourceLive,
		CloudStatus: domain.CloudPending,
	}
}

func TestTickDeliversEarliestOnly(t *testing.T) {
	ctx := context.Background()
	q, records, sink := newQueueFixture(t)

	// inserted out of order; selection is by createdAt
	records.Add(ctx, liveRecord("t2", 2000))
	records.Add(ctx, liveRecord("t1", 1000))

	q.Tick(ctx)
	require.Len(t, sink.sent, 1)
	assert.Equal(t, "B-t1", sink.sent[0].Badge)
	assert.Equal(t, 5, sink.sent[0].IntervalMinutes) // read from the source at send time

	rs := records.Records()
	assert.Equal(t, domain.CloudOK, rs[1].CloudStatus)      // t1 settled
	assert.Equal(t, domain.CloudPending, rs[0].CloudStatus) // t2 untouched

	q.Tick(ctx)
	require.Len(t, sink.sent, 2)
	assert.Equal(t, "B-t2", sink.sent[1].Badge)
	assert.Equal(t, domain.CloudOK, records.Records()[0].CloudStatus)
}

func TestTickMarksFailAndRetries(t *testing.T) {
	ctx := context.Background()
	q, records, sink := newQueueFixture(t)
	records.Add(ctx, liveRecord("r", 1000))

	sink.err = errors.New("sink unreachable")
	q.Tick(ctx)
	assert.Equal(t, domain.CloudFail, records.Records()[0].CloudStatus)
	assert.Equal(t, LoopFail, q.Status().LoopStatus)

	// fail stays retry-eligible; the outage ending settles it
	sink.err = nil
	q.Tick(ctx)
	assert.Equal(t, domain.CloudOK, records.Records()[0].CloudStatus)
	assert.Equal(t, LoopOK, q.Status().LoopStatus)

	st := q.Status()
	assert.Equal(t, int64(2), st.Attempts)
	assert.Equal(t, int64(1), st.Succeeded)
	assert.Equal(t, int64(1), st.Failed)
}

func TestTickSkipsImportedAndSettled(t *testing.T) {
	ctx := context.Background()
	q, records, sink := newQueueFixture(t)

	records.Add(ctx, domain.Record{ID: "i", CreatedAt: 1, Source: domain.SourceImport, CloudStatus: domain.CloudOK})
	records.Add(ctx, domain.Record{ID: "done", CreatedAt: 2, Source: domain.SourceLive, CloudStatus: domain.CloudOK})

	q.Tick(ctx)
	assert.Empty(t, sink.sent)
	assert.Equal(t, LoopIdle, q.Status().LoopStatus)
}

func TestDisableStopsSchedulingOnly(t *testing.T) {
	ctx := context.Background()
	q, records, sink := newQueueFixture(t)
	records.Add(ctx, liveRecord("r", 1000))

	q.SetEnabled(false)
	q.Tick(ctx)
	assert.Empty(t, sink.sent)
	// status untouched by the toggle
	assert.Equal(t, domain.CloudPending, records.Records()[0].CloudStatus)

	q.SetEnabled(true)
	q.Tick(ctx)
	assert.Len(t, sink.sent, 1)
}

func TestQueueWithoutSinkStaysDisabled(t *testing.T) {
	records := store.NewRecordStore(store.NewMemoryKV(), zap.NewNop())
	q := NewSyncQueue(records, nil, zap.NewNop())

	assert.False(t, q.Enabled())
	q.SetEnabled(true)
	assert.False(t, q.Enabled())
}

func TestPayloadFor(t *testing.T) {
	r := domain.Record{
		ID:            "internal-id",
		CreatedAt:     1700000000000,
		IntervalIndex: 2,
		IntervalLabel: "10:00–10:05",
		ObserverName:  "Observer 3",
		BuildingSite:  "Control Room",
		BadgeNumber:   "B-9",
		Role:          domain.RoleMedic,
		Activity:      domain.ActivitySleepRest,
		IsGroup:       true,
		X:             0.125,
		Y:             0.875,
		Zone:          "Bunks",
		Note:          "n",
	}

	p := PayloadFor(&r, 5)
	assert.Equal(t, "2023-11-14T22:13:20.000Z", p.CreatedAtISO)
	assert.Equal(t, 5, p.IntervalMinutes)
	assert.Equal(t, "medic", p.Role)
	assert.Equal(t, "sleep_rest", p.Activity)
	assert.True(t, p.Group)
	assert.Equal(t, 0.125, p.XNorm)
	assert.Equal(t, "Bunks", p.Zone)
}
