package zones

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CCAUCAM/analogue-mission-observer/internal/domain"
)

func rect(name string, x1, y1, x2, y2 float64) domain.ZoneRect {
	return domain.ZoneRect{ID: domain.NewID(), Name: name, X1: x1, Y1: y1, X2: x2, Y2: y2}
}

func TestResolve(t *testing.T) {
	rects := []domain.ZoneRect{
		rect("Galley", 0.0, 0.0, 0.5, 0.5),
		rect("Lab", 0.4, 0.4, 0.9, 0.9),
	}

	// inside exactly one rectangle
	assert.Equal(t, "Galley", Resolve(0.1, 0.1, rects))
	assert.Equal(t, "Lab", Resolve(0.8, 0.8, rects))

	// overlap: first in list order wins
	assert.Equal(t, "Galley", Resolve(0.45, 0.45, rects))

	// closed bounds include the edges
	assert.Equal(t, "Galley", Resolve(0.5, 0.5, rects))
	assert.Equal(t, "Lab", Resolve(0.9, 0.9, rects))

	// outside every rectangle
	assert.Equal(t, Unassigned, Resolve(0.95, 0.1, rects))
	assert.Equal(t, Unassigned, Resolve(0.3, 0.3, nil))
}

func TestNewRectNormalizesCorners(t *testing.T) {
	z, ok := NewRect("Airlock", 0.8, 0.7, 0.2, 0.1, 42)
	require.True(t, ok)
	assert.Equal(t, 0.2, z.X1)
	assert.Equal(t, 0.1, z.Y1)
	assert.Equal(t, 0.8, z.X2)
	assert.Equal(t, 0.7, z.Y2)
	assert.Equal(t, int64(42), z.CreatedAt)
	assert.NotEmpty(t, z.ID)
}

func TestNewRectRejectsDegenerate(t *testing.T) {
	_, ok := NewRect("Sliver", 0.1, 0.1, 0.105, 0.9, 0)
	assert.False(t, ok)
	_, ok = NewRect("Flat", 0.1, 0.1, 0.9, 0.105, 0)
	assert.False(t, ok)
}

func TestNewRectClampsAndDefaultsName(t *testing.T) {
	z, ok := NewRect("   ", -0.5, 0.2, 1.5, 0.8, 0)
	require.True(t, ok)
	assert.Equal(t, "Zone", z.Name)
	assert.Equal(t, 0.0, z.X1)
	assert.Equal(t, 1.0, z.X2)
}

func TestRecomputeAll(t *testing.T) {
	rects := []domain.ZoneRect{rect("Galley", 0, 0, 0.5, 0.5)}
	records := []domain.Record{
		{ID: "a", X: 0.2, Y: 0.2, Zone: "Stale"},
		{ID: "b", X: 0.9, Y: 0.9, Zone: "Galley"},
	}

	out := RecomputeAll(records, rects)
	require.Len(t, out, 2)
	assert.Equal(t, "Galley", out[0].Zone)
	assert.Equal(t, Unassigned, out[1].Zone)
	// input untouched
	assert.Equal(t, "Stale", records[0].Zone)
}
