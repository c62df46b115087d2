package heatmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSingleHotCell(t *testing.T) {
	pts := make([]Point, 10)
	for i := range pts {
		pts[i] = Point{X: 0.51, Y: 0.52} // all land in one cell at grid 20
	}

	cells := Build(pts, 20)
	require.Len(t, cells, 1)
	assert.Equal(t, 10, cells[0].Count)
	assert.Equal(t, 1.0, cells[0].Norm)
	assert.Equal(t, 10, cells[0].GX)
	assert.Equal(t, 10, cells[0].GY)
}

func TestBuildNormalization(t *testing.T) {
	pts := []Point{
		{0.05, 0.05}, {0.05, 0.05}, {0.05, 0.05}, {0.05, 0.05},
		{0.95, 0.95},
	}
	cells := Build(pts, 10)
	require.Len(t, cells, 2)

	byCount := map[int]float64{}
	for _, c := range cells {
		byCount[c.Count] = c.Norm
	}
	assert.Equal(t, 1.0, byCount[4])
	assert.Equal(t, 0.25, byCount[1])
}

func TestBuildClampsEdges(t *testing.T) {
	// x=1.0 floors to g, which must clamp into the last cell
	cells := Build([]Point{{1.0, 1.0}}, 10)
	require.Len(t, cells, 1)
	assert.Equal(t, 9, cells[0].GX)
	assert.Equal(t, 9, cells[0].GY)
}

func TestBuildGridClamp(t *testing.T) {
	// grid below the minimum behaves as MinGrid
	cells := Build([]Point{{0.99, 0.99}}, 1)
	require.Len(t, cells, 1)
	assert.Equal(t, MinGrid-1, cells[0].GX)

	// above the maximum behaves as MaxGrid
	cells = Build([]Point{{0.9999, 0.0}}, 1000)
	require.Len(t, cells, 1)
	assert.Equal(t, MaxGrid-1, cells[0].GX)
}

func TestBuildEmpty(t *testing.T) {
	assert.Empty(t, Build(nil, 60))
}
