// Package heatmap buckets a normalized point set into a density grid.
package heatmap

import "math"

// Grid resolution bounds.
const (
	MinGrid = 5
	MaxGrid = 200
)

// Point is a normalized plan coordinate.
type Point struct {
	X float64
	Y float64
}

// Cell is one occupied grid bucket. Norm is count/maxCount over the
// occupied cells; consumers scale render intensity by norm times an
// independent strength multiplier.
type Cell struct {
	GX    int     `json:"gx"`
	GY    int     `json:"gy"`
	Count int     `json:"count"`
	Norm  float64 `json:"norm"`
}

// Build maps each point to cell (floor(x·g), floor(y·g)) clamped to
// [0,g-1] and returns the occupied cells only (sparse). Grid is clamped to
// [MinGrid, MaxGrid]. No points yields no cells.
func Build(points []Point, grid int) []Cell {
	g := grid
	if g < MinGrid {
		g = MinGrid
	}
	if g > MaxGrid {
		g = MaxGrid
	}

	counts := make(map[int]int)
	for _, p := range points {
		gx := clampCell(int(math.Floor(p.X*float64(g))), g)
		gy := clampCell(int(math.Floor(p.Y*float64(g))), g)
		counts[gy*g+gx]++
	}

	max := 0
	for _, v := range counts {
		if v > max {
			max = v
		}
	}

	cells := make([]Cell, 0, len(counts))
	for key, count := range counts {
		norm := 0.0
		if max > 0 {
			norm = float64(count) / float64(max)
		}
		cells = append(cells, Cell{
			GX:    key % g,
			GY:    key / g,
			Count: count,
			Norm:  norm,
		})
	}
	return cells
}

func clampCell(i, g int) int {
	if i < 0 {
		return 0
	}
	if i > g-1 {
		return g - 1
	}
	return i
}
