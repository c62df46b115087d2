// Package zones resolves normalized plan points against the ordered zone
// rectangle list.
package zones

import (
	"strings"

	"github.com/CCAUCAM/analogue-mission-observer/internal/domain"
)

// Unassigned is returned for points outside every zone rectangle.
const Unassigned = "Unassigned"

// MinRectSize is the smallest accepted zone extent per axis. Drag-drawn
// rectangles below this are discarded as accidental clicks.
const MinRectSize = 0.01

// Resolve returns the name of the first rectangle whose closed bounds
// contain (x, y). List order is significant: zones are prepended on
// creation, so the most recently drawn zone wins ties.
func Resolve(x, y float64, rects []domain.ZoneRect) string {
	for i := range rects {
		if rects[i].Contains(x, y) {
			return rects[i].Name
		}
	}
	return Unassigned
}

// NewRect builds a zone rectangle from two drag corners. Coordinates are
// clamped into the plan, bounds normalized. Returns ok=false for degenerate
// rectangles (either axis under MinRectSize).
func NewRect(name string, ax, ay, bx, by float64, createdAt int64) (domain.ZoneRect, bool) {
	x1, y1, x2, y2 := domain.NormalizeRect(
		domain.Clamp01(ax), domain.Clamp01(ay),
		domain.Clamp01(bx), domain.Clamp01(by),
	)
	if x2-x1 < MinRectSize || y2-y1 < MinRectSize {
		return domain.ZoneRect{}, false
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Zone"
	}
	return domain.ZoneRect{
		ID:        domain.NewID(),
		Name:      name,
		X1:        x1,
		Y1:        y1,
		X2:        x2,
		Y2:        y2,
		CreatedAt: createdAt,
	}, true
}

// RecomputeAll reassigns every record's zone from the current rectangles.
// This is an explicit batch operation: zone edits must not silently rewrite
// historical assignments until the operator asks for it.
func RecomputeAll(records []domain.Record, rects []domain.ZoneRect) []domain.Record {
	out := make([]domain.Record, len(records))
	for i, r := range records {
		r.Zone = Resolve(r.X, r.Y, rects)
		out[i] = r
	}
	return out
}
