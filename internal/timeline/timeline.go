// Package timeline derives the review view: sort, filters, and the
// playback cutoff window.
package timeline

import (
	"sort"
	"strings"

	"github.com/CCAUCAM/analogue-mission-observer/internal/domain"
)

// Sorted returns records ascending by CreatedAt. The sort is stable, so
// timestamp ties keep store insertion order. This is the canonical
// timeline every other review transformation starts from.
func Sorted(records []domain.Record) []domain.Record {
	out := make([]domain.Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt < out[j].CreatedAt
	})
	return out
}

// Filter holds the independently-toggleable review filters. Zero values
// mean "off"; active filters combine by AND.
type Filter struct {
	Role      string // exact match when non-empty
	Activity  string // exact match when non-empty
	GroupOnly bool
	Badge     string // case-insensitive substring when non-empty
}

// Match reports whether r passes every active filter.
func (f *Filter) Match(r *domain.Record) bool {
	if f.Role != "" && string(r.Role) != f.Role {
		return false
	}
	if f.Activity != "" && string(r.Activity) != f.Activity {
		return false
	}
	if f.GroupOnly && !r.IsGroup {
		return false
	}
	if f.Badge != "" {
		q := strings.ToLower(strings.TrimSpace(f.Badge))
		if q != "" && !strings.Contains(strings.ToLower(r.BadgeNumber), q) {
			return false
		}
	}
	return true
}

// Apply filters records, preserving order.
func Apply(records []domain.Record, f Filter) []domain.Record {
	out := make([]domain.Record, 0, len(records))
	for i := range records {
		if f.Match(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}

// Window returns the first/last timestamps of a sorted timeline. ok=false
// on an empty timeline: no playback window exists and playback has no
// effect.
func Window(sorted []domain.Record) (minT, maxT int64, ok bool) {
	if len(sorted) == 0 {
		return 0, 0, false
	}
	return sorted[0].CreatedAt, sorted[len(sorted)-1].CreatedAt, true
}

// Cutoff maps a slider position in [0,1000] onto the window.
func Cutoff(minT, maxT int64, position int) float64 {
	return float64(minT) + float64(maxT-minT)*float64(position)/1000.0
}

// CutAt retains records with CreatedAt <= cutoff, preserving order.
func CutAt(records []domain.Record, cutoff float64) []domain.Record {
	out := make([]domain.Record, 0, len(records))
	for i := range records {
		if float64(records[i].CreatedAt) <= cutoff {
			out = append(out, records[i])
		}
	}
	return out
}

// LegendCounts tallies the view per activity, including zero entries for
// every enumerated activity.
func LegendCounts(records []domain.Record) map[domain.Activity]int {
	counts := make(map[domain.Activity]int, len(domain.Activities))
	for _, a := range domain.Activities {
		counts[a.Key] = 0
	}
	for i := range records {
		counts[records[i].Activity]++
	}
	return counts
}
