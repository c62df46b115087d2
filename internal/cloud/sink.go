// Package cloud delivers live observation records to the remote log sink
// with automatic retry.
package cloud

import (
	"context"

	"github.com/CCAUCAM/analogue-mission-observer/internal/csvio"
	"github.com/CCAUCAM/analogue-mission-observer/internal/domain"
)

// ObservationPayload is the flat JSON document the sink accepts. Same
// semantic fields as a CSV export row: human-readable timestamps, no
// internal ids.
type ObservationPayload struct {
	CreatedAtISO    string  `json:"created_at_iso"`
	Observer        string  `json:"observer"`
	Site            string  `json:"site"`
	IntervalMinutes int     `json:"interval_minutes"`
	IntervalIndex   int     `json:"interval_index"`
	IntervalLabel   string  `json:"interval_label"`
	Badge           string  `json:"badge"`
	Role            string  `json:"role"`
	Activity        string  `json:"activity"`
	Group           bool    `json:"group"`
	XNorm           float64 `json:"x_norm"`
	YNorm           float64 `json:"y_norm"`
	Zone            string  `json:"zone"`
	Note            string  `json:"note"`
}

// PayloadFor builds the sink document for one record.
func PayloadFor(r *domain.Record, intervalMinutes int) ObservationPayload {
	return ObservationPayload{
		CreatedAtISO:    csvio.FormatCreatedAt(r.CreatedAt),
		Observer:        r.ObserverName,
		Site:            r.BuildingSite,
		IntervalMinutes: intervalMinutes,
		IntervalIndex:   r.IntervalIndex,
		IntervalLabel:   r.IntervalLabel,
		Badge:           r.BadgeNumber,
		Role:            string(r.Role),
		Activity:        string(r.Activity),
		Group:           r.IsGroup,
		XNorm:           r.X,
		YNorm:           r.Y,
		Zone:            r.Zone,
		Note:            r.Note,
	}
}

// Sink is the opaque fire-and-forget remote log. Success means the send
// completed without a transport-level error; nothing is read back, so
// confirmed persistence downstream is out of scope.
type Sink interface {
	Send(ctx context.Context, payload ObservationPayload) error
}
