package domain

import (
	"github.com/google/uuid"
)

// CloudStatus 记录的云同步状态
type CloudStatus string

const (
	CloudPending CloudStatus = "pending"
	CloudOK      CloudStatus = "ok"
	CloudFail    CloudStatus = "fail"
)

// Source distinguishes operator-captured records from CSV-replayed ones.
// Only live records are eligible for the sync queue.
type Source string

const (
	SourceLive   Source = "live"
	SourceImport Source = "import"
)

// Record 一条观察记录（对应 floorplan 上的一个标记点）
//
// Identity and times are immutable after creation; CloudStatus is the only
// field the service mutates post-creation (by the sync queue). Zone is
// derived from (X, Y) at creation and only rewritten by an explicit
// recompute, never by zone edits on their own.
type Record struct {
	ID        string `json:"id"`
	CreatedAt int64  `json:"created_at"` // epoch millis; total order among records

	IntervalIndex int    `json:"interval_index"`
	IntervalLabel string `json:"interval_label"`

	ObserverName string `json:"observer_name"`
	BuildingSite string `json:"building_site"`

	BadgeNumber string `json:"badge_number"`
	Role        Role   `json:"role"`

	Activity Activity `json:"activity"`
	IsGroup  bool     `json:"is_group"`

	X float64 `json:"x"` // 0..1, clamped on write
	Y float64 `json:"y"` // 0..1, clamped on write

	Zone string `json:"zone"`
	Note string `json:"note"`

	CloudStatus CloudStatus `json:"cloud_status,omitempty"`
	Source      Source      `json:"source,omitempty"`
}

// SyncEligible reports whether the sync queue may attempt delivery of r.
// Imported records are already-settled history and never re-sent.
func (r *Record) SyncEligible() bool {
	if r.Source == SourceImport {
		return false
	}
	return r.CloudStatus == CloudPending || r.CloudStatus == CloudFail
}

// NewID returns a fresh process-unique record/zone id.
func NewID() string {
	return uuid.New().String()
}
