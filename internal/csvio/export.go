// Package csvio serializes observation records to CSV/XLSX and parses
// untrusted CSV back into records.
package csvio

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/CCAUCAM/analogue-mission-observer/internal/domain"
)

// Header is the fixed export column set, in order. The first 14 columns are
// required on import; cloud_status and source are advisory.
var Header = []string{
	"created_at_iso",
	"observer",
	"site",
	"interval_minutes",
	"interval_index",
	"interval_label",
	"badge",
	"role",
	"activity",
	"group",
	"x_norm",
	"y_norm",
	"zone",
	"note",
	"cloud_status",
	"source",
}

const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// FormatCreatedAt renders epoch millis as ISO-8601 UTC with milliseconds.
func FormatCreatedAt(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(isoMillis)
}

// Escape applies standard CSV quoting: any field containing a comma, double
// quote, or newline is wrapped in double quotes with internal quotes doubled.
func Escape(value string) string {
	if strings.ContainsAny(value, "\",\n") {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}

// ExportRow renders one record as the 16 export cells, unescaped.
func ExportRow(r *domain.Record, intervalMinutes int) []string {
	source := r.Source
	if source == "" {
		source = domain.SourceLive
	}
	return []string{
		FormatCreatedAt(r.CreatedAt),
		r.ObserverName,
		r.BuildingSite,
		strconv.Itoa(intervalMinutes),
		strconv.Itoa(r.IntervalIndex),
		r.IntervalLabel,
		r.BadgeNumber,
		string(r.Role),
		string(r.Activity),
		boolCell(r.IsGroup),
		strconv.FormatFloat(r.X, 'f', 6, 64),
		strconv.FormatFloat(r.Y, 'f', 6, 64),
		r.Zone,
		r.Note,
		string(r.CloudStatus),
		string(source),
	}
}

// Export produces the full CSV document. Row order matches input order;
// callers pass records in creation order.
func Export(records []domain.Record, intervalMinutes int) string {
	var b strings.Builder
	b.WriteString(strings.Join(Header, ","))
	for i := range records {
		cells := ExportRow(&records[i], intervalMinutes)
		for j, c := range cells {
			cells[j] = Escape(c)
		}
		b.WriteByte('\n')
		b.WriteString(strings.Join(cells, ","))
	}
	return b.String()
}

// ExportFilename is the download name for a CSV export taken at t.
func ExportFilename(t time.Time) string {
	return fmt.Sprintf("mission_observations_%s.csv", t.UTC().Format("2006-01-02"))
}

func boolCell(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
