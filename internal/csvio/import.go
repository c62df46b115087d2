package csvio

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/CCAUCAM/analogue-mission-observer/internal/domain"
)

// RequiredColumns are the header names an import must carry. cloud_status
// and source are not required: the importer forces both anyway.
var RequiredColumns = []string{
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
}

// ErrEmpty is returned when the file has no data rows.
var ErrEmpty = errors.New("CSV looks empty")

// MissingColumnsError reports every absent required header name. The whole
// import fails; there is no partial import.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "CSV missing columns: " + strings.Join(e.Columns, ", ")
}

// ZoneResolver derives a zone name for an imported point when the zone
// column is empty.
type ZoneResolver func(x, y float64) string

// Import parses text and converts it into records. Row-level problems never
// fail the import: unparseable dates fall back to now, unparseable or
// non-finite coordinates to 0 (then clamp), unknown enum values to
// visitor_other / walking. Every imported record gets a fresh id; external
// identifiers are never trusted. cloud_status is forced to ok and source to
// import, since imported rows are already-settled history.
func Import(text string, resolve ZoneResolver, now time.Time) ([]domain.Record, error) {
	rows := ParseCSV(text)
	if len(rows) < 2 {
		return nil, ErrEmpty
	}

	header := rows[0]
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if _, seen := idx[h]; !seen {
			idx[h] = i
		}
	}

	var missing []string
	for _, name := range RequiredColumns {
		if _, ok := idx[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	cell := func(row []string, name string) string {
		i := idx[name]
		if i >= len(row) {
			return ""
		}
		return row[i]
	}

	records := make([]domain.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		x := parseCoord(cell(row, "x_norm"))
		y := parseCoord(cell(row, "y_norm"))

		zone := cell(row, "zone")
		if zone == "" {
			zone = resolve(x, y)
		}

		roleRaw := cell(row, "role")
		if roleRaw == "" {
			roleRaw = string(domain.RolePilot)
		}

		groupRaw := strings.ToLower(strings.TrimSpace(cell(row, "group")))

		records = append(records, domain.Record{
			ID:            domain.NewID(),
			CreatedAt:     parseCreatedAt(cell(row, "created_at_iso"), now),
			IntervalIndex: parseIntDefault(cell(row, "interval_index"), 0),
			IntervalLabel: defaultIfEmpty(cell(row, "interval_label"), "—"),
			ObserverName:  defaultIfEmpty(cell(row, "observer"), "Observer 1"),
			BuildingSite:  defaultIfEmpty(cell(row, "site"), "Habitat A"),
			BadgeNumber:   cell(row, "badge"),
			Role:          domain.ParseRoleOrDefault(roleRaw),
			Activity:      domain.ParseActivityOrDefault(cell(row, "activity")),
			IsGroup:       groupRaw == "1" || groupRaw == "true",
			X:             x,
			Y:             y,
			Zone:          zone,
			Note:          cell(row, "note"),
			CloudStatus:   domain.CloudOK,
			Source:        domain.SourceImport,
		})
	}
	return records, nil
}

var createdAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseCreatedAt(s string, now time.Time) int64 {
	s = strings.TrimSpace(s)
	if s != "" {
		for _, layout := range createdAtLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UnixMilli()
			}
		}
	}
	return now.UnixMilli()
}

func parseCoord(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return domain.Clamp01(v)
}

func parseIntDefault(s string, def int) int {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return i
}

func defaultIfEmpty(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// ImportSummary is the user-visible outcome line for a successful import.
func ImportSummary(count int, mode string) string {
	return fmt.Sprintf("Loaded %d markers from CSV (%s).", count, mode)
}
