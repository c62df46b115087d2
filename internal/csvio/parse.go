package csvio

import "strings"

// ParseCSV is a character scanner for untrusted CSV text. It supports
// quoted cells with embedded commas, newlines, and doubled quotes, and
// strips bare carriage returns outside quotes. Rows whose cells are all
// empty or whitespace are discarded.
//
// encoding/csv is deliberately not used here: it rejects files with ragged
// rows and stray quotes outright, while import wants to salvage whatever
// rows it can and let the column validation decide.
func ParseCSV(text string) [][]string {
	var rows [][]string
	var row []string
	var cell strings.Builder
	inQuotes := false

	for i := 0; i < len(text); i++ {
		c := text[i]

		if inQuotes {
			if c == '"' {
				if i+1 < len(text) && text[i+1] == '"' {
					cell.WriteByte('"')
					i++
				} else {
					inQuotes = false
				}
			} else {
				cell.WriteByte(c)
			}
			continue
		}

		switch c {
		case '"':
			inQuotes = true
		case ',':
			row = append(row, cell.String())
			cell.Reset()
		case '\n':
			row = append(row, cell.String())
			cell.Reset()
			rows = append(rows, row)
			row = nil
		case '\r':
			// skip
		default:
			cell.WriteByte(c)
		}
	}

	row = append(row, cell.String())
	rows = append(rows, row)

	out := rows[:0]
	for _, r := range rows {
		if !rowBlank(r) {
			out = append(out, r)
		}
	}
	return out
}

func rowBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
