package csvio

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/CCAUCAM/analogue-mission-observer/internal/domain"
)

// GenerateWorkbook renders the record table as an XLSX workbook with the
// same columns as the CSV export.
func GenerateWorkbook(records []domain.Record, intervalMinutes int) ([]byte, error) {
	f := excelize.NewFile()
	// Note: don't defer Close() here, WriteTo needs the file open

	sheetName := "Observations"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range Header {
		cellName, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cellName, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cellName, err)
		}
		if err := f.SetCellStyle(sheetName, cellName, cellName, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	for rowIdx := range records {
		cells := ExportRow(&records[rowIdx], intervalMinutes)
		for col, value := range cells {
			cellName, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheetName, cellName, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell %s: %w", cellName, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}
	return buf.Bytes(), nil
}
