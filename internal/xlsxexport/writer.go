// Package xlsxexport encodes weekly attendance tables as Excel workbooks.
package xlsxexport

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"rollcall/internal/attendance"
	"rollcall/internal/domain"
)

// SheetName is the worksheet holding the weekly table.
const SheetName = "Attendance"

// ContentType is the MIME type of the produced workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	nameColumnWidth = 20
	dayColumnWidth  = 16
)

// statusFills maps each status to its cell background.
var statusFills = map[domain.DayStatus]string{
	domain.StatusOnTime:  "C6EFCE", // green
	domain.StatusLate:    "FFEB9C", // yellow
	domain.StatusAbsent:  "FFC7CE", // red
	domain.StatusHoliday: "FFC0CB", // pink
}

// Options controls presentation of an encoded week.
type Options struct {
	// DateHeaders suffixes each day column with its date.
	DateHeaders bool
}

// Encode renders record for week as a styled single-sheet workbook.
func Encode(record *domain.AttendanceRecord, week domain.WeekKey, opts Options) ([]byte, error) {
	var weekStart *time.Time
	if opts.DateHeaders {
		monday := week.Monday()
		weekStart = &monday
	}
	grid := attendance.RecordToGrid(record, weekStart)

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}
	if err := writeGrid(f, SheetName, grid); err != nil {
		return nil, err
	}
	if err := styleWeek(f, grid); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encoding workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeGrid writes an unstyled grid to a single-sheet workbook.
func EncodeGrid(sheet string, grid [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}
	if err := writeGrid(f, sheet, grid); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("encoding workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeGrid(f *excelize.File, sheet string, grid [][]string) error {
	for i, row := range grid {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, axis, &cells); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	return nil
}

func styleWeek(f *excelize.File, grid [][]string) error {
	styles := make(map[domain.DayStatus]int, len(statusFills))
	for status, color := range statusFills {
		id, err := f.NewStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		})
		if err != nil {
			return fmt.Errorf("creating style: %w", err)
		}
		styles[status] = id
	}
	centered, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	lastCol, err := excelize.ColumnNumberToName(2 + len(domain.Weekdays))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "A", "B", nameColumnWidth); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "C", lastCol, dayColumnWidth); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", centered); err != nil {
		return err
	}

	for i, row := range grid[1:] {
		for j := 2; j < len(row); j++ {
			id, ok := styles[domain.DayStatus(row[j])]
			if !ok {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(SheetName, axis, axis, id); err != nil {
				return fmt.Errorf("styling %s: %w", axis, err)
			}
		}
	}
	return nil
}
