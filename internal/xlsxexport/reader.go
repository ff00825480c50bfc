package xlsxexport

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"rollcall/internal/attendance"
	"rollcall/internal/domain"
)

// ReadGrid returns the rows of the workbook's first sheet.
func ReadGrid(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("no worksheet found")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
	}
	return rows, nil
}

// Decode reads a weekly table previously produced by Encode, or any workbook
// with the same header layout. Failures wrap domain.ErrMalformedTable.
func Decode(data []byte) (*domain.AttendanceRecord, error) {
	grid, err := ReadGrid(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedTable, err)
	}
	return attendance.RecordFromGrid(grid)
}
