package attendance

import (
	"fmt"
	"strings"
	"time"

	"rollcall/internal/domain"
)

const (
	headerSurname   = "Surname"
	headerFirstName = "FirstName"

	// headerDateLayout suffixes day columns, e.g. "Mon 06/02/2025".
	headerDateLayout = "01/02/2006"
)

// GridHeader returns the header row. When weekStart is set each day column
// carries that day's date.
func GridHeader(weekStart *time.Time) []string {
	header := []string{headerSurname, headerFirstName}
	for i, d := range domain.Weekdays {
		label := string(d)
		if weekStart != nil {
			label += " " + weekStart.AddDate(0, 0, i).Format(headerDateLayout)
		}
		header = append(header, label)
	}
	return header
}

// RecordToGrid renders record as a rectangular grid, header first and people
// sorted by surname then first name.
func RecordToGrid(record *domain.AttendanceRecord, weekStart *time.Time) [][]string {
	grid := [][]string{GridHeader(weekStart)}
	for _, p := range record.Sorted() {
		days, _ := record.Get(p)
		row := []string{p.Surname, p.FirstName}
		for _, d := range domain.Weekdays {
			row = append(row, string(days[d]))
		}
		grid = append(grid, row)
	}
	return grid
}

// RecordFromGrid reads a previously exported weekly table. Day headers may be
// bare ("Mon") or date-suffixed ("Mon 06/02/2025"); only the first word
// counts. Empty status cells read as absent. Any shape problem is reported
// as domain.ErrMalformedTable.
func RecordFromGrid(grid [][]string) (*domain.AttendanceRecord, error) {
	if len(grid) == 0 {
		return nil, fmt.Errorf("%w: missing header row", domain.ErrMalformedTable)
	}

	columns, err := dayColumns(grid[0])
	if err != nil {
		return nil, err
	}

	record := domain.NewAttendanceRecord()
	for i, row := range grid[1:] {
		line := i + 2
		if blankRow(row) {
			continue
		}
		p := domain.PersonKey{Surname: cell(row, 0), FirstName: cell(row, 1)}
		if p.Surname == "" || p.FirstName == "" {
			return nil, fmt.Errorf("%w: row %d: missing name", domain.ErrMalformedTable, line)
		}
		if record.Has(p) {
			return nil, fmt.Errorf("%w: row %d: duplicate entry for %s", domain.ErrMalformedTable, line, p)
		}

		days := domain.AbsentWeek()
		for day, col := range columns {
			raw := strings.TrimSpace(cell(row, col))
			if raw == "" {
				continue
			}
			status, ok := domain.ParseDayStatus(raw)
			if !ok {
				return nil, fmt.Errorf("%w: row %d: unknown status %q for %s", domain.ErrMalformedTable, line, raw, day)
			}
			days[day] = status
		}
		record.Put(p, days)
	}
	return record, nil
}

func dayColumns(header []string) (map[domain.Weekday]int, error) {
	if len(header) < 2+len(domain.Weekdays) {
		return nil, fmt.Errorf("%w: header has %d columns, want %d", domain.ErrMalformedTable, len(header), 2+len(domain.Weekdays))
	}
	if strings.TrimSpace(header[0]) != headerSurname || strings.TrimSpace(header[1]) != headerFirstName {
		return nil, fmt.Errorf("%w: header must start with %s, %s", domain.ErrMalformedTable, headerSurname, headerFirstName)
	}

	columns := make(map[domain.Weekday]int, len(domain.Weekdays))
	for col := 2; col < len(header); col++ {
		label := strings.TrimSpace(header[col])
		if label == "" {
			continue
		}
		code, _, _ := strings.Cut(label, " ")
		day, ok := domain.ParseWeekday(code)
		if !ok {
			return nil, fmt.Errorf("%w: unknown day column %q", domain.ErrMalformedTable, label)
		}
		if _, dup := columns[day]; dup {
			return nil, fmt.Errorf("%w: duplicate day column %q", domain.ErrMalformedTable, label)
		}
		columns[day] = col
	}
	if len(columns) != len(domain.Weekdays) {
		return nil, fmt.Errorf("%w: expected columns for %d weekdays, found %d", domain.ErrMalformedTable, len(domain.Weekdays), len(columns))
	}
	return columns, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
