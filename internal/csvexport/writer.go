// Package csvexport writes weekly attendance tables as CSV.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"rollcall/internal/attendance"
	"rollcall/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Writer wraps csv.Writer for exporting weekly tables.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteRecord writes the header followed by one row per person, sorted by
// surname then first name. A non-nil weekStart adds dates to day headers.
func (w *Writer) WriteRecord(record *domain.AttendanceRecord, weekStart *time.Time) error {
	return w.csv.WriteAll(attendance.RecordToGrid(record, weekStart))
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// BuildFilename returns the download name for a week's table.
// Format: attendance_{YYYY-Www}.{ext}
func BuildFilename(week domain.WeekKey, ext string) string {
	return fmt.Sprintf("attendance_%s.%s", week, ext)
}
