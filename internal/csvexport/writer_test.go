package csvexport

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rollcall/internal/domain"
)

func TestWriteRecord(t *testing.T) {
	r := domain.NewAttendanceRecord()
	r.Set(domain.PersonKey{Surname: "Smith", FirstName: "John"}, domain.Monday, domain.StatusLate)
	r.Ensure(domain.PersonKey{Surname: "Doe", FirstName: "Jane"})

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteRecord(r, nil))
	w.Flush()
	require.NoError(t, w.Error())

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Surname", "FirstName", "Mon", "Tue", "Wed", "Thu", "Fri"}, rows[0])
	assert.Equal(t, []string{"Doe", "Jane", "A", "A", "A", "A", "A"}, rows[1])
	assert.Equal(t, []string{"Smith", "John", "L", "A", "A", "A", "A"}, rows[2])
}

func TestWriteRecord_DatedHeader(t *testing.T) {
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteRecord(domain.NewAttendanceRecord(), &monday))
	w.Flush()

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Mon 06/02/2025", rows[0][2])
	assert.Equal(t, "Fri 06/06/2025", rows[0][6])
}

func TestBuildFilename(t *testing.T) {
	assert.Equal(t, "attendance_2025-W23.csv", BuildFilename(domain.WeekKey{Year: 2025, Week: 23}, "csv"))
	assert.Equal(t, "attendance_2025-W01.xlsx", BuildFilename(domain.WeekKey{Year: 2025, Week: 1}, "xlsx"))
}
