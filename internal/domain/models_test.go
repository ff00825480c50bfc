package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePersonName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    PersonKey
		wantErr bool
	}{
		{"canonical", "Smith, John", PersonKey{Surname: "Smith", FirstName: "John"}, false},
		{"no space", "Smith,John", PersonKey{Surname: "Smith", FirstName: "John"}, false},
		{"padded", "  Smith ,  John  ", PersonKey{Surname: "Smith", FirstName: "John"}, false},
		{"case kept", "smith, JOHN", PersonKey{Surname: "smith", FirstName: "JOHN"}, false},
		{"missing comma", "Smith John", PersonKey{}, true},
		{"empty first name", "Smith, ", PersonKey{}, true},
		{"empty surname", ", John", PersonKey{}, true},
		{"empty", "", PersonKey{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePersonName(tt.input)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidPersonName))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Surname+", "+tt.want.FirstName, got.String())
		})
	}
}

func TestPersonKey_ExactEquality(t *testing.T) {
	a := PersonKey{Surname: "Smith", FirstName: "John"}
	b := PersonKey{Surname: "smith", FirstName: "John"}
	assert.NotEqual(t, a, b)
}

func TestWeekKey(t *testing.T) {
	tests := []struct {
		date   time.Time
		key    WeekKey
		str    string
		monday time.Time
	}{
		{time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC), WeekKey{2025, 23}, "2025-W23", time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)},
		{time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC), WeekKey{2025, 1}, "2025-W01", time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC)},
		{time.Date(2021, 1, 3, 0, 0, 0, 0, time.UTC), WeekKey{2020, 53}, "2020-W53", time.Date(2020, 12, 28, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			k := WeekKeyOf(tt.date)
			assert.Equal(t, tt.key, k)
			assert.Equal(t, tt.str, k.String())
			assert.Equal(t, tt.monday, k.Monday())

			parsed, err := ParseWeekKey(tt.str)
			require.NoError(t, err)
			assert.Equal(t, tt.key, parsed)
		})
	}
}

func TestParseWeekKey_Invalid(t *testing.T) {
	for _, s := range []string{"", "2025-23", "2025-W0", "2025-W00", "2025-W54", "2025-W53", "abcd-W01"} {
		t.Run(s, func(t *testing.T) {
			_, err := ParseWeekKey(s)
			assert.ErrorIs(t, err, ErrInvalidWeek)
		})
	}
}

func TestAttendanceRecord_CloneIsIndependent(t *testing.T) {
	p := PersonKey{Surname: "Doe", FirstName: "Jane"}
	r := NewAttendanceRecord()
	r.Set(p, Monday, StatusLate)

	c := r.Clone()
	c.Set(p, Monday, StatusOnTime)

	orig, _ := r.Get(p)
	assert.Equal(t, StatusLate, orig[Monday])
	assert.False(t, r.Equal(c))
}

func TestAttendanceRecord_NilSafe(t *testing.T) {
	var r *AttendanceRecord
	assert.Equal(t, 0, r.Len())
	assert.False(t, r.Has(PersonKey{}))
	assert.Equal(t, 0, r.Clone().Len())
	assert.Empty(t, r.People())
}

func TestAttendanceRecord_DayCounts(t *testing.T) {
	r := NewAttendanceRecord()
	r.Set(PersonKey{"A", "a"}, Monday, StatusOnTime)
	r.Set(PersonKey{"B", "b"}, Monday, StatusLate)

	counts := r.DayCounts()
	assert.Equal(t, 1, counts[Monday][StatusOnTime])
	assert.Equal(t, 1, counts[Monday][StatusLate])
	assert.Equal(t, 2, counts[Friday][StatusAbsent])
}

func TestRoster(t *testing.T) {
	a := PersonKey{"Doe", "Jane"}
	b := PersonKey{"Smith", "John"}

	r := NewRoster(a, b, a)
	assert.Equal(t, 2, r.Len())

	snapshot := r.Clone()
	assert.True(t, r.Remove(a))
	assert.False(t, r.Remove(a))
	assert.False(t, r.Contains(a))
	assert.True(t, snapshot.Contains(a), "clone must not share storage")

	assert.True(t, r.Add(a))
	assert.False(t, r.Add(a))
	assert.Equal(t, []PersonKey{b, a}, r.Members())
}

func TestParseDayStatusAndWeekday(t *testing.T) {
	for _, s := range []string{"Y", "L", "A", "H"} {
		_, ok := ParseDayStatus(s)
		assert.True(t, ok, s)
	}
	_, ok := ParseDayStatus("y")
	assert.False(t, ok)

	d, ok := ParseWeekday("Thu")
	assert.True(t, ok)
	assert.Equal(t, Thursday, d)
	_, ok = ParseWeekday("Sat")
	assert.False(t, ok)
}
