package attendance

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rollcall/internal/domain"
)

func TestDateFromFilename(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   time.Time
		wantOK bool
	}{
		{"underscore", "2025_06_02.pdf", time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), true},
		{"underscore with suffix", "2025_06_03_clock_export.pdf", time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), true},
		{"dots", "2025.06.04.pdf", time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC), true},
		{"directory ignored", "uploads/2025_06_05.pdf", time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC), true},
		{"no extension", "2025_1_9", time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC), true},
		{"dots without extension", "2025.06.02", time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), true},
		{"dots with trailing part", "2025.06.02.morning", time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), true},
		{"invalid day", "2025_02_30.pdf", time.Time{}, false},
		{"invalid month", "2025_13_01.pdf", time.Time{}, false},
		{"too few parts", "2025_06.pdf", time.Time{}, false},
		{"not numeric", "clock_week_one.pdf", time.Time{}, false},
		{"day month year order rejected", "02_06_2025.pdf", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DateFromFilename(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPartition_GroupsByISOWeek(t *testing.T) {
	docs := []domain.Document{
		{Name: "2025_06_04.pdf"},
		{Name: "2025_06_09.pdf"},
		{Name: "report.pdf"},
		{Name: "2025_06_02.pdf"},
		{Name: "2024_12_30.pdf"},
	}

	weeks, skipped := Partition(docs, nil)

	require.Len(t, weeks, 3)
	assert.Equal(t, domain.WeekKey{Year: 2025, Week: 23}, weeks[0].Week)
	assert.Equal(t, []domain.Document{{Name: "2025_06_04.pdf"}, {Name: "2025_06_02.pdf"}}, weeks[0].Documents)
	assert.Equal(t, domain.WeekKey{Year: 2025, Week: 24}, weeks[1].Week)
	// 30 Dec 2024 belongs to ISO week 1 of 2025.
	assert.Equal(t, domain.WeekKey{Year: 2025, Week: 1}, weeks[2].Week)

	require.Len(t, skipped, 1)
	assert.Equal(t, "report.pdf", skipped[0].Name)
	assert.True(t, errors.Is(skipped[0].Err, domain.ErrDateExtraction))
}

func TestPartition_CustomResolver(t *testing.T) {
	fixed := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	weeks, skipped := Partition([]domain.Document{{Name: "a"}, {Name: "b"}}, func(string) (time.Time, bool) {
		return fixed, true
	})

	assert.Empty(t, skipped)
	require.Len(t, weeks, 1)
	assert.Len(t, weeks[0].Documents, 2)
}
