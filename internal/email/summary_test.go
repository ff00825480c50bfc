package email

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rollcall/internal/domain"
	"rollcall/internal/port"
)

func sampleSummary() port.WeeklySummary {
	counts := map[domain.Weekday]map[domain.DayStatus]int{}
	for _, d := range domain.Weekdays {
		counts[d] = map[domain.DayStatus]int{domain.StatusAbsent: 2}
	}
	counts[domain.Monday] = map[domain.DayStatus]int{domain.StatusOnTime: 1, domain.StatusLate: 1}

	return port.WeeklySummary{
		Week:      domain.WeekKey{Year: 2025, Week: 23},
		People:    2,
		Documents: 1,
		Counts:    counts,
		Failures:  []string{"2025_06_03.pdf: <bad>"},
	}
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "Attendance for week 2025-W23", Subject(sampleSummary()))
}

func TestTextBody(t *testing.T) {
	body := TextBody(sampleSummary())

	assert.Contains(t, body, "Week 2025-W23 (starting 06/02/2025)")
	assert.Contains(t, body, "2 people, 1 documents processed")
	assert.Contains(t, body, "Mon     1    1    0")
	assert.Contains(t, body, "Fri     0    0    2")
	assert.Contains(t, body, "  - 2025_06_03.pdf: <bad>")
}

func TestHTMLBody_EscapesFailures(t *testing.T) {
	body := HTMLBody(sampleSummary())

	assert.Contains(t, body, "&lt;bad&gt;")
	assert.NotContains(t, body, "<bad>")
}
