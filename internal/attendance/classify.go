// Package attendance reconciles time-clock rows into weekly attendance tables.
package attendance

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"rollcall/internal/domain"
)

const (
	// attendanceMarker is the first cell of every attendance-log row.
	attendanceMarker   = "IMSL"
	attendanceRowCells = 12

	colSurname   = 3
	colFirstName = 4
	colWeekday   = 6
	colClockIn   = 8

	clockLayout = "15:04:05"
)

// Cutoff separates on-time arrivals (strictly before) from late ones.
const Cutoff = 6*time.Hour + 1*time.Minute

// ClockRecord is a validated attendance-log row.
type ClockRecord struct {
	Person domain.PersonKey
	// Weekday is the raw day cell; it is not checked against the calendar.
	Weekday string
	// ClockIn is the time of day since midnight.
	ClockIn time.Duration
}

// Status classifies the clock-in time against Cutoff.
func (c ClockRecord) Status() domain.DayStatus {
	if c.ClockIn < Cutoff {
		return domain.StatusOnTime
	}
	return domain.StatusLate
}

// ParseClockRow validates row as an attendance-log entry.
// Rows without the IMSL marker or with the wrong cell count return
// domain.ErrNotAttendanceRow; a qualifying row with an unreadable time
// returns domain.ErrMalformedAttendanceRow.
func ParseClockRow(row domain.TableRow) (ClockRecord, error) {
	if len(row) != attendanceRowCells || row[0] != attendanceMarker {
		return ClockRecord{}, domain.ErrNotAttendanceRow
	}

	// time.Parse tolerates fractional seconds the layout omits.
	clock := row[colClockIn]
	t, err := time.Parse(clockLayout, clock)
	if err != nil || len(clock) != len(clockLayout) {
		return ClockRecord{}, fmt.Errorf("%w: clock time %q", domain.ErrMalformedAttendanceRow, row[colClockIn])
	}

	return ClockRecord{
		Person: domain.PersonKey{
			Surname:   strings.TrimSuffix(row[colSurname], ","),
			FirstName: row[colFirstName],
		},
		Weekday: row[colWeekday],
		ClockIn: time.Duration(t.Hour())*time.Hour +
			time.Duration(t.Minute())*time.Minute +
			time.Duration(t.Second())*time.Second,
	}, nil
}

// Observation is the classified outcome for one person in one document.
type Observation struct {
	Weekday string           `json:"weekday"`
	Status  domain.DayStatus `json:"status"`
}

// Observations maps people to their observation, remembering first-seen order.
type Observations struct {
	order    []domain.PersonKey
	byPerson map[domain.PersonKey]Observation
}

// NewObservations returns an empty set.
func NewObservations() *Observations {
	return &Observations{byPerson: make(map[domain.PersonKey]Observation)}
}

// Set records obs for p, replacing any earlier observation.
func (o *Observations) Set(p domain.PersonKey, obs Observation) {
	if _, ok := o.byPerson[p]; !ok {
		o.order = append(o.order, p)
	}
	o.byPerson[p] = obs
}

// Get returns p's observation.
func (o *Observations) Get(p domain.PersonKey) (Observation, bool) {
	obs, ok := o.byPerson[p]
	return obs, ok
}

// People returns observed people in first-seen order.
func (o *Observations) People() []domain.PersonKey {
	out := make([]domain.PersonKey, len(o.order))
	copy(out, o.order)
	return out
}

// Len returns the number of observed people.
func (o *Observations) Len() int { return len(o.order) }

// Classify derives one observation per person from a document's table rows.
// When a person appears on several rows the last one wins. The first
// malformed attendance row aborts classification of the whole document.
func Classify(rows []domain.TableRow) (*Observations, error) {
	out := NewObservations()
	for i, row := range rows {
		rec, err := ParseClockRow(row)
		if errors.Is(err, domain.ErrNotAttendanceRow) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		out.Set(rec.Person, Observation{Weekday: rec.Weekday, Status: rec.Status()})
	}
	return out, nil
}
