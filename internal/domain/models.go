package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Token is a positioned word taken from a document page.
// X is the left edge and Top the distance from the top of the page.
type Token struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Top  float64 `json:"top"`
}

// Row is a run of tokens sharing roughly the same vertical position.
type Row []Token

// TableRow is a Row reduced to its cell texts in horizontal order.
type TableRow []string

// Document is an uploaded time-clock export.
type Document struct {
	Name    string
	Content []byte
}

// PersonKey identifies a person. Comparison is exact: no case folding or trimming.
type PersonKey struct {
	Surname   string `json:"surname" db:"surname"`
	FirstName string `json:"first_name" db:"first_name"`
}

// String renders the key in the stored "Surname, FirstName" form.
func (p PersonKey) String() string {
	return p.Surname + ", " + p.FirstName
}

// Less orders keys by surname, then first name.
func (p PersonKey) Less(o PersonKey) bool {
	if p.Surname != o.Surname {
		return p.Surname < o.Surname
	}
	return p.FirstName < o.FirstName
}

// ParsePersonName parses a stored "Surname, FirstName" entry. Whitespace around
// each part is trimmed; a missing comma or an empty part is rejected.
func ParsePersonName(s string) (PersonKey, error) {
	surname, first, ok := strings.Cut(s, ",")
	if !ok {
		return PersonKey{}, ErrInvalidPersonName
	}
	p := PersonKey{Surname: strings.TrimSpace(surname), FirstName: strings.TrimSpace(first)}
	if p.Surname == "" || p.FirstName == "" {
		return PersonKey{}, ErrInvalidPersonName
	}
	return p, nil
}

// WeekStatuses holds one status per recognised weekday.
type WeekStatuses map[Weekday]DayStatus

// AbsentWeek returns a week with every day marked absent.
func AbsentWeek() WeekStatuses {
	w := make(WeekStatuses, len(Weekdays))
	for _, d := range Weekdays {
		w[d] = StatusAbsent
	}
	return w
}

// Clone copies the week, filling any missing day with StatusAbsent.
func (w WeekStatuses) Clone() WeekStatuses {
	out := AbsentWeek()
	for _, d := range Weekdays {
		if s, ok := w[d]; ok {
			out[d] = s
		}
	}
	return out
}

// AttendanceRecord is a weekly table: one five-day row per person, kept in
// insertion order.
type AttendanceRecord struct {
	order []PersonKey
	days  map[PersonKey]WeekStatuses
}

// NewAttendanceRecord returns an empty table.
func NewAttendanceRecord() *AttendanceRecord {
	return &AttendanceRecord{days: make(map[PersonKey]WeekStatuses)}
}

// Len returns the number of people in the table.
func (r *AttendanceRecord) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// Has reports whether p has a row.
func (r *AttendanceRecord) Has(p PersonKey) bool {
	if r == nil {
		return false
	}
	_, ok := r.days[p]
	return ok
}

// Get returns a copy of p's row.
func (r *AttendanceRecord) Get(p PersonKey) (WeekStatuses, bool) {
	if r == nil {
		return nil, false
	}
	w, ok := r.days[p]
	if !ok {
		return nil, false
	}
	return w.Clone(), true
}

// Ensure adds an all-absent row for p if none exists. It returns true when a row was added.
func (r *AttendanceRecord) Ensure(p PersonKey) bool {
	if _, ok := r.days[p]; ok {
		return false
	}
	r.order = append(r.order, p)
	r.days[p] = AbsentWeek()
	return true
}

// Set records status for p on day, creating p's row first if needed.
func (r *AttendanceRecord) Set(p PersonKey, day Weekday, status DayStatus) {
	r.Ensure(p)
	r.days[p][day] = status
}

// Put replaces p's whole row. Missing days become absent.
func (r *AttendanceRecord) Put(p PersonKey, w WeekStatuses) {
	if _, ok := r.days[p]; !ok {
		r.order = append(r.order, p)
	}
	r.days[p] = w.Clone()
}

// People returns the keys in insertion order.
func (r *AttendanceRecord) People() []PersonKey {
	if r == nil {
		return nil
	}
	out := make([]PersonKey, len(r.order))
	copy(out, r.order)
	return out
}

// Sorted returns the keys ordered by surname then first name, for display.
func (r *AttendanceRecord) Sorted() []PersonKey {
	out := r.People()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Clone deep-copies the table. A nil table clones to an empty one.
func (r *AttendanceRecord) Clone() *AttendanceRecord {
	out := NewAttendanceRecord()
	if r == nil {
		return out
	}
	for _, p := range r.order {
		out.Put(p, r.days[p])
	}
	return out
}

// Equal compares people, order and statuses.
func (r *AttendanceRecord) Equal(o *AttendanceRecord) bool {
	if r.Len() != o.Len() {
		return false
	}
	for i, p := range r.People() {
		if o.order[i] != p {
			return false
		}
		for _, d := range Weekdays {
			if r.days[p][d] != o.days[p][d] {
				return false
			}
		}
	}
	return true
}

// DayCounts tallies statuses per weekday.
func (r *AttendanceRecord) DayCounts() map[Weekday]map[DayStatus]int {
	out := make(map[Weekday]map[DayStatus]int, len(Weekdays))
	for _, d := range Weekdays {
		out[d] = map[DayStatus]int{}
	}
	if r == nil {
		return out
	}
	for _, p := range r.order {
		for _, d := range Weekdays {
			out[d][r.days[p][d]]++
		}
	}
	return out
}

// Roster is a snapshot of the people who must appear in every weekly table.
// Members keep insertion order and are unique.
type Roster struct {
	members []PersonKey
}

// NewRoster builds a roster, dropping duplicates.
func NewRoster(people ...PersonKey) Roster {
	var r Roster
	for _, p := range people {
		r.Add(p)
	}
	return r
}

// Len returns the number of members.
func (r Roster) Len() int { return len(r.members) }

// Members returns a copy of the members.
func (r Roster) Members() []PersonKey {
	out := make([]PersonKey, len(r.members))
	copy(out, r.members)
	return out
}

// Contains reports whether p is on the roster.
func (r Roster) Contains(p PersonKey) bool {
	for _, m := range r.members {
		if m == p {
			return true
		}
	}
	return false
}

// Add appends p unless already present. It reports whether p was added.
func (r *Roster) Add(p PersonKey) bool {
	if r.Contains(p) {
		return false
	}
	r.members = append(r.members, p)
	return true
}

// Remove deletes p. It reports whether p was present.
func (r *Roster) Remove(p PersonKey) bool {
	for i, m := range r.members {
		if m == p {
			r.members = append(r.members[:i:i], r.members[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns an independent copy.
func (r Roster) Clone() Roster {
	return Roster{members: r.Members()}
}

// WeekKey identifies an ISO week.
type WeekKey struct {
	Year int `json:"year"`
	Week int `json:"week"`
}

// WeekKeyOf returns the ISO week containing t.
func WeekKeyOf(t time.Time) WeekKey {
	y, w := t.ISOWeek()
	return WeekKey{Year: y, Week: w}
}

// String formats the key as YYYY-Www.
func (k WeekKey) String() string {
	return fmt.Sprintf("%04d-W%02d", k.Year, k.Week)
}

// Monday returns the Monday that starts the week, in UTC.
func (k WeekKey) Monday() time.Time {
	jan4 := time.Date(k.Year, time.January, 4, 0, 0, 0, 0, time.UTC)
	offset := (int(jan4.Weekday()) + 6) % 7
	return jan4.AddDate(0, 0, -offset+(k.Week-1)*7)
}

// ParseWeekKey parses the YYYY-Www form produced by String.
func ParseWeekKey(s string) (WeekKey, error) {
	year, week, ok := strings.Cut(s, "-W")
	if !ok || len(year) != 4 || len(week) != 2 {
		return WeekKey{}, ErrInvalidWeek
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return WeekKey{}, ErrInvalidWeek
	}
	w, err := strconv.Atoi(week)
	if err != nil || w < 1 || w > 53 {
		return WeekKey{}, ErrInvalidWeek
	}
	k := WeekKey{Year: y, Week: w}
	if WeekKeyOf(k.Monday()) != k {
		return WeekKey{}, ErrInvalidWeek
	}
	return k, nil
}
