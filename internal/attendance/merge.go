package attendance

import (
	"rollcall/internal/domain"
)

// Merge builds a complete weekly table from prior state, fresh observations
// and the roster snapshot.
//
// Precedence: existing rows are the baseline; each document's observations
// are applied in order, so a later document overwrites an earlier one for the
// same person and day; roster members only fill gaps and never overwrite.
// Observations whose weekday is not a recognised code still guarantee the
// person a row but leave their days unchanged. existing is not modified.
func Merge(existing *domain.AttendanceRecord, docs []*Observations, roster domain.Roster) *domain.AttendanceRecord {
	table := existing.Clone()

	for _, obs := range docs {
		if obs == nil {
			continue
		}
		for _, p := range obs.People() {
			o, _ := obs.Get(p)
			table.Ensure(p)
			if day, ok := domain.ParseWeekday(o.Weekday); ok {
				table.Set(p, day, o.Status)
			}
		}
	}

	for _, p := range roster.Members() {
		table.Ensure(p)
	}
	return table
}
