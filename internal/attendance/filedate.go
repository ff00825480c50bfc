package attendance

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// filenameSeparators are tried in order when reading a date from a file name.
var filenameSeparators = []string{"_", "."}

// DateFromFilename reads a YYYY<sep>MM<sep>DD prefix from a file name such as
// "2025_06_02_clock.pdf" or "2025.06.02.pdf". Each separator is tried on the
// name without its final extension, then on the whole name, so "2025.06.02"
// keeps its day. It reports false when no attempt yields a valid calendar date.
func DateFromFilename(name string) (time.Time, bool) {
	base := filepath.Base(name)
	candidates := []string{strings.TrimSuffix(base, filepath.Ext(base))}
	if candidates[0] != base {
		candidates = append(candidates, base)
	}

	for _, sep := range filenameSeparators {
		for _, c := range candidates {
			parts := strings.Split(c, sep)
			if len(parts) < 3 {
				continue
			}
			if d, ok := calendarDate(parts[0], parts[1], parts[2]); ok {
				return d, true
			}
		}
	}
	return time.Time{}, false
}

func calendarDate(year, month, day string) (time.Time, bool) {
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return time.Time{}, false
	}
	m, err := strconv.Atoi(strings.TrimSpace(month))
	if err != nil {
		return time.Time{}, false
	}
	d, err := strconv.Atoi(strings.TrimSpace(day))
	if err != nil {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	// time.Date normalises out-of-range values; a round trip catches them.
	if t.Year() != y || int(t.Month()) != m || t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}
