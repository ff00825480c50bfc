package domain

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
)

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf": FileTypePDF,
}

// DayStatus is the attendance outcome for one person on one weekday.
type DayStatus string

const (
	StatusOnTime  DayStatus = "Y"
	StatusLate    DayStatus = "L"
	StatusAbsent  DayStatus = "A"
	StatusHoliday DayStatus = "H" // display only; no classifier emits it
)

// ParseDayStatus accepts the single-letter codes used in weekly tables.
func ParseDayStatus(s string) (DayStatus, bool) {
	switch DayStatus(s) {
	case StatusOnTime, StatusLate, StatusAbsent, StatusHoliday:
		return DayStatus(s), true
	}
	return "", false
}

// Weekday is the short day code printed by the time-clock export.
type Weekday string

const (
	Monday    Weekday = "Mon"
	Tuesday   Weekday = "Tue"
	Wednesday Weekday = "Wed"
	Thursday  Weekday = "Thu"
	Friday    Weekday = "Fri"
)

// Weekdays lists the recognised day codes in column order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

// ParseWeekday reports whether s is one of the five recognised day codes.
func ParseWeekday(s string) (Weekday, bool) {
	for _, d := range Weekdays {
		if string(d) == s {
			return d, true
		}
	}
	return "", false
}

// RosterBackend selects where the always-included roster is persisted.
type RosterBackend string

const (
	RosterBackendText     RosterBackend = "text"
	RosterBackendJSON     RosterBackend = "json"
	RosterBackendPostgres RosterBackend = "postgres"
	RosterBackendSheet    RosterBackend = "sheet"
)

// ReportFormat is an export format for a weekly table.
type ReportFormat string

const (
	ReportFormatJSON ReportFormat = "json"
	ReportFormatCSV  ReportFormat = "csv"
	ReportFormatXLSX ReportFormat = "xlsx"
)
