package port

import (
	"context"

	"rollcall/internal/domain"
)

// WeeklySummary describes one processed week for notification.
type WeeklySummary struct {
	Week      domain.WeekKey
	People    int
	Documents int
	Counts    map[domain.Weekday]map[domain.DayStatus]int
	Failures  []string
}

// ReportNotifier sends a summary after a week's table has been saved.
type ReportNotifier interface {
	SendWeeklySummary(ctx context.Context, summary WeeklySummary) error
}
