package noop

import (
	"context"
	"log"

	"rollcall/internal/email"
	"rollcall/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op ReportNotifier that logs summaries to stdout.
func NewNoopSender() port.ReportNotifier {
	return &noopSender{}
}

func (s *noopSender) SendWeeklySummary(_ context.Context, summary port.WeeklySummary) error {
	log.Printf("[NOOP EMAIL] %s\n%s", email.Subject(summary), email.TextBody(summary))
	return nil
}
