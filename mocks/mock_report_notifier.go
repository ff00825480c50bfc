package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rollcall/internal/port"
)

// MockReportNotifier is a mock implementation of port.ReportNotifier.
type MockReportNotifier struct {
	mock.Mock
}

func (m *MockReportNotifier) SendWeeklySummary(ctx context.Context, summary port.WeeklySummary) error {
	args := m.Called(ctx, summary)
	return args.Error(0)
}
