package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rollcall/internal/domain"
	"rollcall/internal/service"
)

// MockAttendanceService is a mock implementation of service.AttendanceService.
type MockAttendanceService struct {
	mock.Mock
}

func (m *MockAttendanceService) ProcessBatch(ctx context.Context, input service.ProcessBatchInput) (*service.BatchResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BatchResult), args.Error(1)
}

func (m *MockAttendanceService) GetWeek(ctx context.Context, week domain.WeekKey) (*service.WeekReport, error) {
	args := m.Called(ctx, week)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WeekReport), args.Error(1)
}

func (m *MockAttendanceService) GetWeekWorkbook(ctx context.Context, week domain.WeekKey) ([]byte, error) {
	args := m.Called(ctx, week)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
