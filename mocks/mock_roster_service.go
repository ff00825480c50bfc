package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rollcall/internal/domain"
)

// MockRosterService is a mock implementation of service.RosterService.
type MockRosterService struct {
	mock.Mock
}

func (m *MockRosterService) List(ctx context.Context) ([]domain.PersonKey, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PersonKey), args.Error(1)
}

func (m *MockRosterService) Add(ctx context.Context, name string) (domain.PersonKey, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(domain.PersonKey), args.Error(1)
}

func (m *MockRosterService) Remove(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockRosterService) Replace(ctx context.Context, names []string) ([]domain.PersonKey, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PersonKey), args.Error(1)
}
