package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rollcall/internal/domain"
)

// MockRosterRepository is a mock implementation of port.RosterRepository.
type MockRosterRepository struct {
	mock.Mock
}

func (m *MockRosterRepository) Load(ctx context.Context) (domain.Roster, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Roster), args.Error(1)
}

func (m *MockRosterRepository) Save(ctx context.Context, roster domain.Roster) error {
	args := m.Called(ctx, roster)
	return args.Error(0)
}
