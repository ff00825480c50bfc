package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockReportStore is a mock implementation of port.ReportStore.
type MockReportStore struct {
	mock.Mock
}

func (m *MockReportStore) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockReportStore) Put(ctx context.Context, key string, data []byte) error {
	args := m.Called(ctx, key, data)
	return args.Error(0)
}
