package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rollcall/internal/domain"
)

// MockDocumentReader is a mock implementation of port.DocumentReader.
type MockDocumentReader struct {
	mock.Mock
}

func (m *MockDocumentReader) Words(ctx context.Context, doc domain.Document) ([]domain.Token, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Token), args.Error(1)
}
