package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tributo/internal/domain"
)

// MockTextExtractor is a mock implementation of port.TextExtractor.
type MockTextExtractor struct {
	mock.Mock
}

func (m *MockTextExtractor) Extract(ctx context.Context, raw []byte) (*domain.ExtractedText, error) {
	args := m.Called(ctx, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractedText), args.Error(1)
}

// MockDocumentInspector is a mock implementation of port.DocumentInspector.
type MockDocumentInspector struct {
	mock.Mock
}

func (m *MockDocumentInspector) Inspect(raw []byte) (*domain.DocumentProfile, error) {
	args := m.Called(raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentProfile), args.Error(1)
}
