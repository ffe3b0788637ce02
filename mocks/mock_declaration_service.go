package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"tributo/internal/domain"
	"tributo/internal/service"
)

// MockDeclarationService is a mock implementation of service.DeclarationService.
type MockDeclarationService struct {
	mock.Mock
}

func (m *MockDeclarationService) Parse(ctx context.Context, input service.ParseInput) (*service.ParseResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ParseResult), args.Error(1)
}

func (m *MockDeclarationService) MaxUploadBytes() int64 {
	args := m.Called()
	return args.Get(0).(int64)
}

func (m *MockDeclarationService) ArchiveEnabled() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockDeclarationService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Declaration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Declaration), args.Error(1)
}

func (m *MockDeclarationService) List(ctx context.Context, taxpayerID string, offset, limit int) ([]domain.Declaration, int, error) {
	args := m.Called(ctx, taxpayerID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Declaration), args.Int(1), args.Error(2)
}

func (m *MockDeclarationService) GetDownloadURL(ctx context.Context, id uuid.UUID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockDeclarationService) Reparse(ctx context.Context, id uuid.UUID) (*domain.ParseOutcome, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParseOutcome), args.Error(1)
}

func (m *MockDeclarationService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDeclarationService) ExportCSV(ctx context.Context, taxpayerID string, w io.Writer) error {
	args := m.Called(ctx, taxpayerID, w)
	return args.Error(0)
}

func (m *MockDeclarationService) ExportXLSX(ctx context.Context, id uuid.UUID) ([]byte, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
