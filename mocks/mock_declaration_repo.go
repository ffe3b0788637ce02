package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"tributo/internal/domain"
)

// MockDeclarationRepo is a mock implementation of port.DeclarationRepository.
type MockDeclarationRepo struct {
	mock.Mock
}

func (m *MockDeclarationRepo) Create(ctx context.Context, decl *domain.Declaration) error {
	args := m.Called(ctx, decl)
	return args.Error(0)
}

func (m *MockDeclarationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Declaration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Declaration), args.Error(1)
}

func (m *MockDeclarationRepo) List(ctx context.Context, offset, limit int) ([]domain.Declaration, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Declaration), args.Int(1), args.Error(2)
}

func (m *MockDeclarationRepo) ListByTaxpayer(ctx context.Context, taxpayerID string, offset, limit int) ([]domain.Declaration, int, error) {
	args := m.Called(ctx, taxpayerID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Declaration), args.Int(1), args.Error(2)
}

func (m *MockDeclarationRepo) ListForExport(ctx context.Context, taxpayerID string) ([]domain.Declaration, error) {
	args := m.Called(ctx, taxpayerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Declaration), args.Error(1)
}

func (m *MockDeclarationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
