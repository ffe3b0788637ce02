package port

import (
	"context"

	"github.com/google/uuid"

	"tributo/internal/domain"
)

// DeclarationRepository persists archived declaration snapshots.
// Deleted declarations are excluded from every read.
type DeclarationRepository interface {
	Create(ctx context.Context, decl *domain.Declaration) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Declaration, error)
	List(ctx context.Context, offset, limit int) ([]domain.Declaration, int, error)
	ListByTaxpayer(ctx context.Context, taxpayerID string, offset, limit int) ([]domain.Declaration, int, error)
	ListForExport(ctx context.Context, taxpayerID string) ([]domain.Declaration, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
