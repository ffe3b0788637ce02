package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"tributo/internal/domain"
	"tributo/internal/port"
)

type declarationRepo struct {
	db *sqlx.DB
}

// NewDeclarationRepo creates a new PostgreSQL-backed DeclarationRepository.
func NewDeclarationRepo(db *sqlx.DB) port.DeclarationRepository {
	return &declarationRepo{db: db}
}

func (r *declarationRepo) Create(ctx context.Context, decl *domain.Declaration) error {
	now := time.Now().UTC()
	decl.CreatedAt = now
	decl.UpdatedAt = now
	if decl.Status == "" {
		decl.Status = domain.DeclarationStatusActive
	}

	query := `INSERT INTO f29_declarations
		(id, taxpayer_id, period, filing_number, legal_name, codes,
		 net_credit, net_purchases, determined_tax, total_payable, gross_margin,
		 confidence, method, original_name, file_size, s3_bucket, s3_key,
		 status, created_at, updated_at)
		VALUES (:id, :taxpayer_id, :period, :filing_number, :legal_name, :codes,
		 :net_credit, :net_purchases, :determined_tax, :total_payable, :gross_margin,
		 :confidence, :method, :original_name, :file_size, :s3_bucket, :s3_key,
		 :status, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, decl); err != nil {
		return fmt.Errorf("declarationRepo.Create: %w", err)
	}
	return nil
}

func (r *declarationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Declaration, error) {
	var decl domain.Declaration
	err := r.db.GetContext(ctx, &decl,
		"SELECT * FROM f29_declarations WHERE id = $1 AND status != $2",
		id, domain.DeclarationStatusDeleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("declarationRepo.GetByID: %w", err)
	}
	return &decl, nil
}

func (r *declarationRepo) List(ctx context.Context, offset, limit int) ([]domain.Declaration, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM f29_declarations WHERE status != $1",
		domain.DeclarationStatusDeleted)
	if err != nil {
		return nil, 0, fmt.Errorf("declarationRepo.List count: %w", err)
	}

	var decls []domain.Declaration
	err = r.db.SelectContext(ctx, &decls,
		`SELECT * FROM f29_declarations
		 WHERE status != $1
		 ORDER BY period DESC, created_at DESC LIMIT $2 OFFSET $3`,
		domain.DeclarationStatusDeleted, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("declarationRepo.List: %w", err)
	}
	return decls, total, nil
}

func (r *declarationRepo) ListByTaxpayer(ctx context.Context, taxpayerID string, offset, limit int) ([]domain.Declaration, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM f29_declarations WHERE taxpayer_id = $1 AND status != $2",
		taxpayerID, domain.DeclarationStatusDeleted)
	if err != nil {
		return nil, 0, fmt.Errorf("declarationRepo.ListByTaxpayer count: %w", err)
	}

	var decls []domain.Declaration
	err = r.db.SelectContext(ctx, &decls,
		`SELECT * FROM f29_declarations
		 WHERE taxpayer_id = $1 AND status != $2
		 ORDER BY period DESC, created_at DESC LIMIT $3 OFFSET $4`,
		taxpayerID, domain.DeclarationStatusDeleted, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("declarationRepo.ListByTaxpayer: %w", err)
	}
	return decls, total, nil
}

func (r *declarationRepo) ListForExport(ctx context.Context, taxpayerID string) ([]domain.Declaration, error) {
	query := "SELECT * FROM f29_declarations WHERE status != $1"
	args := []interface{}{domain.DeclarationStatusDeleted}
	if taxpayerID != "" {
		query += " AND taxpayer_id = $2"
		args = append(args, taxpayerID)
	}
	query += " ORDER BY taxpayer_id, period"

	var decls []domain.Declaration
	if err := r.db.SelectContext(ctx, &decls, query, args...); err != nil {
		return nil, fmt.Errorf("declarationRepo.ListForExport: %w", err)
	}
	return decls, nil
}

func (r *declarationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE f29_declarations SET status = $1, updated_at = $2 WHERE id = $3 AND status != $1",
		domain.DeclarationStatusDeleted, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("declarationRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
