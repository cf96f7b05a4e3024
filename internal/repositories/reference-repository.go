package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"licensing-system/internal/entities"
	apperrors "licensing-system/pkg/errors"
)

// ReferenceRepositoryInterface reads the seeded provinces and fee types.
type ReferenceRepositoryInterface interface {
	GetProvinces(ctx context.Context) ([]entities.Province, error)
	FindProvince(ctx context.Context, id int) (*entities.Province, error)
	GetFeeTypes(ctx context.Context, onlyActive bool) ([]entities.FeeType, error)
}

type ReferenceRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewReferenceRepository(storage *pgxpool.Pool, logger *zap.Logger) ReferenceRepositoryInterface {
	return &ReferenceRepository{storage: storage, logger: logger}
}

func (r *ReferenceRepository) GetProvinces(ctx context.Context) ([]entities.Province, error) {
	rows, err := r.storage.Query(ctx, `SELECT id, name, code FROM provinces ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query provinces: %w", err)
	}
	defer rows.Close()

	provinces := make([]entities.Province, 0, 16)
	for rows.Next() {
		var p entities.Province
		if err := rows.Scan(&p.ID, &p.Name, &p.Code); err != nil {
			return nil, fmt.Errorf("failed to scan province: %w", err)
		}
		provinces = append(provinces, p)
	}
	return provinces, rows.Err()
}

func (r *ReferenceRepository) FindProvince(ctx context.Context, id int) (*entities.Province, error) {
	var p entities.Province
	err := r.storage.QueryRow(ctx, `SELECT id, name, code FROM provinces WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Code)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find province: %w", err)
	}
	return &p, nil
}

func (r *ReferenceRepository) GetFeeTypes(ctx context.Context, onlyActive bool) ([]entities.FeeType, error) {
	query := `SELECT id, name, code, amount, description, is_active FROM fee_types`
	if onlyActive {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY id`

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query fee types: %w", err)
	}
	defer rows.Close()

	feeTypes := make([]entities.FeeType, 0)
	for rows.Next() {
		var f entities.FeeType
		if err := rows.Scan(&f.ID, &f.Name, &f.Code, &f.Amount, &f.Description, &f.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan fee type: %w", err)
		}
		feeTypes = append(feeTypes, f)
	}
	return feeTypes, rows.Err()
}
