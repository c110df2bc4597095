package repository

import (
	"context"
	"fmt"

	"localmarket/internal/data/entity"
	"localmarket/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BrandRepository interface {
	Create(ctx context.Context, brand *entity.Brand) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Brand, error)
	FindAll(ctx context.Context) ([]*entity.Brand, error)
}

type brandRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBrandRepository(db database.PgxIface, log *zap.Logger) BrandRepository {
	return &brandRepository{
		db:  db,
		log: log.With(zap.String("repository", "brand")),
	}
}

func (r *brandRepository) Create(ctx context.Context, brand *entity.Brand) error {
	query := `
		INSERT INTO brands (id, name, logo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		brand.ID,
		brand.Name,
		brand.Logo,
		brand.CreatedAt,
		brand.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create brand",
			zap.Error(err),
			zap.String("name", brand.Name),
		)
		return fmt.Errorf("create brand %s: %w", brand.Name, err)
	}

	return nil
}

func (r *brandRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Brand, error) {
	query := `SELECT id, name, logo, created_at, updated_at FROM brands WHERE id = $1`

	var brand entity.Brand
	err := r.db.QueryRow(ctx, query, id).Scan(
		&brand.ID,
		&brand.Name,
		&brand.Logo,
		&brand.CreatedAt,
		&brand.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find brand by ID",
			zap.Error(err),
			zap.String("brand_id", id.String()),
		)
		return nil, fmt.Errorf("find brand by ID %s: %w", id.String(), err)
	}

	return &brand, nil
}

func (r *brandRepository) FindAll(ctx context.Context) ([]*entity.Brand, error) {
	query := `SELECT id, name, logo, created_at, updated_at FROM brands ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to get brands", zap.Error(err))
		return nil, fmt.Errorf("find all brands: %w", err)
	}
	defer rows.Close()

	var brands []*entity.Brand
	for rows.Next() {
		var brand entity.Brand
		err := rows.Scan(
			&brand.ID,
			&brand.Name,
			&brand.Logo,
			&brand.CreatedAt,
			&brand.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan brand row: %w", err)
		}
		brands = append(brands, &brand)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate brand rows: %w", err)
	}

	return brands, nil
}
