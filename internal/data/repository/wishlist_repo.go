package repository

import (
	"context"
	"fmt"

	"localmarket/internal/data/entity"
	"localmarket/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WishlistRepository interface {
	Add(ctx context.Context, item *entity.WishlistItem) error
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.WishlistItem, error)
	Delete(ctx context.Context, userID, productID uuid.UUID) error
}

type wishlistRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewWishlistRepository(db database.PgxIface, log *zap.Logger) WishlistRepository {
	return &wishlistRepository{
		db:  db,
		log: log.With(zap.String("repository", "wishlist")),
	}
}

// Add is idempotent: adding an already-wished product is a no-op
func (r *wishlistRepository) Add(ctx context.Context, item *entity.WishlistItem) error {
	query := `
		INSERT INTO wishlist_items (id, user_id, product_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, product_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query,
		item.ID,
		item.UserID,
		item.ProductID,
		item.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to add wishlist item",
			zap.Error(err),
			zap.String("user_id", item.UserID.String()),
			zap.String("product_id", item.ProductID.String()),
		)
		return fmt.Errorf("add wishlist item: %w", err)
	}

	return nil
}

func (r *wishlistRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.WishlistItem, error) {
	query := `
		SELECT id, user_id, product_id, created_at
		FROM wishlist_items
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to get wishlist",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find wishlist for %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var items []*entity.WishlistItem
	for rows.Next() {
		var item entity.WishlistItem
		err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.ProductID,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan wishlist row: %w", err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wishlist rows: %w", err)
	}

	return items, nil
}

func (r *wishlistRepository) Delete(ctx context.Context, userID, productID uuid.UUID) error {
	query := `DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`

	result, err := r.db.Exec(ctx, query, userID, productID)
	if err != nil {
		r.log.Error("Failed to delete wishlist item",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("product_id", productID.String()),
		)
		return fmt.Errorf("delete wishlist item: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("wishlist item not found")
	}

	return nil
}
