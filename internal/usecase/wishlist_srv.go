package usecase

import (
	"context"
	"fmt"
	"time"

	"localmarket/internal/data/entity"
	"localmarket/internal/data/repository"
	"localmarket/internal/dto/request"
	"localmarket/internal/dto/response"
	"localmarket/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WishlistService interface {
	AddItem(ctx context.Context, userID uuid.UUID, req *request.AddWishlistItemRequest) error
	GetWishlist(ctx context.Context, userID uuid.UUID) ([]response.WishlistItemResponse, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, productID string) error
}

type wishlistService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewWishlistService(repo *repository.Repository, log *zap.Logger) WishlistService {
	return &wishlistService{
		repo: repo,
		log:  log.With(zap.String("service", "wishlist")),
	}
}

func (s *wishlistService) AddItem(ctx context.Context, userID uuid.UUID, req *request.AddWishlistItemRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Add wishlist item validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return fmt.Errorf("invalid product id: %w", err)
	}

	product, err := s.repo.Product.FindByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("find product: %w", err)
	}
	if product == nil {
		return fmt.Errorf("product: %w", ErrNotFound)
	}

	item := &entity.WishlistItem{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:    userID,
		ProductID: productID,
	}

	if err := s.repo.Wishlist.Add(ctx, item); err != nil {
		s.log.Error("Failed to add wishlist item",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("product_id", req.ProductID),
		)
		return fmt.Errorf("add wishlist item: %w", err)
	}

	return nil
}

func (s *wishlistService) GetWishlist(ctx context.Context, userID uuid.UUID) ([]response.WishlistItemResponse, error) {
	items, err := s.repo.Wishlist.FindByUser(ctx, userID)
	if err != nil {
		s.log.Error("Failed to get wishlist", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("get wishlist: %w", err)
	}

	responses := []response.WishlistItemResponse{}
	for _, item := range items {
		product, err := s.repo.Product.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("find wishlist product: %w", err)
		}
		if product == nil {
			continue
		}
		responses = append(responses, response.WishlistItemToResponse(item, product))
	}

	return responses, nil
}

func (s *wishlistService) RemoveItem(ctx context.Context, userID uuid.UUID, productID string) error {
	id, err := uuid.Parse(productID)
	if err != nil {
		return fmt.Errorf("invalid product id: %w", err)
	}

	if err := s.repo.Wishlist.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("wishlist item: %w", ErrNotFound)
	}

	return nil
}
