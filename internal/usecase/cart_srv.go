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

type CartService interface {
	AddItem(ctx context.Context, userID uuid.UUID, req *request.AddCartItemRequest) error
	GetCart(ctx context.Context, userID uuid.UUID) (*response.CartResponse, error)
	UpdateItem(ctx context.Context, userID uuid.UUID, productID string, req *request.UpdateCartItemRequest) error
	RemoveItem(ctx context.Context, userID uuid.UUID, productID string) error
}

type cartService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCartService(repo *repository.Repository, log *zap.Logger) CartService {
	return &cartService{
		repo: repo,
		log:  log.With(zap.String("service", "cart")),
	}
}

func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, req *request.AddCartItemRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Add cart item validation failed", zap.Any("errors", errs))
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

	now := time.Now()
	item := &entity.CartItem{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:    userID,
		ProductID: productID,
		Quantity:  req.Quantity,
	}

	if err := s.repo.Cart.Upsert(ctx, item); err != nil {
		s.log.Error("Failed to add cart item",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("product_id", req.ProductID),
		)
		return fmt.Errorf("add cart item: %w", err)
	}

	s.log.Info("Cart item added",
		zap.String("user_id", userID.String()),
		zap.String("product_id", req.ProductID),
		zap.Int("quantity", req.Quantity),
	)

	return nil
}

func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*response.CartResponse, error) {
	items, err := s.repo.Cart.FindByUser(ctx, userID)
	if err != nil {
		s.log.Error("Failed to get cart", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("get cart: %w", err)
	}

	cart := &response.CartResponse{Items: []response.CartItemResponse{}}
	for _, item := range items {
		product, err := s.repo.Product.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("find cart product: %w", err)
		}
		if product == nil {
			// Product was deleted after being carted; skip the row
			continue
		}

		line := response.CartItemToResponse(item, product)
		cart.Items = append(cart.Items, line)
		cart.Total += line.Subtotal
	}

	return cart, nil
}

func (s *cartService) UpdateItem(ctx context.Context, userID uuid.UUID, productID string, req *request.UpdateCartItemRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update cart item validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(productID)
	if err != nil {
		return fmt.Errorf("invalid product id: %w", err)
	}

	if err := s.repo.Cart.UpdateQuantity(ctx, userID, id, req.Quantity); err != nil {
		return fmt.Errorf("cart item: %w", ErrNotFound)
	}

	return nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID uuid.UUID, productID string) error {
	id, err := uuid.Parse(productID)
	if err != nil {
		return fmt.Errorf("invalid product id: %w", err)
	}

	if err := s.repo.Cart.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("cart item: %w", ErrNotFound)
	}

	return nil
}
