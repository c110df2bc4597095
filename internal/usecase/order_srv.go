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

type OrderService interface {
	Checkout(ctx context.Context, userID uuid.UUID, req *request.CheckoutRequest) (*response.OrderDetailResponse, error)
	GetUserOrders(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error)
	GetAllOrders(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error)
	GetOrderDetail(ctx context.Context, userID uuid.UUID, role, orderID string) (*response.OrderDetailResponse, error)
	CancelOrder(ctx context.Context, userID uuid.UUID, orderID string) error
	UpdateStatus(ctx context.Context, orderID string, req *request.UpdateOrderStatusRequest) error
}

type orderService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewOrderService(repo *repository.Repository, log *zap.Logger) OrderService {
	return &orderService{
		repo: repo,
		log:  log.With(zap.String("service", "order")),
	}
}

// Checkout turns the cart into a pending order. Unit prices are captured at
// checkout time; stock is decremented per line before the order is written
// and the cart is cleared last.
func (s *orderService) Checkout(ctx context.Context, userID uuid.UUID, req *request.CheckoutRequest) (*response.OrderDetailResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Checkout validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	cartItems, err := s.repo.Cart.FindByUser(ctx, userID)
	if err != nil {
		s.log.Error("Failed to load cart for checkout", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if len(cartItems) == 0 {
		return nil, ErrCartEmpty
	}

	now := time.Now()
	order := &entity.Order{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OrderNumber:     utils.GenerateOrderNumber(),
		UserID:          userID,
		Status:          entity.OrderStatusPending,
		ShippingAddress: req.ShippingAddress,
	}

	var orderItems []*entity.OrderItem
	for _, cartItem := range cartItems {
		product, err := s.repo.Product.FindByID(ctx, cartItem.ProductID)
		if err != nil {
			return nil, fmt.Errorf("find product: %w", err)
		}
		if product == nil {
			return nil, fmt.Errorf("product %s: %w", cartItem.ProductID.String(), ErrNotFound)
		}
		if product.Stock < cartItem.Quantity {
			return nil, fmt.Errorf("product %s: %w", product.Name, ErrInsufficientStock)
		}

		if err := s.repo.Product.DecrementStock(ctx, product.ID, cartItem.Quantity); err != nil {
			s.log.Warn("Stock decrement rejected",
				zap.Error(err),
				zap.String("product_id", product.ID.String()),
				zap.Int("quantity", cartItem.Quantity),
			)
			return nil, fmt.Errorf("product %s: %w", product.Name, ErrInsufficientStock)
		}

		orderItems = append(orderItems, &entity.OrderItem{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			OrderID:   order.ID,
			ProductID: product.ID,
			Quantity:  cartItem.Quantity,
			UnitPrice: product.Price,
		})
		order.TotalPrice += product.Price * float64(cartItem.Quantity)
	}

	if err := s.repo.Order.Create(ctx, order); err != nil {
		s.log.Error("Failed to create order", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := s.repo.Order.CreateItems(ctx, orderItems); err != nil {
		s.log.Error("Failed to create order items",
			zap.Error(err),
			zap.String("order_id", order.ID.String()),
		)
		return nil, fmt.Errorf("create order items: %w", err)
	}

	if err := s.repo.Cart.Clear(ctx, userID); err != nil {
		s.log.Warn("Failed to clear cart after checkout",
			zap.Error(err), zap.String("user_id", userID.String()))
		// Continue anyway; the order is already placed
	}

	s.log.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("user_id", userID.String()),
		zap.Float64("total", order.TotalPrice),
	)

	return s.toDetail(order, orderItems), nil
}

func (s *orderService) GetUserOrders(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error) {
	orders, err := s.repo.Order.FindByUser(ctx, userID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get user orders", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("get orders: %w", err)
	}

	total, err := s.repo.Order.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	responses := make([]response.OrderResponse, len(orders))
	for i, order := range orders {
		responses[i] = response.OrderToResponse(order)
	}

	return response.NewPaginatedResponse(responses, req.Page, req.PerPage, total), nil
}

func (s *orderService) GetAllOrders(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error) {
	orders, err := s.repo.Order.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get all orders", zap.Error(err))
		return nil, fmt.Errorf("get orders: %w", err)
	}

	total, err := s.repo.Order.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	responses := make([]response.OrderResponse, len(orders))
	for i, order := range orders {
		responses[i] = response.OrderToResponse(order)
	}

	return response.NewPaginatedResponse(responses, req.Page, req.PerPage, total), nil
}

func (s *orderService) GetOrderDetail(ctx context.Context, userID uuid.UUID, role, orderID string) (*response.OrderDetailResponse, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	// Customers only see their own orders; admin and delivery see all
	if role == entity.RoleCustomer && order.UserID != userID {
		return nil, fmt.Errorf("order belongs to another user: %w", ErrForbidden)
	}

	items, err := s.repo.Order.FindItemsByOrder(ctx, order.ID)
	if err != nil {
		s.log.Error("Failed to get order items", zap.Error(err), zap.String("order_id", orderID))
		return nil, fmt.Errorf("get order items: %w", err)
	}

	return s.toDetail(order, items), nil
}

// CancelOrder lets the owner cancel while the order is still pending
func (s *orderService) CancelOrder(ctx context.Context, userID uuid.UUID, orderID string) error {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return err
	}

	if order.UserID != userID {
		return fmt.Errorf("order belongs to another user: %w", ErrForbidden)
	}
	if order.Status != entity.OrderStatusPending {
		return fmt.Errorf("only pending orders can be cancelled: %w", ErrForbidden)
	}

	if err := s.repo.Order.UpdateStatus(ctx, order.ID, entity.OrderStatusCancelled); err != nil {
		s.log.Error("Failed to cancel order", zap.Error(err), zap.String("order_id", orderID))
		return fmt.Errorf("cancel order: %w", err)
	}

	s.log.Info("Order cancelled",
		zap.String("order_id", orderID),
		zap.String("user_id", userID.String()),
	)

	return nil
}

func (s *orderService) UpdateStatus(ctx context.Context, orderID string, req *request.UpdateOrderStatusRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update order status validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return err
	}

	if err := s.repo.Order.UpdateStatus(ctx, order.ID, entity.OrderStatus(req.Status)); err != nil {
		s.log.Error("Failed to update order status",
			zap.Error(err),
			zap.String("order_id", orderID),
			zap.String("status", req.Status),
		)
		return fmt.Errorf("update order status: %w", err)
	}

	s.log.Info("Order status updated",
		zap.String("order_id", orderID),
		zap.String("status", req.Status),
	)

	return nil
}

func (s *orderService) findOrder(ctx context.Context, orderID string) (*entity.Order, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, fmt.Errorf("invalid order id: %w", err)
	}

	order, err := s.repo.Order.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find order", zap.Error(err), zap.String("order_id", orderID))
		return nil, fmt.Errorf("find order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("order: %w", ErrNotFound)
	}

	return order, nil
}

func (s *orderService) toDetail(order *entity.Order, items []*entity.OrderItem) *response.OrderDetailResponse {
	detail := &response.OrderDetailResponse{
		OrderResponse: response.OrderToResponse(order),
		Items:         make([]response.OrderItemResponse, len(items)),
	}
	for i, item := range items {
		detail.Items[i] = response.OrderItemToResponse(item)
	}
	return detail
}
