package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"localmarket/internal/data/entity"
	"localmarket/internal/data/repository"
	"localmarket/internal/dto/request"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ---------- fakes ----------

type fakeProductRepo struct {
	products map[uuid.UUID]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
}

func (f *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	copied := *product
	return &copied, nil
}

func (f *fakeProductRepo) FindAll(ctx context.Context, limit, offset int, filter repository.ProductFilter) ([]*entity.Product, error) {
	var all []*entity.Product
	for _, p := range f.products {
		all = append(all, p)
	}
	return all, nil
}

func (f *fakeProductRepo) CountAll(ctx context.Context, filter repository.ProductFilter) (int64, error) {
	return int64(len(f.products)), nil
}

func (f *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	product, ok := f.products[id]
	if !ok || product.Stock < quantity {
		return errors.New("insufficient stock")
	}
	product.Stock -= quantity
	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.products, id)
	return nil
}

type fakeCartRepo struct {
	items map[uuid.UUID][]*entity.CartItem
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{items: make(map[uuid.UUID][]*entity.CartItem)}
}

func (f *fakeCartRepo) Upsert(ctx context.Context, item *entity.CartItem) error {
	for _, existing := range f.items[item.UserID] {
		if existing.ProductID == item.ProductID {
			existing.Quantity += item.Quantity
			return nil
		}
	}
	f.items[item.UserID] = append(f.items[item.UserID], item)
	return nil
}

func (f *fakeCartRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CartItem, error) {
	return f.items[userID], nil
}

func (f *fakeCartRepo) UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	for _, item := range f.items[userID] {
		if item.ProductID == productID {
			item.Quantity = quantity
			return nil
		}
	}
	return errors.New("cart item not found")
}

func (f *fakeCartRepo) Delete(ctx context.Context, userID, productID uuid.UUID) error {
	items := f.items[userID]
	for i, item := range items {
		if item.ProductID == productID {
			f.items[userID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return errors.New("cart item not found")
}

func (f *fakeCartRepo) Clear(ctx context.Context, userID uuid.UUID) error {
	delete(f.items, userID)
	return nil
}

type fakeOrderRepo struct {
	orders map[uuid.UUID]*entity.Order
	items  map[uuid.UUID][]*entity.OrderItem
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders: make(map[uuid.UUID]*entity.Order),
		items:  make(map[uuid.UUID][]*entity.OrderItem),
	}
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	copied := *order
	f.orders[order.ID] = &copied
	return nil
}

func (f *fakeOrderRepo) CreateItems(ctx context.Context, items []*entity.OrderItem) error {
	for _, item := range items {
		f.items[item.OrderID] = append(f.items[item.OrderID], item)
	}
	return nil
}

func (f *fakeOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrderRepo) FindItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderItem, error) {
	return f.items[orderID], nil
}

func (f *fakeOrderRepo) FindByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Order, error) {
	var result []*entity.Order
	for _, order := range f.orders {
		if order.UserID == userID {
			result = append(result, order)
		}
	}
	return result, nil
}

func (f *fakeOrderRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	orders, _ := f.FindByUser(ctx, userID, 0, 0)
	return int64(len(orders)), nil
}

func (f *fakeOrderRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Order, error) {
	var all []*entity.Order
	for _, order := range f.orders {
		all = append(all, order)
	}
	return all, nil
}

func (f *fakeOrderRepo) CountAll(ctx context.Context) (int64, error) {
	return int64(len(f.orders)), nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	order, ok := f.orders[id]
	if !ok {
		return errors.New("order not found")
	}
	order.Status = status
	return nil
}

// ---------- fixtures ----------

type orderFixture struct {
	service  OrderService
	carts    *fakeCartRepo
	products *fakeProductRepo
	orders   *fakeOrderRepo
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	carts := newFakeCartRepo()
	products := newFakeProductRepo()
	orders := newFakeOrderRepo()

	repo := &repository.Repository{
		Cart:    carts,
		Product: products,
		Order:   orders,
	}

	return &orderFixture{
		service:  NewOrderService(repo, zap.NewNop()),
		carts:    carts,
		products: products,
		orders:   orders,
	}
}

func (f *orderFixture) seedProduct(price float64, stock int) *entity.Product {
	product := &entity.Product{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		VendorID: uuid.New(),
		Name:     "Basmati Rice 5kg",
		Price:    price,
		Stock:    stock,
	}
	f.products.products[product.ID] = product
	return product
}

func (f *orderFixture) seedCart(userID uuid.UUID, productID uuid.UUID, quantity int) {
	f.carts.items[userID] = append(f.carts.items[userID], &entity.CartItem{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		UserID:       userID,
		ProductID:    productID,
		Quantity:     quantity,
	})
}

var checkout = &request.CheckoutRequest{ShippingAddress: "12 Market Street"}

// ---------- Checkout ----------

func TestCheckoutEmptyCart(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.service.Checkout(context.Background(), uuid.New(), checkout)
	if !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("error = %v, want ErrCartEmpty", err)
	}
}

func TestCheckoutCapturesPricesAndClearsCart(t *testing.T) {
	f := newOrderFixture(t)
	userID := uuid.New()

	rice := f.seedProduct(12.50, 10)
	oil := f.seedProduct(8.00, 4)
	f.seedCart(userID, rice.ID, 2)
	f.seedCart(userID, oil.ID, 1)

	detail, err := f.service.Checkout(context.Background(), userID, checkout)
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	if detail.Status != string(entity.OrderStatusPending) {
		t.Errorf("status = %s, want pending", detail.Status)
	}
	if want := 2*12.50 + 8.00; detail.TotalPrice != want {
		t.Errorf("total = %v, want %v", detail.TotalPrice, want)
	}
	if len(detail.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(detail.Items))
	}

	// Stock decremented and cart emptied
	if f.products.products[rice.ID].Stock != 8 {
		t.Errorf("rice stock = %d, want 8", f.products.products[rice.ID].Stock)
	}
	if len(f.carts.items[userID]) != 0 {
		t.Error("cart should be empty after checkout")
	}

	// A later price change must not affect the captured unit price
	f.products.products[rice.ID].Price = 99.0
	orderID := uuid.MustParse(detail.ID)
	items, _ := f.orders.FindItemsByOrder(context.Background(), orderID)
	for _, item := range items {
		if item.ProductID == rice.ID && item.UnitPrice != 12.50 {
			t.Errorf("captured unit price = %v, want 12.50", item.UnitPrice)
		}
	}
}

func TestCheckoutInsufficientStock(t *testing.T) {
	f := newOrderFixture(t)
	userID := uuid.New()

	rice := f.seedProduct(12.50, 1)
	f.seedCart(userID, rice.ID, 3)

	_, err := f.service.Checkout(context.Background(), userID, checkout)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("error = %v, want ErrInsufficientStock", err)
	}
	if len(f.orders.orders) != 0 {
		t.Error("no order should be created when stock is short")
	}
}

// ---------- Cancel and status ----------

func placeOrder(t *testing.T, f *orderFixture, userID uuid.UUID) string {
	t.Helper()

	rice := f.seedProduct(5.00, 10)
	f.seedCart(userID, rice.ID, 1)

	detail, err := f.service.Checkout(context.Background(), userID, checkout)
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	return detail.ID
}

func TestCancelPendingOrder(t *testing.T) {
	f := newOrderFixture(t)
	userID := uuid.New()
	orderID := placeOrder(t, f, userID)

	if err := f.service.CancelOrder(context.Background(), userID, orderID); err != nil {
		t.Fatalf("CancelOrder: %v", err)
	}

	order := f.orders.orders[uuid.MustParse(orderID)]
	if order.Status != entity.OrderStatusCancelled {
		t.Errorf("status = %s, want cancelled", order.Status)
	}
}

func TestCancelForeignOrder(t *testing.T) {
	f := newOrderFixture(t)
	orderID := placeOrder(t, f, uuid.New())

	err := f.service.CancelOrder(context.Background(), uuid.New(), orderID)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("error = %v, want ErrForbidden", err)
	}
}

func TestCancelShippedOrder(t *testing.T) {
	f := newOrderFixture(t)
	userID := uuid.New()
	orderID := placeOrder(t, f, userID)

	f.orders.orders[uuid.MustParse(orderID)].Status = entity.OrderStatusShipped

	err := f.service.CancelOrder(context.Background(), userID, orderID)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("error = %v, want ErrForbidden", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	f := newOrderFixture(t)
	orderID := placeOrder(t, f, uuid.New())

	err := f.service.UpdateStatus(context.Background(), orderID, &request.UpdateOrderStatusRequest{Status: "shipped"})
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	if got := f.orders.orders[uuid.MustParse(orderID)].Status; got != entity.OrderStatusShipped {
		t.Errorf("status = %s, want shipped", got)
	}
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	f := newOrderFixture(t)
	orderID := placeOrder(t, f, uuid.New())

	err := f.service.UpdateStatus(context.Background(), orderID, &request.UpdateOrderStatusRequest{Status: "teleported"})
	if err == nil {
		t.Fatal("expected validation error for unknown status")
	}
}

// ---------- Detail visibility ----------

func TestOrderDetailVisibility(t *testing.T) {
	f := newOrderFixture(t)
	owner := uuid.New()
	orderID := placeOrder(t, f, owner)
	ctx := context.Background()

	if _, err := f.service.GetOrderDetail(ctx, owner, entity.RoleCustomer, orderID); err != nil {
		t.Errorf("owner should see own order: %v", err)
	}

	_, err := f.service.GetOrderDetail(ctx, uuid.New(), entity.RoleCustomer, orderID)
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("foreign customer error = %v, want ErrForbidden", err)
	}

	if _, err := f.service.GetOrderDetail(ctx, uuid.New(), entity.RoleAdmin, orderID); err != nil {
		t.Errorf("admin should see any order: %v", err)
	}
}
