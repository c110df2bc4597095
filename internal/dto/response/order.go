package response

import (
	"time"

	"localmarket/internal/data/entity"
)

type OrderResponse struct {
	ID              string    `json:"id"`
	OrderNumber     string    `json:"order_number"`
	Status          string    `json:"status"`
	TotalPrice      float64   `json:"total_price"`
	ShippingAddress string    `json:"shipping_address"`
	CreatedAt       time.Time `json:"created_at"`
}

type OrderItemResponse struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

type OrderDetailResponse struct {
	OrderResponse
	Items []OrderItemResponse `json:"items"`
}

func OrderToResponse(order *entity.Order) OrderResponse {
	return OrderResponse{
		ID:              order.ID.String(),
		OrderNumber:     order.OrderNumber,
		Status:          string(order.Status),
		TotalPrice:      order.TotalPrice,
		ShippingAddress: order.ShippingAddress,
		CreatedAt:       order.CreatedAt,
	}
}

func OrderItemToResponse(item *entity.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ProductID: item.ProductID.String(),
		Quantity:  item.Quantity,
		UnitPrice: item.UnitPrice,
		Subtotal:  item.UnitPrice * float64(item.Quantity),
	}
}
