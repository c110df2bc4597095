package response

import (
	"localmarket/internal/data/entity"
)

type CartItemResponse struct {
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductImage *string `json:"product_image,omitempty"`
	UnitPrice    float64 `json:"unit_price"`
	Quantity     int     `json:"quantity"`
	Subtotal     float64 `json:"subtotal"`
}

type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total float64            `json:"total"`
}

func CartItemToResponse(item *entity.CartItem, product *entity.Product) CartItemResponse {
	return CartItemResponse{
		ProductID:    item.ProductID.String(),
		ProductName:  product.Name,
		ProductImage: product.Image,
		UnitPrice:    product.Price,
		Quantity:     item.Quantity,
		Subtotal:     product.Price * float64(item.Quantity),
	}
}
