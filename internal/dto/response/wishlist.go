package response

import (
	"time"

	"localmarket/internal/data/entity"
)

type WishlistItemResponse struct {
	ProductID    string    `json:"product_id"`
	ProductName  string    `json:"product_name"`
	ProductImage *string   `json:"product_image,omitempty"`
	Price        float64   `json:"price"`
	InStock      bool      `json:"in_stock"`
	AddedAt      time.Time `json:"added_at"`
}

func WishlistItemToResponse(item *entity.WishlistItem, product *entity.Product) WishlistItemResponse {
	return WishlistItemResponse{
		ProductID:    item.ProductID.String(),
		ProductName:  product.Name,
		ProductImage: product.Image,
		Price:        product.Price,
		InStock:      product.Stock > 0,
		AddedAt:      item.CreatedAt,
	}
}
