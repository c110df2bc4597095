package request

type AddWishlistItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
}
