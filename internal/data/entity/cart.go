package entity

import (
	"github.com/google/uuid"
)

// CartItem is unique per (user, product); adding an existing product
// increases the quantity instead of creating a second row
type CartItem struct {
	BaseNoDelete
	UserID    uuid.UUID `db:"user_id"`
	ProductID uuid.UUID `db:"product_id"`
	Quantity  int       `db:"quantity"`
}
