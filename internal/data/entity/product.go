package entity

import (
	"github.com/google/uuid"
)

type Product struct {
	Base
	VendorID    uuid.UUID  `db:"vendor_id"`
	CategoryID  uuid.UUID  `db:"category_id"`
	BrandID     *uuid.UUID `db:"brand_id"`
	Name        string     `db:"name"`
	Description *string    `db:"description"`
	Price       float64    `db:"price"`
	Stock       int        `db:"stock"`
	Image       *string    `db:"image"`
}
