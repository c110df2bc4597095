package entity

import (
	"github.com/google/uuid"
)

const (
	RoleCustomer = "customer"
	RoleVendor   = "vendor"
	RoleDelivery = "delivery"
	RoleAdmin    = "admin"
)

type Role struct {
	ID   uuid.UUID `db:"id"`
	Name string    `db:"name"`
}
