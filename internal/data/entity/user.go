package entity

import (
	"github.com/google/uuid"
)

type User struct {
	Base
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	Mobile       string    `db:"mobile"`
	Address      string    `db:"address"`
	PasswordHash string    `db:"password"`
	RoleID       uuid.UUID `db:"role_id"`

	// RoleName is populated by queries joining the roles table
	RoleName string `db:"-"`
}
