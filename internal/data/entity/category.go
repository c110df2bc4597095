package entity

import (
	"github.com/google/uuid"
)

// Category is a catalog node; subcategories reference their parent
type Category struct {
	BaseNoDelete
	Name     string     `db:"name"`
	Image    *string    `db:"image"`
	ParentID *uuid.UUID `db:"parent_id"`
}
