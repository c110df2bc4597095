package request

type CategoryRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=100"`
	Image    *string `json:"image,omitempty"`
	ParentID *string `json:"parent_id,omitempty" validate:"omitempty,uuid"`
}

type BrandRequest struct {
	Name string  `json:"name" validate:"required,min=2,max=100"`
	Logo *string `json:"logo,omitempty"`
}

type ProductRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=200"`
	Description *string `json:"description,omitempty"`
	CategoryID  string  `json:"category_id" validate:"required,uuid"`
	BrandID     *string `json:"brand_id,omitempty" validate:"omitempty,uuid"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Stock       int     `json:"stock" validate:"min=0"`
	Image       *string `json:"image,omitempty"`
}

// ProductListRequest carries the list filters from query parameters
type ProductListRequest struct {
	PaginatedRequest
	CategoryID *string
	BrandID    *string
	Search     *string
}
