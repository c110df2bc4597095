package response

import (
	"time"

	"localmarket/internal/data/entity"
)

type CategoryResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Image    *string `json:"image,omitempty"`
	ParentID *string `json:"parent_id,omitempty"`
}

type BrandResponse struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Logo *string `json:"logo,omitempty"`
}

type ProductResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CategoryID  string    `json:"category_id"`
	BrandID     *string   `json:"brand_id,omitempty"`
	VendorID    string    `json:"vendor_id"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Image       *string   `json:"image,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func CategoryToResponse(category *entity.Category) CategoryResponse {
	resp := CategoryResponse{
		ID:    category.ID.String(),
		Name:  category.Name,
		Image: category.Image,
	}

	if category.ParentID != nil {
		parentID := category.ParentID.String()
		resp.ParentID = &parentID
	}

	return resp
}

func BrandToResponse(brand *entity.Brand) BrandResponse {
	return BrandResponse{
		ID:   brand.ID.String(),
		Name: brand.Name,
		Logo: brand.Logo,
	}
}

func ProductToResponse(product *entity.Product) ProductResponse {
	resp := ProductResponse{
		ID:          product.ID.String(),
		Name:        product.Name,
		Description: product.Description,
		CategoryID:  product.CategoryID.String(),
		VendorID:    product.VendorID.String(),
		Price:       product.Price,
		Stock:       product.Stock,
		Image:       product.Image,
		CreatedAt:   product.CreatedAt,
	}

	if product.BrandID != nil {
		brandID := product.BrandID.String()
		resp.BrandID = &brandID
	}

	return resp
}
