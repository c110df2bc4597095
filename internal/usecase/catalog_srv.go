package usecase

import (
	"context"
	"fmt"
	"time"

	"localmarket/internal/data/entity"
	"localmarket/internal/data/repository"
	"localmarket/internal/dto/request"
	"localmarket/internal/dto/response"
	"localmarket/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CatalogService interface {
	GetCategories(ctx context.Context) ([]response.CategoryResponse, error)
	GetSubcategories(ctx context.Context, categoryID string) ([]response.CategoryResponse, error)
	CreateCategory(ctx context.Context, req *request.CategoryRequest) (*response.CategoryResponse, error)
	GetBrands(ctx context.Context) ([]response.BrandResponse, error)
	CreateBrand(ctx context.Context, req *request.BrandRequest) (*response.BrandResponse, error)
	GetProducts(ctx context.Context, req *request.ProductListRequest) (*response.PaginatedResponse[response.ProductResponse], error)
	GetProductByID(ctx context.Context, productID string) (*response.ProductResponse, error)
	CreateProduct(ctx context.Context, vendorID string, req *request.ProductRequest) (*response.ProductResponse, error)
	UpdateProduct(ctx context.Context, vendorID, role, productID string, req *request.ProductRequest) (*response.ProductResponse, error)
	DeleteProduct(ctx context.Context, vendorID, role, productID string) error
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) GetCategories(ctx context.Context) ([]response.CategoryResponse, error) {
	categories, err := s.repo.Category.FindRoot(ctx)
	if err != nil {
		s.log.Error("Failed to get categories", zap.Error(err))
		return nil, fmt.Errorf("get categories: %w", err)
	}

	responses := make([]response.CategoryResponse, len(categories))
	for i, category := range categories {
		responses[i] = response.CategoryToResponse(category)
	}

	return responses, nil
}

func (s *catalogService) GetSubcategories(ctx context.Context, categoryID string) ([]response.CategoryResponse, error) {
	id, err := uuid.Parse(categoryID)
	if err != nil {
		return nil, fmt.Errorf("invalid category id: %w", err)
	}

	parent, err := s.repo.Category.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find category", zap.Error(err), zap.String("category_id", categoryID))
		return nil, fmt.Errorf("find category: %w", err)
	}
	if parent == nil {
		return nil, fmt.Errorf("category: %w", ErrNotFound)
	}

	children, err := s.repo.Category.FindChildren(ctx, id)
	if err != nil {
		s.log.Error("Failed to get subcategories", zap.Error(err), zap.String("category_id", categoryID))
		return nil, fmt.Errorf("get subcategories: %w", err)
	}

	responses := make([]response.CategoryResponse, len(children))
	for i, child := range children {
		responses[i] = response.CategoryToResponse(child)
	}

	return responses, nil
}

func (s *catalogService) CreateCategory(ctx context.Context, req *request.CategoryRequest) (*response.CategoryResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create category validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	category := &entity.Category{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:  req.Name,
		Image: req.Image,
	}

	if req.ParentID != nil {
		parentID, err := uuid.Parse(*req.ParentID)
		if err != nil {
			return nil, fmt.Errorf("invalid parent id: %w", err)
		}

		parent, err := s.repo.Category.FindByID(ctx, parentID)
		if err != nil {
			return nil, fmt.Errorf("find parent category: %w", err)
		}
		if parent == nil {
			return nil, fmt.Errorf("parent category: %w", ErrNotFound)
		}

		category.ParentID = &parentID
	}

	if err := s.repo.Category.Create(ctx, category); err != nil {
		s.log.Error("Failed to create category", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.log.Info("Category created",
		zap.String("category_id", category.ID.String()),
		zap.String("name", category.Name),
	)

	resp := response.CategoryToResponse(category)
	return &resp, nil
}

func (s *catalogService) GetBrands(ctx context.Context) ([]response.BrandResponse, error) {
	brands, err := s.repo.Brand.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get brands", zap.Error(err))
		return nil, fmt.Errorf("get brands: %w", err)
	}

	responses := make([]response.BrandResponse, len(brands))
	for i, brand := range brands {
		responses[i] = response.BrandToResponse(brand)
	}

	return responses, nil
}

func (s *catalogService) CreateBrand(ctx context.Context, req *request.BrandRequest) (*response.BrandResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create brand validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	brand := &entity.Brand{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name: req.Name,
		Logo: req.Logo,
	}

	if err := s.repo.Brand.Create(ctx, brand); err != nil {
		s.log.Error("Failed to create brand", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("create brand: %w", err)
	}

	s.log.Info("Brand created",
		zap.String("brand_id", brand.ID.String()),
		zap.String("name", brand.Name),
	)

	resp := response.BrandToResponse(brand)
	return &resp, nil
}

func (s *catalogService) GetProducts(ctx context.Context, req *request.ProductListRequest) (*response.PaginatedResponse[response.ProductResponse], error) {
	filter, err := buildProductFilter(req)
	if err != nil {
		return nil, err
	}

	limit := req.Limit()
	offset := req.Offset()

	products, err := s.repo.Product.FindAll(ctx, limit, offset, filter)
	if err != nil {
		s.log.Error("Failed to get products",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("get products: %w", err)
	}

	total, err := s.repo.Product.CountAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count products", zap.Error(err))
		return nil, fmt.Errorf("count products: %w", err)
	}

	responses := make([]response.ProductResponse, len(products))
	for i, product := range products {
		responses[i] = response.ProductToResponse(product)
	}

	return response.NewPaginatedResponse(responses, req.Page, req.PerPage, total), nil
}

func buildProductFilter(req *request.ProductListRequest) (repository.ProductFilter, error) {
	var filter repository.ProductFilter

	if req.CategoryID != nil {
		id, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return filter, fmt.Errorf("invalid category id: %w", err)
		}
		filter.CategoryID = &id
	}
	if req.BrandID != nil {
		id, err := uuid.Parse(*req.BrandID)
		if err != nil {
			return filter, fmt.Errorf("invalid brand id: %w", err)
		}
		filter.BrandID = &id
	}
	filter.Search = req.Search

	return filter, nil
}

func (s *catalogService) GetProductByID(ctx context.Context, productID string) (*response.ProductResponse, error) {
	id, err := uuid.Parse(productID)
	if err != nil {
		return nil, fmt.Errorf("invalid product id: %w", err)
	}

	product, err := s.repo.Product.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find product", zap.Error(err), zap.String("product_id", productID))
		return nil, fmt.Errorf("find product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("product: %w", ErrNotFound)
	}

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *catalogService) CreateProduct(ctx context.Context, vendorID string, req *request.ProductRequest) (*response.ProductResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create product validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	vendorUUID, err := uuid.Parse(vendorID)
	if err != nil {
		return nil, fmt.Errorf("invalid vendor id: %w", err)
	}

	product, err := s.buildProduct(ctx, req)
	if err != nil {
		return nil, err
	}
	product.VendorID = vendorUUID

	if err := s.repo.Product.Create(ctx, product); err != nil {
		s.log.Error("Failed to create product",
			zap.Error(err),
			zap.String("vendor_id", vendorID),
			zap.String("name", req.Name),
		)
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.log.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("vendor_id", vendorID),
	)

	resp := response.ProductToResponse(product)
	return &resp, nil
}

// buildProduct validates the category/brand references and assembles the entity
func (s *catalogService) buildProduct(ctx context.Context, req *request.ProductRequest) (*entity.Product, error) {
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("invalid category id: %w", err)
	}

	category, err := s.repo.Category.FindByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	if category == nil {
		return nil, fmt.Errorf("category: %w", ErrNotFound)
	}

	var brandID *uuid.UUID
	if req.BrandID != nil {
		id, err := uuid.Parse(*req.BrandID)
		if err != nil {
			return nil, fmt.Errorf("invalid brand id: %w", err)
		}

		brand, err := s.repo.Brand.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("find brand: %w", err)
		}
		if brand == nil {
			return nil, fmt.Errorf("brand: %w", ErrNotFound)
		}

		brandID = &id
	}

	now := time.Now()
	return &entity.Product{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CategoryID:  categoryID,
		BrandID:     brandID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Image:       req.Image,
	}, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, vendorID, role, productID string, req *request.ProductRequest) (*response.ProductResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update product validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	existing, err := s.findOwnedProduct(ctx, vendorID, role, productID)
	if err != nil {
		return nil, err
	}

	updated, err := s.buildProduct(ctx, req)
	if err != nil {
		return nil, err
	}

	// Preserve identity and ownership
	updated.ID = existing.ID
	updated.VendorID = existing.VendorID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()

	if err := s.repo.Product.Update(ctx, updated); err != nil {
		s.log.Error("Failed to update product", zap.Error(err), zap.String("product_id", productID))
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.log.Info("Product updated", zap.String("product_id", productID))

	resp := response.ProductToResponse(updated)
	return &resp, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, vendorID, role, productID string) error {
	product, err := s.findOwnedProduct(ctx, vendorID, role, productID)
	if err != nil {
		return err
	}

	if err := s.repo.Product.Delete(ctx, product.ID); err != nil {
		s.log.Error("Failed to delete product", zap.Error(err), zap.String("product_id", productID))
		return fmt.Errorf("delete product: %w", err)
	}

	s.log.Info("Product deleted", zap.String("product_id", productID))
	return nil
}

// findOwnedProduct loads the product and enforces that only the owning
// vendor (or an admin) may modify it
func (s *catalogService) findOwnedProduct(ctx context.Context, vendorID, role, productID string) (*entity.Product, error) {
	id, err := uuid.Parse(productID)
	if err != nil {
		return nil, fmt.Errorf("invalid product id: %w", err)
	}

	product, err := s.repo.Product.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("product: %w", ErrNotFound)
	}

	if role != entity.RoleAdmin && product.VendorID.String() != vendorID {
		s.log.Warn("Vendor tried to modify foreign product",
			zap.String("vendor_id", vendorID),
			zap.String("product_id", productID),
		)
		return nil, fmt.Errorf("product belongs to another vendor: %w", ErrForbidden)
	}

	return product, nil
}
