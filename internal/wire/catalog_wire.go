package wire

import (
	"localmarket/internal/adaptor"
	"localmarket/internal/data/entity"
	"localmarket/pkg/middleware"
	"localmarket/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCatalog(
	r chi.Router,
	catalogHandler *adaptor.CatalogHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// Public browsing
	r.Get("/api/categories", catalogHandler.GetCategories)
	r.Get("/api/categories/{id}/subcategories", catalogHandler.GetSubcategories)
	r.Get("/api/brands", catalogHandler.GetBrands)
	r.Get("/api/products", catalogHandler.GetProducts)
	r.Get("/api/products/{id}", catalogHandler.GetProductByID)

	// Admin catalog management
	admin := r.With(
		middleware.Auth(config, log),
		middleware.RequireRole(log, entity.RoleAdmin),
	)
	admin.Post("/api/admin/categories", catalogHandler.CreateCategory)
	admin.Post("/api/admin/brands", catalogHandler.CreateBrand)

	// Vendor product management; admins may also step in
	r.Route("/api/vendor/products", func(r chi.Router) {
		r.Use(middleware.Auth(config, log))
		r.Use(middleware.RequireRole(log, entity.RoleVendor, entity.RoleAdmin))

		r.Post("/", catalogHandler.CreateProduct)
		r.Put("/{id}", catalogHandler.UpdateProduct)
		r.Delete("/{id}", catalogHandler.DeleteProduct)
	})
}
