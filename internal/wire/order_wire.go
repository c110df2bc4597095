package wire

import (
	"localmarket/internal/adaptor"
	"localmarket/internal/data/entity"
	"localmarket/pkg/middleware"
	"localmarket/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireOrder(
	r chi.Router,
	orderHandler *adaptor.OrderHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// Customer-facing order flow
	r.Route("/api/orders", func(r chi.Router) {
		r.Use(middleware.Auth(config, log))

		r.With(middleware.RequireRole(log, entity.RoleCustomer)).Post("/", orderHandler.Checkout)
		r.With(middleware.RequireRole(log, entity.RoleCustomer)).Post("/{id}/cancel", orderHandler.CancelOrder)
		r.Get("/", orderHandler.GetOrders)
		r.Get("/{id}", orderHandler.GetOrderDetail)
	})

	// Fulfilment side
	r.Route("/api/admin/orders", func(r chi.Router) {
		r.Use(middleware.Auth(config, log))

		r.With(middleware.RequireRole(log, entity.RoleAdmin, entity.RoleDelivery)).
			Get("/", orderHandler.GetAllOrders)
		r.With(middleware.RequireRole(log, entity.RoleAdmin, entity.RoleVendor, entity.RoleDelivery)).
			Put("/{id}/status", orderHandler.UpdateStatus)
	})
}
