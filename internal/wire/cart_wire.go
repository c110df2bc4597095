package wire

import (
	"localmarket/internal/adaptor"
	"localmarket/internal/data/entity"
	"localmarket/pkg/middleware"
	"localmarket/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCart(
	r chi.Router,
	cartHandler *adaptor.CartHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Use(middleware.Auth(config, log))
		r.Use(middleware.RequireRole(log, entity.RoleCustomer))

		r.Post("/", cartHandler.AddItem)
		r.Get("/", cartHandler.GetCart)
		r.Put("/{productId}", cartHandler.UpdateItem)
		r.Delete("/{productId}", cartHandler.RemoveItem)
	})
}
