package wire

import (
	"localmarket/internal/adaptor"
	"localmarket/internal/data/entity"
	"localmarket/pkg/middleware"
	"localmarket/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireWishlist(
	r chi.Router,
	wishlistHandler *adaptor.WishlistHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/api/wishlist", func(r chi.Router) {
		r.Use(middleware.Auth(config, log))
		r.Use(middleware.RequireRole(log, entity.RoleCustomer))

		r.Post("/", wishlistHandler.AddItem)
		r.Get("/", wishlistHandler.GetWishlist)
		r.Delete("/{productId}", wishlistHandler.RemoveItem)
	})
}
