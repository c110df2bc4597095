package wire

import (
	"localmarket/internal/adaptor"
	"localmarket/internal/data/entity"
	"localmarket/pkg/middleware"
	"localmarket/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// Own profile, any authenticated role
	r.With(middleware.Auth(config, log)).Get("/api/users/me", userHandler.GetProfile)

	// Admin user management
	r.Route("/api/admin/users", func(r chi.Router) {
		r.Use(middleware.Auth(config, log))
		r.Use(middleware.RequireRole(log, entity.RoleAdmin))

		r.Get("/", userHandler.GetAllUsers)
		r.Delete("/{id}", userHandler.DeleteUser)
	})
}
