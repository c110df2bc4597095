package wire

import (
	"net/http"

	"localmarket/internal/adaptor"
	"localmarket/internal/data/repository"
	"localmarket/internal/usecase"
	"localmarket/pkg/mail"
	"localmarket/pkg/middleware"
	"localmarket/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type App struct {
	Router *chi.Mux
}

// Wiring assembles services, handlers and the router
func Wiring(repo *repository.Repository, mailer mail.Mailer, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, mailer, config, logger)
	handler := adaptor.NewHandler(service, config, logger)

	router := setupRouter(handler, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(handler *adaptor.Handler, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.FrontendURL))

	wireAuth(r, handler.Auth, config, logger)
	wireUser(r, handler.User, config, logger)
	wireCatalog(r, handler.Catalog, config, logger)
	wireCart(r, handler.Cart, config, logger)
	wireWishlist(r, handler.Wishlist, config, logger)
	wireOrder(r, handler.Order, config, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
