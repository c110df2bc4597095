package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"localmarket/internal/usecase"
	"localmarket/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Catalog  *CatalogHandler
	Cart     *CartHandler
	Wishlist *WishlistHandler
	Order    *OrderHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, config, log),
		User:     NewUserHandler(service.User, log),
		Catalog:  NewCatalogHandler(service.Catalog, log),
		Cart:     NewCartHandler(service.Cart, log),
		Wishlist: NewWishlistHandler(service.Wishlist, log),
		Order:    NewOrderHandler(service.Order, log),
	}
}

// handleServiceError maps service sentinels to HTTP statuses. Anything
// unrecognized is a 500 with a generic body; the detail stays in the log.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, usecase.ErrInvalidCredentials),
		errors.Is(err, usecase.ErrOTPInvalid):
		log.Warn(operation+" unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, usecase.ErrOTPNotFound):
		log.Warn(operation+" failed - no pending OTP", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrOTPExpired),
		errors.Is(err, usecase.ErrOTPMaxAttempts),
		errors.Is(err, usecase.ErrInvalidRole),
		errors.Is(err, usecase.ErrCartEmpty),
		errors.Is(err, usecase.ErrInsufficientStock):
		log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrSendOTPEmail):
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Failed to send OTP email")

	case isBadInput(err):
		log.Warn("Invalid input for "+operation, zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// isBadInput catches validation and malformed-ID wrap messages
func isBadInput(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "validation failed") || strings.HasPrefix(msg, "invalid ")
}
