package adaptor

import (
	"encoding/json"
	"net/http"

	"localmarket/internal/dto/request"
	"localmarket/internal/usecase"
	"localmarket/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type WishlistHandler struct {
	service usecase.WishlistService
	log     *zap.Logger
}

func NewWishlistHandler(service usecase.WishlistService, log *zap.Logger) *WishlistHandler {
	return &WishlistHandler{
		service: service,
		log:     log.With(zap.String("handler", "wishlist")),
	}
}

// AddItem handles POST /api/wishlist
func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not logged in")
		return
	}

	var req request.AddWishlistItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.AddItem(r.Context(), userID, &req); err != nil {
		handleServiceError(w, h.log, err, "add wishlist item")
		return
	}

	utils.ResponseCreated(w, "Item added to wishlist", nil)
}

// GetWishlist handles GET /api/wishlist
func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not logged in")
		return
	}

	items, err := h.service.GetWishlist(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get wishlist")
		return
	}

	utils.ResponseSuccess(w, "Wishlist retrieved successfully", items)
}

// RemoveItem handles DELETE /api/wishlist/{productId}
func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not logged in")
		return
	}

	productID := chi.URLParam(r, "productId")
	if productID == "" {
		utils.ResponseBadRequest(w, "Product ID is required", nil)
		return
	}

	if err := h.service.RemoveItem(r.Context(), userID, productID); err != nil {
		handleServiceError(w, h.log, err, "remove wishlist item")
		return
	}

	utils.ResponseSuccess(w, "Wishlist item removed", nil)
}
