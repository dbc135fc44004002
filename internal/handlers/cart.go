package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tibacare/storefront/internal/platform/httpx"
	"github.com/tibacare/storefront/internal/platform/requestctx"
	"github.com/tibacare/storefront/internal/services"
)

// CartHandlers exposes the cart endpoints.
type CartHandlers struct {
	carts services.CartService
}

const maxCartBodySize = 16 * 1024

// NewCartHandlers constructs handlers backed by the cart service.
func NewCartHandlers(carts services.CartService) *CartHandlers {
	return &CartHandlers{carts: carts}
}

// Routes wires the /cart endpoints onto the provided router.
func (h *CartHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.getCart)
	r.Delete("/", h.clearCart)
	r.Get("/count", h.getCount)
	r.Post("/items", h.addItem)
	r.Patch("/items/{productID}", h.setQuantity)
	r.Delete("/items/{productID}", h.removeItem)
}

func (h *CartHandlers) getCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.carts == nil {
		httpx.WriteError(ctx, w, httpx.NewError("cart_service_unavailable", "cart service is unavailable", http.StatusServiceUnavailable))
		return
	}

	view, err := h.carts.View(ctx, requestctx.Language(ctx))
	if err != nil {
		writeCartError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, cartResponse{Cart: view})
}

func (h *CartHandlers) clearCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.carts == nil {
		httpx.WriteError(ctx, w, httpx.NewError("cart_service_unavailable", "cart service is unavailable", http.StatusServiceUnavailable))
		return
	}

	if err := h.carts.Clear(ctx); err != nil {
		writeCartError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandlers) getCount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.carts == nil {
		httpx.WriteError(ctx, w, httpx.NewError("cart_service_unavailable", "cart service is unavailable", http.StatusServiceUnavailable))
		return
	}

	count, err := h.carts.Count(ctx)
	if err != nil {
		writeCartError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, cartCountResponse{Count: count})
}

func (h *CartHandlers) addItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.carts == nil {
		httpx.WriteError(ctx, w, httpx.NewError("cart_service_unavailable", "cart service is unavailable", http.StatusServiceUnavailable))
		return
	}

	req, err := decodeCartItemRequest(r)
	if err != nil {
		writeCartBodyError(ctx, w, err)
		return
	}
	if strings.TrimSpace(req.ProductID) == "" {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "id is required", http.StatusBadRequest))
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	view, err := h.carts.Add(ctx, requestctx.Language(ctx), req.ProductID, quantity)
	if err != nil {
		writeCartError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, cartResponse{Cart: view})
}

func (h *CartHandlers) setQuantity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.carts == nil {
		httpx.WriteError(ctx, w, httpx.NewError("cart_service_unavailable", "cart service is unavailable", http.StatusServiceUnavailable))
		return
	}

	req, err := decodeCartItemRequest(r)
	if err != nil {
		writeCartBodyError(ctx, w, err)
		return
	}
	if req.Quantity == nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "quantity is required", http.StatusBadRequest))
		return
	}

	productID := chi.URLParam(r, "productID")

	view, err := h.carts.SetQuantity(ctx, requestctx.Language(ctx), productID, *req.Quantity)
	if err != nil {
		writeCartError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, cartResponse{Cart: view})
}

func (h *CartHandlers) removeItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.carts == nil {
		httpx.WriteError(ctx, w, httpx.NewError("cart_service_unavailable", "cart service is unavailable", http.StatusServiceUnavailable))
		return
	}

	productID := chi.URLParam(r, "productID")

	view, err := h.carts.Remove(ctx, requestctx.Language(ctx), productID)
	if err != nil {
		writeCartError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, cartResponse{Cart: view})
}

type cartResponse struct {
	Cart services.CartView `json:"cart"`
}

type cartCountResponse struct {
	Count int `json:"count"`
}

type cartItemRequest struct {
	ProductID string `json:"id"`
	Quantity  *int   `json:"quantity"`
}

func decodeCartItemRequest(r *http.Request) (cartItemRequest, error) {
	body, err := readLimitedBody(r, maxCartBodySize)
	if err != nil {
		return cartItemRequest{}, err
	}

	var req cartItemRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return cartItemRequest{}, fmt.Errorf("invalid JSON payload: %w", err)
	}
	return req, nil
}

func writeCartBodyError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errBodyTooLarge):
		httpx.WriteError(ctx, w, httpx.NewError("payload_too_large", "request body exceeds allowed size", http.StatusRequestEntityTooLarge))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	}
}

func writeCartError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrCartUnknownProduct):
		httpx.WriteError(ctx, w, httpx.NewError("product_not_found", "product not found", http.StatusNotFound))
	case errors.Is(err, services.ErrCartInvalidInput):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("cart_error", "failed to update cart", http.StatusInternalServerError))
	}
}
