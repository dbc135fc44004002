package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tibacare/storefront/internal/platform/httpx"
	"github.com/tibacare/storefront/internal/platform/requestctx"
	"github.com/tibacare/storefront/internal/services"
)

// CheckoutHandlers exposes the checkout quoting endpoints.
type CheckoutHandlers struct {
	checkout services.CheckoutService
}

const maxCheckoutBodySize = 16 * 1024

// NewCheckoutHandlers constructs handlers backed by the checkout service.
func NewCheckoutHandlers(checkout services.CheckoutService) *CheckoutHandlers {
	return &CheckoutHandlers{checkout: checkout}
}

// Routes wires the /checkout endpoints onto the provided router.
func (h *CheckoutHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/shipping-options", h.listShippingOptions)
	r.Post("/quote", h.quote)
}

func (h *CheckoutHandlers) listShippingOptions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.checkout == nil {
		httpx.WriteError(ctx, w, httpx.NewError("checkout_service_unavailable", "checkout service is unavailable", http.StatusServiceUnavailable))
		return
	}

	options, err := h.checkout.ShippingOptions(ctx, requestctx.Language(ctx))
	if err != nil {
		writeCheckoutError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, shippingOptionsResponse{Options: options})
}

func (h *CheckoutHandlers) quote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.checkout == nil {
		httpx.WriteError(ctx, w, httpx.NewError("checkout_service_unavailable", "checkout service is unavailable", http.StatusServiceUnavailable))
		return
	}

	body, err := readLimitedBody(r, maxCheckoutBodySize)
	if err != nil && !errors.Is(err, errEmptyBody) {
		writeCartBodyError(ctx, w, err)
		return
	}

	var req quoteRequest
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			httpx.WriteError(ctx, w, httpx.NewError("invalid_request", fmt.Sprintf("invalid JSON payload: %v", err), http.StatusBadRequest))
			return
		}
	}

	quote, err := h.checkout.Quote(ctx, requestctx.Language(ctx), req.ShippingOptionID)
	if err != nil {
		writeCheckoutError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, quoteResponse{Quote: quote})
}

type quoteRequest struct {
	ShippingOptionID string `json:"shippingOptionId"`
}

type quoteResponse struct {
	Quote services.CheckoutQuote `json:"quote"`
}

type shippingOptionsResponse struct {
	Options []services.ShippingOptionView `json:"options"`
}

func writeCheckoutError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrCartInvalidInput):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("checkout_error", "failed to compute quote", http.StatusInternalServerError))
	}
}
