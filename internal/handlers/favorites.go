package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tibacare/storefront/internal/platform/httpx"
	"github.com/tibacare/storefront/internal/platform/requestctx"
	"github.com/tibacare/storefront/internal/services"
)

// FavoritesHandlers exposes the favorites endpoints.
type FavoritesHandlers struct {
	favorites services.FavoritesService
}

// NewFavoritesHandlers constructs handlers backed by the favorites service.
func NewFavoritesHandlers(favorites services.FavoritesService) *FavoritesHandlers {
	return &FavoritesHandlers{favorites: favorites}
}

// Routes wires the /favorites endpoints onto the provided router.
func (h *FavoritesHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.listFavorites)
	r.Post("/{productID}/toggle", h.toggleFavorite)
}

func (h *FavoritesHandlers) listFavorites(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.favorites == nil {
		httpx.WriteError(ctx, w, httpx.NewError("favorites_service_unavailable", "favorites service is unavailable", http.StatusServiceUnavailable))
		return
	}

	view, err := h.favorites.List(ctx, requestctx.Language(ctx))
	if err != nil {
		writeFavoritesError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, favoritesResponse{Favorites: view})
}

func (h *FavoritesHandlers) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.favorites == nil {
		httpx.WriteError(ctx, w, httpx.NewError("favorites_service_unavailable", "favorites service is unavailable", http.StatusServiceUnavailable))
		return
	}

	productID := chi.URLParam(r, "productID")

	view, favored, err := h.favorites.Toggle(ctx, requestctx.Language(ctx), productID)
	if err != nil {
		writeFavoritesError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, favoritesToggleResponse{Favorites: view, Favored: favored})
}

type favoritesResponse struct {
	Favorites services.FavoritesView `json:"favorites"`
}

type favoritesToggleResponse struct {
	Favorites services.FavoritesView `json:"favorites"`
	Favored   bool                   `json:"favored"`
}

func writeFavoritesError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrFavoritesInvalidInput):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("favorites_error", "failed to update favorites", http.StatusInternalServerError))
	}
}
