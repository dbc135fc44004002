package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/tibacare/storefront/internal/filter"
	"github.com/tibacare/storefront/internal/i18n"
	"github.com/tibacare/storefront/internal/platform/httpx"
	"github.com/tibacare/storefront/internal/platform/requestctx"
	"github.com/tibacare/storefront/internal/services"
)

// CatalogHandlers exposes the public catalog endpoints.
type CatalogHandlers struct {
	catalog services.CatalogService
}

// NewCatalogHandlers constructs handlers serving the resolved catalog.
func NewCatalogHandlers(catalog services.CatalogService) *CatalogHandlers {
	return &CatalogHandlers{catalog: catalog}
}

// Routes wires the /catalog endpoints onto the provided router.
func (h *CatalogHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/products", h.listProducts)
	r.Get("/products/{productID}", h.getProduct)
	r.Get("/filters", h.getFilters)
}

func (h *CatalogHandlers) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.catalog == nil {
		httpx.WriteError(ctx, w, httpx.NewError("catalog_service_unavailable", "catalog service is unavailable", http.StatusServiceUnavailable))
		return
	}

	lang := requestctx.Language(ctx)
	selection := filter.SelectionFromQuery(r.URL.Query())

	page, err := h.catalog.Products(ctx, lang, selection)
	if err != nil {
		writeCatalogError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, page)
}

func (h *CatalogHandlers) getProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.catalog == nil {
		httpx.WriteError(ctx, w, httpx.NewError("catalog_service_unavailable", "catalog service is unavailable", http.StatusServiceUnavailable))
		return
	}

	productID := chi.URLParam(r, "productID")
	lang := requestctx.Language(ctx)

	product, err := h.catalog.Product(ctx, productID, lang)
	if err != nil {
		writeCatalogError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, productResponse{Product: product})
}

// getFilters returns the filter options for the active language. When the
// request carries a selection along with the language it was expressed in
// (the "from" parameter), the selection is carried across to the active
// language and the mirrored query parameters are returned alongside it.
func (h *CatalogHandlers) getFilters(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.catalog == nil {
		httpx.WriteError(ctx, w, httpx.NewError("catalog_service_unavailable", "catalog service is unavailable", http.StatusServiceUnavailable))
		return
	}

	lang := requestctx.Language(ctx)

	options, err := h.catalog.FilterOptions(ctx, lang)
	if err != nil {
		writeCatalogError(ctx, w, err)
		return
	}

	snapshot, err := h.catalog.Snapshot(ctx)
	if err != nil {
		writeCatalogError(ctx, w, err)
		return
	}

	query := r.URL.Query()
	from, ok := i18n.Parse(query.Get("from"))
	if !ok {
		from = lang
	}

	sync := filter.NewSynchronizer(snapshot.Categories, snapshot.Subcategories, from)
	sync.ApplyQuery(query)
	sync.SetLanguage(lang)

	writeJSONResponse(w, http.StatusOK, filtersResponse{
		Options:   options,
		Selection: sync.Selection(),
		Params:    flattenQuery(sync.Params()),
	})
}

type productResponse struct {
	Product services.ProductView `json:"product"`
}

type filtersResponse struct {
	Options   []string          `json:"options"`
	Selection string            `json:"selection"`
	Params    map[string]string `json:"params"`
}

func flattenQuery(values url.Values) map[string]string {
	flat := make(map[string]string, len(values))
	for key := range values {
		flat[key] = values.Get(key)
	}
	return flat
}

func writeCatalogError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrCatalogProductNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("product_not_found", "product not found", http.StatusNotFound))
	case errors.Is(err, services.ErrCatalogInvalidInput):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("catalog_error", "failed to load catalog", http.StatusInternalServerError))
	}
}
