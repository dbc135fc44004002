package services

import (
	"context"
	"time"

	domain "github.com/tibacare/storefront/internal/domain"
	"github.com/tibacare/storefront/internal/i18n"
)

// Type aliases expose domain models to the services package without reversing dependency direction.
type (
	CartEntry      = domain.CartEntry
	Totals         = domain.Totals
	ShippingOption = domain.ShippingOption
)

// ProductView is a product fully resolved into a single display language.
type ProductView struct {
	ID           string            `json:"id"`
	SKU          string            `json:"sku,omitempty"`
	Name         string            `json:"name"`
	Description  string            `json:"description,omitempty"`
	Features     []string          `json:"features,omitempty"`
	Specs        map[string]string `json:"specs,omitempty"`
	ShippingInfo string            `json:"shippingInfo,omitempty"`
	Warranty     string            `json:"warranty,omitempty"`
	Subcategory  string            `json:"subcategory,omitempty"`
	Price        float64           `json:"price"`
	Images       []string          `json:"images,omitempty"`
}

// CatalogPage bundles the filtered product list with the filter options that
// produced it.
type CatalogPage struct {
	Filter   string        `json:"filter"`
	Options  []string      `json:"options"`
	Products []ProductView `json:"products"`
}

// CatalogSnapshot is a point-in-time copy of the raw catalog used by services
// that need unresolved entities.
type CatalogSnapshot struct {
	Categories    []domain.Category
	Subcategories []domain.Subcategory
	Products      []domain.Product
	FetchedAt     time.Time
}

// CartLineView is a cart entry joined with its resolved product.
type CartLineView struct {
	Product   ProductView `json:"product"`
	Quantity  int         `json:"quantity"`
	LineTotal float64     `json:"lineTotal"`
}

// CartView is the rendered cart state for one display language.
type CartView struct {
	Lines     []CartLineView `json:"lines"`
	ItemCount int            `json:"itemCount"`
	Subtotal  float64        `json:"subtotal"`
	Version   uint64         `json:"version"`
}

// FavoritesView is the rendered favorites state for one display language.
type FavoritesView struct {
	IDs      []string      `json:"ids"`
	Products []ProductView `json:"products"`
	Version  uint64        `json:"version"`
}

// ShippingOptionView is a shipping option resolved into one display language.
type ShippingOptionView struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Cost  float64 `json:"cost"`
}

// CheckoutQuote combines cart lines with computed totals and the chosen
// shipping option.
type CheckoutQuote struct {
	Lines    []CartLineView      `json:"lines"`
	Shipping *ShippingOptionView `json:"shipping,omitempty"`
	Totals   Totals              `json:"totals"`
}

// SystemHealthReport augments the repository health report with build metadata.
type SystemHealthReport struct {
	domain.SystemHealthReport
	Version     string
	CommitSHA   string
	Environment string
	Uptime      time.Duration
}

// CatalogService exposes the storefront catalog resolved per language,
// including the filter options derived from the category hierarchy.
type CatalogService interface {
	Products(ctx context.Context, lang i18n.Language, filter string) (CatalogPage, error)
	Product(ctx context.Context, productID string, lang i18n.Language) (ProductView, error)
	FilterOptions(ctx context.Context, lang i18n.Language) ([]string, error)
	Snapshot(ctx context.Context) (CatalogSnapshot, error)
}

// CartService manages the persisted cart collection and renders it against
// the current catalog.
type CartService interface {
	View(ctx context.Context, lang i18n.Language) (CartView, error)
	Add(ctx context.Context, lang i18n.Language, productID string, quantity int) (CartView, error)
	SetQuantity(ctx context.Context, lang i18n.Language, productID string, quantity int) (CartView, error)
	Remove(ctx context.Context, lang i18n.Language, productID string) (CartView, error)
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int, error)
}

// FavoritesService manages the persisted favorites set.
type FavoritesService interface {
	List(ctx context.Context, lang i18n.Language) (FavoritesView, error)
	Toggle(ctx context.Context, lang i18n.Language, productID string) (FavoritesView, bool, error)
}

// CheckoutService derives totals from the cart, the configured tax rate, and
// a chosen shipping option.
type CheckoutService interface {
	Quote(ctx context.Context, lang i18n.Language, shippingOptionID string) (CheckoutQuote, error)
	ShippingOptions(ctx context.Context, lang i18n.Language) ([]ShippingOptionView, error)
}

// SystemService provides health reports and runtime metadata.
type SystemService interface {
	HealthReport(ctx context.Context) (SystemHealthReport, error)
}
