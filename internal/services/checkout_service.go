package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domain "github.com/tibacare/storefront/internal/domain"
	"github.com/tibacare/storefront/internal/i18n"
	"github.com/tibacare/storefront/internal/pricing"
	"github.com/tibacare/storefront/internal/store"
)

// CheckoutServiceDeps bundles collaborators required to construct a checkout service.
type CheckoutServiceDeps struct {
	Cart            *store.Cart
	Catalog         CatalogService
	TaxRate         float64
	ShippingOptions []domain.ShippingOption
}

type checkoutService struct {
	cart     *store.Cart
	catalog  CatalogService
	taxRate  float64
	shipping []domain.ShippingOption
}

var _ CheckoutService = (*checkoutService)(nil)

// NewCheckoutService constructs the checkout service with the supplied dependencies.
func NewCheckoutService(deps CheckoutServiceDeps) (CheckoutService, error) {
	if deps.Cart == nil {
		return nil, errors.New("checkout service: cart store is required")
	}
	if deps.Catalog == nil {
		return nil, errors.New("checkout service: catalog service is required")
	}
	if deps.TaxRate < 0 || deps.TaxRate >= 1 {
		return nil, fmt.Errorf("checkout service: tax rate %v out of range", deps.TaxRate)
	}

	shipping := make([]domain.ShippingOption, len(deps.ShippingOptions))
	copy(shipping, deps.ShippingOptions)

	return &checkoutService{
		cart:     deps.Cart,
		catalog:  deps.Catalog,
		taxRate:  deps.TaxRate,
		shipping: shipping,
	}, nil
}

// Quote computes totals for the current cart. Entries referencing products
// missing from the catalog contribute zero to the subtotal. An unknown or
// empty shipping option id quotes with zero shipping cost.
func (s *checkoutService) Quote(ctx context.Context, lang i18n.Language, shippingOptionID string) (CheckoutQuote, error) {
	entries := s.cart.Entries(ctx)

	snapshot, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return CheckoutQuote{}, err
	}

	priceByID := make(map[string]float64, len(snapshot.Products))
	for _, product := range snapshot.Products {
		priceByID[product.ID] = product.Price
	}

	shippingOptionID = strings.TrimSpace(shippingOptionID)
	shippingCost := pricing.LookupShipping(s.shipping, shippingOptionID)

	quote := CheckoutQuote{
		Lines:  make([]CartLineView, 0, len(entries)),
		Totals: pricing.ComputeTotals(entries, priceByID, s.taxRate, shippingCost),
	}

	for _, entry := range entries {
		for _, product := range snapshot.Products {
			if product.ID != entry.ProductID {
				continue
			}
			quote.Lines = append(quote.Lines, CartLineView{
				Product:   resolveProduct(product, snapshot.Subcategories, lang),
				Quantity:  entry.Quantity,
				LineTotal: pricing.Round2(float64(entry.Quantity) * product.Price),
			})
			break
		}
	}

	for _, option := range s.shipping {
		if option.ID == shippingOptionID {
			view := resolveShippingOption(option, lang)
			quote.Shipping = &view
			break
		}
	}

	return quote, nil
}

// ShippingOptions lists the configured options resolved into one language.
func (s *checkoutService) ShippingOptions(_ context.Context, lang i18n.Language) ([]ShippingOptionView, error) {
	views := make([]ShippingOptionView, 0, len(s.shipping))
	for _, option := range s.shipping {
		views = append(views, resolveShippingOption(option, lang))
	}
	return views, nil
}

func resolveShippingOption(option domain.ShippingOption, lang i18n.Language) ShippingOptionView {
	return ShippingOptionView{
		ID:    option.ID,
		Label: option.Label.Resolve(lang),
		Cost:  option.Cost,
	}
}
