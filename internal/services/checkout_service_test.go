package services

import (
	"context"
	"testing"

	domain "github.com/tibacare/storefront/internal/domain"
	"github.com/tibacare/storefront/internal/i18n"
	"github.com/tibacare/storefront/internal/store"
)

func newTestCheckoutService(t *testing.T, taxRate float64) (CheckoutService, *store.Cart) {
	t.Helper()
	cart, err := store.NewCart(store.CartDeps{Backend: store.NewMemoryBackend()})
	if err != nil {
		t.Fatalf("NewCart: %v", err)
	}
	catalog := newTestCatalogService(t, fixtureCatalogRepo())
	svc, err := NewCheckoutService(CheckoutServiceDeps{
		Cart:    cart,
		Catalog: catalog,
		TaxRate: taxRate,
		ShippingOptions: []domain.ShippingOption{
			{ID: "standard", Label: i18n.Bilingual("Standard Shipping", "الشحن العادي"), Cost: 15},
			{ID: "express", Label: i18n.Bilingual("Express Shipping", "الشحن السريع"), Cost: 30},
		},
	})
	if err != nil {
		t.Fatalf("NewCheckoutService: %v", err)
	}
	return svc, cart
}

func TestCheckoutQuoteComputesTotals(t *testing.T) {
	svc, cart := newTestCheckoutService(t, 0.05)
	ctx := context.Background()

	if _, err := cart.Add(ctx, "p1", 2); err != nil {
		t.Fatalf("cart.Add: %v", err)
	}

	quote, err := svc.Quote(ctx, i18n.English, "")
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}

	if quote.Totals.Subtotal != 200 {
		t.Errorf("expected subtotal 200, got %v", quote.Totals.Subtotal)
	}
	if quote.Totals.VAT != 10 {
		t.Errorf("expected vat 10, got %v", quote.Totals.VAT)
	}
	if quote.Totals.Shipping != 0 {
		t.Errorf("expected zero shipping without an option, got %v", quote.Totals.Shipping)
	}
	if quote.Totals.Total != 210 {
		t.Errorf("expected total 210, got %v", quote.Totals.Total)
	}
	if quote.Shipping != nil {
		t.Errorf("expected no shipping option view, got %+v", quote.Shipping)
	}
}

func TestCheckoutQuoteWithShippingOption(t *testing.T) {
	svc, cart := newTestCheckoutService(t, 0.05)
	ctx := context.Background()

	if _, err := cart.Add(ctx, "p2", 1); err != nil {
		t.Fatalf("cart.Add: %v", err)
	}

	quote, err := svc.Quote(ctx, i18n.Arabic, "express")
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}

	if quote.Totals.Shipping != 30 {
		t.Errorf("expected shipping 30, got %v", quote.Totals.Shipping)
	}
	if quote.Totals.Total != 40+2+30 {
		t.Errorf("expected total 72, got %v", quote.Totals.Total)
	}
	if quote.Shipping == nil || quote.Shipping.Label != "الشحن السريع" {
		t.Fatalf("expected arabic shipping label, got %+v", quote.Shipping)
	}
}

func TestCheckoutQuoteMissingProductContributesZero(t *testing.T) {
	svc, cart := newTestCheckoutService(t, 0.05)
	ctx := context.Background()

	if _, err := cart.Add(ctx, "p1", 1); err != nil {
		t.Fatalf("cart.Add: %v", err)
	}
	if _, err := cart.Add(ctx, "withdrawn", 4); err != nil {
		t.Fatalf("cart.Add: %v", err)
	}

	quote, err := svc.Quote(ctx, i18n.English, "")
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}

	if quote.Totals.Subtotal != 100 {
		t.Errorf("expected withdrawn entry to contribute zero, got subtotal %v", quote.Totals.Subtotal)
	}
	if len(quote.Lines) != 1 {
		t.Errorf("expected a single resolvable line, got %d", len(quote.Lines))
	}
}

func TestCheckoutQuoteUnknownShippingOption(t *testing.T) {
	svc, cart := newTestCheckoutService(t, 0.05)
	ctx := context.Background()

	if _, err := cart.Add(ctx, "p1", 1); err != nil {
		t.Fatalf("cart.Add: %v", err)
	}

	quote, err := svc.Quote(ctx, i18n.English, "teleport")
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if quote.Totals.Shipping != 0 || quote.Shipping != nil {
		t.Errorf("expected unknown option to quote zero shipping, got %+v", quote)
	}
}

func TestCheckoutShippingOptionsResolvePerLanguage(t *testing.T) {
	svc, _ := newTestCheckoutService(t, 0.05)

	options, err := svc.ShippingOptions(context.Background(), i18n.English)
	if err != nil {
		t.Fatalf("ShippingOptions: %v", err)
	}
	if len(options) != 2 || options[0].Label != "Standard Shipping" {
		t.Fatalf("unexpected options: %+v", options)
	}
}

func TestNewCheckoutServiceRejectsBadTaxRate(t *testing.T) {
	cart, err := store.NewCart(store.CartDeps{Backend: store.NewMemoryBackend()})
	if err != nil {
		t.Fatalf("NewCart: %v", err)
	}
	catalog := newTestCatalogService(t, fixtureCatalogRepo())

	if _, err := NewCheckoutService(CheckoutServiceDeps{Cart: cart, Catalog: catalog, TaxRate: 1.5}); err == nil {
		t.Fatal("expected error for tax rate out of range")
	}
}
