package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tibacare/storefront/internal/i18n"
	"github.com/tibacare/storefront/internal/pricing"
	"github.com/tibacare/storefront/internal/store"
)

var (
	// ErrCartInvalidInput indicates the caller supplied invalid data to a cart mutation.
	ErrCartInvalidInput = errors.New("cart service: invalid input")
	// ErrCartUnknownProduct indicates an add referenced a product missing from the catalog.
	ErrCartUnknownProduct = errors.New("cart service: unknown product")
)

// CartServiceDeps bundles collaborators required to construct a cart service.
type CartServiceDeps struct {
	Cart    *store.Cart
	Catalog CatalogService
}

type cartService struct {
	cart    *store.Cart
	catalog CatalogService
}

var _ CartService = (*cartService)(nil)

// NewCartService constructs the cart service with the supplied dependencies.
func NewCartService(deps CartServiceDeps) (CartService, error) {
	if deps.Cart == nil {
		return nil, errors.New("cart service: cart store is required")
	}
	if deps.Catalog == nil {
		return nil, errors.New("cart service: catalog service is required")
	}
	return &cartService{cart: deps.Cart, catalog: deps.Catalog}, nil
}

// View renders the cart against the current catalog. Entries whose product no
// longer resolves are kept in the persisted state but rendered without a line.
func (s *cartService) View(ctx context.Context, lang i18n.Language) (CartView, error) {
	return s.render(ctx, lang)
}

func (s *cartService) Add(ctx context.Context, lang i18n.Language, productID string, quantity int) (CartView, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return CartView{}, fmt.Errorf("%w: product id is required", ErrCartInvalidInput)
	}
	if quantity <= 0 {
		return CartView{}, fmt.Errorf("%w: quantity must be positive", ErrCartInvalidInput)
	}

	if _, err := s.catalog.Product(ctx, productID, lang); err != nil {
		if errors.Is(err, ErrCatalogProductNotFound) {
			return CartView{}, fmt.Errorf("%w: %s", ErrCartUnknownProduct, productID)
		}
		return CartView{}, err
	}

	if _, err := s.cart.Add(ctx, productID, quantity); err != nil {
		return CartView{}, wrapCartStoreError(err)
	}
	return s.render(ctx, lang)
}

func (s *cartService) SetQuantity(ctx context.Context, lang i18n.Language, productID string, quantity int) (CartView, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return CartView{}, fmt.Errorf("%w: product id is required", ErrCartInvalidInput)
	}

	if _, err := s.cart.SetQuantity(ctx, productID, quantity); err != nil {
		return CartView{}, wrapCartStoreError(err)
	}
	return s.render(ctx, lang)
}

func (s *cartService) Remove(ctx context.Context, lang i18n.Language, productID string) (CartView, error) {
	return s.SetQuantity(ctx, lang, productID, 0)
}

func (s *cartService) Clear(ctx context.Context) error {
	if err := s.cart.Clear(ctx); err != nil {
		return wrapCartStoreError(err)
	}
	return nil
}

func (s *cartService) Count(ctx context.Context) (int, error) {
	return s.cart.ItemCount(ctx), nil
}

func (s *cartService) render(ctx context.Context, lang i18n.Language) (CartView, error) {
	entries := s.cart.Entries(ctx)

	snapshot, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return CartView{}, err
	}

	view := CartView{
		Lines:   make([]CartLineView, 0, len(entries)),
		Version: s.cart.Version(),
	}
	for _, entry := range entries {
		view.ItemCount += entry.Quantity
		for _, product := range snapshot.Products {
			if product.ID != entry.ProductID {
				continue
			}
			line := CartLineView{
				Product:   resolveProduct(product, snapshot.Subcategories, lang),
				Quantity:  entry.Quantity,
				LineTotal: pricing.Round2(float64(entry.Quantity) * product.Price),
			}
			view.Lines = append(view.Lines, line)
			view.Subtotal += float64(entry.Quantity) * product.Price
			break
		}
	}
	view.Subtotal = pricing.Round2(view.Subtotal)
	return view, nil
}

func wrapCartStoreError(err error) error {
	if errors.Is(err, store.ErrCartInvalidInput) {
		return fmt.Errorf("%w: %v", ErrCartInvalidInput, err)
	}
	return err
}
