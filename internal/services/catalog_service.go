package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/tibacare/storefront/internal/catalog"
	domain "github.com/tibacare/storefront/internal/domain"
	"github.com/tibacare/storefront/internal/i18n"
	"github.com/tibacare/storefront/internal/repositories"
)

const defaultCatalogCacheTTL = 5 * time.Minute

var (
	// ErrCatalogInvalidInput indicates the caller supplied invalid data to a catalog lookup.
	ErrCatalogInvalidInput = errors.New("catalog service: invalid input")
	// ErrCatalogProductNotFound indicates the requested product does not exist in the catalog.
	ErrCatalogProductNotFound = errors.New("catalog service: product not found")
)

// CatalogServiceDeps bundles constructor inputs for the catalog service.
type CatalogServiceDeps struct {
	Catalog  repositories.CatalogRepository
	Clock    func() time.Time
	CacheTTL time.Duration
}

type catalogService struct {
	repo  repositories.CatalogRepository
	clock func() time.Time
	ttl   time.Duration

	mu       sync.Mutex
	snapshot CatalogSnapshot
	expires  time.Time
}

var _ CatalogService = (*catalogService)(nil)

// NewCatalogService constructs the catalog service with the supplied dependencies.
func NewCatalogService(deps CatalogServiceDeps) (CatalogService, error) {
	if deps.Catalog == nil {
		return nil, fmt.Errorf("catalog service: catalog repository is required")
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	ttl := deps.CacheTTL
	if ttl <= 0 {
		ttl = defaultCatalogCacheTTL
	}
	return &catalogService{
		repo:  deps.Catalog,
		clock: func() time.Time { return clock().UTC() },
		ttl:   ttl,
	}, nil
}

// Snapshot returns the cached catalog, refreshing it when the TTL elapsed.
func (s *catalogService) Snapshot(ctx context.Context) (CatalogSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	if !s.snapshot.FetchedAt.IsZero() && now.Before(s.expires) {
		return s.snapshot, nil
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return CatalogSnapshot{}, err
	}
	subcategories, err := s.repo.ListSubcategories(ctx)
	if err != nil {
		return CatalogSnapshot{}, err
	}
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return CatalogSnapshot{}, err
	}

	s.snapshot = CatalogSnapshot{
		Categories:    categories,
		Subcategories: subcategories,
		Products:      products,
		FetchedAt:     now,
	}
	s.expires = now.Add(s.ttl)
	return s.snapshot, nil
}

func (s *catalogService) Products(ctx context.Context, lang i18n.Language, filter string) (CatalogPage, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return CatalogPage{}, err
	}

	filter = strings.TrimSpace(filter)
	if filter == "" {
		filter = catalog.FilterAll
	}

	page := CatalogPage{
		Filter:   filter,
		Options:  catalog.FilterOptions(snapshot.Categories, snapshot.Subcategories, snapshot.Products, lang),
		Products: make([]ProductView, 0, len(snapshot.Products)),
	}

	for _, product := range snapshot.Products {
		if !catalog.MatchesFilter(product, filter, snapshot.Categories, snapshot.Subcategories, lang) {
			continue
		}
		page.Products = append(page.Products, resolveProduct(product, snapshot.Subcategories, lang))
	}
	return page, nil
}

func (s *catalogService) Product(ctx context.Context, productID string, lang i18n.Language) (ProductView, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return ProductView{}, fmt.Errorf("%w: product id is required", ErrCatalogInvalidInput)
	}

	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return ProductView{}, err
	}
	for _, product := range snapshot.Products {
		if product.ID == productID {
			return resolveProduct(product, snapshot.Subcategories, lang), nil
		}
	}

	// Fall through to the repository so products published after the last
	// snapshot refresh still resolve.
	product, err := s.repo.FindProduct(ctx, productID)
	if err != nil {
		if isRepositoryNotFound(err) {
			return ProductView{}, fmt.Errorf("%w: %s", ErrCatalogProductNotFound, productID)
		}
		return ProductView{}, err
	}
	return resolveProduct(product, snapshot.Subcategories, lang), nil
}

func (s *catalogService) FilterOptions(ctx context.Context, lang i18n.Language) ([]string, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.FilterOptions(snapshot.Categories, snapshot.Subcategories, snapshot.Products, lang), nil
}

// resolveProduct flattens a catalog product into a single display language.
func resolveProduct(product domain.Product, subcategories []domain.Subcategory, lang i18n.Language) ProductView {
	return ProductView{
		ID:           product.ID,
		SKU:          product.SKU,
		Name:         product.Name.Resolve(lang),
		Description:  product.Description.Resolve(lang),
		Features:     i18n.ResolveList(product.Features, lang),
		Specs:        i18n.ResolveMap(product.Specs, lang),
		ShippingInfo: product.ShippingInfo.Resolve(lang),
		Warranty:     product.Warranty.Resolve(lang),
		Subcategory:  catalog.ProductSubcategoryLabel(product, subcategories, lang),
		Price:        product.Price,
		Images:       product.Images,
	}
}

func isRepositoryNotFound(err error) bool {
	var repoErr repositories.RepositoryError
	if errors.As(err, &repoErr) {
		return repoErr.IsNotFound()
	}
	return false
}
