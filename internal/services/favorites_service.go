package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tibacare/storefront/internal/i18n"
	"github.com/tibacare/storefront/internal/store"
)

var (
	// ErrFavoritesInvalidInput indicates the caller supplied invalid data to a favorites mutation.
	ErrFavoritesInvalidInput = errors.New("favorites service: invalid input")
)

// FavoritesServiceDeps bundles collaborators required to construct a favorites service.
type FavoritesServiceDeps struct {
	Favorites *store.Favorites
	Catalog   CatalogService
}

type favoritesService struct {
	favorites *store.Favorites
	catalog   CatalogService
}

var _ FavoritesService = (*favoritesService)(nil)

// NewFavoritesService constructs the favorites service with the supplied dependencies.
func NewFavoritesService(deps FavoritesServiceDeps) (FavoritesService, error) {
	if deps.Favorites == nil {
		return nil, errors.New("favorites service: favorites store is required")
	}
	if deps.Catalog == nil {
		return nil, errors.New("favorites service: catalog service is required")
	}
	return &favoritesService{favorites: deps.Favorites, catalog: deps.Catalog}, nil
}

// List renders the favorites set against the current catalog. Ids whose
// product no longer resolves stay in the persisted set but render without a
// product card.
func (s *favoritesService) List(ctx context.Context, lang i18n.Language) (FavoritesView, error) {
	return s.render(ctx, lang)
}

// Toggle flips membership for the product id and reports the new state.
func (s *favoritesService) Toggle(ctx context.Context, lang i18n.Language, productID string) (FavoritesView, bool, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return FavoritesView{}, false, fmt.Errorf("%w: product id is required", ErrFavoritesInvalidInput)
	}

	ids, err := s.favorites.Toggle(ctx, productID)
	if err != nil {
		if errors.Is(err, store.ErrFavoritesInvalidInput) {
			return FavoritesView{}, false, fmt.Errorf("%w: %v", ErrFavoritesInvalidInput, err)
		}
		return FavoritesView{}, false, err
	}

	favored := false
	for _, id := range ids {
		if id == productID {
			favored = true
			break
		}
	}

	view, err := s.render(ctx, lang)
	if err != nil {
		return FavoritesView{}, false, err
	}
	return view, favored, nil
}

func (s *favoritesService) render(ctx context.Context, lang i18n.Language) (FavoritesView, error) {
	ids := s.favorites.IDs(ctx)

	snapshot, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return FavoritesView{}, err
	}

	view := FavoritesView{
		IDs:      ids,
		Products: make([]ProductView, 0, len(ids)),
		Version:  s.favorites.Version(),
	}
	for _, id := range ids {
		for _, product := range snapshot.Products {
			if product.ID == id {
				view.Products = append(view.Products, resolveProduct(product, snapshot.Subcategories, lang))
				break
			}
		}
	}
	return view, nil
}
