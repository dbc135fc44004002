package repositories

import (
	"context"

	domain "github.com/tibacare/storefront/internal/domain"
)

// CatalogRepository loads the published catalog entities consumed by the
// storefront. The catalog is written by a back-office pipeline; this side is
// read-only.
type CatalogRepository interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListSubcategories(ctx context.Context) ([]domain.Subcategory, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	FindProduct(ctx context.Context, productID string) (domain.Product, error)
}

// HealthRepository aggregates dependency probes for readiness reporting.
type HealthRepository interface {
	Collect(ctx context.Context) (domain.SystemHealthReport, error)
}

// RepositoryError wraps low-level persistence failures with categorisation used by services.
type RepositoryError interface {
	error
	IsNotFound() bool
	IsConflict() bool
	IsUnavailable() bool
}
