package firestore

import (
	"context"
	"errors"
	"sort"
	"strings"

	"cloud.google.com/go/firestore"

	"github.com/tibacare/storefront/internal/catalog"
	domain "github.com/tibacare/storefront/internal/domain"
	"github.com/tibacare/storefront/internal/i18n"
	pfirestore "github.com/tibacare/storefront/internal/platform/firestore"
	"github.com/tibacare/storefront/internal/repositories"
)

const (
	categoryCollection    = "categories"
	subcategoryCollection = "subcategories"
	productCollection     = "products"
)

// CatalogRepository reads the published catalog from Firestore. Documents are
// decoded defensively: name fields may be plain strings or bilingual objects,
// and subcategory parent references may be inline ids or embedded objects.
type CatalogRepository struct {
	categories    *pfirestore.BaseRepository[map[string]any]
	subcategories *pfirestore.BaseRepository[map[string]any]
	products      *pfirestore.BaseRepository[map[string]any]
}

var _ repositories.CatalogRepository = (*CatalogRepository)(nil)

// NewCatalogRepository constructs a Firestore-backed catalog repository.
func NewCatalogRepository(provider *pfirestore.Provider) (*CatalogRepository, error) {
	if provider == nil {
		return nil, errors.New("catalog repository requires firestore provider")
	}
	return &CatalogRepository{
		categories:    pfirestore.NewBaseRepository(provider, categoryCollection, pfirestore.MapDecoder()),
		subcategories: pfirestore.NewBaseRepository(provider, subcategoryCollection, pfirestore.MapDecoder()),
		products:      pfirestore.NewBaseRepository(provider, productCollection, pfirestore.MapDecoder()),
	}, nil
}

// ListCategories returns all categories ordered by creation time.
func (r *CatalogRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	docs, err := r.categories.Query(ctx, func(query firestore.Query) firestore.Query {
		return query.OrderBy(firestore.DocumentID, firestore.Asc)
	})
	if err != nil {
		return nil, err
	}

	categories := make([]domain.Category, 0, len(docs))
	for _, doc := range docs {
		categories = append(categories, domain.Category{
			ID:        doc.ID,
			Name:      i18n.FromValue(doc.Data["name"]),
			CreatedAt: doc.CreateTime,
		})
	}
	return categories, nil
}

// ListSubcategories returns all subcategories with their parent references normalised.
func (r *CatalogRepository) ListSubcategories(ctx context.Context) ([]domain.Subcategory, error) {
	docs, err := r.subcategories.Query(ctx, func(query firestore.Query) firestore.Query {
		return query.OrderBy(firestore.DocumentID, firestore.Asc)
	})
	if err != nil {
		return nil, err
	}

	subcategories := make([]domain.Subcategory, 0, len(docs))
	for _, doc := range docs {
		subcategories = append(subcategories, domain.Subcategory{
			ID:        doc.ID,
			Name:      i18n.FromValue(doc.Data["name"]),
			Category:  catalog.NormalizeCategoryRef(parentValue(doc.Data)),
			CreatedAt: doc.CreateTime,
		})
	}
	return subcategories, nil
}

// ListProducts returns the full product set, newest first.
func (r *CatalogRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	docs, err := r.products.Query(ctx, nil)
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(docs))
	for _, doc := range docs {
		products = append(products, decodeProduct(doc))
	}
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	return products, nil
}

// FindProduct fetches a single product by id.
func (r *CatalogRepository) FindProduct(ctx context.Context, productID string) (domain.Product, error) {
	doc, err := r.products.Get(ctx, productID)
	if err != nil {
		return domain.Product{}, err
	}
	return decodeProduct(doc), nil
}

func decodeProduct(doc pfirestore.Document[map[string]any]) domain.Product {
	data := doc.Data
	return domain.Product{
		ID:           doc.ID,
		SKU:          stringField(data, "sku"),
		Name:         i18n.FromValue(data["name"]),
		Description:  i18n.FromValue(data["description"]),
		Features:     textListField(data["features"]),
		Specs:        textMapField(data["specs"]),
		ShippingInfo: i18n.FromValue(data["shippingInfo"]),
		Warranty:     i18n.FromValue(data["warranty"]),
		Subcategory:  catalog.NormalizeSubcategoryRef(subcategoryValue(data)),
		Price:        floatField(data, "price"),
		Images:       imageListField(data["images"]),
		CreatedAt:    doc.CreateTime,
	}
}

func parentValue(data map[string]any) any {
	for _, key := range []string{"category", "categoryId", "category_id", "parent"} {
		if value, ok := data[key]; ok && value != nil {
			return value
		}
	}
	return nil
}

func subcategoryValue(data map[string]any) any {
	for _, key := range []string{"subcategory", "subcategoryId", "subcategory_id"} {
		if value, ok := data[key]; ok && value != nil {
			return value
		}
	}
	return nil
}

func stringField(data map[string]any, key string) string {
	value, ok := data[key]
	if !ok {
		return ""
	}
	text, ok := value.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(text)
}

func floatField(data map[string]any, key string) float64 {
	switch value := data[key].(type) {
	case float64:
		return value
	case int64:
		return float64(value)
	case int:
		return float64(value)
	default:
		return 0
	}
}

func textListField(value any) []i18n.Text {
	items, ok := value.([]any)
	if !ok {
		return nil
	}
	texts := make([]i18n.Text, 0, len(items))
	for _, item := range items {
		texts = append(texts, i18n.FromValue(item))
	}
	return texts
}

func textMapField(value any) map[string]i18n.Text {
	entries, ok := value.(map[string]any)
	if !ok || len(entries) == 0 {
		return nil
	}
	texts := make(map[string]i18n.Text, len(entries))
	for key, item := range entries {
		texts[key] = i18n.FromValue(item)
	}
	return texts
}

func imageListField(value any) []string {
	items, ok := value.([]any)
	if !ok {
		return nil
	}
	urls := make([]string, 0, len(items))
	for _, item := range items {
		switch image := item.(type) {
		case string:
			if trimmed := strings.TrimSpace(image); trimmed != "" {
				urls = append(urls, trimmed)
			}
		case map[string]any:
			if url, ok := image["url"].(string); ok && strings.TrimSpace(url) != "" {
				urls = append(urls, strings.TrimSpace(url))
			}
		}
	}
	return urls
}
