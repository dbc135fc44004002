package catalog

import (
	"fmt"
	"strings"

	"github.com/tibacare/storefront/internal/domain"
	"github.com/tibacare/storefront/internal/i18n"
)

// NormalizeCategoryRef collapses the shapes a parent-category reference
// arrives in (bare id string, or embedded object carrying an id field)
// into a CategoryRef. Anything unrecognisable normalizes to the zero ref.
// This is the single site that branches on the reference's shape; every
// consumer downstream sees only the normalized form.
func NormalizeCategoryRef(value any) domain.CategoryRef {
	switch v := value.(type) {
	case nil:
		return domain.CategoryRef{}
	case string:
		return domain.CategoryRef{ID: strings.TrimSpace(v)}
	case domain.CategoryRef:
		return v
	case map[string]any:
		return domain.CategoryRef{ID: extractID(v)}
	default:
		return domain.CategoryRef{}
	}
}

// NormalizeSubcategoryRef collapses a product's subcategory field (bare
// id, plain display label, or embedded object) into a SubcategoryRef. A
// bare string is kept as both candidate id and label, since catalogs use
// the same field for either; matching resolves the ambiguity against the
// subcategory list.
func NormalizeSubcategoryRef(value any) domain.SubcategoryRef {
	switch v := value.(type) {
	case nil:
		return domain.SubcategoryRef{}
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return domain.SubcategoryRef{}
		}
		return domain.SubcategoryRef{ID: trimmed, Label: i18n.Plain(trimmed)}
	case domain.SubcategoryRef:
		return v
	case map[string]any:
		ref := domain.SubcategoryRef{ID: extractID(v)}
		if name, ok := v["name"]; ok {
			ref.Label = i18n.FromValue(name)
		}
		return ref
	default:
		return domain.SubcategoryRef{}
	}
}

func extractID(values map[string]any) string {
	for _, key := range []string{"id", "_id", "categoryId", "category_id"} {
		raw, ok := values[key]
		if !ok || raw == nil {
			continue
		}
		if s, ok := raw.(string); ok {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				return trimmed
			}
			continue
		}
		return strings.TrimSpace(fmt.Sprint(raw))
	}
	return ""
}
