// Package catalog builds the filterable view of the two-level category
// hierarchy and decides which products a filter selection matches.
package catalog

import (
	"github.com/tibacare/storefront/internal/domain"
	"github.com/tibacare/storefront/internal/i18n"
)

// FilterAll is the sentinel selection that matches every product.
const FilterAll = "All"

// FilterOptions returns the ordered, deduplicated list of filter labels
// for the active language: the sentinel, then category labels, then
// subcategory labels, then labels derived from the products themselves.
// Product-derived labels tolerate catalogs where products reference
// subcategories that are missing from the subcategory list. First
// occurrence wins, so the order is stable across calls.
func FilterOptions(categories []domain.Category, subcategories []domain.Subcategory, products []domain.Product, lang i18n.Language) []string {
	options := make([]string, 0, 1+len(categories)+len(subcategories))
	seen := make(map[string]struct{}, 1+len(categories)+len(subcategories))

	appendLabel := func(label string) {
		if label == "" {
			return
		}
		if _, ok := seen[label]; ok {
			return
		}
		seen[label] = struct{}{}
		options = append(options, label)
	}

	appendLabel(FilterAll)
	for _, category := range categories {
		appendLabel(category.Name.Resolve(lang))
	}
	for _, subcategory := range subcategories {
		appendLabel(subcategory.Name.Resolve(lang))
	}
	for _, product := range products {
		appendLabel(ProductSubcategoryLabel(product, subcategories, lang))
	}
	return options
}

// ProductSubcategoryLabel resolves a product's subcategory reference to a
// display label. A reference by id resolves through the subcategory list;
// otherwise the reference's own label is used. An unresolvable reference
// yields the empty string, never an error.
func ProductSubcategoryLabel(product domain.Product, subcategories []domain.Subcategory, lang i18n.Language) string {
	ref := product.Subcategory
	if ref.ID != "" {
		for _, subcategory := range subcategories {
			if subcategory.ID == ref.ID {
				return subcategory.Name.Resolve(lang)
			}
		}
	}
	return ref.Label.Resolve(lang)
}

// MatchesFilter reports whether the product belongs under the given filter
// selection. The sentinel matches everything. An exact match against the
// product's resolved subcategory label is checked first, because category
// and subcategory labels can coincide; only then is the selection treated
// as a parent-category label and matched through the subcategory's
// normalized parent id.
func MatchesFilter(product domain.Product, selection string, categories []domain.Category, subcategories []domain.Subcategory, lang i18n.Language) bool {
	if selection == "" || selection == FilterAll {
		return true
	}

	label := ProductSubcategoryLabel(product, subcategories, lang)
	if label != "" && label == selection {
		return true
	}

	var parent *domain.Category
	for i := range categories {
		if categories[i].Name.Resolve(lang) == selection {
			parent = &categories[i]
			break
		}
	}
	if parent == nil {
		return false
	}

	if product.Subcategory.ID != "" {
		for _, subcategory := range subcategories {
			if subcategory.ID == product.Subcategory.ID {
				return subcategory.Category.ID == parent.ID
			}
		}
	}
	if label == "" {
		return false
	}
	for _, subcategory := range subcategories {
		if subcategory.Name.Resolve(lang) != label {
			continue
		}
		if subcategory.Category.ID == parent.ID {
			return true
		}
	}
	return false
}
