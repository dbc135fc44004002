package domain

import (
	"time"

	"github.com/tibacare/storefront/internal/i18n"
)

// CategoryRef is a normalized reference to a parent category. Catalog
// records reference categories either as an inline id or as an embedded
// object; both shapes collapse to the id at the ingestion boundary, and
// membership is always decided by id equality.
type CategoryRef struct {
	ID string
}

// IsZero reports whether the reference points at nothing.
func (r CategoryRef) IsZero() bool { return r.ID == "" }

// SubcategoryRef is a product's normalized subcategory reference. Products
// in the catalog reference subcategories inconsistently: as a bare id, as a
// plain display label, or as an embedded object. Normalization keeps
// whichever parts were present; matching falls back from id to label.
type SubcategoryRef struct {
	ID    string
	Label i18n.Text
}

// IsZero reports whether the reference carries neither an id nor a label.
func (r SubcategoryRef) IsZero() bool { return r.ID == "" && r.Label.IsZero() }

// Category is a top-level catalog grouping.
type Category struct {
	ID        string
	Name      i18n.Text
	CreatedAt time.Time
}

// Subcategory is a second-level catalog grouping owned by a Category.
type Subcategory struct {
	ID        string
	Name      i18n.Text
	Category  CategoryRef
	CreatedAt time.Time
}

// Product is a sellable catalog record. Every presentation field may be
// authored in one or both storefront languages.
type Product struct {
	ID           string
	SKU          string
	Name         i18n.Text
	Description  i18n.Text
	Features     []i18n.Text
	Specs        map[string]i18n.Text
	ShippingInfo i18n.Text
	Warranty     i18n.Text
	Subcategory  SubcategoryRef
	Price        float64
	Images       []string
	CreatedAt    time.Time
}

// CartEntry is one product line in the persisted cart. The JSON field
// names are a de facto wire format: other consumers read the persisted
// collection directly, so they must not change.
type CartEntry struct {
	ProductID string    `json:"id"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"addedAt"`
}

// CartLine pairs a cart entry with its resolved product for rendering.
// Entries whose product no longer exists in the catalog are not turned
// into lines; they simply contribute nothing.
type CartLine struct {
	Product   Product
	Quantity  int
	LineTotal float64
}

// Totals is the checkout money summary derived from the cart. All fields
// are non-negative.
type Totals struct {
	Subtotal float64
	Shipping float64
	VAT      float64
	Total    float64
}

// ShippingOption is one configured delivery choice offered at checkout.
type ShippingOption struct {
	ID    string
	Label i18n.Text
	Cost  float64
}
