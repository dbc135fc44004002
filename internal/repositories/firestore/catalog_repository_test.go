package firestore

import (
	"testing"
	"time"

	"github.com/tibacare/storefront/internal/i18n"
	pfirestore "github.com/tibacare/storefront/internal/platform/firestore"
)

func TestDecodeProductBilingualFields(t *testing.T) {
	created := time.Date(2026, time.January, 10, 8, 0, 0, 0, time.UTC)
	doc := pfirestore.Document[map[string]any]{
		ID: "prod-1",
		Data: map[string]any{
			"sku":  " TB-100 ",
			"name": map[string]any{"en": "Blood Pressure Monitor", "ar": "جهاز قياس ضغط الدم"},
			"description": map[string]any{
				"en": "Automatic upper-arm monitor",
				"ar": "جهاز أوتوماتيكي للذراع",
			},
			"features": []any{
				"Large display",
				map[string]any{"en": "Memory for 2 users", "ar": "ذاكرة لمستخدمين"},
			},
			"specs": map[string]any{
				"weight": map[string]any{"en": "340 g", "ar": "٣٤٠ غرام"},
			},
			"shippingInfo": "Ships within 2 days",
			"subcategory":  map[string]any{"id": "sub-1", "name": map[string]any{"en": "Monitors"}},
			"price":        int64(249),
			"images": []any{
				"https://cdn.example.com/p1.jpg",
				map[string]any{"url": "https://cdn.example.com/p2.jpg"},
				map[string]any{"alt": "no url"},
			},
		},
		CreateTime: created,
	}

	product := decodeProduct(doc)

	if product.ID != "prod-1" || product.SKU != "TB-100" {
		t.Fatalf("unexpected identity fields: %+v", product)
	}
	if got := product.Name.Resolve(i18n.Arabic); got != "جهاز قياس ضغط الدم" {
		t.Errorf("unexpected arabic name: %s", got)
	}
	if len(product.Features) != 2 {
		t.Fatalf("expected 2 features, got %d", len(product.Features))
	}
	if got := product.Features[0].Resolve(i18n.Arabic); got != "Large display" {
		t.Errorf("expected plain feature to resolve for arabic, got %s", got)
	}
	if got := product.Specs["weight"].Resolve(i18n.English); got != "340 g" {
		t.Errorf("unexpected spec resolution: %s", got)
	}
	if product.Subcategory.ID != "sub-1" {
		t.Errorf("unexpected subcategory ref: %+v", product.Subcategory)
	}
	if product.Price != 249 {
		t.Errorf("unexpected price: %v", product.Price)
	}
	if len(product.Images) != 2 {
		t.Errorf("expected 2 usable images, got %v", product.Images)
	}
	if !product.CreatedAt.Equal(created) {
		t.Errorf("unexpected created at: %s", product.CreatedAt)
	}
}

func TestDecodeProductToleratesMissingFields(t *testing.T) {
	product := decodeProduct(pfirestore.Document[map[string]any]{ID: "prod-2", Data: map[string]any{}})

	if !product.Name.IsZero() {
		t.Errorf("expected zero name, got %+v", product.Name)
	}
	if product.Price != 0 {
		t.Errorf("expected zero price, got %v", product.Price)
	}
	if product.Features != nil || product.Specs != nil || product.Images != nil {
		t.Errorf("expected nil collections, got %+v", product)
	}
}

func TestParentValuePrefersInlineCategory(t *testing.T) {
	data := map[string]any{
		"category":   "cat-1",
		"categoryId": "cat-2",
	}
	if got := parentValue(data); got != "cat-1" {
		t.Errorf("expected category key to win, got %v", got)
	}

	if got := parentValue(map[string]any{"categoryId": "cat-2"}); got != "cat-2" {
		t.Errorf("expected categoryId fallback, got %v", got)
	}
	if got := parentValue(map[string]any{}); got != nil {
		t.Errorf("expected nil for missing parent, got %v", got)
	}
}

func TestFloatFieldHandlesNumericTypes(t *testing.T) {
	data := map[string]any{"a": float64(1.5), "b": int64(2), "c": "nope"}
	if got := floatField(data, "a"); got != 1.5 {
		t.Errorf("unexpected float64 value: %v", got)
	}
	if got := floatField(data, "b"); got != 2 {
		t.Errorf("unexpected int64 value: %v", got)
	}
	if got := floatField(data, "c"); got != 0 {
		t.Errorf("expected 0 for non-numeric, got %v", got)
	}
	if got := floatField(data, "missing"); got != 0 {
		t.Errorf("expected 0 for missing, got %v", got)
	}
}
