package catalog

import (
	"reflect"
	"testing"

	"github.com/tibacare/storefront/internal/domain"
	"github.com/tibacare/storefront/internal/i18n"
)

func fixtureCategories() []domain.Category {
	return []domain.Category{
		{ID: "cat-devices", Name: i18n.Bilingual("Medical Devices", "أجهزة طبية")},
		{ID: "cat-supplies", Name: i18n.Bilingual("Medical Supplies", "مستلزمات طبية")},
	}
}

func fixtureSubcategories() []domain.Subcategory {
	return []domain.Subcategory{
		{ID: "sub-monitors", Name: i18n.Bilingual("Monitors", "أجهزة قياس"), Category: domain.CategoryRef{ID: "cat-devices"}},
		{ID: "sub-thermo", Name: i18n.Bilingual("Thermometers", "موازين حرارة"), Category: domain.CategoryRef{ID: "cat-devices"}},
		{ID: "sub-masks", Name: i18n.Bilingual("Masks", "كمامات"), Category: domain.CategoryRef{ID: "cat-supplies"}},
	}
}

func fixtureProducts() []domain.Product {
	return []domain.Product{
		{ID: "p1", Name: i18n.Plain("Blood Pressure Monitor"), Subcategory: domain.SubcategoryRef{ID: "sub-monitors"}},
		{ID: "p2", Name: i18n.Plain("Digital Thermometer"), Subcategory: domain.SubcategoryRef{ID: "sub-thermo"}},
		{ID: "p3", Name: i18n.Plain("Surgical Mask"), Subcategory: domain.SubcategoryRef{Label: i18n.Bilingual("Masks", "كمامات")}},
		{ID: "p4", Name: i18n.Plain("Mystery Gadget"), Subcategory: domain.SubcategoryRef{Label: i18n.Plain("Gadgets")}},
	}
}

func TestFilterOptionsOrderAndDeduplication(t *testing.T) {
	got := FilterOptions(fixtureCategories(), fixtureSubcategories(), fixtureProducts(), i18n.English)

	want := []string{"All", "Medical Devices", "Medical Supplies", "Monitors", "Thermometers", "Masks", "Gadgets"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected options:\n got %v\nwant %v", got, want)
	}
}

func TestFilterOptionsArabic(t *testing.T) {
	got := FilterOptions(fixtureCategories(), fixtureSubcategories(), nil, i18n.Arabic)

	want := []string{"All", "أجهزة طبية", "مستلزمات طبية", "أجهزة قياس", "موازين حرارة", "كمامات"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected options:\n got %v\nwant %v", got, want)
	}
}

func TestFilterOptionsSkipsEmptyLabels(t *testing.T) {
	categories := []domain.Category{{ID: "c1", Name: i18n.Bilingual("", "")}}

	got := FilterOptions(categories, nil, nil, i18n.English)

	if !reflect.DeepEqual(got, []string{"All"}) {
		t.Fatalf("expected only sentinel, got %v", got)
	}
}

func TestProductSubcategoryLabel(t *testing.T) {
	subcategories := fixtureSubcategories()

	byID := domain.Product{Subcategory: domain.SubcategoryRef{ID: "sub-monitors"}}
	if got := ProductSubcategoryLabel(byID, subcategories, i18n.Arabic); got != "أجهزة قياس" {
		t.Fatalf("expected id resolution, got %q", got)
	}

	byLabel := domain.Product{Subcategory: domain.SubcategoryRef{Label: i18n.Plain("Gadgets")}}
	if got := ProductSubcategoryLabel(byLabel, subcategories, i18n.English); got != "Gadgets" {
		t.Fatalf("expected label fallback, got %q", got)
	}

	danglingID := domain.Product{Subcategory: domain.SubcategoryRef{ID: "sub-ghost", Label: i18n.Plain("Ghost")}}
	if got := ProductSubcategoryLabel(danglingID, subcategories, i18n.English); got != "Ghost" {
		t.Fatalf("expected label fallback for dangling id, got %q", got)
	}

	unresolvable := domain.Product{}
	if got := ProductSubcategoryLabel(unresolvable, subcategories, i18n.English); got != "" {
		t.Fatalf("expected empty label, got %q", got)
	}
}

func TestMatchesFilterSentinelMatchesEverything(t *testing.T) {
	for _, product := range fixtureProducts() {
		if !MatchesFilter(product, FilterAll, fixtureCategories(), fixtureSubcategories(), i18n.English) {
			t.Fatalf("expected sentinel to match %s", product.ID)
		}
		if !MatchesFilter(product, "", fixtureCategories(), fixtureSubcategories(), i18n.English) {
			t.Fatalf("expected empty selection to match %s", product.ID)
		}
	}
}

func TestMatchesFilterSubcategorySelection(t *testing.T) {
	products := fixtureProducts()

	if !MatchesFilter(products[0], "Monitors", fixtureCategories(), fixtureSubcategories(), i18n.English) {
		t.Fatal("expected monitor to match Monitors")
	}
	if MatchesFilter(products[1], "Monitors", fixtureCategories(), fixtureSubcategories(), i18n.English) {
		t.Fatal("expected thermometer not to match Monitors")
	}
	if !MatchesFilter(products[0], "أجهزة قياس", fixtureCategories(), fixtureSubcategories(), i18n.Arabic) {
		t.Fatal("expected monitor to match the arabic label in arabic")
	}
}

func TestMatchesFilterParentCategorySelection(t *testing.T) {
	products := fixtureProducts()
	categories := fixtureCategories()
	subcategories := fixtureSubcategories()

	if !MatchesFilter(products[0], "Medical Devices", categories, subcategories, i18n.English) {
		t.Fatal("expected monitor under Medical Devices")
	}
	if !MatchesFilter(products[1], "Medical Devices", categories, subcategories, i18n.English) {
		t.Fatal("expected thermometer under Medical Devices")
	}
	if MatchesFilter(products[2], "Medical Devices", categories, subcategories, i18n.English) {
		t.Fatal("expected mask not to match Medical Devices")
	}
	if !MatchesFilter(products[2], "Medical Supplies", categories, subcategories, i18n.English) {
		t.Fatal("expected label-referenced mask under Medical Supplies")
	}
}

func TestMatchesFilterUnknownSelection(t *testing.T) {
	for _, product := range fixtureProducts() {
		if MatchesFilter(product, "Bicycles", fixtureCategories(), fixtureSubcategories(), i18n.English) {
			t.Fatalf("expected %s not to match unknown selection", product.ID)
		}
	}
}
