// Package filter keeps a single catalog filter selection consistent with
// the query string and the active language. The URL carries the
// human-readable label rather than an entity id, which keeps links
// shareable and legible; the price of that choice is the re-resolution
// step this package performs when the language switches.
package filter

import (
	"net/url"

	"github.com/tibacare/storefront/internal/catalog"
	"github.com/tibacare/storefront/internal/domain"
	"github.com/tibacare/storefront/internal/i18n"
)

// Query parameter names mirrored by the selection. They are mutually
// exclusive: writing one clears the other.
const (
	ParamCategory    = "category"
	ParamSubcategory = "subcategory"
)

// Synchronizer holds the current selection for one storefront view. It is
// single-owner state driven by UI callbacks; it performs no locking of its
// own.
type Synchronizer struct {
	categories    []domain.Category
	subcategories []domain.Subcategory
	lang          i18n.Language
	selection     string
}

// NewSynchronizer starts with the sentinel selection in the given
// language.
func NewSynchronizer(categories []domain.Category, subcategories []domain.Subcategory, lang i18n.Language) *Synchronizer {
	return &Synchronizer{
		categories:    categories,
		subcategories: subcategories,
		lang:          lang,
		selection:     catalog.FilterAll,
	}
}

// Selection returns the active filter label.
func (s *Synchronizer) Selection() string { return s.selection }

// Language returns the language the current selection is expressed in.
func (s *Synchronizer) Language() i18n.Language { return s.lang }

// ApplyQuery adopts the selection carried by the query string. A
// subcategory parameter wins over a category parameter; when neither is
// present the selection resets to the sentinel.
func (s *Synchronizer) ApplyQuery(values url.Values) {
	s.selection = SelectionFromQuery(values)
}

// SelectionFromQuery extracts the filter selection a query string
// represents, without touching any synchronizer state.
func SelectionFromQuery(values url.Values) string {
	if sub := values.Get(ParamSubcategory); sub != "" {
		return sub
	}
	if cat := values.Get(ParamCategory); cat != "" {
		return cat
	}
	return catalog.FilterAll
}

// SetLanguage switches the active language, carrying the selection across
// by reverse-looking-up the entity whose label (in the outgoing language)
// equals the current selection and re-resolving that entity's name in the
// incoming language. A selection that names no catalog entity, such as a
// raw product-derived label, is left unchanged: best effort, not an error.
//
// When two entities share a label in the outgoing language the first match
// wins. The label, not the id, lives in the URL, so the collision is not
// decidable here; the behaviour is documented rather than patched.
func (s *Synchronizer) SetLanguage(lang i18n.Language) {
	previous := s.lang
	s.lang = lang
	if lang == previous || s.selection == catalog.FilterAll || s.selection == "" {
		return
	}

	for _, category := range s.categories {
		if category.Name.Resolve(previous) == s.selection {
			if label := category.Name.Resolve(lang); label != "" {
				s.selection = label
			}
			return
		}
	}
	for _, subcategory := range s.subcategories {
		if subcategory.Name.Resolve(previous) == s.selection {
			if label := subcategory.Name.Resolve(lang); label != "" {
				s.selection = label
			}
			return
		}
	}
}

// Select adopts a user-initiated selection and returns the query values
// that mirror it. The label is classified against the catalog: a category
// label writes the category parameter, anything else routes as a
// subcategory. The sentinel clears both parameters.
func (s *Synchronizer) Select(label string) url.Values {
	if label == "" {
		label = catalog.FilterAll
	}
	s.selection = label
	return s.Params()
}

// Params renders the current selection as query values.
func (s *Synchronizer) Params() url.Values {
	values := url.Values{}
	if s.selection == "" || s.selection == catalog.FilterAll {
		return values
	}
	for _, category := range s.categories {
		if category.Name.Resolve(s.lang) == s.selection {
			values.Set(ParamCategory, s.selection)
			return values
		}
	}
	values.Set(ParamSubcategory, s.selection)
	return values
}
