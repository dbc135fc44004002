// Package i18n resolves the storefront's bilingual catalog fields into
// display strings and negotiates the active language per request.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Language identifies one of the two storefront languages.
type Language string

const (
	// English is the primary catalog language and the fallback for
	// partially translated fields.
	English Language = "en"
	// Arabic is the secondary catalog language.
	Arabic Language = "ar"
)

// Default is the language used when negotiation yields nothing usable.
const Default = English

var supportedTags = []language.Tag{language.English, language.Arabic}

var matcher = language.NewMatcher(supportedTags)

// Parse maps a raw language code ("en", "ar-EG", "EN") onto a supported
// Language. The second result is false when the code names neither
// language.
func Parse(code string) (Language, bool) {
	tag, err := language.Parse(strings.TrimSpace(code))
	if err != nil {
		return Default, false
	}
	base, confidence := tag.Base()
	if confidence == language.No {
		return Default, false
	}
	switch base.String() {
	case "en":
		return English, true
	case "ar":
		return Arabic, true
	}
	return Default, false
}

// Match picks the active language for a request: an explicit query
// parameter wins, then the Accept-Language header, then the default.
func Match(queryParam, acceptHeader string) Language {
	if lang, ok := Parse(queryParam); ok {
		return lang
	}
	if acceptHeader != "" {
		if tags, _, err := language.ParseAcceptLanguage(acceptHeader); err == nil && len(tags) > 0 {
			_, idx, _ := matcher.Match(tags...)
			if idx >= 0 && idx < len(supportedTags) {
				if lang, ok := Parse(supportedTags[idx].String()); ok {
					return lang
				}
			}
		}
	}
	return Default
}
