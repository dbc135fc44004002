package i18n

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Text is a catalog field that may be authored in one or both of the
// storefront languages. The zero value resolves to the empty string in
// every language. Text is immutable once constructed, so values can be
// shared freely across goroutines and memoized consumers.
type Text struct {
	plain     string
	en        string
	ar        string
	bilingual bool
}

// Plain wraps a single-language string.
func Plain(value string) Text {
	return Text{plain: value}
}

// Bilingual constructs a Text carrying both language variants. Either
// variant may be empty.
func Bilingual(en, ar string) Text {
	return Text{en: en, ar: ar, bilingual: true}
}

// IsZero reports whether the text carries no content in any language.
func (t Text) IsZero() bool {
	if t.bilingual {
		return t.en == "" && t.ar == ""
	}
	return t.plain == ""
}

// Resolve returns the display string for the requested language. Plain
// values are returned unchanged. Bilingual values fall back from the
// requested language to English, then Arabic, then the empty string.
// Resolve is pure and total: it never fails and never returns a
// non-string result.
func (t Text) Resolve(lang Language) string {
	if !t.bilingual {
		return t.plain
	}
	var preferred string
	switch lang {
	case Arabic:
		preferred = t.ar
	default:
		preferred = t.en
	}
	if preferred != "" {
		return preferred
	}
	if t.en != "" {
		return t.en
	}
	return t.ar
}

// ResolveList resolves every element independently, preserving length and
// order so index-aligned consumers stay aligned. Empty results are kept.
func ResolveList(values []Text, lang Language) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.Resolve(lang)
	}
	return out
}

// ResolveMap resolves every value of a bilingual-valued map for the
// requested language.
func ResolveMap(values map[string]Text, lang Language) map[string]string {
	if values == nil {
		return nil
	}
	out := make(map[string]string, len(values))
	for k, v := range values {
		out[k] = v.Resolve(lang)
	}
	return out
}

// FromValue normalizes an arbitrary decoded value (JSON or Firestore) into
// a Text. Strings stay plain; maps are read through the recognised language
// keys; nil becomes the zero Text; anything else is string-coerced as a
// defensive last resort.
func FromValue(value any) Text {
	switch v := value.(type) {
	case nil:
		return Text{}
	case Text:
		return v
	case string:
		return Plain(v)
	case map[string]any:
		return fromMap(v)
	case map[string]string:
		anyMap := make(map[string]any, len(v))
		for k, s := range v {
			anyMap[k] = s
		}
		return fromMap(anyMap)
	default:
		return Plain(fmt.Sprint(v))
	}
}

// Recognised key aliases for the two language slots. Catalog records in the
// wild use both the bare language codes and the primary/secondary naming.
var (
	englishKeys = []string{"en", "primary"}
	arabicKeys  = []string{"ar", "secondary"}
)

func fromMap(values map[string]any) Text {
	lookup := func(keys []string) string {
		for _, key := range keys {
			raw, ok := values[key]
			if !ok {
				continue
			}
			switch s := raw.(type) {
			case nil:
				continue
			case string:
				if s != "" {
					return s
				}
			default:
				return fmt.Sprint(s)
			}
		}
		return ""
	}
	return Bilingual(lookup(englishKeys), lookup(arabicKeys))
}

// UnmarshalJSON accepts a plain JSON string, a bilingual object, or any
// scalar. Malformed shapes degrade to the zero Text rather than failing
// the surrounding decode.
func (t *Text) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*t = Text{}
		return nil
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		*t = Text{}
		return nil
	}
	*t = FromValue(raw)
	return nil
}

// MarshalJSON emits a plain string for plain values and an {en, ar} object
// for bilingual values, matching the shapes accepted on decode.
func (t Text) MarshalJSON() ([]byte, error) {
	if !t.bilingual {
		return json.Marshal(t.plain)
	}
	return json.Marshal(map[string]string{"en": t.en, "ar": t.ar})
}
