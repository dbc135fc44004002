package i18n

import (
	"encoding/json"
	"testing"
)

func TestResolvePlainIgnoresLanguage(t *testing.T) {
	text := Plain("Blood Pressure Monitor")

	if got := text.Resolve(English); got != "Blood Pressure Monitor" {
		t.Fatalf("unexpected english value: %q", got)
	}
	if got := text.Resolve(Arabic); got != "Blood Pressure Monitor" {
		t.Fatalf("unexpected arabic value: %q", got)
	}
}

func TestResolveBilingualPrefersRequestedLanguage(t *testing.T) {
	text := Bilingual("Thermometer", "ميزان حرارة")

	if got := text.Resolve(English); got != "Thermometer" {
		t.Fatalf("unexpected english value: %q", got)
	}
	if got := text.Resolve(Arabic); got != "ميزان حرارة" {
		t.Fatalf("unexpected arabic value: %q", got)
	}
}

func TestResolveFallbackChain(t *testing.T) {
	cases := []struct {
		name string
		text Text
		lang Language
		want string
	}{
		{name: "missing arabic falls back to english", text: Bilingual("Thermometer", ""), lang: Arabic, want: "Thermometer"},
		{name: "missing english falls back to arabic", text: Bilingual("", "ميزان حرارة"), lang: English, want: "ميزان حرارة"},
		{name: "empty bilingual resolves empty", text: Bilingual("", ""), lang: Arabic, want: ""},
		{name: "zero value resolves empty", text: Text{}, lang: English, want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.text.Resolve(tc.lang); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestResolveListPreservesLengthAndOrder(t *testing.T) {
	values := []Text{
		Bilingual("Accurate readings", "قراءات دقيقة"),
		Plain("2-year warranty"),
		Bilingual("", ""),
	}

	resolved := ResolveList(values, Arabic)

	if len(resolved) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(resolved))
	}
	if resolved[0] != "قراءات دقيقة" {
		t.Fatalf("unexpected first entry: %q", resolved[0])
	}
	if resolved[1] != "2-year warranty" {
		t.Fatalf("unexpected second entry: %q", resolved[1])
	}
	if resolved[2] != "" {
		t.Fatalf("expected empty third entry, got %q", resolved[2])
	}
}

func TestResolveMap(t *testing.T) {
	values := map[string]Text{
		"weight": Plain("250g"),
		"power":  Bilingual("Battery", "بطارية"),
	}

	resolved := ResolveMap(values, Arabic)

	if resolved["weight"] != "250g" {
		t.Fatalf("unexpected weight: %q", resolved["weight"])
	}
	if resolved["power"] != "بطارية" {
		t.Fatalf("unexpected power: %q", resolved["power"])
	}
}

func TestFromValueShapes(t *testing.T) {
	cases := []struct {
		name  string
		value any
		lang  Language
		want  string
	}{
		{name: "nil", value: nil, lang: English, want: ""},
		{name: "string", value: "Nebulizer", lang: Arabic, want: "Nebulizer"},
		{name: "language keys", value: map[string]any{"en": "Nebulizer", "ar": "جهاز استنشاق"}, lang: Arabic, want: "جهاز استنشاق"},
		{name: "primary secondary keys", value: map[string]any{"primary": "Nebulizer", "secondary": "جهاز استنشاق"}, lang: English, want: "Nebulizer"},
		{name: "partial object", value: map[string]any{"en": "Nebulizer"}, lang: Arabic, want: "Nebulizer"},
		{name: "string map", value: map[string]string{"ar": "جهاز استنشاق"}, lang: Arabic, want: "جهاز استنشاق"},
		{name: "numeric coerced", value: 42, lang: English, want: "42"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FromValue(tc.value).Resolve(tc.lang); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestTextJSONRoundTrip(t *testing.T) {
	var plain Text
	if err := json.Unmarshal([]byte(`"Thermometer"`), &plain); err != nil {
		t.Fatalf("unmarshal plain: %v", err)
	}
	if plain.Resolve(Arabic) != "Thermometer" {
		t.Fatalf("unexpected plain resolve: %q", plain.Resolve(Arabic))
	}

	var bilingual Text
	if err := json.Unmarshal([]byte(`{"en":"Thermometer","ar":"ميزان حرارة"}`), &bilingual); err != nil {
		t.Fatalf("unmarshal bilingual: %v", err)
	}
	if bilingual.Resolve(Arabic) != "ميزان حرارة" {
		t.Fatalf("unexpected bilingual resolve: %q", bilingual.Resolve(Arabic))
	}

	data, err := json.Marshal(bilingual)
	if err != nil {
		t.Fatalf("marshal bilingual: %v", err)
	}
	var decoded map[string]string
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("parse marshalled bilingual: %v", err)
	}
	if decoded["ar"] != "ميزان حرارة" {
		t.Fatalf("unexpected marshalled value: %v", decoded)
	}
}

func TestTextUnmarshalMalformedDegradesToZero(t *testing.T) {
	var text Text
	if err := json.Unmarshal([]byte(`null`), &text); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !text.IsZero() {
		t.Fatal("expected zero text for null")
	}
}
