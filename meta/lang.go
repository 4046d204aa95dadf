package meta

import (
	"context"
	"fmt"
)

// Catalog holds message translations per language.
// The outer map is keyed by language, the inner one by source text.
type Catalog struct {
	translations map[string]map[string]string
	defaultLang  string
}

// NewCatalog creates a Catalog with the given translations and fallback language.
func NewCatalog(translations map[string]map[string]string, defaultLang string) *Catalog {
	if translations == nil {
		translations = map[string]map[string]string{}
	}
	return &Catalog{translations: translations, defaultLang: defaultLang}
}

// Tr returns the translation of text for lang.
// Falls back to the default language, then to text itself.
func (c *Catalog) Tr(text, lang string) string {
	if lang != "" {
		if res := c.translations[lang][text]; res != "" {
			return res
		}
	}
	if res := c.translations[c.defaultLang][text]; res != "" {
		return res
	}
	return text
}

// TrCtx returns the translation of text using the language from the context.
func (c *Catalog) TrCtx(ctx context.Context, text string) string {
	return c.Tr(text, Find(ctx, AcceptLanguage))
}

// Format translates template and substitutes args into it with fmt.Sprintf.
// The translation context may be a context.Context carrying AcceptLanguage,
// a language tag string, or nil for the default language.
func (c *Catalog) Format(template string, args []any, translationCtx any) string {
	var translated string
	switch v := translationCtx.(type) {
	case context.Context:
		translated = c.TrCtx(v, template)
	case string:
		translated = c.Tr(template, v)
	default:
		translated = c.Tr(template, "")
	}

	if len(args) == 0 {
		return translated
	}
	return fmt.Sprintf(translated, args...)
}
