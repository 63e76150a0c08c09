package i18n

import (
	"fmt"

	"github.com/sadopc/daytally/internal/store"
)

// Prefs is the subset of the key-value store the language preference uses.
type Prefs interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Load returns the saved language, or Detect(locale) when none is saved or
// the saved value is unknown.
func Load(p Prefs, locale string) (Lang, error) {
	v, ok, err := p.Get(store.KeyLanguage)
	if err != nil {
		return "", fmt.Errorf("load language: %w", err)
	}
	if ok {
		if l, ok := Parse(v); ok {
			return l, nil
		}
	}
	return Detect(locale), nil
}

// SaveLang persists the chosen language.
func SaveLang(p Prefs, l Lang) error {
	if _, ok := Parse(string(l)); !ok {
		return fmt.Errorf("unsupported language %q", l)
	}
	return p.Set(store.KeyLanguage, string(l))
}
