// Package i18n resolves label keys to display text. Keys are opaque: callers
// pass whatever the schema declares and receive either a translation or the
// fallback.
package i18n

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingTranslator is passed to MissingTranslationHandler when no
// translator is configured.
var ErrMissingTranslator = errors.New("i18n: translator is not configured")

// ErrMissingKey is returned by MapTranslator for unknown keys.
var ErrMissingKey = errors.New("i18n: missing translation")

// Translator resolves a key for a locale. Args are applied with fmt.Sprintf
// semantics by implementations that support them.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function into a Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

// Translate delegates to the underlying function.
func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

// MissingTranslationHandler decides what to display when a key cannot be
// translated. err is ErrMissingTranslator when no translator is set.
type MissingTranslationHandler func(locale, key, fallback string, err error) string

// KeepFallback returns the fallback when present, otherwise the key itself.
func KeepFallback(_ string, key, fallback string, _ error) string {
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}

// Translate resolves key through t, falling back through onMissing. A nil
// onMissing behaves like KeepFallback.
func Translate(t Translator, locale, key, fallback string, onMissing MissingTranslationHandler, args ...any) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}
	if onMissing == nil {
		onMissing = KeepFallback
	}
	if t == nil {
		return onMissing(locale, key, fallback, ErrMissingTranslator)
	}
	result, err := t.Translate(locale, key, args...)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	return onMissing(locale, key, fallback, err)
}

// MapTranslator is a catalog of locale -> key -> message. Messages may carry
// fmt verbs consumed by args.
type MapTranslator struct {
	catalog       map[string]map[string]string
	defaultLocale string
}

// NewMapTranslator builds a translator over catalog. Lookups for a locale
// without the key fall back to defaultLocale.
func NewMapTranslator(catalog map[string]map[string]string, defaultLocale string) *MapTranslator {
	return &MapTranslator{catalog: catalog, defaultLocale: defaultLocale}
}

// Translate implements Translator.
func (m *MapTranslator) Translate(locale, key string, args ...any) (string, error) {
	if m == nil {
		return "", ErrMissingTranslator
	}
	for _, candidate := range []string{locale, baseLocale(locale), m.defaultLocale} {
		if candidate == "" {
			continue
		}
		if msg, ok := m.catalog[candidate][key]; ok {
			if len(args) > 0 {
				return fmt.Sprintf(msg, args...), nil
			}
			return msg, nil
		}
	}
	return "", fmt.Errorf("%w: %s (%s)", ErrMissingKey, key, locale)
}

// Locales returns the locales present in the catalog.
func (m *MapTranslator) Locales() []string {
	if m == nil {
		return nil
	}
	out := make([]string, 0, len(m.catalog))
	for locale := range m.catalog {
		out = append(out, locale)
	}
	return out
}

func baseLocale(locale string) string {
	if idx := strings.IndexAny(locale, "-_"); idx > 0 {
		return locale[:idx]
	}
	return ""
}
