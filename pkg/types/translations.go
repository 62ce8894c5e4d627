package types

import "github.com/smartstock-io/smartstock-backend/pkg/enums"

// Translations is a per-locale string map attached to catalog entities.
// A well-formed map always carries the "en" entry; other locales are optional.
type Translations map[enums.Locale]string

// Get returns the entry for the locale and whether it is present and non-empty.
func (t Translations) Get(locale enums.Locale) (string, bool) {
	if t == nil {
		return "", false
	}
	value, ok := t[locale]
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// HasDefault reports whether the map carries the required "en" entry.
func (t Translations) HasDefault() bool {
	_, ok := t.Get(enums.DefaultLocale)
	return ok
}

// Clone returns a shallow copy so cached entities can be handed out safely.
func (t Translations) Clone() Translations {
	if t == nil {
		return nil
	}
	out := make(Translations, len(t))
	for locale, value := range t {
		out[locale] = value
	}
	return out
}
