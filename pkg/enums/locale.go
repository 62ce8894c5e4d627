package enums

import (
	"fmt"

	"golang.org/x/text/language"
)

// Locale identifies a supported display language.
type Locale string

const (
	LocaleEnglish Locale = "en"
	LocaleTelugu  Locale = "te"
)

// DefaultLocale is the language every translation map must carry.
const DefaultLocale = LocaleEnglish

var validLocales = []Locale{
	LocaleEnglish,
	LocaleTelugu,
}

var localeTags = map[Locale]language.Tag{
	LocaleEnglish: language.English,
	LocaleTelugu:  language.Telugu,
}

// String implements fmt.Stringer.
func (l Locale) String() string {
	return string(l)
}

// IsValid reports whether the value is a supported Locale.
func (l Locale) IsValid() bool {
	for _, candidate := range validLocales {
		if candidate == l {
			return true
		}
	}
	return false
}

// Tag returns the BCP 47 tag for the locale.
func (l Locale) Tag() language.Tag {
	if tag, ok := localeTags[l]; ok {
		return tag
	}
	return language.English
}

// Locales returns the closed set of supported locales.
func Locales() []Locale {
	out := make([]Locale, len(validLocales))
	copy(out, validLocales)
	return out
}

// ParseLocale converts raw input into a Locale. Region subtags are accepted
// and reduced to the base language ("te-IN" resolves to "te").
func ParseLocale(value string) (Locale, error) {
	tag, err := language.Parse(value)
	if err != nil {
		return "", fmt.Errorf("invalid locale %q", value)
	}
	base, _ := tag.Base()
	candidate := Locale(base.String())
	if !candidate.IsValid() {
		return "", fmt.Errorf("unsupported locale %q", value)
	}
	return candidate, nil
}
