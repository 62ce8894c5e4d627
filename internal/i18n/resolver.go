package i18n

import (
	"context"
	"errors"
	"time"

	"github.com/smartstock-io/smartstock-backend/pkg/enums"
	"github.com/smartstock-io/smartstock-backend/pkg/logger"
	redisclient "github.com/smartstock-io/smartstock-backend/pkg/redis"
	"github.com/smartstock-io/smartstock-backend/pkg/types"
)

// Resolve maps a translation key and locale to a display string. An override
// map wins when it carries the locale; otherwise the locale dictionary is
// consulted, then the English dictionary, then the key itself is returned.
// Never returns an empty string for a known key and never fails.
func Resolve(key string, locale enums.Locale, override types.Translations) string {
	if value, ok := override.Get(locale); ok {
		return value
	}
	if dict, ok := dictionaries[locale]; ok {
		if value, ok := dict[key]; ok {
			return value
		}
	}
	if value, ok := dictionaries[enums.DefaultLocale][key]; ok {
		return value
	}
	return key
}

// Service resolves translations and persists per-subject locale preferences.
type Service interface {
	Resolve(key string, locale enums.Locale, override types.Translations) string
	Languages() []LanguageOption
	Preference(ctx context.Context, subject string) enums.Locale
	SetPreference(ctx context.Context, subject, candidate string) (enums.Locale, error)
	ClearPreference(ctx context.Context, subject string) error
}

type service struct {
	kv            redisclient.KV
	logg          *logger.Logger
	defaultLocale enums.Locale
}

// NewService wires the resolver against durable client storage.
func NewService(kv redisclient.KV, logg *logger.Logger, defaultLocale enums.Locale) (Service, error) {
	if kv == nil {
		return nil, errors.New("kv store is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	if !defaultLocale.IsValid() {
		defaultLocale = enums.DefaultLocale
	}
	return &service{
		kv:            kv,
		logg:          logg,
		defaultLocale: defaultLocale,
	}, nil
}

func (s *service) Resolve(key string, locale enums.Locale, override types.Translations) string {
	if !locale.IsValid() {
		locale = s.defaultLocale
	}
	return Resolve(key, locale, override)
}

func (s *service) Languages() []LanguageOption {
	return LanguageOptions()
}

// Preference returns the persisted locale for the subject, falling back to
// the default when nothing usable is stored.
func (s *service) Preference(ctx context.Context, subject string) enums.Locale {
	stored, err := s.kv.Get(ctx, redisclient.LocaleKey(subject))
	if err != nil {
		if !redisclient.IsNotFound(err) {
			s.logg.Warn(s.logg.WithFields(ctx, map[string]any{"subject": subject}), "reading locale preference failed")
		}
		return s.defaultLocale
	}
	locale, err := enums.ParseLocale(stored)
	if err != nil {
		return s.defaultLocale
	}
	return locale
}

// SetPreference persists the candidate locale. An unsupported value is
// ignored and the prior preference retained.
func (s *service) SetPreference(ctx context.Context, subject, candidate string) (enums.Locale, error) {
	locale, err := enums.ParseLocale(candidate)
	if err != nil {
		return s.Preference(ctx, subject), nil
	}
	if err := s.kv.Set(ctx, redisclient.LocaleKey(subject), locale.String(), time.Duration(0)); err != nil {
		return s.Preference(ctx, subject), err
	}
	return locale, nil
}

// ClearPreference removes the persisted choice, e.g. on account deletion.
func (s *service) ClearPreference(ctx context.Context, subject string) error {
	return s.kv.Del(ctx, redisclient.LocaleKey(subject))
}
