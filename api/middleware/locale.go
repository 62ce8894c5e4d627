package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/smartstock-io/smartstock-backend/pkg/enums"
	"github.com/smartstock-io/smartstock-backend/pkg/logger"
)

const (
	localeHeader = "X-Locale"
	deviceHeader = "X-Device-Id"
)

type preferenceReader interface {
	Preference(ctx context.Context, subject string) enums.Locale
}

// Locale resolves the active locale for the request: an explicit header or
// query parameter wins, then the stored preference for the subject, then the
// default. Anonymous requests key their preference by device id.
func Locale(prefs preferenceReader, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			locale := enums.DefaultLocale

			explicit := strings.TrimSpace(r.URL.Query().Get("locale"))
			if explicit == "" {
				explicit = strings.TrimSpace(r.Header.Get(localeHeader))
			}

			switch {
			case explicit != "":
				if parsed, err := enums.ParseLocale(explicit); err == nil {
					locale = parsed
				}
			case prefs != nil:
				if subject := localeSubject(ctx, r); subject != "" {
					locale = prefs.Preference(ctx, subject)
				}
			}

			ctx = WithLocale(ctx, locale)
			if logg != nil {
				ctx = logg.WithLocale(ctx, string(locale))
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func localeSubject(ctx context.Context, r *http.Request) string {
	if userID := UserIDFromContext(ctx); userID != "" {
		return userID
	}
	return strings.TrimSpace(r.Header.Get(deviceHeader))
}
