package controllers

import (
	"net/http"
	"strings"

	"github.com/smartstock-io/smartstock-backend/api/middleware"
	"github.com/smartstock-io/smartstock-backend/api/responses"
	"github.com/smartstock-io/smartstock-backend/api/validators"
	"github.com/smartstock-io/smartstock-backend/internal/i18n"
	pkgerrors "github.com/smartstock-io/smartstock-backend/pkg/errors"
	"github.com/smartstock-io/smartstock-backend/pkg/logger"
)

// GetLocale reports the active locale and the supported languages.
func GetLocale(svc i18n.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{
			"locale":    middleware.LocaleFromContext(r.Context()),
			"languages": svc.Languages(),
		})
	}
}

type setLocaleRequest struct {
	Locale string `json:"locale" validate:"required"`
}

// SetLocale persists the subject's locale preference. An invalid candidate is
// rejected and the prior preference stays in effect.
func SetLocale(svc i18n.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload setLocaleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		subject := middleware.UserIDFromContext(r.Context())
		if subject == "" {
			subject = strings.TrimSpace(r.Header.Get("X-Device-Id"))
		}
		if subject == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "no subject to store the preference for"))
			return
		}

		locale, err := svc.SetPreference(r.Context(), subject, payload.Locale)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"locale": locale})
	}
}
