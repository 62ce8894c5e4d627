package controllers

import (
	"net/http"

	"github.com/smartstock-io/smartstock-backend/api/middleware"
	"github.com/smartstock-io/smartstock-backend/api/responses"
	categorysvc "github.com/smartstock-io/smartstock-backend/internal/categories"
	"github.com/smartstock-io/smartstock-backend/pkg/logger"
)

// ListCategories serves the global category collection, names resolved for
// the active locale.
func ListCategories(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		locale := middleware.LocaleFromContext(r.Context())
		views, err := svc.ListLocalized(r.Context(), locale)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, views)
	}
}
