package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smartstock-io/smartstock-backend/api/middleware"
	"github.com/smartstock-io/smartstock-backend/api/responses"
	"github.com/smartstock-io/smartstock-backend/api/validators"
	"github.com/smartstock-io/smartstock-backend/internal/catalog"
	storesvc "github.com/smartstock-io/smartstock-backend/internal/stores"
	"github.com/smartstock-io/smartstock-backend/pkg/logger"
)

// ListStores serves all storefronts.
func ListStores(svc storesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// GetStore serves one storefront by id.
func GetStore(svc storesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "storeId"), "storeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, store)
	}
}

type createStoreRequest struct {
	Name     string `json:"name" validate:"required"`
	Location string `json:"location" validate:"required"`
	Image    string `json:"image,omitempty"`
}

// AdminCreateStore registers a storefront owned by the acting admin.
func AdminCreateStore(svc storesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createStoreRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		identity := middleware.IdentityFromContext(r.Context())
		store, err := svc.Create(r.Context(), identity, catalog.StoreInput{
			Name:     validators.SanitizeString(payload.Name, 120),
			Location: validators.SanitizeString(payload.Location, 200),
			Image:    validators.SanitizeString(payload.Image, 512),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, store)
	}
}
