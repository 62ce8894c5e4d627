package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/smartstock-io/smartstock-backend/api/middleware"
	"github.com/smartstock-io/smartstock-backend/api/responses"
	"github.com/smartstock-io/smartstock-backend/api/validators"
	"github.com/smartstock-io/smartstock-backend/internal/catalog"
	productsvc "github.com/smartstock-io/smartstock-backend/internal/products"
	"github.com/smartstock-io/smartstock-backend/pkg/enums"
	pkgerrors "github.com/smartstock-io/smartstock-backend/pkg/errors"
	"github.com/smartstock-io/smartstock-backend/pkg/logger"
	"github.com/smartstock-io/smartstock-backend/pkg/types"
)

// ListProducts serves the shopper catalog: display strings resolved for the
// active locale and live quantities from the stock ledger.
func ListProducts(svc productsvc.Service, presenter *productsvc.Presenter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := validators.ParseQueryUUID(r, "storeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.List(r.Context(), storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		locale := middleware.LocaleFromContext(r.Context())
		responses.WriteSuccess(w, presenter.RenderList(r.Context(), items, locale))
	}
}

// GetProduct serves a single shopper-facing product.
func GetProduct(svc productsvc.Service, presenter *productsvc.Presenter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		locale := middleware.LocaleFromContext(r.Context())
		responses.WriteSuccess(w, presenter.Render(r.Context(), *product, locale))
	}
}

// AdminListProducts serves the raw catalog entities for the admin's store.
func AdminListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := middleware.IdentityFromContext(r.Context())
		if identity == nil || identity.StoreID == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "store context missing"))
			return
		}

		items, err := svc.List(r.Context(), identity.StoreID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

type createProductRequest struct {
	Name                 string            `json:"name" validate:"required"`
	NameTranslations     map[string]string `json:"nameTranslations,omitempty"`
	Category             string            `json:"category" validate:"required"`
	CategoryTranslations map[string]string `json:"categoryTranslations,omitempty"`
	Price                decimal.Decimal   `json:"price" validate:"required"`
	Quantity             int               `json:"quantity" validate:"min=0"`
	Unit                 string            `json:"unit" validate:"required"`
	UnitTranslations     map[string]string `json:"unitTranslations,omitempty"`
	Image                string            `json:"image,omitempty"`
}

type updateProductRequest struct {
	Name                 *string           `json:"name,omitempty"`
	NameTranslations     map[string]string `json:"nameTranslations,omitempty"`
	Category             *string           `json:"category,omitempty"`
	CategoryTranslations map[string]string `json:"categoryTranslations,omitempty"`
	Price                *decimal.Decimal  `json:"price,omitempty"`
	Quantity             *int              `json:"quantity,omitempty" validate:"omitempty,min=0"`
	Unit                 *string           `json:"unit,omitempty"`
	UnitTranslations     map[string]string `json:"unitTranslations,omitempty"`
	Image                *string           `json:"image,omitempty"`
}

// AdminCreateProduct creates a product in the acting admin's store.
func AdminCreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := middleware.IdentityFromContext(r.Context())
		if identity == nil || identity.StoreID == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "store context missing"))
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Create(r.Context(), identity, catalog.ProductInput{
			Name:                 validators.SanitizeString(payload.Name, 120),
			NameTranslations:     toTranslations(payload.NameTranslations),
			Category:             validators.SanitizeString(payload.Category, 120),
			CategoryTranslations: toTranslations(payload.CategoryTranslations),
			Price:                payload.Price,
			Quantity:             payload.Quantity,
			Unit:                 validators.SanitizeString(payload.Unit, 40),
			UnitTranslations:     toTranslations(payload.UnitTranslations),
			Image:                validators.SanitizeString(payload.Image, 512),
			StoreID:              *identity.StoreID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// AdminUpdateProduct applies a partial update; absent fields stay untouched.
func AdminUpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		identity := middleware.IdentityFromContext(r.Context())
		product, err := svc.Update(r.Context(), identity, id, catalog.ProductPatch{
			Name:                 payload.Name,
			NameTranslations:     toTranslations(payload.NameTranslations),
			Category:             payload.Category,
			CategoryTranslations: toTranslations(payload.CategoryTranslations),
			Price:                payload.Price,
			Quantity:             payload.Quantity,
			Unit:                 payload.Unit,
			UnitTranslations:     toTranslations(payload.UnitTranslations),
			Image:                payload.Image,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// AdminDeleteProduct removes a product. Deleting an absent product is not an
// error; the response reports whether anything was removed.
func AdminDeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		identity := middleware.IdentityFromContext(r.Context())
		deleted, err := svc.Delete(r.Context(), identity, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"deleted": deleted})
	}
}

func toTranslations(raw map[string]string) types.Translations {
	if len(raw) == 0 {
		return nil
	}
	out := make(types.Translations, len(raw))
	for locale, value := range raw {
		parsed, err := enums.ParseLocale(locale)
		if err != nil {
			continue
		}
		out[parsed] = value
	}
	return out
}
