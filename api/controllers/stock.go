package controllers

import (
	"net/http"
	"strings"

	"github.com/smartstock-io/smartstock-backend/api/responses"
	"github.com/smartstock-io/smartstock-backend/api/validators"
	alertsvc "github.com/smartstock-io/smartstock-backend/internal/alerts"
	stocksvc "github.com/smartstock-io/smartstock-backend/internal/stock"
	pkgerrors "github.com/smartstock-io/smartstock-backend/pkg/errors"
	"github.com/smartstock-io/smartstock-backend/pkg/logger"
	"github.com/smartstock-io/smartstock-backend/pkg/pagination"
)

// StockQuantity serves the live ledger quantity for an item. The quantity is
// null when the lookup failed; clients render that as "unknown", not zero.
func StockQuantity(svc stocksvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item := strings.TrimSpace(r.URL.Query().Get("item"))
		if item == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item query parameter is required"))
			return
		}

		quantity := svc.GetQuantity(r.Context(), item)
		responses.WriteSuccess(w, map[string]any{
			"item":     item,
			"quantity": quantity,
		})
	}
}

type depletionAlertRequest struct {
	Item       string `json:"item" validate:"required"`
	Subscriber string `json:"subscriber" validate:"required,email"`
}

// RegisterDepletionAlert accepts a depletion alert subscription and hands it
// to the notification pipeline. Delivery is fire-and-forget: the response is
// always accepted once the input validates.
func RegisterDepletionAlert(svc alertsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload depletionAlertRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		svc.RegisterDepletionAlert(r.Context(), payload.Item, payload.Subscriber)
		responses.WriteSuccessStatus(w, http.StatusAccepted, map[string]any{"registered": true})
	}
}

// AdminListStockEntries pages through the raw ledger rows.
func AdminListStockEntries(svc stocksvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entries, next, err := svc.ListEntries(r.Context(), pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"entries":    entries,
			"nextCursor": next,
		})
	}
}

type addStockEntryRequest struct {
	Item     string `json:"item" validate:"required"`
	Quantity int64  `json:"quantity" validate:"min=0"`
}

// AdminAddStockEntry appends a row to the ledger.
func AdminAddStockEntry(svc stocksvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addStockEntryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, err := svc.AddEntry(r.Context(), payload.Item, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, entry)
	}
}
