package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartstock-io/smartstock-backend/pkg/types"
)

// Product is a catalog item belonging to exactly one store. Quantity here is
// the catalog quantity the store admin edits; the live shopper-facing count
// comes from the stock ledger and can diverge.
type Product struct {
	ID                   uuid.UUID          `json:"id"`
	Name                 string             `json:"name"`
	NameTranslations     types.Translations `json:"nameTranslations,omitempty"`
	Category             string             `json:"category"`
	CategoryTranslations types.Translations `json:"categoryTranslations,omitempty"`
	Price                decimal.Decimal    `json:"price"`
	Quantity             int                `json:"quantity"`
	Unit                 string             `json:"unit"`
	UnitTranslations     types.Translations `json:"unitTranslations,omitempty"`
	Image                string             `json:"image,omitempty"`
	StoreID              uuid.UUID          `json:"storeId"`
	CreatedAt            time.Time          `json:"createdAt"`
	UpdatedAt            time.Time          `json:"updatedAt"`
}

// Store is a storefront owned by a single admin user.
type Store struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Location string    `json:"location"`
	OwnerID  uuid.UUID `json:"ownerId"`
	Image    string    `json:"image,omitempty"`
}

// Category is global and not store-scoped; the collection is read-only.
type Category struct {
	ID               uuid.UUID          `json:"id"`
	Name             string             `json:"name"`
	NameTranslations types.Translations `json:"nameTranslations,omitempty"`
}

// ProductInput carries the client-supplied fields for a new product. The
// backend assigns id and timestamps.
type ProductInput struct {
	Name                 string
	NameTranslations     types.Translations
	Category             string
	CategoryTranslations types.Translations
	Price                decimal.Decimal
	Quantity             int
	Unit                 string
	UnitTranslations     types.Translations
	Image                string
	StoreID              uuid.UUID
}

// ProductPatch is a partial update; nil fields are left untouched. Every
// applied patch refreshes UpdatedAt.
type ProductPatch struct {
	Name                 *string
	NameTranslations     types.Translations
	Category             *string
	CategoryTranslations types.Translations
	Price                *decimal.Decimal
	Quantity             *int
	Unit                 *string
	UnitTranslations     types.Translations
	Image                *string
}

// StoreInput carries the client-supplied fields for a new store.
type StoreInput struct {
	Name     string
	Location string
	OwnerID  uuid.UUID
	Image    string
}

func clone[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
