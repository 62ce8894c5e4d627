package products

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartstock-io/smartstock-backend/internal/catalog"
	"github.com/smartstock-io/smartstock-backend/internal/stock"
	"github.com/smartstock-io/smartstock-backend/pkg/enums"
	"github.com/smartstock-io/smartstock-backend/pkg/types"
)

type translator interface {
	Resolve(key string, locale enums.Locale, override types.Translations) string
}

type quantityReader interface {
	GetQuantity(ctx context.Context, itemName string) stock.Quantity
}

// View is the shopper-facing shape of a product: display strings resolved for
// the active locale and the live quantity from the stock ledger. LiveQuantity
// renders null when the ledger lookup failed, distinct from a known zero.
type View struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	Price           decimal.Decimal `json:"price"`
	Unit            string          `json:"unit"`
	Image           string          `json:"image,omitempty"`
	StoreID         uuid.UUID       `json:"storeId"`
	CatalogQuantity int             `json:"catalogQuantity"`
	LiveQuantity    stock.Quantity  `json:"liveQuantity"`
	SoldOut         bool            `json:"soldOut"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// Presenter turns catalog products into localized shopper views.
type Presenter struct {
	translate translator
	stock     quantityReader
}

// NewPresenter wires display resolution against the translation resolver and
// the stock side channel. Either dependency may be nil only in tests.
func NewPresenter(translate translator, stock quantityReader) *Presenter {
	return &Presenter{translate: translate, stock: stock}
}

// Render resolves one product for the locale. Sold-out is decided by the live
// ledger quantity when it is known; the catalog quantity never overrides it.
func (p *Presenter) Render(ctx context.Context, product catalog.Product, locale enums.Locale) View {
	live := p.stock.GetQuantity(ctx, product.Name)
	return View{
		ID:              product.ID,
		Name:            p.translate.Resolve(product.Name, locale, product.NameTranslations),
		Category:        p.translate.Resolve(product.Category, locale, product.CategoryTranslations),
		Price:           product.Price,
		Unit:            p.translate.Resolve(product.Unit, locale, product.UnitTranslations),
		Image:           product.Image,
		StoreID:         product.StoreID,
		CatalogQuantity: product.Quantity,
		LiveQuantity:    live,
		SoldOut:         live.Known && live.Total <= 0,
		UpdatedAt:       product.UpdatedAt,
	}
}

// RenderList resolves a slice of products for the locale.
func (p *Presenter) RenderList(ctx context.Context, items []catalog.Product, locale enums.Locale) []View {
	views := make([]View, 0, len(items))
	for _, item := range items {
		views = append(views, p.Render(ctx, item, locale))
	}
	return views
}
