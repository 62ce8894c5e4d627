package products

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartstock-io/smartstock-backend/internal/catalog"
	"github.com/smartstock-io/smartstock-backend/internal/stock"
	"github.com/smartstock-io/smartstock-backend/pkg/enums"
	"github.com/smartstock-io/smartstock-backend/pkg/types"
)

type stubTranslator struct{}

func (stubTranslator) Resolve(key string, locale enums.Locale, override types.Translations) string {
	if value, ok := override.Get(locale); ok {
		return value
	}
	return key
}

type stubQuantities struct {
	byItem map[string]stock.Quantity
}

func (s stubQuantities) GetQuantity(_ context.Context, itemName string) stock.Quantity {
	return s.byItem[strings.ToLower(itemName)]
}

func TestRenderPrefersLedgerOverCatalogQuantity(t *testing.T) {
	product := catalog.Product{
		ID:       uuid.New(),
		Name:     "Apple",
		Category: "Fruits",
		Price:    decimal.NewFromInt(40),
		Quantity: 100,
		Unit:     "kg",
		StoreID:  uuid.New(),
	}
	presenter := NewPresenter(stubTranslator{}, stubQuantities{byItem: map[string]stock.Quantity{
		"apple": {Known: true, Total: 0},
	}})

	view := presenter.Render(context.Background(), product, enums.LocaleEnglish)

	if !view.SoldOut {
		t.Fatal("ledger says zero: the view must be sold out despite catalog quantity 100")
	}
	if view.CatalogQuantity != 100 {
		t.Fatalf("catalog quantity changed: %d", view.CatalogQuantity)
	}
	if !view.LiveQuantity.Known || view.LiveQuantity.Total != 0 {
		t.Fatalf("live quantity %+v", view.LiveQuantity)
	}
}

func TestRenderUnknownQuantityIsNotSoldOut(t *testing.T) {
	product := catalog.Product{ID: uuid.New(), Name: "Banana", Unit: "dozen"}
	presenter := NewPresenter(stubTranslator{}, stubQuantities{byItem: map[string]stock.Quantity{}})

	view := presenter.Render(context.Background(), product, enums.LocaleEnglish)

	if view.SoldOut {
		t.Fatal("unknown quantity must not render as sold out")
	}

	payload, err := json.Marshal(view)
	if err != nil {
		t.Fatalf("marshal view: %v", err)
	}
	if !strings.Contains(string(payload), `"liveQuantity":null`) {
		t.Fatalf("unknown quantity must serialize as null: %s", payload)
	}
}

func TestRenderResolvesTranslations(t *testing.T) {
	product := catalog.Product{
		ID:               uuid.New(),
		Name:             "Apple",
		NameTranslations: types.Translations{"en": "Apple", "te": "ఆపిల్"},
		Unit:             "kg",
		UnitTranslations: types.Translations{"en": "kg", "te": "కిలో"},
	}
	presenter := NewPresenter(stubTranslator{}, stubQuantities{byItem: map[string]stock.Quantity{}})

	view := presenter.Render(context.Background(), product, enums.LocaleTelugu)

	if view.Name != "ఆపిల్" {
		t.Fatalf("name not localized: %q", view.Name)
	}
	if view.Unit != "కిలో" {
		t.Fatalf("unit not localized: %q", view.Unit)
	}
}
