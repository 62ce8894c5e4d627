package catalog

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/smartstock-io/smartstock-backend/pkg/enums"
	"github.com/smartstock-io/smartstock-backend/pkg/types"
)

// Fixtures holds the seed catalog loaded into a MemorySource.
type Fixtures struct {
	Products   []Product
	Stores     []Store
	Categories []Category
}

// Stable ids keep fixture references readable and let tests address entities
// without scanning lists.
var (
	StoreFreshMarketID   = uuid.MustParse("0b54c9e1-57b1-4a7e-9d1a-111111111111")
	StoreOrganicBazaarID = uuid.MustParse("0b54c9e1-57b1-4a7e-9d1a-222222222222")
	StoreCityGrocersID   = uuid.MustParse("0b54c9e1-57b1-4a7e-9d1a-333333333333")

	OwnerFreshMarketID   = uuid.MustParse("7d1f06aa-3f2e-4b8c-8701-aaaaaaaaaaaa")
	OwnerOrganicBazaarID = uuid.MustParse("7d1f06aa-3f2e-4b8c-8701-bbbbbbbbbbbb")
	OwnerCityGrocersID   = uuid.MustParse("7d1f06aa-3f2e-4b8c-8701-cccccccccccc")

	ProductAppleID  = uuid.MustParse("4f1e2d3c-0001-4000-8000-000000000001")
	ProductBananaID = uuid.MustParse("4f1e2d3c-0001-4000-8000-000000000002")
	ProductTomatoID = uuid.MustParse("4f1e2d3c-0001-4000-8000-000000000003")
	ProductPotatoID = uuid.MustParse("4f1e2d3c-0001-4000-8000-000000000004")
	ProductMilkID   = uuid.MustParse("4f1e2d3c-0001-4000-8000-000000000005")
	ProductRiceID   = uuid.MustParse("4f1e2d3c-0001-4000-8000-000000000006")
	ProductOnionID  = uuid.MustParse("4f1e2d3c-0001-4000-8000-000000000007")

	CategoryFruitsID     = uuid.MustParse("9a8b7c6d-0002-4000-8000-000000000001")
	CategoryVegetablesID = uuid.MustParse("9a8b7c6d-0002-4000-8000-000000000002")
	CategoryDairyID      = uuid.MustParse("9a8b7c6d-0002-4000-8000-000000000003")
	CategoryGrainsID     = uuid.MustParse("9a8b7c6d-0002-4000-8000-000000000004")
)

var (
	fruitsTranslations     = types.Translations{enums.LocaleEnglish: "Fruits", enums.LocaleTelugu: "పండ్లు"}
	vegetablesTranslations = types.Translations{enums.LocaleEnglish: "Vegetables", enums.LocaleTelugu: "కూరగాయలు"}
	dairyTranslations      = types.Translations{enums.LocaleEnglish: "Dairy", enums.LocaleTelugu: "పాల ఉత్పత్తులు"}
	grainsTranslations     = types.Translations{enums.LocaleEnglish: "Grains", enums.LocaleTelugu: "ధాన్యాలు"}

	kgTranslations    = types.Translations{enums.LocaleEnglish: "kg", enums.LocaleTelugu: "కిలో"}
	dozenTranslations = types.Translations{enums.LocaleEnglish: "dozen", enums.LocaleTelugu: "డజన్"}
	literTranslations = types.Translations{enums.LocaleEnglish: "liter", enums.LocaleTelugu: "లీటర్"}
)

// DefaultFixtures returns the development seed catalog.
func DefaultFixtures() Fixtures {
	seededAt := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

	categories := []Category{
		{ID: CategoryFruitsID, Name: "Fruits", NameTranslations: fruitsTranslations.Clone()},
		{ID: CategoryVegetablesID, Name: "Vegetables", NameTranslations: vegetablesTranslations.Clone()},
		{ID: CategoryDairyID, Name: "Dairy", NameTranslations: dairyTranslations.Clone()},
		{ID: CategoryGrainsID, Name: "Grains", NameTranslations: grainsTranslations.Clone()},
	}

	stores := []Store{
		{
			ID:       StoreFreshMarketID,
			Name:     "Fresh Market",
			Location: "Hyderabad",
			OwnerID:  OwnerFreshMarketID,
			Image:    "https://images.unsplash.com/photo-1542838132-92c53300491e?q=80&w=1000&auto=format&fit=crop",
		},
		{
			ID:       StoreOrganicBazaarID,
			Name:     "Organic Bazaar",
			Location: "Warangal",
			OwnerID:  OwnerOrganicBazaarID,
			Image:    "https://images.unsplash.com/photo-1506617420156-8e4536971650?q=80&w=1000&auto=format&fit=crop",
		},
		{
			ID:       StoreCityGrocersID,
			Name:     "City Grocers",
			Location: "Vijayawada",
			OwnerID:  OwnerCityGrocersID,
			Image:    "https://images.unsplash.com/photo-1604719312566-8912e9c8a47a?q=80&w=1000&auto=format&fit=crop",
		},
	}

	products := []Product{
		{
			ID:                   ProductAppleID,
			Name:                 "Apple",
			NameTranslations:     types.Translations{enums.LocaleEnglish: "Apple", enums.LocaleTelugu: "యాపిల్"},
			Category:             "Fruits",
			CategoryTranslations: fruitsTranslations.Clone(),
			Price:                decimal.NewFromInt(25),
			Quantity:             100,
			Unit:                 "kg",
			UnitTranslations:     kgTranslations.Clone(),
			Image:                "https://images.unsplash.com/photo-1567306226416-28f0efdc88ce?q=80&w=1000&auto=format&fit=crop",
			StoreID:              StoreFreshMarketID,
			CreatedAt:            seededAt,
			UpdatedAt:            seededAt,
		},
		{
			ID:                   ProductBananaID,
			Name:                 "Banana",
			NameTranslations:     types.Translations{enums.LocaleEnglish: "Banana", enums.LocaleTelugu: "అరటిపండు"},
			Category:             "Fruits",
			CategoryTranslations: fruitsTranslations.Clone(),
			Price:                decimal.NewFromInt(40),
			Quantity:             150,
			Unit:                 "dozen",
			UnitTranslations:     dozenTranslations.Clone(),
			Image:                "https://images.unsplash.com/photo-1603833665858-e61d17a86224?q=80&w=1000&auto=format&fit=crop",
			StoreID:              StoreFreshMarketID,
			CreatedAt:            seededAt,
			UpdatedAt:            seededAt,
		},
		{
			ID:                   ProductTomatoID,
			Name:                 "Tomato",
			NameTranslations:     types.Translations{enums.LocaleEnglish: "Tomato", enums.LocaleTelugu: "టమాటా"},
			Category:             "Vegetables",
			CategoryTranslations: vegetablesTranslations.Clone(),
			Price:                decimal.NewFromInt(30),
			Quantity:             80,
			Unit:                 "kg",
			UnitTranslations:     kgTranslations.Clone(),
			Image:                "https://images.unsplash.com/photo-1607305387299-a3d9611cd469?q=80&w=1000&auto=format&fit=crop",
			StoreID:              StoreFreshMarketID,
			CreatedAt:            seededAt,
			UpdatedAt:            seededAt,
		},
		{
			ID:                   ProductPotatoID,
			Name:                 "Potato",
			NameTranslations:     types.Translations{enums.LocaleEnglish: "Potato", enums.LocaleTelugu: "బంగాళదుంప"},
			Category:             "Vegetables",
			CategoryTranslations: vegetablesTranslations.Clone(),
			Price:                decimal.NewFromInt(20),
			Quantity:             200,
			Unit:                 "kg",
			UnitTranslations:     kgTranslations.Clone(),
			Image:                "https://images.unsplash.com/photo-1518977676601-b53f82aba655?q=80&w=1000&auto=format&fit=crop",
			StoreID:              StoreFreshMarketID,
			CreatedAt:            seededAt,
			UpdatedAt:            seededAt,
		},
		{
			ID:                   ProductMilkID,
			Name:                 "Milk",
			NameTranslations:     types.Translations{enums.LocaleEnglish: "Milk", enums.LocaleTelugu: "పాలు"},
			Category:             "Dairy",
			CategoryTranslations: dairyTranslations.Clone(),
			Price:                decimal.NewFromInt(50),
			Quantity:             30,
			Unit:                 "liter",
			UnitTranslations:     literTranslations.Clone(),
			Image:                "https://images.unsplash.com/photo-1563636619-e9143da7973b?q=80&w=1000&auto=format&fit=crop",
			StoreID:              StoreOrganicBazaarID,
			CreatedAt:            seededAt,
			UpdatedAt:            seededAt,
		},
		{
			ID:                   ProductRiceID,
			Name:                 "Rice",
			NameTranslations:     types.Translations{enums.LocaleEnglish: "Rice", enums.LocaleTelugu: "బియ్యం"},
			Category:             "Grains",
			CategoryTranslations: grainsTranslations.Clone(),
			Price:                decimal.NewFromInt(60),
			Quantity:             50,
			Unit:                 "kg",
			UnitTranslations:     kgTranslations.Clone(),
			Image:                "https://images.unsplash.com/photo-1586201375761-83865001e31c?q=80&w=1000&auto=format&fit=crop",
			StoreID:              StoreOrganicBazaarID,
			CreatedAt:            seededAt,
			UpdatedAt:            seededAt,
		},
		{
			ID:                   ProductOnionID,
			Name:                 "Onion",
			NameTranslations:     types.Translations{enums.LocaleEnglish: "Onion", enums.LocaleTelugu: "ఉల్లిపాయ"},
			Category:             "Vegetables",
			CategoryTranslations: vegetablesTranslations.Clone(),
			Price:                decimal.NewFromInt(35),
			Quantity:             120,
			Unit:                 "kg",
			UnitTranslations:     kgTranslations.Clone(),
			Image:                "https://images.unsplash.com/photo-1618512496248-a4b08aaf1b77?q=80&w=1000&auto=format&fit=crop",
			StoreID:              StoreCityGrocersID,
			CreatedAt:            seededAt,
			UpdatedAt:            seededAt,
		},
	}

	return Fixtures{
		Products:   products,
		Stores:     stores,
		Categories: categories,
	}
}

// Validate checks referential integrity and translation-map completeness,
// accumulating every violation instead of stopping at the first.
func (f Fixtures) Validate() error {
	var result error

	storeIDs := make(map[uuid.UUID]struct{}, len(f.Stores))
	for _, s := range f.Stores {
		if s.ID == uuid.Nil {
			result = multierr.Append(result, fmt.Errorf("store %q has a nil id", s.Name))
			continue
		}
		if _, dup := storeIDs[s.ID]; dup {
			result = multierr.Append(result, fmt.Errorf("duplicate store id %s", s.ID))
		}
		storeIDs[s.ID] = struct{}{}
	}

	productIDs := make(map[uuid.UUID]struct{}, len(f.Products))
	for _, p := range f.Products {
		if p.ID == uuid.Nil {
			result = multierr.Append(result, fmt.Errorf("product %q has a nil id", p.Name))
			continue
		}
		if _, dup := productIDs[p.ID]; dup {
			result = multierr.Append(result, fmt.Errorf("duplicate product id %s", p.ID))
		}
		productIDs[p.ID] = struct{}{}

		if _, ok := storeIDs[p.StoreID]; !ok {
			result = multierr.Append(result, fmt.Errorf("product %q references unknown store %s", p.Name, p.StoreID))
		}
		result = multierr.Append(result, validateTranslations(p.Name, "nameTranslations", p.NameTranslations))
		result = multierr.Append(result, validateTranslations(p.Name, "categoryTranslations", p.CategoryTranslations))
		result = multierr.Append(result, validateTranslations(p.Name, "unitTranslations", p.UnitTranslations))
	}

	for _, c := range f.Categories {
		if c.ID == uuid.Nil {
			result = multierr.Append(result, fmt.Errorf("category %q has a nil id", c.Name))
		}
		result = multierr.Append(result, validateTranslations(c.Name, "nameTranslations", c.NameTranslations))
	}

	return result
}

func validateTranslations(entity, field string, t types.Translations) error {
	if t == nil {
		return nil
	}
	if !t.HasDefault() {
		return fmt.Errorf("%s of %q is missing the %q entry", field, entity, enums.DefaultLocale)
	}
	return nil
}
