package catalog

import (
	"context"

	"github.com/google/uuid"
)

// DataSource is the backend boundary the query layer crosses. The production
// deployment may move this behind a real API; the contract stays the same.
type DataSource interface {
	ListProducts(ctx context.Context, storeID *uuid.UUID) ([]Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*Product, error)
	CreateProduct(ctx context.Context, input ProductInput) (*Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, patch ProductPatch) (*Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) (bool, error)

	ListStores(ctx context.Context) ([]Store, error)
	GetStore(ctx context.Context, id uuid.UUID) (*Store, error)
	CreateStore(ctx context.Context, input StoreInput) (*Store, error)

	ListCategories(ctx context.Context) ([]Category, error)
}
