package products

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/smartstock-io/smartstock-backend/internal/catalog"
	"github.com/smartstock-io/smartstock-backend/internal/query"
	"github.com/smartstock-io/smartstock-backend/internal/session"
	"github.com/smartstock-io/smartstock-backend/pkg/enums"
	pkgerrors "github.com/smartstock-io/smartstock-backend/pkg/errors"
	"github.com/smartstock-io/smartstock-backend/pkg/logger"
)

type queryCache interface {
	Query(ctx context.Context, key query.Key, fetch query.Fetcher) query.Snapshot
	Mutate(ctx context.Context, mutate query.Mutator, invalidates ...enums.EntityKind) (any, error)
}

// Service exposes product reads through the query cache and gated mutations
// against the data source. Every successful mutation invalidates the products
// kind so the next read re-fetches.
type Service interface {
	List(ctx context.Context, storeID *uuid.UUID) ([]catalog.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*catalog.Product, error)
	Create(ctx context.Context, actor *session.Identity, input catalog.ProductInput) (*catalog.Product, error)
	Update(ctx context.Context, actor *session.Identity, id uuid.UUID, patch catalog.ProductPatch) (*catalog.Product, error)
	Delete(ctx context.Context, actor *session.Identity, id uuid.UUID) (bool, error)
}

type service struct {
	source catalog.DataSource
	cache  queryCache
	logg   *logger.Logger
}

// NewService builds a product service over the data source and query cache.
func NewService(source catalog.DataSource, cache queryCache, logg *logger.Logger) (Service, error) {
	if source == nil {
		return nil, errors.New("data source is required")
	}
	if cache == nil {
		return nil, errors.New("query cache is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	return &service{source: source, cache: cache, logg: logg}, nil
}

// List serves products from the cache, scoped to a store when one is given.
// On a fetch failure the last resolved slice stays visible.
func (s *service) List(ctx context.Context, storeID *uuid.UUID) ([]catalog.Product, error) {
	key := query.Key{Kind: enums.EntityProducts, Scope: listScope(storeID)}
	snap := s.cache.Query(ctx, key, func(ctx context.Context) (any, error) {
		return s.source.ListProducts(ctx, storeID)
	})
	return listFromSnapshot(ctx, s.logg, key, snap)
}

// Get serves a single product through its own cache entry.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	key := query.Key{Kind: enums.EntityProducts, Scope: "id:" + id.String()}
	snap := s.cache.Query(ctx, key, func(ctx context.Context) (any, error) {
		return s.source.GetProduct(ctx, id)
	})
	if snap.Err != nil && snap.Value == nil {
		return nil, snap.Err
	}
	product, ok := snap.Value.(*catalog.Product)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, fmt.Sprintf("unexpected cache value for %s", key))
	}
	if snap.Err != nil {
		s.logg.Warn(ctx, fmt.Sprintf("serving stale value for %s", key))
	}
	return product, nil
}

func (s *service) Create(ctx context.Context, actor *session.Identity, input catalog.ProductInput) (*catalog.Product, error) {
	if err := requireStoreAdmin(actor, input.StoreID); err != nil {
		return nil, err
	}

	result, err := s.cache.Mutate(ctx, func(ctx context.Context) (any, error) {
		return s.source.CreateProduct(ctx, input)
	}, enums.EntityProducts)
	if err != nil {
		return nil, err
	}
	return result.(*catalog.Product), nil
}

func (s *service) Update(ctx context.Context, actor *session.Identity, id uuid.UUID, patch catalog.ProductPatch) (*catalog.Product, error) {
	existing, err := s.source.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireStoreAdmin(actor, existing.StoreID); err != nil {
		return nil, err
	}

	result, err := s.cache.Mutate(ctx, func(ctx context.Context) (any, error) {
		return s.source.UpdateProduct(ctx, id, patch)
	}, enums.EntityProducts)
	if err != nil {
		return nil, err
	}
	return result.(*catalog.Product), nil
}

// Delete removes the product. Deleting an absent product reports false
// without an error; the caller decides whether that matters.
func (s *service) Delete(ctx context.Context, actor *session.Identity, id uuid.UUID) (bool, error) {
	existing, err := s.source.GetProduct(ctx, id)
	if err != nil {
		if pkgerrors.CodeOf(err) == pkgerrors.CodeNotFound {
			return false, nil
		}
		return false, err
	}
	if err := requireStoreAdmin(actor, existing.StoreID); err != nil {
		return false, err
	}

	result, err := s.cache.Mutate(ctx, func(ctx context.Context) (any, error) {
		return s.source.DeleteProduct(ctx, id)
	}, enums.EntityProducts)
	if err != nil {
		return false, err
	}
	return result.(bool), nil
}

// requireStoreAdmin enforces the edge-only tenancy rule: mutations are
// accepted from an admin whose store matches the product's store.
func requireStoreAdmin(actor *session.Identity, storeID uuid.UUID) error {
	if actor == nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if actor.Role != enums.RoleAdmin || actor.StoreID == nil {
		return pkgerrors.New(pkgerrors.CodeForbidden, "admin access required")
	}
	if *actor.StoreID != storeID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "product belongs to another store")
	}
	return nil
}

func listScope(storeID *uuid.UUID) string {
	if storeID == nil {
		return "all"
	}
	return "store:" + storeID.String()
}

func listFromSnapshot(ctx context.Context, logg *logger.Logger, key query.Key, snap query.Snapshot) ([]catalog.Product, error) {
	if snap.Err != nil && snap.Value == nil {
		return nil, snap.Err
	}
	items, ok := snap.Value.([]catalog.Product)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, fmt.Sprintf("unexpected cache value for %s", key))
	}
	if snap.Err != nil {
		logg.Warn(ctx, fmt.Sprintf("serving stale value for %s", key))
	}
	return items, nil
}
