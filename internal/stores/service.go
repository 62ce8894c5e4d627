package stores

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

// Service exposes storefront reads through the query cache. Creation is the
// only mutation and is reserved for admins, who own the store they create.
type Service interface {
	List(ctx context.Context) ([]catalog.Store, error)
	Get(ctx context.Context, id uuid.UUID) (*catalog.Store, error)
	Create(ctx context.Context, actor *session.Identity, input catalog.StoreInput) (*catalog.Store, error)
}

type service struct {
	source catalog.DataSource
	cache  queryCache
	logg   *logger.Logger
}

// NewService builds a store service over the data source and query cache.
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

func (s *service) List(ctx context.Context) ([]catalog.Store, error) {
	key := query.Key{Kind: enums.EntityStores}
	snap := s.cache.Query(ctx, key, func(ctx context.Context) (any, error) {
		return s.source.ListStores(ctx)
	})
	if snap.Err != nil && snap.Value == nil {
		return nil, snap.Err
	}
	items, ok := snap.Value.([]catalog.Store)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, fmt.Sprintf("unexpected cache value for %s", key))
	}
	if snap.Err != nil {
		s.logg.Warn(ctx, fmt.Sprintf("serving stale value for %s", key))
	}
	return items, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*catalog.Store, error) {
	key := query.Key{Kind: enums.EntityStores, Scope: "id:" + id.String()}
	snap := s.cache.Query(ctx, key, func(ctx context.Context) (any, error) {
		return s.source.GetStore(ctx, id)
	})
	if snap.Err != nil && snap.Value == nil {
		return nil, snap.Err
	}
	store, ok := snap.Value.(*catalog.Store)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, fmt.Sprintf("unexpected cache value for %s", key))
	}
	if snap.Err != nil {
		s.logg.Warn(ctx, fmt.Sprintf("serving stale value for %s", key))
	}
	return store, nil
}

// Create registers a storefront owned by the acting admin. The owner id in
// the input is ignored in favor of the authenticated identity.
func (s *service) Create(ctx context.Context, actor *session.Identity, input catalog.StoreInput) (*catalog.Store, error) {
	if actor == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if actor.Role != enums.RoleAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "admin access required")
	}
	input.OwnerID = actor.ID

	result, err := s.cache.Mutate(ctx, func(ctx context.Context) (any, error) {
		return s.source.CreateStore(ctx, input)
	}, enums.EntityStores)
	if err != nil {
		return nil, err
	}
	return result.(*catalog.Store), nil
}
