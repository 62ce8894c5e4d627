package categories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/smartstock-io/smartstock-backend/internal/catalog"
	"github.com/smartstock-io/smartstock-backend/internal/query"
	"github.com/smartstock-io/smartstock-backend/pkg/enums"
	pkgerrors "github.com/smartstock-io/smartstock-backend/pkg/errors"
	"github.com/smartstock-io/smartstock-backend/pkg/logger"
	"github.com/smartstock-io/smartstock-backend/pkg/types"
)

type queryCache interface {
	Query(ctx context.Context, key query.Key, fetch query.Fetcher) query.Snapshot
}

type translator interface {
	Resolve(key string, locale enums.Locale, override types.Translations) string
}

// View is a category with its name resolved for the active locale.
type View struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Service lists the read-only global category collection through the query
// cache. There are no category mutations.
type Service interface {
	List(ctx context.Context) ([]catalog.Category, error)
	ListLocalized(ctx context.Context, locale enums.Locale) ([]View, error)
}

type service struct {
	source    catalog.DataSource
	cache     queryCache
	translate translator
	logg      *logger.Logger
}

// NewService builds the category service over the data source and query cache.
func NewService(source catalog.DataSource, cache queryCache, translate translator, logg *logger.Logger) (Service, error) {
	if source == nil {
		return nil, errors.New("data source is required")
	}
	if cache == nil {
		return nil, errors.New("query cache is required")
	}
	if translate == nil {
		return nil, errors.New("translator is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	return &service{source: source, cache: cache, translate: translate, logg: logg}, nil
}

func (s *service) List(ctx context.Context) ([]catalog.Category, error) {
	key := query.Key{Kind: enums.EntityCategories}
	snap := s.cache.Query(ctx, key, func(ctx context.Context) (any, error) {
		return s.source.ListCategories(ctx)
	})
	if snap.Err != nil && snap.Value == nil {
		return nil, snap.Err
	}
	items, ok := snap.Value.([]catalog.Category)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, fmt.Sprintf("unexpected cache value for %s", key))
	}
	if snap.Err != nil {
		s.logg.Warn(ctx, fmt.Sprintf("serving stale value for %s", key))
	}
	return items, nil
}

func (s *service) ListLocalized(ctx context.Context, locale enums.Locale) ([]View, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]View, 0, len(items))
	for _, item := range items {
		views = append(views, View{
			ID:   item.ID,
			Name: s.translate.Resolve(item.Name, locale, item.NameTranslations),
		})
	}
	return views, nil
}
