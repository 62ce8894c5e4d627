package categories

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/smartstock-io/smartstock-backend/internal/catalog"
	"github.com/smartstock-io/smartstock-backend/internal/query"
	"github.com/smartstock-io/smartstock-backend/pkg/enums"
	"github.com/smartstock-io/smartstock-backend/pkg/logger"
	"github.com/smartstock-io/smartstock-backend/pkg/types"
)

type stubSource struct {
	catalog.DataSource

	listCalls atomic.Int64
	listFn    func(ctx context.Context) ([]catalog.Category, error)
}

func (s *stubSource) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	s.listCalls.Add(1)
	return s.listFn(ctx)
}

type stubTranslator struct{}

func (stubTranslator) Resolve(key string, locale enums.Locale, override types.Translations) string {
	if value, ok := override.Get(locale); ok {
		return value
	}
	return key
}

func newTestService(t *testing.T, source catalog.DataSource) Service {
	t.Helper()
	svc, err := NewService(source, query.NewCache(nil, nil), stubTranslator{}, logger.New(logger.Options{Level: zerolog.ErrorLevel}))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestListServesSecondCallFromCache(t *testing.T) {
	source := &stubSource{
		listFn: func(ctx context.Context) ([]catalog.Category, error) {
			return []catalog.Category{{ID: uuid.New(), Name: "Fruits"}}, nil
		},
	}
	svc := newTestService(t, source)

	for i := 0; i < 2; i++ {
		items, err := svc.List(context.Background())
		if err != nil {
			t.Fatalf("List call %d: %v", i+1, err)
		}
		if len(items) != 1 || items[0].Name != "Fruits" {
			t.Fatalf("List call %d returned %+v", i+1, items)
		}
	}
	if got := source.listCalls.Load(); got != 1 {
		t.Fatalf("expected 1 backend fetch, got %d", got)
	}
}

func TestListLocalizedResolvesNames(t *testing.T) {
	source := &stubSource{
		listFn: func(ctx context.Context) ([]catalog.Category, error) {
			return []catalog.Category{
				{ID: uuid.New(), Name: "Fruits", NameTranslations: types.Translations{"en": "Fruits", "te": "పండ్లు"}},
				{ID: uuid.New(), Name: "Dairy", NameTranslations: types.Translations{"en": "Dairy"}},
			}, nil
		},
	}
	svc := newTestService(t, source)

	views, err := svc.ListLocalized(context.Background(), enums.LocaleTelugu)
	if err != nil {
		t.Fatalf("ListLocalized: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(views))
	}
	if views[0].Name != "పండ్లు" {
		t.Fatalf("telugu name not resolved: %q", views[0].Name)
	}
	if views[1].Name != "Dairy" {
		t.Fatalf("fallback name wrong: %q", views[1].Name)
	}
}
