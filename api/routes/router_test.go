package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	categorysvc "github.com/smartstock-io/smartstock-backend/internal/categories"
	"github.com/smartstock-io/smartstock-backend/internal/catalog"
	"github.com/smartstock-io/smartstock-backend/pkg/config"
	"github.com/smartstock-io/smartstock-backend/pkg/enums"
)

type stubCategories struct {
	views []categorysvc.View
}

func (s *stubCategories) List(ctx context.Context) ([]catalog.Category, error) {
	return nil, nil
}

func (s *stubCategories) ListLocalized(ctx context.Context, locale enums.Locale) ([]categorysvc.View, error) {
	return s.views, nil
}

func testDeps() Deps {
	return Deps{
		Config: &config.Config{
			App: config.AppConfig{Env: "test"},
			JWT: config.JWTConfig{Secret: "router-secret", Issuer: "smartstock-test", ExpirationMinutes: 60},
		},
		Categories: &stubCategories{views: []categorysvc.View{{ID: uuid.New(), Name: "Fruits"}}},
	}
}

func TestRouterHealthLive(t *testing.T) {
	router := NewRouter(testDeps())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if rec.Header().Get("X-SmartStock-Env") != "test" {
		t.Fatalf("env header %q", rec.Header().Get("X-SmartStock-Env"))
	}
}

func TestRouterServesShopperCategories(t *testing.T) {
	router := NewRouter(testDeps())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), "Fruits") {
		t.Fatalf("body %s", rec.Body)
	}
}

func TestRouterAdminSurfaceRequiresAuth(t *testing.T) {
	router := NewRouter(testDeps())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/v1/products", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestRouterExposesMetricsWhenRegistryPresent(t *testing.T) {
	deps := testDeps()
	deps.Registry = prometheus.NewRegistry()
	router := NewRouter(deps)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}
