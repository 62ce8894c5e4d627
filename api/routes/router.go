package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/smartstock-io/smartstock-backend/api/controllers"
	"github.com/smartstock-io/smartstock-backend/api/middleware"
	alertsvc "github.com/smartstock-io/smartstock-backend/internal/alerts"
	categorysvc "github.com/smartstock-io/smartstock-backend/internal/categories"
	"github.com/smartstock-io/smartstock-backend/internal/i18n"
	productsvc "github.com/smartstock-io/smartstock-backend/internal/products"
	sessionstore "github.com/smartstock-io/smartstock-backend/internal/session"
	stocksvc "github.com/smartstock-io/smartstock-backend/internal/stock"
	storesvc "github.com/smartstock-io/smartstock-backend/internal/stores"
	"github.com/smartstock-io/smartstock-backend/pkg/auth/session"
	"github.com/smartstock-io/smartstock-backend/pkg/config"
	"github.com/smartstock-io/smartstock-backend/pkg/logger"
)

type sessionManager interface {
	session.AccessSessionChecker
	Generate(ctx context.Context, accessID string) error
	Revoke(ctx context.Context, accessID string) error
}

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config     *config.Config
	Logger     *logger.Logger
	Registry   *prometheus.Registry
	Health     map[string]controllers.Pinger
	Sessions   sessionManager
	Identities sessionstore.Store
	I18n       i18n.Service
	Products   productsvc.Service
	Presenter  *productsvc.Presenter
	Stores     storesvc.Service
	Categories categorysvc.Service
	Stock      stocksvc.Service
	Alerts     alertsvc.Service
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, d.Health))
	})

	if d.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(d.Identities, d.Sessions, cfg.JWT, logg))
		r.Post("/register", controllers.AuthRegister(d.Identities, d.Sessions, cfg.JWT, logg))
	})

	// Shopper surface: no auth, locale resolved per request.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Locale(d.I18n, logg))

		r.Route("/api/v1/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(d.Products, d.Presenter, logg))
			r.Get("/{productId}", controllers.GetProduct(d.Products, d.Presenter, logg))
		})
		r.Route("/api/v1/stores", func(r chi.Router) {
			r.Get("/", controllers.ListStores(d.Stores, logg))
			r.Get("/{storeId}", controllers.GetStore(d.Stores, logg))
		})
		r.Get("/api/v1/categories", controllers.ListCategories(d.Categories, logg))

		r.Route("/api/v1/stock", func(r chi.Router) {
			r.Get("/quantity", controllers.StockQuantity(d.Stock, logg))
			r.Post("/alerts", controllers.RegisterDepletionAlert(d.Alerts, logg))
		})

		r.Get("/api/v1/locale", controllers.GetLocale(d.I18n, logg))
		r.Put("/api/v1/locale", controllers.SetLocale(d.I18n, logg))
	})

	// Authenticated surface.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, d.Sessions, d.Identities, logg))
		r.Use(middleware.Locale(d.I18n, logg))

		r.Post("/api/v1/auth/logout", controllers.AuthLogout(d.Identities, d.Sessions, logg))
		r.Get("/api/v1/auth/me", controllers.AuthMe(logg))
		r.Put("/api/v1/me/locale", controllers.SetLocale(d.I18n, logg))

		r.Route("/api/admin/v1", func(r chi.Router) {
			r.Use(middleware.RequireRole("admin", logg))

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.AdminListProducts(d.Products, logg))
				r.Post("/", controllers.AdminCreateProduct(d.Products, logg))
				r.Patch("/{productId}", controllers.AdminUpdateProduct(d.Products, logg))
				r.Delete("/{productId}", controllers.AdminDeleteProduct(d.Products, logg))
			})
			r.Post("/stores", controllers.AdminCreateStore(d.Stores, logg))
			r.Route("/stock", func(r chi.Router) {
				r.Get("/ledger", controllers.AdminListStockEntries(d.Stock, logg))
				r.Post("/ledger", controllers.AdminAddStockEntry(d.Stock, logg))
			})
		})
	})

	return r
}
