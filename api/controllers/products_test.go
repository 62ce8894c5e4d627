package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartstock-io/smartstock-backend/api/middleware"
	"github.com/smartstock-io/smartstock-backend/internal/catalog"
	productsvc "github.com/smartstock-io/smartstock-backend/internal/products"
	sessionstore "github.com/smartstock-io/smartstock-backend/internal/session"
	"github.com/smartstock-io/smartstock-backend/internal/stock"
	"github.com/smartstock-io/smartstock-backend/pkg/enums"
	pkgerrors "github.com/smartstock-io/smartstock-backend/pkg/errors"
	"github.com/smartstock-io/smartstock-backend/pkg/types"
)

type stubProducts struct {
	items   []catalog.Product
	product *catalog.Product
	deleted bool
	err     error

	createInput catalog.ProductInput
}

func (s *stubProducts) List(ctx context.Context, storeID *uuid.UUID) ([]catalog.Product, error) {
	return s.items, s.err
}

func (s *stubProducts) Get(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	return s.product, s.err
}

func (s *stubProducts) Create(ctx context.Context, actor *sessionstore.Identity, input catalog.ProductInput) (*catalog.Product, error) {
	s.createInput = input
	return s.product, s.err
}

func (s *stubProducts) Update(ctx context.Context, actor *sessionstore.Identity, id uuid.UUID, patch catalog.ProductPatch) (*catalog.Product, error) {
	return s.product, s.err
}

func (s *stubProducts) Delete(ctx context.Context, actor *sessionstore.Identity, id uuid.UUID) (bool, error) {
	return s.deleted, s.err
}

type passthroughTranslator struct{}

func (passthroughTranslator) Resolve(key string, locale enums.Locale, override types.Translations) string {
	if value, ok := override.Get(locale); ok {
		return value
	}
	return key
}

type fixedQuantities struct {
	quantity stock.Quantity
}

func (f fixedQuantities) GetQuantity(context.Context, string) stock.Quantity {
	return f.quantity
}

func testPresenter(q stock.Quantity) *productsvc.Presenter {
	return productsvc.NewPresenter(passthroughTranslator{}, fixedQuantities{quantity: q})
}

func adminIdentity(storeID uuid.UUID) *sessionstore.Identity {
	return &sessionstore.Identity{
		ID:      uuid.New(),
		Name:    "owner",
		Email:   "owner-admin@example.com",
		Role:    enums.RoleAdmin,
		StoreID: &storeID,
	}
}

func TestListProductsRendersViews(t *testing.T) {
	svc := &stubProducts{items: []catalog.Product{{
		ID:               uuid.New(),
		Name:             "Apple",
		NameTranslations: types.Translations{"en": "Apple", "te": "ఆపిల్"},
		Price:            decimal.NewFromInt(40),
		Quantity:         100,
		Unit:             "kg",
		StoreID:          uuid.New(),
	}}}
	handler := ListProducts(svc, testPresenter(stock.Quantity{Known: true, Total: 12}), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req = req.WithContext(middleware.WithLocale(req.Context(), enums.LocaleTelugu))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var envelope struct {
		Data []productsvc.View `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 1 {
		t.Fatalf("expected 1 view, got %d", len(envelope.Data))
	}
	if envelope.Data[0].Name != "ఆపిల్" {
		t.Fatalf("name not localized: %q", envelope.Data[0].Name)
	}
	if !envelope.Data[0].LiveQuantity.Known || envelope.Data[0].LiveQuantity.Total != 12 {
		t.Fatalf("live quantity %+v", envelope.Data[0].LiveQuantity)
	}
}

func TestListProductsRejectsBadStoreID(t *testing.T) {
	handler := ListProducts(&stubProducts{}, testPresenter(stock.Quantity{}), nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products?storeId=nope", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestGetProductNotFound(t *testing.T) {
	svc := &stubProducts{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}
	handler := GetProduct(svc, testPresenter(stock.Quantity{}), nil)

	r := chi.NewRouter()
	r.Get("/api/v1/products/{productId}", handler)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products/"+uuid.NewString(), nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestAdminCreateProductUsesActorStore(t *testing.T) {
	storeID := uuid.New()
	svc := &stubProducts{product: &catalog.Product{ID: uuid.New(), Name: "Mango", StoreID: storeID}}
	handler := AdminCreateProduct(svc, nil)

	body, _ := json.Marshal(map[string]any{
		"name":     "Mango",
		"category": "Fruits",
		"price":    "55.50",
		"quantity": 10,
		"unit":     "kg",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/products", bytes.NewReader(body))
	req = req.WithContext(middleware.WithIdentity(req.Context(), adminIdentity(storeID)))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body)
	}
	if svc.createInput.StoreID != storeID {
		t.Fatalf("expected store %s, got %s", storeID, svc.createInput.StoreID)
	}
	if !svc.createInput.Price.Equal(decimal.RequireFromString("55.50")) {
		t.Fatalf("price %s", svc.createInput.Price)
	}
}

func TestAdminCreateProductWithoutStoreContext(t *testing.T) {
	handler := AdminCreateProduct(&stubProducts{}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/products", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", rec.Code)
	}
}

func TestAdminDeleteProductReportsOutcome(t *testing.T) {
	svc := &stubProducts{deleted: false}
	handler := AdminDeleteProduct(svc, nil)

	r := chi.NewRouter()
	r.Delete("/api/admin/v1/products/{productId}", handler)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/v1/products/"+uuid.NewString(), nil)
	req = req.WithContext(middleware.WithIdentity(req.Context(), adminIdentity(uuid.New())))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var envelope struct {
		Data map[string]bool `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data["deleted"] {
		t.Fatal("expected deleted=false for an absent product")
	}
}
