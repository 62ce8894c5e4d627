package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/smartstock-io/smartstock-backend/pkg/config"
	"github.com/smartstock-io/smartstock-backend/pkg/errors"
)

// MemorySource is an in-memory DataSource with fixed artificial latency per
// operation class, mirroring the staging backend's response times.
type MemorySource struct {
	mu         sync.RWMutex
	products   []Product
	stores     []Store
	categories []Category

	cfg   config.DataSourceConfig
	now   func() time.Time
	newID func() uuid.UUID

	failure error
}

// MemoryOption customizes a MemorySource, mostly for tests.
type MemoryOption func(*MemorySource)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *MemorySource) { m.now = now }
}

// WithIDGenerator overrides how new entity ids are assigned.
func WithIDGenerator(gen func() uuid.UUID) MemoryOption {
	return func(m *MemorySource) { m.newID = gen }
}

// NewMemorySource seeds an in-memory backend from the provided fixtures.
func NewMemorySource(cfg config.DataSourceConfig, fixtures Fixtures, opts ...MemoryOption) (*MemorySource, error) {
	if err := fixtures.Validate(); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "invalid catalog fixtures")
	}

	m := &MemorySource{
		products:   clone(fixtures.Products),
		stores:     clone(fixtures.Stores),
		categories: clone(fixtures.Categories),
		cfg:        cfg,
		now:        time.Now,
		newID:      uuid.New,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// FailWith makes every subsequent operation return err until cleared with nil.
// Used to exercise the query layer's stale-on-error behavior.
func (m *MemorySource) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failure = err
}

func (m *MemorySource) injectedFailure() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.failure
}

// sleep simulates backend latency without ignoring cancellation.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (m *MemorySource) ListProducts(ctx context.Context, storeID *uuid.UUID) ([]Product, error) {
	if err := sleep(ctx, m.cfg.ListLatency); err != nil {
		return nil, err
	}
	if err := m.injectedFailure(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if storeID == nil {
		return clone(m.products), nil
	}
	scoped := []Product{}
	for _, p := range m.products {
		if p.StoreID == *storeID {
			scoped = append(scoped, p)
		}
	}
	return scoped, nil
}

func (m *MemorySource) GetProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	if err := sleep(ctx, m.cfg.GetLatency); err != nil {
		return nil, err
	}
	if err := m.injectedFailure(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, p := range m.products {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, errors.New(errors.CodeNotFound, "product not found")
}

func (m *MemorySource) CreateProduct(ctx context.Context, input ProductInput) (*Product, error) {
	if err := sleep(ctx, m.cfg.MutateLatency); err != nil {
		return nil, err
	}
	if err := m.injectedFailure(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.storeExistsLocked(input.StoreID) {
		return nil, errors.New(errors.CodeNotFound, "store not found")
	}

	now := m.now()
	product := Product{
		ID:                   m.newID(),
		Name:                 input.Name,
		NameTranslations:     input.NameTranslations.Clone(),
		Category:             input.Category,
		CategoryTranslations: input.CategoryTranslations.Clone(),
		Price:                input.Price,
		Quantity:             input.Quantity,
		Unit:                 input.Unit,
		UnitTranslations:     input.UnitTranslations.Clone(),
		Image:                input.Image,
		StoreID:              input.StoreID,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	m.products = append(m.products, product)
	return &product, nil
}

func (m *MemorySource) UpdateProduct(ctx context.Context, id uuid.UUID, patch ProductPatch) (*Product, error) {
	if err := sleep(ctx, m.cfg.MutateLatency); err != nil {
		return nil, err
	}
	if err := m.injectedFailure(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.products {
		if m.products[i].ID != id {
			continue
		}
		p := &m.products[i]
		applyPatch(p, patch)

		// updatedAt must strictly advance even under a coarse clock.
		next := m.now()
		if !next.After(p.UpdatedAt) {
			next = p.UpdatedAt.Add(time.Millisecond)
		}
		p.UpdatedAt = next

		updated := *p
		return &updated, nil
	}
	return nil, errors.New(errors.CodeNotFound, "product not found")
}

func applyPatch(p *Product, patch ProductPatch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.NameTranslations != nil {
		p.NameTranslations = patch.NameTranslations.Clone()
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.CategoryTranslations != nil {
		p.CategoryTranslations = patch.CategoryTranslations.Clone()
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Quantity != nil {
		p.Quantity = *patch.Quantity
	}
	if patch.Unit != nil {
		p.Unit = *patch.Unit
	}
	if patch.UnitTranslations != nil {
		p.UnitTranslations = patch.UnitTranslations.Clone()
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
}

func (m *MemorySource) DeleteProduct(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := sleep(ctx, m.cfg.MutateLatency); err != nil {
		return false, err
	}
	if err := m.injectedFailure(); err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.products {
		if m.products[i].ID == id {
			m.products = append(m.products[:i], m.products[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *MemorySource) ListStores(ctx context.Context) ([]Store, error) {
	if err := sleep(ctx, m.cfg.ListLatency); err != nil {
		return nil, err
	}
	if err := m.injectedFailure(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return clone(m.stores), nil
}

func (m *MemorySource) GetStore(ctx context.Context, id uuid.UUID) (*Store, error) {
	if err := sleep(ctx, m.cfg.GetLatency); err != nil {
		return nil, err
	}
	if err := m.injectedFailure(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, s := range m.stores {
		if s.ID == id {
			found := s
			return &found, nil
		}
	}
	return nil, errors.New(errors.CodeNotFound, "store not found")
}

func (m *MemorySource) CreateStore(ctx context.Context, input StoreInput) (*Store, error) {
	if err := sleep(ctx, m.cfg.MutateLatency); err != nil {
		return nil, err
	}
	if err := m.injectedFailure(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	store := Store{
		ID:       m.newID(),
		Name:     input.Name,
		Location: input.Location,
		OwnerID:  input.OwnerID,
		Image:    input.Image,
	}
	m.stores = append(m.stores, store)
	return &store, nil
}

func (m *MemorySource) ListCategories(ctx context.Context) ([]Category, error) {
	if err := sleep(ctx, m.cfg.GetLatency); err != nil {
		return nil, err
	}
	if err := m.injectedFailure(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return clone(m.categories), nil
}

func (m *MemorySource) storeExistsLocked(id uuid.UUID) bool {
	for _, s := range m.stores {
		if s.ID == id {
			return true
		}
	}
	return false
}
