package stock

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	pkgerrors "github.com/smartstock-io/smartstock-backend/pkg/errors"
	"github.com/smartstock-io/smartstock-backend/pkg/logger"
	"github.com/smartstock-io/smartstock-backend/pkg/pagination"
)

// Quantity is the side-channel lookup result. Known=false means the lookup
// failed and the quantity is unknown; callers must render a distinct unknown
// state rather than treating it as zero.
type Quantity struct {
	Known bool
	Total int64
}

// MarshalJSON renders an unknown quantity as null, never as 0.
func (q Quantity) MarshalJSON() ([]byte, error) {
	if !q.Known {
		return []byte("null"), nil
	}
	return json.Marshal(q.Total)
}

// UnmarshalJSON mirrors MarshalJSON: null reads back as unknown.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*q = Quantity{}
		return nil
	}
	var total int64
	if err := json.Unmarshal(data, &total); err != nil {
		return err
	}
	*q = Quantity{Known: true, Total: total}
	return nil
}

// Service is the live-quantity side channel. The total it reports is
// independent of the catalog Product.Quantity field and the two can diverge;
// shopper views show this value while admin forms edit the catalog field.
type Service interface {
	GetQuantity(ctx context.Context, itemName string) Quantity
	ListEntries(ctx context.Context, params pagination.Params) ([]Entry, string, error)
	AddEntry(ctx context.Context, item string, quantity int64) (*Entry, error)
}

type service struct {
	repo LedgerRepository
	logg *logger.Logger
}

// NewService wires the side channel against the ledger repository.
func NewService(repo LedgerRepository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, errors.New("ledger repository is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	return &service{repo: repo, logg: logg}, nil
}

// GetQuantity sums matching ledger rows. Failures degrade to an unknown
// quantity instead of propagating; product rendering must never break on a
// ledger outage.
func (s *service) GetQuantity(ctx context.Context, itemName string) Quantity {
	if strings.TrimSpace(itemName) == "" {
		return Quantity{}
	}

	total, err := s.repo.SumQuantityByItem(ctx, itemName)
	if err != nil {
		s.logg.Error(s.logg.WithField(ctx, "item", itemName), "stock ledger lookup failed", err)
		return Quantity{}
	}
	return Quantity{Known: true, Total: total}
}

func (s *service) ListEntries(ctx context.Context, params pagination.Params) ([]Entry, string, error) {
	entries, next, err := s.repo.ListEntries(ctx, params)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing stock ledger")
	}
	return entries, next, nil
}

func (s *service) AddEntry(ctx context.Context, item string, quantity int64) (*Entry, error) {
	item = strings.TrimSpace(item)
	if item == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item is required")
	}
	if quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative")
	}

	entry, err := s.repo.CreateEntry(ctx, &Entry{Item: strings.ToLower(item), Quantity: quantity})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "writing stock ledger")
	}
	return entry, nil
}
