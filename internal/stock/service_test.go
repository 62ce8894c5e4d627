package stock

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/smartstock-io/smartstock-backend/pkg/errors"
	"github.com/smartstock-io/smartstock-backend/pkg/logger"
	"github.com/smartstock-io/smartstock-backend/pkg/pagination"
)

type stubLedger struct {
	sum     int64
	sumErr  error
	created *Entry
}

func (s *stubLedger) SumQuantityByItem(ctx context.Context, item string) (int64, error) {
	return s.sum, s.sumErr
}

func (s *stubLedger) ListEntries(ctx context.Context, params pagination.Params) ([]Entry, string, error) {
	return nil, "", nil
}

func (s *stubLedger) CreateEntry(ctx context.Context, entry *Entry) (*Entry, error) {
	s.created = entry
	return entry, nil
}

func newStockService(t *testing.T, repo LedgerRepository) Service {
	t.Helper()
	svc, err := NewService(repo, logger.New(logger.Options{Level: zerolog.Disabled}))
	require.NoError(t, err)
	return svc
}

func TestGetQuantityKnownZeroBeatsCatalogQuantity(t *testing.T) {
	// The catalog record may claim quantity 100 while the ledger sums to 0.
	// Shopper views must show the ledger's zero (sold out), not the catalog
	// field.
	svc := newStockService(t, &stubLedger{sum: 0})

	quantity := svc.GetQuantity(context.Background(), "Apple")
	assert.True(t, quantity.Known)
	assert.Equal(t, int64(0), quantity.Total)
}

func TestGetQuantityUnknownOnLookupFailure(t *testing.T) {
	svc := newStockService(t, &stubLedger{sumErr: errors.New("connection refused")})

	quantity := svc.GetQuantity(context.Background(), "Apple")
	assert.False(t, quantity.Known, "failure must surface as unknown, not zero")
}

func TestGetQuantityBlankItem(t *testing.T) {
	svc := newStockService(t, &stubLedger{sum: 10})

	quantity := svc.GetQuantity(context.Background(), "   ")
	assert.False(t, quantity.Known)
}

func TestQuantityJSONDistinguishesUnknownFromZero(t *testing.T) {
	unknown, err := json.Marshal(Quantity{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(unknown))

	zero, err := json.Marshal(Quantity{Known: true, Total: 0})
	require.NoError(t, err)
	assert.Equal(t, "0", string(zero))
}

func TestQuantityJSONRoundTrip(t *testing.T) {
	for _, q := range []Quantity{{}, {Known: true, Total: 0}, {Known: true, Total: 165}} {
		encoded, err := json.Marshal(q)
		require.NoError(t, err)

		var decoded Quantity
		require.NoError(t, json.Unmarshal(encoded, &decoded))
		assert.Equal(t, q, decoded)
	}
}

func TestAddEntryValidation(t *testing.T) {
	repo := &stubLedger{}
	svc := newStockService(t, repo)
	ctx := context.Background()

	_, err := svc.AddEntry(ctx, "  ", 5)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))

	_, err = svc.AddEntry(ctx, "mango", -1)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))

	entry, err := svc.AddEntry(ctx, " Mango ", 12)
	require.NoError(t, err)
	assert.Equal(t, "mango", entry.Item, "ledger rows are stored lowercase")
	assert.Equal(t, repo.created, entry)
}
