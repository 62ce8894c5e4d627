package stock

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smartstock-io/smartstock-backend/pkg/pagination"
)

// LedgerRepository defines persistence operations for the quantity ledger.
type LedgerRepository interface {
	SumQuantityByItem(ctx context.Context, item string) (int64, error)
	ListEntries(ctx context.Context, params pagination.Params) ([]Entry, string, error)
	CreateEntry(ctx context.Context, entry *Entry) (*Entry, error)
}

// Repository wires ledger persistence onto GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// SumQuantityByItem sums every ledger row whose item matches the name
// case-insensitively and partially. Zero means "none in stock"; lookup
// failure is the caller's signal for "unknown".
func (r *Repository) SumQuantityByItem(ctx context.Context, item string) (int64, error) {
	needle := "%" + escapeLike(strings.ToLower(strings.TrimSpace(item))) + "%"

	var total int64
	err := r.db.WithContext(ctx).
		Model(&Entry{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("LOWER(item) LIKE ? ESCAPE '\\'", needle).
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("summing ledger for %q: %w", item, err)
	}
	return total, nil
}

// escapeLike neutralizes LIKE metacharacters so an item named "100%" matches
// literally instead of as a wildcard.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// ListEntries pages through the ledger newest-first with a cursor.
func (r *Repository) ListEntries(ctx context.Context, params pagination.Params) ([]Entry, string, error) {
	q := r.db.WithContext(ctx).
		Model(&Entry{}).
		Order("created_at DESC, id DESC").
		Limit(params.FetchLimit())

	cursor, err := pagination.Decode(params.Cursor)
	if err != nil {
		return nil, "", fmt.Errorf("parsing ledger cursor: %w", err)
	}
	if cursor != nil {
		q = q.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var entries []Entry
	if err := q.Find(&entries).Error; err != nil {
		return nil, "", fmt.Errorf("listing ledger entries: %w", err)
	}

	pageSize := params.PageSize()
	next := ""
	if len(entries) > pageSize {
		entries = entries[:pageSize]
		last := entries[len(entries)-1]
		next = pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}.Token()
	}
	return entries, next, nil
}

// CreateEntry inserts a ledger row, assigning the id when absent.
func (r *Repository) CreateEntry(ctx context.Context, entry *Entry) (*Entry, error) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, fmt.Errorf("creating ledger entry: %w", err)
	}
	return entry, nil
}
