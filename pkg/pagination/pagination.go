// Package pagination implements keyset paging for the stock ledger. Pages
// walk (created_at, id) descending; the cursor token names the last row the
// client already saw.
package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultLimit is the ledger page size when the client does not ask.
	DefaultLimit = 25
	// MaxLimit caps a single ledger page.
	MaxLimit = 100
)

// Params are the paging inputs as they arrive from the query string.
type Params struct {
	Limit  int
	Cursor string
}

// PageSize clamps the requested limit into [1, MaxLimit].
func (p Params) PageSize() int {
	switch {
	case p.Limit <= 0:
		return DefaultLimit
	case p.Limit > MaxLimit:
		return MaxLimit
	}
	return p.Limit
}

// FetchLimit is PageSize plus one probe row, letting the repository detect a
// further page without a count query.
func (p Params) FetchLimit() int {
	return p.PageSize() + 1
}

// Cursor is the keyset position: the ordering columns of the last row served.
type Cursor struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

// Token serializes the cursor for the wire as base64url over
// "<unix-nanos>.<row-id>".
func (c Cursor) Token() string {
	payload := fmt.Sprintf("%d.%s", c.CreatedAt.UTC().UnixNano(), c.ID)
	return base64.RawURLEncoding.EncodeToString([]byte(payload))
}

// Decode parses a wire token back into a cursor. An empty token means the
// first page and decodes to nil.
func Decode(token string) (*Cursor, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("decode cursor token: %w", err)
	}
	nanos, rowID, ok := strings.Cut(string(raw), ".")
	if !ok {
		return nil, fmt.Errorf("malformed cursor token")
	}

	ts, err := strconv.ParseInt(nanos, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("cursor timestamp: %w", err)
	}
	id, err := uuid.Parse(rowID)
	if err != nil {
		return nil, fmt.Errorf("cursor row id: %w", err)
	}

	return &Cursor{CreatedAt: time.Unix(0, ts).UTC(), ID: id}, nil
}
