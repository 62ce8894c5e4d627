package pagination

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageSizeClamping(t *testing.T) {
	assert.Equal(t, DefaultLimit, Params{}.PageSize())
	assert.Equal(t, DefaultLimit, Params{Limit: -4}.PageSize())
	assert.Equal(t, 3, Params{Limit: 3}.PageSize())
	assert.Equal(t, MaxLimit, Params{Limit: MaxLimit + 1}.PageSize())
	assert.Equal(t, 4, Params{Limit: 3}.FetchLimit(), "fetch limit carries one probe row")
}

func TestCursorTokenRoundTrip(t *testing.T) {
	want := Cursor{
		CreatedAt: time.Date(2025, time.June, 1, 12, 30, 0, 450, time.UTC),
		ID:        uuid.New(),
	}

	got, err := Decode(want.Token())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, want.ID, got.ID)
}

func TestDecodeEmptyTokenIsFirstPage(t *testing.T) {
	got, err := Decode("  ")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	for _, token := range []string{"not base64!", "bm9kb3Q", "MTIzLm5vdC1hLXV1aWQ"} {
		_, err := Decode(token)
		assert.Error(t, err, token)
	}
}
