package i18n

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/smartstock-io/smartstock-backend/pkg/enums"
	"github.com/smartstock-io/smartstock-backend/pkg/logger"
	redisclient "github.com/smartstock-io/smartstock-backend/pkg/redis"
	"github.com/smartstock-io/smartstock-backend/pkg/types"
)

func TestResolveLocaleFallback(t *testing.T) {
	cases := []struct {
		name     string
		key      string
		locale   enums.Locale
		override types.Translations
		want     string
	}{
		{
			name:   "telugu entry present",
			key:    "products.quantity",
			locale: enums.LocaleTelugu,
			want:   "పరిమాణం",
		},
		{
			name:   "english dictionary",
			key:    "products.quantity",
			locale: enums.LocaleEnglish,
			want:   "Quantity",
		},
		{
			name:   "unknown key returns literal",
			key:    "unknown.key",
			locale: enums.LocaleTelugu,
			want:   "unknown.key",
		},
		{
			name:     "override wins over dictionary",
			key:      "products.quantity",
			locale:   enums.LocaleTelugu,
			override: types.Translations{enums.LocaleTelugu: "మొత్తం"},
			want:     "మొత్తం",
		},
		{
			name:     "override without locale entry falls through",
			key:      "products.quantity",
			locale:   enums.LocaleTelugu,
			override: types.Translations{enums.LocaleEnglish: "Count"},
			want:     "పరిమాణం",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Resolve(tc.key, tc.locale, tc.override); got != tc.want {
				t.Fatalf("resolve(%q, %s) = %q, want %q", tc.key, tc.locale, got, tc.want)
			}
		})
	}
}

func TestResolveFallsBackToEnglishForMissingTeluguEntry(t *testing.T) {
	// Drop a Telugu entry to prove the English dictionary backstops it.
	const key = "nav.home"
	original := dictionaries[enums.LocaleTelugu][key]
	delete(dictionaries[enums.LocaleTelugu], key)
	defer func() { dictionaries[enums.LocaleTelugu][key] = original }()

	if got := Resolve(key, enums.LocaleTelugu, nil); got != "Home" {
		t.Fatalf("expected english fallback, got %q", got)
	}
}

type fakeKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string]string)}
}

func (f *fakeKV) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = fmt.Sprint(value)
	return nil
}

func (f *fakeKV) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	value, ok := f.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return value, nil
}

func (f *fakeKV) Del(ctx context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func newTestService(t *testing.T, kv redisclient.KV) Service {
	t.Helper()
	logg := logger.New(logger.Options{Level: zerolog.ErrorLevel})
	svc, err := NewService(kv, logg, enums.LocaleEnglish)
	if err != nil {
		t.Fatalf("new i18n service: %v", err)
	}
	return svc
}

func TestPreferencePersistsAcrossRestart(t *testing.T) {
	kv := newFakeKV()
	svc := newTestService(t, kv)
	ctx := context.Background()

	locale, err := svc.SetPreference(ctx, "user-1", "te")
	if err != nil {
		t.Fatalf("set preference: %v", err)
	}
	if locale != enums.LocaleTelugu {
		t.Fatalf("expected te, got %s", locale)
	}

	// A fresh service over the same storage sees the persisted choice.
	rehydrated := newTestService(t, kv)
	if got := rehydrated.Preference(ctx, "user-1"); got != enums.LocaleTelugu {
		t.Fatalf("expected persisted te, got %s", got)
	}
}

func TestInvalidPreferenceRetainsPrior(t *testing.T) {
	kv := newFakeKV()
	svc := newTestService(t, kv)
	ctx := context.Background()

	if _, err := svc.SetPreference(ctx, "user-1", "te"); err != nil {
		t.Fatalf("set preference: %v", err)
	}

	locale, err := svc.SetPreference(ctx, "user-1", "fr")
	if err != nil {
		t.Fatalf("set invalid preference: %v", err)
	}
	if locale != enums.LocaleTelugu {
		t.Fatalf("invalid locale must retain prior, got %s", locale)
	}
}

func TestPreferenceDefaultsWhenUnset(t *testing.T) {
	svc := newTestService(t, newFakeKV())

	if got := svc.Preference(context.Background(), "stranger"); got != enums.LocaleEnglish {
		t.Fatalf("expected default locale, got %s", got)
	}
}

func TestRegionSubtagReducesToBase(t *testing.T) {
	svc := newTestService(t, newFakeKV())

	locale, err := svc.SetPreference(context.Background(), "user-1", "te-IN")
	if err != nil {
		t.Fatalf("set preference: %v", err)
	}
	if locale != enums.LocaleTelugu {
		t.Fatalf("expected te from te-IN, got %s", locale)
	}
}

func TestClearPreference(t *testing.T) {
	kv := newFakeKV()
	svc := newTestService(t, kv)
	ctx := context.Background()

	if _, err := svc.SetPreference(ctx, "user-1", "te"); err != nil {
		t.Fatalf("set preference: %v", err)
	}
	if err := svc.ClearPreference(ctx, "user-1"); err != nil {
		t.Fatalf("clear preference: %v", err)
	}
	if got := svc.Preference(ctx, "user-1"); got != enums.LocaleEnglish {
		t.Fatalf("expected default after clear, got %s", got)
	}
}
