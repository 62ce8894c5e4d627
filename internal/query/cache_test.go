package query

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/smartstock-io/smartstock-backend/pkg/enums"
)

func productsKey(scope string) Key {
	return Key{Kind: enums.EntityProducts, Scope: scope}
}

func TestQueryCachesResolvedValue(t *testing.T) {
	cache := NewCache(nil, nil)
	ctx := context.Background()
	key := productsKey("")

	var calls int32
	fetch := func(context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		return []string{"apple"}, nil
	}

	first := cache.Query(ctx, key, fetch)
	if first.Status != StatusSuccess {
		t.Fatalf("expected success, got %s (%v)", first.Status, first.Err)
	}

	second := cache.Query(ctx, key, fetch)
	if second.Status != StatusSuccess {
		t.Fatalf("expected cached success, got %s", second.Status)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("cached read must not re-fetch, got %d fetches", got)
	}
}

func TestQueryCoalescesConcurrentFetches(t *testing.T) {
	cache := NewCache(nil, nil)
	ctx := context.Background()
	key := productsKey("store-1")

	var calls int32
	release := make(chan struct{})
	fetch := func(context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "value", nil
	}

	var wg sync.WaitGroup
	results := make([]Snapshot, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = cache.Query(ctx, key, fetch)
		}(i)
	}

	// Wait for the first fetch to be registered before releasing it, so the
	// second call observes an in-flight operation.
	waitFor(t, func() bool { return atomic.LoadInt32(&calls) >= 1 })
	time.Sleep(10 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected exactly one underlying fetch, got %d", got)
	}
	for i, snap := range results {
		if snap.Status != StatusSuccess || snap.Value != "value" {
			t.Fatalf("result %d: unexpected snapshot %+v", i, snap)
		}
	}
}

func TestMutateInvalidatesKind(t *testing.T) {
	cache := NewCache(nil, nil)
	ctx := context.Background()
	key := productsKey("")

	var calls int32
	versions := []any{[]string{"apple"}, []string{"apple", "mango"}}
	fetch := func(context.Context) (any, error) {
		n := atomic.AddInt32(&calls, 1)
		return versions[n-1], nil
	}

	first := cache.Query(ctx, key, fetch)
	if len(first.Value.([]string)) != 1 {
		t.Fatalf("unexpected initial value %v", first.Value)
	}

	result, err := cache.Mutate(ctx, func(context.Context) (any, error) {
		return "created", nil
	}, enums.EntityProducts)
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}
	if result != "created" {
		t.Fatalf("unexpected mutation result %v", result)
	}

	second := cache.Query(ctx, key, fetch)
	if len(second.Value.([]string)) != 2 {
		t.Fatalf("expected re-fetch to surface the new entity, got %v", second.Value)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("expected exactly two fetches, got %d", got)
	}
}

func TestFailedMutationLeavesCacheIntact(t *testing.T) {
	cache := NewCache(nil, nil)
	ctx := context.Background()
	key := productsKey("")

	var calls int32
	fetch := func(context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		return "v1", nil
	}
	cache.Query(ctx, key, fetch)

	boom := errors.New("backend rejected the write")
	if _, err := cache.Mutate(ctx, func(context.Context) (any, error) {
		return nil, boom
	}, enums.EntityProducts); !errors.Is(err, boom) {
		t.Fatalf("expected mutation error, got %v", err)
	}

	snap := cache.Query(ctx, key, fetch)
	if snap.Value != "v1" {
		t.Fatalf("failed mutation must not invalidate, got %v", snap.Value)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("failed mutation must not trigger a re-fetch, got %d fetches", got)
	}
}

func TestLastRequestWins(t *testing.T) {
	cache := NewCache(nil, nil)
	ctx := context.Background()
	key := productsKey("")

	var calls int32
	release := make(chan struct{})
	fetch := func(context.Context) (any, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			<-release
			return "superseded", nil
		}
		return "fresh", nil
	}

	done := make(chan Snapshot, 1)
	go func() { done <- cache.Query(ctx, key, fetch) }()

	waitFor(t, func() bool { return atomic.LoadInt32(&calls) >= 1 })
	cache.Invalidate(enums.EntityProducts)
	close(release)

	snap := <-done
	if snap.Value != "fresh" {
		t.Fatalf("superseded fetch result leaked through: %+v", snap)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("expected the fetch to be reissued once, got %d calls", got)
	}
}

func TestErrorKeepsStaleValueVisible(t *testing.T) {
	cache := NewCache(nil, nil)
	ctx := context.Background()
	key := productsKey("")

	cache.Query(ctx, key, func(context.Context) (any, error) {
		return "v1", nil
	})
	cache.Invalidate(enums.EntityProducts)

	boom := errors.New("backend down")
	snap := cache.Query(ctx, key, func(context.Context) (any, error) {
		return nil, boom
	})
	if snap.Status != StatusError {
		t.Fatalf("expected error status, got %s", snap.Status)
	}
	if !errors.Is(snap.Err, boom) {
		t.Fatalf("expected cause to surface, got %v", snap.Err)
	}
	if snap.Value != "v1" {
		t.Fatalf("prior cached value must stay visible on error, got %v", snap.Value)
	}
}

func TestErrorWithoutPriorValue(t *testing.T) {
	cache := NewCache(nil, nil)
	boom := errors.New("backend down")

	snap := cache.Query(context.Background(), productsKey(""), func(context.Context) (any, error) {
		return nil, boom
	})
	if snap.Status != StatusError || snap.Value != nil {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestSubscribeReleaseEvicts(t *testing.T) {
	cache := NewCache(nil, nil)
	ctx := context.Background()
	key := productsKey("")

	if count := cache.Subscribe(key); count != 1 {
		t.Fatalf("expected 1 subscriber, got %d", count)
	}
	if count := cache.Subscribe(key); count != 2 {
		t.Fatalf("expected 2 subscribers, got %d", count)
	}

	cache.Query(ctx, key, func(context.Context) (any, error) {
		return "v1", nil
	})

	cache.Release(key)
	if _, ok := cache.Peek(key); !ok {
		t.Fatalf("entry evicted while still subscribed")
	}

	cache.Release(key)
	if _, ok := cache.Peek(key); ok {
		t.Fatalf("entry must be evicted after the last release")
	}

	var calls int32
	cache.Query(ctx, key, func(context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		return "v2", nil
	})
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("evicted key must re-fetch, got %d fetches", got)
	}
}

func TestUnknownKindPanics(t *testing.T) {
	cache := NewCache(nil, nil)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for unknown entity kind")
		}
	}()
	cache.Query(context.Background(), Key{Kind: "bogus"}, func(context.Context) (any, error) {
		return nil, nil
	})
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not met before deadline")
		}
		runtime.Gosched()
	}
}
