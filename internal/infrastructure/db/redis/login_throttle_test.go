package redis

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// fakeCounters implements the counter commands the throttle issues. Any
// other redis.Cmdable method panics through the nil embedded interface.
type fakeCounters struct {
	redis.Cmdable
	values  map[string]int64
	ttls    map[string]time.Duration
	expires int
	err     error
}

func newFakeCounters() *fakeCounters {
	return &fakeCounters{values: make(map[string]int64), ttls: make(map[string]time.Duration)}
}

func (f *fakeCounters) Get(_ context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(strconv.FormatInt(v, 10), nil)
}

func (f *fakeCounters) Incr(_ context.Context, key string) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	f.values[key]++
	return redis.NewIntResult(f.values[key], nil)
}

func (f *fakeCounters) Expire(_ context.Context, key string, ttl time.Duration) *redis.BoolCmd {
	f.expires++
	f.ttls[key] = ttl
	return redis.NewBoolResult(true, nil)
}

func (f *fakeCounters) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, key := range keys {
		if _, ok := f.values[key]; ok {
			n++
		}
		delete(f.values, key)
		delete(f.ttls, key)
	}
	return redis.NewIntResult(n, nil)
}

func TestThrottleKeyNormalisesEmail(t *testing.T) {
	if got := throttleKey("  Alice@Example.COM "); got != "login:alice@example.com" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestNewLoginThrottleDefaults(t *testing.T) {
	th := NewLoginThrottle(nil, 0, 0)
	if th.maxAttempts != defaultMaxAttempts {
		t.Fatalf("expected %d attempts, got %d", defaultMaxAttempts, th.maxAttempts)
	}
	if th.window != defaultWindow {
		t.Fatalf("expected %v window, got %v", defaultWindow, th.window)
	}

	th = NewLoginThrottle(nil, 3, time.Minute)
	if th.maxAttempts != 3 || th.window != time.Minute {
		t.Fatalf("unexpected settings %d/%v", th.maxAttempts, th.window)
	}
}

func TestLoginThrottleBlocksAtLimit(t *testing.T) {
	ctx := context.Background()
	store := newFakeCounters()
	th := NewLoginThrottle(store, 3, time.Minute)

	for i := 1; i <= 3; i++ {
		blocked, err := th.Blocked(ctx, "alice@example.com")
		if err != nil || blocked {
			t.Fatalf("attempt %d: blocked=%v err=%v before reaching the limit", i, blocked, err)
		}
		if err := th.RecordFailure(ctx, "Alice@Example.com"); err != nil {
			t.Fatalf("record failure %d: %v", i, err)
		}
	}

	blocked, err := th.Blocked(ctx, "alice@example.com")
	if err != nil || !blocked {
		t.Fatalf("expected block after 3 failures, got blocked=%v err=%v", blocked, err)
	}
	if other, _ := th.Blocked(ctx, "bob@example.com"); other {
		t.Fatalf("counters must be per email")
	}
}

func TestLoginThrottleSetsWindowOnce(t *testing.T) {
	ctx := context.Background()
	store := newFakeCounters()
	th := NewLoginThrottle(store, 5, 2*time.Minute)

	for i := 0; i < 4; i++ {
		if err := th.RecordFailure(ctx, "alice@example.com"); err != nil {
			t.Fatalf("record failure: %v", err)
		}
	}
	if store.expires != 1 {
		t.Fatalf("window must be opened once, got %d expire calls", store.expires)
	}
	if ttl := store.ttls["login:alice@example.com"]; ttl != 2*time.Minute {
		t.Fatalf("unexpected ttl %v", ttl)
	}
}

func TestLoginThrottleResetUnblocks(t *testing.T) {
	ctx := context.Background()
	store := newFakeCounters()
	th := NewLoginThrottle(store, 2, time.Minute)

	_ = th.RecordFailure(ctx, "alice@example.com")
	_ = th.RecordFailure(ctx, "alice@example.com")
	if blocked, _ := th.Blocked(ctx, "alice@example.com"); !blocked {
		t.Fatalf("expected block before reset")
	}

	if err := th.Reset(ctx, "alice@example.com"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if blocked, err := th.Blocked(ctx, "alice@example.com"); err != nil || blocked {
		t.Fatalf("expected no block after reset, got blocked=%v err=%v", blocked, err)
	}

	_ = th.RecordFailure(ctx, "alice@example.com")
	if store.expires != 2 {
		t.Fatalf("first failure after reset must open a new window, got %d expire calls", store.expires)
	}
}

func TestLoginThrottleStoreErrors(t *testing.T) {
	ctx := context.Background()
	store := newFakeCounters()
	store.err = errors.New("connection refused")
	th := NewLoginThrottle(store, 3, time.Minute)

	if _, err := th.Blocked(ctx, "alice@example.com"); !errors.Is(err, store.err) {
		t.Fatalf("expected store error from Blocked, got %v", err)
	}
	if err := th.RecordFailure(ctx, "alice@example.com"); !errors.Is(err, store.err) {
		t.Fatalf("expected store error from RecordFailure, got %v", err)
	}
}
