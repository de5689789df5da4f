package lock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func newRedisLocker(t *testing.T) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisLocker(client, 100*time.Millisecond), mr
}

func TestRedisLocker_Exclusive(t *testing.T) {
	l, mr := newRedisLocker(t)
	ctx := context.Background()
	key := SlotKey("1:2:2025-11-01:10:00")

	release, err := l.Acquire(ctx, key, time.Second)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if !mr.Exists(key) {
		t.Fatalf("expected %s to be set", key)
	}

	if _, err := l.Acquire(ctx, key, time.Second); !errors.Is(err, ErrNotAcquired) {
		t.Fatalf("expected ErrNotAcquired, got %v", err)
	}

	release()
	if mr.Exists(key) {
		t.Fatalf("expected %s to be released", key)
	}

	release2, err := l.Acquire(ctx, key, time.Second)
	if err != nil {
		t.Fatalf("re-acquire: %v", err)
	}
	release2()
}

func TestRedisLocker_StaleReleaseKeepsNewOwner(t *testing.T) {
	l, mr := newRedisLocker(t)
	ctx := context.Background()
	key := PaymentKey("123-20251101101500")

	stale, err := l.Acquire(ctx, key, time.Second)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}

	mr.FastForward(2 * time.Second)

	current, err := l.Acquire(ctx, key, time.Second)
	if err != nil {
		t.Fatalf("acquire after expiry: %v", err)
	}

	stale()
	if !mr.Exists(key) {
		t.Fatalf("a stale release must not drop the new owner's lease")
	}
	current()
}

func TestMemoryLocker(t *testing.T) {
	l := NewMemoryLocker(50 * time.Millisecond)
	ctx := context.Background()

	release, err := l.Acquire(ctx, "k", time.Minute)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if _, err := l.Acquire(ctx, "k", time.Minute); !errors.Is(err, ErrNotAcquired) {
		t.Fatalf("expected ErrNotAcquired, got %v", err)
	}

	got := make(chan error, 1)
	go func() {
		r, err := NewMemoryLocker(time.Second).Acquire(ctx, "other", time.Minute)
		if err == nil {
			r()
		}
		got <- err
	}()
	if err := <-got; err != nil {
		t.Fatalf("independent key: %v", err)
	}

	release()
	release()

	again, err := l.Acquire(ctx, "k", time.Minute)
	if err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
	again()
}

func TestMemoryLocker_TTLExpires(t *testing.T) {
	l := NewMemoryLocker(time.Second)

	if _, err := l.Acquire(context.Background(), "k", 20*time.Millisecond); err != nil {
		t.Fatalf("acquire: %v", err)
	}

	release, err := l.Acquire(context.Background(), "k", time.Minute)
	if err != nil {
		t.Fatalf("expected lease to expire: %v", err)
	}
	release()
}
