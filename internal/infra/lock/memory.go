package lock

import (
	"context"
	"sync"
	"time"
)

// MemoryLocker is the single-process fallback used when Redis is not
// configured. Leases are not shared across instances.
type MemoryLocker struct {
	mu   sync.Mutex
	held map[string]chan struct{}
	wait time.Duration
}

func NewMemoryLocker(wait time.Duration) *MemoryLocker {
	if wait <= 0 {
		wait = DefaultWait
	}
	return &MemoryLocker{held: make(map[string]chan struct{}), wait: wait}
}

func (l *MemoryLocker) Acquire(
	ctx context.Context,
	key string,
	ttl time.Duration,
) (func(), error) {

	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	for {
		l.mu.Lock()
		done, busy := l.held[key]
		if !busy {
			done = make(chan struct{})
			l.held[key] = done
			l.mu.Unlock()
			return l.lease(key, done, ttl), nil
		}
		l.mu.Unlock()

		select {
		case <-done:
		case <-timer.C:
			return nil, ErrNotAcquired
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (l *MemoryLocker) lease(key string, done chan struct{}, ttl time.Duration) func() {
	var once sync.Once
	free := func() {
		once.Do(func() {
			l.mu.Lock()
			if l.held[key] == done {
				delete(l.held, key)
			}
			l.mu.Unlock()
			close(done)
		})
	}

	expiry := time.AfterFunc(ttl, free)
	return func() {
		expiry.Stop()
		free()
	}
}

var _ Locker = (*MemoryLocker)(nil)
