// Package lock provides short-lived advisory locks keyed by string.
package lock

import (
	"context"
	"errors"
	"time"
)

var ErrNotAcquired = errors.New("lock not acquired")

// Locker hands out exclusive leases. The returned release func is safe to
// call once the lease has already expired.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}

const (
	// DefaultWait bounds how long Acquire retries a held key.
	DefaultWait  = 2 * time.Second
	retryBackoff = 25 * time.Millisecond
)

func SlotKey(slot string) string {
	return "lock:slot:" + slot
}

func PaymentKey(txnRef string) string {
	return "lock:payment:" + txnRef
}
