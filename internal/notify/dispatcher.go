package notify

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Publisher delivers one event to the outside world.
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

type message struct {
	key     string
	payload any
}

const publishTimeout = 5 * time.Second

// Dispatcher decouples request handling from delivery. Notifications are
// best effort: failures are logged and never reach the caller.
type Dispatcher struct {
	pub   Publisher
	log   *zap.Logger
	queue chan message

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(pub Publisher, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		pub:   pub,
		log:   log.Named("notify"),
		queue: make(chan message, 100),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for m := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		if err := d.pub.PublishJSON(ctx, m.key, m.payload); err != nil {
			d.log.Warn("publish failed", zap.String("key", m.key), zap.Error(err))
		}
		cancel()
	}
}

func (d *Dispatcher) Dispatch(key string, payload any) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	select {
	case d.queue <- message{key: key, payload: payload}:
	default:
		d.log.Warn("notify queue full, dropping event", zap.String("key", key))
	}
}

func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	<-d.done
}
