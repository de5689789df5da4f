package mq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// HandleFunc processes one delivery. A returned error requeues it.
type HandleFunc func(ctx context.Context, key string, body []byte) error

type Consumer struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
	log   *zap.Logger
}

func NewConsumer(url, exchange, queue string, keys []string, prefetch int, log *zap.Logger) (*Consumer, error) {
	conn, ch, err := open(url, exchange)
	if err != nil {
		return nil, err
	}

	q, err := ch.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		_ = closeAll(conn, ch)
		return nil, fmt.Errorf("declare queue: %w", err)
	}
	for _, rk := range keys {
		if err := ch.QueueBind(q.Name, rk, exchange, false, nil); err != nil {
			_ = closeAll(conn, ch)
			return nil, fmt.Errorf("bind %s: %w", rk, err)
		}
	}

	if prefetch <= 0 {
		prefetch = 8
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		_ = closeAll(conn, ch)
		return nil, fmt.Errorf("set qos: %w", err)
	}

	return &Consumer{conn: conn, ch: ch, queue: q.Name, log: log}, nil
}

// Run consumes until ctx is cancelled or the channel closes.
func (c *Consumer) Run(ctx context.Context, handle HandleFunc) error {
	msgs, err := c.ch.ConsumeWithContext(ctx, c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}
	c.consume(ctx, msgs, handle)
	return nil
}

func (c *Consumer) consume(ctx context.Context, msgs <-chan amqp.Delivery, handle HandleFunc) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-msgs:
			if !ok {
				return
			}
			c.deliver(ctx, d, handle)
		}
	}
}

// deliver acks a handled delivery. A failed one is requeued once, then
// dropped on its redelivery.
func (c *Consumer) deliver(ctx context.Context, d amqp.Delivery, handle HandleFunc) {
	if err := handle(ctx, d.RoutingKey, d.Body); err != nil {
		requeue := !d.Redelivered
		c.log.Warn("handle failed",
			zap.String("key", d.RoutingKey),
			zap.Bool("requeue", requeue),
			zap.Error(err),
		)
		if nerr := d.Nack(false, requeue); nerr != nil {
			c.log.Error("nack failed", zap.String("key", d.RoutingKey), zap.Error(nerr))
		}
		return
	}
	if err := d.Ack(false); err != nil {
		c.log.Error("ack failed", zap.String("key", d.RoutingKey), zap.Error(err))
	}
}

func (c *Consumer) Close() error {
	return closeAll(c.conn, c.ch)
}
