package notify

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

// LogPublisher is used when no broker is configured.
type LogPublisher struct {
	log *zap.Logger
}

func NewLogPublisher(log *zap.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) PublishJSON(_ context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	p.log.Info("notification", zap.String("key", key), zap.ByteString("payload", b))
	return nil
}
