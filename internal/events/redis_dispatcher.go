package events

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// redisDispatcher mirrors every published event onto a Redis stream for
// external consumers, then delivers to local subscribers. Stream append
// failures are logged and do not fail the publish; the stream is an
// observability tap, not part of the write path.
type redisDispatcher struct {
	client *redis.Client
	stream string
	local  Dispatcher
	logger *zap.Logger
}

// NewRedisDispatcher wraps a local dispatcher with a Redis stream tap.
func NewRedisDispatcher(client *redis.Client, stream string, logger *zap.Logger) Dispatcher {
	return &redisDispatcher{
		client: client,
		stream: stream,
		local:  NewInMemoryDispatcher(),
		logger: logger,
	}
}

func (d *redisDispatcher) Publish(ctx context.Context, event Event) error {
	if payload, err := json.Marshal(event); err != nil {
		d.logger.Warn("marshal event", zap.Error(err), zap.String("type", string(event.Type)))
	} else if err := d.client.XAdd(ctx, &redis.XAddArgs{
		Stream: d.stream,
		Values: map[string]interface{}{"event": payload},
	}).Err(); err != nil {
		d.logger.Warn("append event to stream", zap.Error(err), zap.String("stream", d.stream))
	}
	return d.local.Publish(ctx, event)
}

func (d *redisDispatcher) Subscribe(eventType EventType, handler EventHandler) {
	d.local.Subscribe(eventType, handler)
}
