package mq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/asaskevich/EventBus"
	"go.uber.org/zap"
)

// LocalBus delivers events to in-process handlers. It stands in for the
// broker when MQ is disabled, with the same Publish signature as Publisher.
type LocalBus struct {
	bus    EventBus.Bus
	logger *zap.Logger
}

func NewLocalBus(logger *zap.Logger) *LocalBus {
	return &LocalBus{bus: EventBus.New(), logger: logger}
}

// Subscribe registers h for routingKey. Handlers run asynchronously, one
// event at a time per routing key.
func (b *LocalBus) Subscribe(routingKey string, h MessageHandler) error {
	fn := func(data json.RawMessage) {
		defer func() {
			if r := recover(); r != nil {
				b.logger.Error("Local handler panic recovered",
					zap.String("routing_key", routingKey),
					zap.Any("panic", r),
				)
			}
		}()
		if err := h(context.Background(), data); err != nil {
			b.logger.Error("Local handler error",
				zap.String("routing_key", routingKey),
				zap.Error(err),
			)
		}
	}
	if err := b.bus.SubscribeAsync(routingKey, fn, true); err != nil {
		return fmt.Errorf("subscribe %s: %w", routingKey, err)
	}
	return nil
}

// Publish encodes payload as JSON and hands it to the subscribers of
// routingKey. Events with no subscriber are dropped.
func (b *LocalBus) Publish(_ context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if !b.bus.HasCallback(routingKey) {
		b.logger.Debug("No local subscriber for event", zap.String("routing_key", routingKey))
		return nil
	}
	b.bus.Publish(routingKey, json.RawMessage(body))
	return nil
}

// Wait blocks until every in-flight handler has returned.
func (b *LocalBus) Wait() {
	b.bus.WaitAsync()
}
