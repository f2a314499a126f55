package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Consumer is a blocking delivery loop such as *mq.Consumer.
type Consumer interface {
	StartConsuming() error
}

// RunConsumer blocks until c's delivery loop ends. The loop only ends
// cleanly after ctx is done; any earlier end means the broker dropped the
// channel and is returned as an error.
func RunConsumer(ctx context.Context, c Consumer, routingKey string, logger *zap.Logger) error {
	if err := c.StartConsuming(); err != nil {
		return fmt.Errorf("consumer %s: %w", routingKey, err)
	}
	if ctx.Err() == nil {
		return fmt.Errorf("consumer %s stopped", routingKey)
	}
	logger.Info("Consumer stopped", zap.String("routing_key", routingKey))
	return nil
}
