package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"wefixit/pkg/circuitbreaker"
	"wefixit/pkg/metrics"
)

// EventPublisher sends a domain event. pkg/mq.Publisher satisfies it.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }

// GuardedPublisher puts a circuit breaker and a timeout in front of a
// publisher so a dead broker costs nothing once the breaker is open.
type GuardedPublisher struct {
	inner   EventPublisher
	breaker *circuitbreaker.CircuitBreaker
	timeout time.Duration
}

func NewGuardedPublisher(inner EventPublisher, breaker *circuitbreaker.CircuitBreaker, timeout time.Duration) *GuardedPublisher {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &GuardedPublisher{inner: inner, breaker: breaker, timeout: timeout}
}

func (p *GuardedPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	err := p.breaker.Execute(func() error {
		ctx, cancel := context.WithTimeout(ctx, p.timeout)
		defer cancel()
		return p.inner.Publish(ctx, routingKey, payload)
	})
	switch {
	case err == nil:
		metrics.IncrementEventPublish(routingKey, "ok")
	case errors.Is(err, circuitbreaker.ErrCircuitBreakerOpen):
		metrics.IncrementEventPublish(routingKey, "rejected")
	default:
		metrics.IncrementEventPublish(routingKey, "failed")
	}
	return err
}

// emit publishes best-effort: a failure is logged and otherwise ignored.
func emit(ctx context.Context, pub EventPublisher, logger *zap.Logger, routingKey string, payload any) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, routingKey, payload); err != nil {
		logger.Warn("Failed to publish event",
			zap.String("routing_key", routingKey),
			zap.Error(err),
		)
	}
}
