package app

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"wefixit/internal/config"
	"wefixit/internal/mqhandler"
	"wefixit/internal/service"
	"wefixit/pkg/circuitbreaker"
	"wefixit/pkg/mq"
	redisclient "wefixit/pkg/redis"
	"wefixit/pkg/util"
)

const publishTimeout = 2 * time.Second

// NewEventPublisher returns the broker publisher behind a circuit breaker
// when MQ is enabled. Otherwise events go to an in-process bus that runs the
// notification handlers directly. The returned func flushes and closes it.
func NewEventPublisher(cfg *config.Config, notifier *mqhandler.Notifier, logger *zap.Logger) (service.EventPublisher, func(), error) {
	if !cfg.MQ.Enabled {
		bus := mq.NewLocalBus(logger)
		for rk, h := range notifier.Handlers() {
			if err := bus.Subscribe(rk, h); err != nil {
				return nil, nil, err
			}
		}
		logger.Info("MQ disabled, notifications are handled in-process")
		return bus, bus.Wait, nil
	}

	pub, err := mq.NewPublisher(cfg.MQ.URL)
	if err != nil {
		return nil, nil, err
	}

	breakerCfg := circuitbreaker.DefaultConfig()
	breakerCfg.OnStateChange = func(from, to circuitbreaker.State) {
		logger.Warn("Event publisher circuit breaker changed state",
			zap.String("from", from.String()),
			zap.String("to", to.String()),
		)
	}
	guarded := service.NewGuardedPublisher(pub, circuitbreaker.NewCircuitBreaker(breakerCfg), publishTimeout)
	return guarded, pub.Close, nil
}

// Redis bundles the optional Redis-backed helpers. Every field is nil when
// Redis is not configured.
type Redis struct {
	Client  *redis.Client
	Deduper *util.Deduper
	Logins  *util.RetryCounter
}

func OpenRedis(ctx context.Context, cfg *config.Config, logger *zap.Logger) *Redis {
	rdb := redisclient.NewRedisClient(cfg.Redis)
	if rdb == nil {
		logger.Info("Redis not configured, dedupe and login throttling disabled")
		return &Redis{}
	}
	if err := redisclient.Ping(ctx, rdb); err != nil {
		// the helpers fail open, so a late Redis is tolerated
		logger.Warn("Redis unreachable at startup", zap.Error(err))
	}
	return &Redis{
		Client:  rdb,
		Deduper: util.NewDeduper(rdb, cfg.DedupeTTL(), logger),
		Logins:  util.NewRetryCounter(rdb, 15*time.Minute),
	}
}

// ServiceDeduper returns the deduper as an interface value, nil when absent.
func (r *Redis) ServiceDeduper() service.Deduper {
	if r.Deduper == nil {
		return nil
	}
	return r.Deduper
}

func (r *Redis) NotifyDeduper() mqhandler.Deduper {
	if r.Deduper == nil {
		return nil
	}
	return r.Deduper
}

func (r *Redis) LoginLimiter() service.LoginLimiter {
	if r.Logins == nil {
		return nil
	}
	return r.Logins
}

func (r *Redis) Close() {
	if r.Client != nil {
		_ = r.Client.Close()
	}
}
