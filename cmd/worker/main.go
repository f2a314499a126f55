package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"wefixit/internal/app"
	"wefixit/internal/config"
	"wefixit/internal/mqhandler"
	"wefixit/internal/notify"
	"wefixit/pkg/logger"
	"wefixit/pkg/mq"

	pkgconfig "wefixit/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logger.NewLogger(cfg.Logger)
	defer logger.Sync()

	digestOn := cfg.DigestSchedule != config.DigestOff
	if !cfg.MQ.Enabled && !digestOn {
		logger.Fatal("Nothing to do: mq is disabled and the review digest is off")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting worker...",
		zap.Bool("mq_enabled", cfg.MQ.Enabled),
		zap.String("digest_schedule", cfg.DigestSchedule),
	)

	rdb := app.OpenRedis(ctx, cfg, logger)
	defer rdb.Close()

	mailer := notify.New(cfg.SMTP, logger)
	notifier := mqhandler.NewNotifier(mailer, rdb.NotifyDeduper(), logger)

	g, gctx := errgroup.WithContext(ctx)

	// One queue per routing key
	var consumers []*mq.Consumer
	if cfg.MQ.Enabled {
		for rk, h := range notifier.Handlers() {
			queue := "wefixit." + rk + ".notify.q"
			c, err := mq.NewConsumer(cfg.MQ.URL, queue, rk, logger)
			if err != nil {
				logger.Fatal("Failed to init consumer", zap.String("routing_key", rk), zap.Error(err))
			}
			defer c.Close()
			c.SetHandler(h)
			consumers = append(consumers, c)

			rk := rk
			g.Go(func() error {
				return app.RunConsumer(gctx, c, rk, logger)
			})
		}
	}

	// Pending-review digest
	var sched *cron.Cron
	if digestOn {
		stores, err := app.OpenStores(ctx, cfg, logger)
		if err != nil {
			logger.Fatal("Failed to init storage", zap.Error(err))
		}
		defer stores.Close()

		sched, err = mqhandler.NewReviewDigest(stores.Reviews, mailer, logger).Schedule(cfg.DigestSchedule)
		if err != nil {
			logger.Fatal("Failed to schedule review digest", zap.Error(err))
		}
		sched.Start()
	}

	// Health and metrics
	srv := &http.Server{
		Addr:              pkgconfig.GetEnv("WORKER_METRICS_ADDR", ":9091"),
		Handler:           healthRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	logger.Info("Worker is ready", zap.Int("consumers", len(consumers)))

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down worker gracefully...")
		for _, c := range consumers {
			c.Stop()
		}
		if sched != nil {
			<-sched.Stop().Done()
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		// a lost consumer ends the process so the supervisor restarts it
		logger.Fatal("worker stopped with error", zap.Error(err))
	}
	logger.Info("worker shutdown complete")
}

func healthRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}
