package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"wefixit/internal/api"
	"wefixit/internal/app"
	"wefixit/internal/config"
	"wefixit/internal/mqhandler"
	"wefixit/internal/notify"
	"wefixit/internal/service"
	"wefixit/internal/upload"
	"wefixit/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logger.NewLogger(cfg.Logger)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting api...",
		zap.String("storage", cfg.Storage.Driver),
		zap.Bool("mq_enabled", cfg.MQ.Enabled),
		zap.String("port", cfg.Server.Port),
	)
	if cfg.JWT.Secret == config.DevJWTSecret {
		logger.Warn("Using the development JWT secret; set JWT_SECRET in production")
	}

	// Stores
	stores, err := app.OpenStores(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to init storage", zap.Error(err))
	}
	defer stores.Close()

	rdb := app.OpenRedis(ctx, cfg, logger)
	defer rdb.Close()

	// Events
	notifier := mqhandler.NewNotifier(notify.New(cfg.SMTP, logger), rdb.NotifyDeduper(), logger)
	publisher, closePublisher, err := app.NewEventPublisher(cfg, notifier, logger)
	if err != nil {
		logger.Fatal("Failed to init event publisher", zap.Error(err))
	}
	defer closePublisher()

	images, err := upload.NewStore(cfg.Server.UploadDir, upload.DefaultMaxBytes)
	if err != nil {
		logger.Fatal("Failed to init upload store", zap.Error(err))
	}

	// Services
	authService := service.NewAuthService(stores.Admins, rdb.LoginLimiter(), cfg.JWT.Secret, cfg.TokenTTL(), logger)
	if err := authService.Bootstrap(ctx, cfg.Admin.BootstrapUsername, cfg.Admin.BootstrapPassword); err != nil {
		logger.Fatal("Failed to bootstrap admin", zap.Error(err))
	}

	router := api.NewRouter(api.Deps{
		Auth:        authService,
		Projects:    service.NewProjectService(stores.Projects, images, publisher, logger),
		Reviews:     service.NewReviewService(stores.Reviews, rdb.ServiceDeduper(), publisher, logger),
		Quotes:      service.NewQuoteService(stores.Quotes, publisher, logger),
		Contacts:    service.NewContactService(stores.Contacts, publisher, logger),
		Images:      images,
		UploadDir:   images.Dir(),
		Pinger:      stores.Pinger,
		JWTSecret:   cfg.JWT.Secret,
		CORSOrigins: cfg.Server.CORSOrigins,
		Logger:      logger,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("HTTP server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("api stopped with error", zap.Error(err))
	}
	logger.Info("api shutdown complete")
}
