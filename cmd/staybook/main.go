package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"staybook/internal/app/availability"
	appevents "staybook/internal/app/events"
	"staybook/internal/app/locks"
	"staybook/internal/app/seed"
	blockapp "staybook/internal/app/services/block"
	bookingapp "staybook/internal/app/services/booking"
	guestapp "staybook/internal/app/services/guest"
	propertyapp "staybook/internal/app/services/property"
	"staybook/internal/app/uow"
	"staybook/internal/infra/broker/kafka"
	"staybook/internal/infra/config"
	mongodb "staybook/internal/infra/db/mongo"
	ginserver "staybook/internal/infra/http/gin"
	"staybook/internal/infra/obs"
	"staybook/internal/infra/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration invalid", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)

	factory, ready, err := buildStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("storage init failed", "error", err)
		os.Exit(1)
	}

	publisher := buildPublisher(cfg, logger)
	if closer, ok := publisher.(interface{ Close() error }); ok {
		defer func() { _ = closer.Close() }()
	}

	if cfg.SeedSampleData {
		if err := seed.Run(ctx, factory, logger); err != nil {
			logger.Warn("sample data seeding failed", "error", err)
		}
	}

	propertyLocks := locks.NewPropertyLocks()
	checker := availability.Checker{}
	guestSvc := &guestapp.Service{Logger: logger}

	bookingSvc := &bookingapp.Service{
		UoW:       factory,
		Locks:     propertyLocks,
		Guests:    guestSvc,
		Checker:   checker,
		Publisher: publisher,
		Logger:    logger,
	}
	blockSvc := &blockapp.Service{
		UoW:       factory,
		Locks:     propertyLocks,
		Checker:   checker,
		Publisher: publisher,
		Logger:    logger,
	}
	propertySvc := &propertyapp.Service{UoW: factory}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{Ready: ready}, ginserver.Handlers{
		Booking:  ginserver.BookingHandler{Service: bookingSvc},
		Block:    ginserver.BlockHandler{Service: blockSvc},
		Property: ginserver.PropertyHandler{Service: propertySvc},
	})

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

// buildStore picks Mongo when a URI is configured, the in-memory store
// otherwise. The readiness probe pings Mongo; the memory store is always
// ready.
func buildStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (uow.Factory, func() error, error) {
	if cfg.MongoURI == "" {
		logger.Info("using in-memory storage")
		return memory.NewFactory(), func() error { return nil }, nil
	}

	client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return nil, nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx); err != nil {
		return nil, nil, err
	}
	if err := client.EnsureIndexes(ctx); err != nil {
		return nil, nil, err
	}
	logger.Info("using mongo storage", "database", cfg.MongoDB)
	ready := func() error {
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return client.Ping(pingCtx)
	}
	return mongodb.NewFactory(client.DB), ready, nil
}

func buildPublisher(cfg config.Config, logger *slog.Logger) appevents.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("event publishing disabled, no kafka brokers configured")
		return nil
	}
	pub, err := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopicPrefix, nil)
	if err != nil {
		logger.Warn("kafka producer init failed, continuing without events", "error", err)
		return nil
	}
	logger.Info("kafka event publishing enabled", "brokers", cfg.KafkaBrokers)
	return pub
}
