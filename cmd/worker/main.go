package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/booking-api/internal/config"
	"github.com/jwalitptl/booking-api/internal/repository/postgres"
	internalworker "github.com/jwalitptl/booking-api/internal/worker"
	"github.com/jwalitptl/booking-api/pkg/logger"
	redisbroker "github.com/jwalitptl/booking-api/pkg/messaging/redis"
	"github.com/jwalitptl/booking-api/pkg/metrics"
	"github.com/jwalitptl/booking-api/pkg/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	appLogger := logger.NewLogger(nil)
	zlog := log.Logger

	broker, err := redisbroker.NewRedisBroker(redisbroker.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		RetryBackoff: cfg.Redis.RetryBackoff,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, &zlog)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer broker.Close()

	outboxRepo := postgres.NewOutboxRepository(postgres.NewBaseRepository(db))
	m := metrics.NewMetrics("booking", "worker")

	processor := worker.NewOutboxProcessor(outboxRepo, broker, worker.OutboxProcessorConfig{
		BatchSize:     cfg.Worker.BatchSize,
		PollInterval:  cfg.Worker.PollInterval,
		RetryAttempts: cfg.Worker.RetryAttempts,
		RetryDelay:    cfg.Worker.RetryDelay,
	}, appLogger, m)

	cleanup := internalworker.NewOutboxCleanupWorker(
		outboxRepo,
		cfg.Worker.RetentionDays,
		cfg.Worker.CleanupInterval,
		appLogger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go processor.Start(ctx)
	go cleanup.Start(ctx)

	metricsSrv := &http.Server{
		Addr:    cfg.Worker.MetricsListenAddr,
		Handler: promhttp.Handler(),
	}
	go func() {
		log.Info().Str("addr", cfg.Worker.MetricsListenAddr).Msg("starting metrics listener")
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics listener failed")
		}
	}()

	log.Info().Msg("outbox worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")
	cancel()
	if err := metricsSrv.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close metrics listener")
	}
}
