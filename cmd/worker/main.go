package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/kelseyhightower/envconfig"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/itsivali/careconnect-v1/internal/repository/postgres"
	"github.com/itsivali/careconnect-v1/pkg/logger"
	redisbroker "github.com/itsivali/careconnect-v1/pkg/messaging/redis"
	"github.com/itsivali/careconnect-v1/pkg/metrics"
	"github.com/itsivali/careconnect-v1/pkg/worker"
)

// Config is read from the environment; the worker runs headless in
// the same deployment as the API and shares its database and broker.
type Config struct {
	DatabaseURL     string        `envconfig:"DATABASE_URL" required:"true"`
	RedisURL        string        `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
	MetricsAddr     string        `envconfig:"METRICS_ADDR" default:":9091"`
	BatchSize       int           `envconfig:"OUTBOX_BATCH_SIZE" default:"100"`
	PollInterval    time.Duration `envconfig:"OUTBOX_POLL_INTERVAL" default:"5s"`
	RetryAttempts   int           `envconfig:"OUTBOX_RETRY_ATTEMPTS" default:"3"`
	RetryDelay      time.Duration `envconfig:"OUTBOX_RETRY_DELAY" default:"1s"`
	RetainProcessed time.Duration `envconfig:"OUTBOX_RETAIN_PROCESSED" default:"24h"`
}

func main() {
	var cfg Config
	if err := envconfig.Process("careconnect", &cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)

	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	broker, err := redisbroker.NewBroker(redisbroker.Config{
		URL:          cfg.RedisURL,
		MaxRetries:   3,
		RetryBackoff: 100 * time.Millisecond,
		PoolSize:     10,
		MinIdleConns: 2,
	}, appLogger.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer broker.Close()

	m := metrics.NewMetrics("careconnect", "worker")
	outboxRepo := postgres.NewOutboxRepository(db)

	processor := worker.NewOutboxProcessor(outboxRepo, broker, worker.OutboxProcessorConfig{
		BatchSize:       cfg.BatchSize,
		PollInterval:    cfg.PollInterval,
		RetryAttempts:   cfg.RetryAttempts,
		RetryDelay:      cfg.RetryDelay,
		RetainProcessed: cfg.RetainProcessed,
	}, appLogger, m)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metricsSrv := &http.Server{
		Addr:    cfg.MetricsAddr,
		Handler: promhttp.Handler(),
	}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server error")
		}
	}()

	go processor.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("metrics server shutdown error")
	}
}
