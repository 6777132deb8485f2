package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/altynbek8/ServiceApp/internal/config"
	"github.com/altynbek8/ServiceApp/internal/push"
	"github.com/altynbek8/ServiceApp/internal/repository/postgres"
	"github.com/altynbek8/ServiceApp/pkg/logger"
	redisBroker "github.com/altynbek8/ServiceApp/pkg/messaging/redis"
	"github.com/altynbek8/ServiceApp/pkg/metrics"
	"github.com/altynbek8/ServiceApp/pkg/worker"
)

// WorkerConfig tunes the worker through environment variables, e.g.
// WORKER_BATCH_SIZE=200.
type WorkerConfig struct {
	BatchSize     int           `envconfig:"BATCH_SIZE" default:"100"`
	PollInterval  time.Duration `envconfig:"POLL_INTERVAL" default:"5s"`
	RetryAttempts int           `envconfig:"RETRY_ATTEMPTS" default:"3"`
	RetryDelay    time.Duration `envconfig:"RETRY_DELAY" default:"1s"`
	HealthAddr    string        `envconfig:"HEALTH_ADDR" default:":8081"`
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	var workerCfg WorkerConfig
	if err := envconfig.Process("worker", &workerCfg); err != nil {
		log.Fatal().Err(err).Msg("failed to load worker configuration")
	}

	level, err := zerolog.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	appLogger := logger.NewLogger(&logger.Config{
		Level:      level,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
		Pretty:     cfg.Logger.Pretty,
	})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	broker, err := redisBroker.NewRedisBroker(redisBroker.Config{URL: cfg.Redis.URL}, appLogger.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	outboxRepo := postgres.NewOutboxRepository(db)

	processor := worker.NewOutboxProcessor(outboxRepo, broker, worker.OutboxProcessorConfig{
		BatchSize:     workerCfg.BatchSize,
		PollInterval:  workerCfg.PollInterval,
		RetryAttempts: workerCfg.RetryAttempts,
		RetryDelay:    workerCfg.RetryDelay,
	}, appLogger, metrics.NewMetrics("serviceapp", "worker"))

	pushConsumer := push.NewConsumer(broker, push.NewExpoSender(appLogger), appLogger)

	setupHealthCheck(workerCfg.HealthAddr, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		appLogger.Info("Shutting down...")
		cancel()
	}()

	go func() {
		if err := pushConsumer.Start(ctx); err != nil {
			appLogger.Error(err, "push consumer stopped")
		}
	}()

	processor.Start(ctx)
}

func setupHealthCheck(addr string, appLogger *logger.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			appLogger.Fatal(err, "Health check server failed")
		}
	}()
}
