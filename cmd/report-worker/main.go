package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"golang.org/x/sync/errgroup"

	"github.com/Pesokrava/bugstore/internal/config"
	"github.com/Pesokrava/bugstore/internal/delivery/events"
	"github.com/Pesokrava/bugstore/internal/domain"
	"github.com/Pesokrava/bugstore/internal/pkg/cache"
	"github.com/Pesokrava/bugstore/internal/pkg/database"
	"github.com/Pesokrava/bugstore/internal/pkg/logger"
	"github.com/Pesokrava/bugstore/internal/pkg/metrics"
	cacheRepo "github.com/Pesokrava/bugstore/internal/repository/cache"
	"github.com/Pesokrava/bugstore/internal/repository/postgres"
	"github.com/Pesokrava/bugstore/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.NewWithLevel(cfg.Env, cfg.Log.Level)
	appLogger.Info("Starting report worker...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appLogger.Info("Connecting to PostgreSQL...")
	db, err := database.WaitForDB(ctx, cfg, 10, 2*time.Second)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer db.Close()

	appLogger.Info("Connecting to Redis...")
	redisClient, err := cache.WaitForRedis(ctx, cfg, 10, 2*time.Second)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", err)
	}
	defer redisClient.Close()

	collector := metrics.NewCollector(cfg.Metrics.Namespace + "_worker")
	refresher := worker.NewRevenueRefresher(
		postgres.NewReportRepository(db),
		cacheRepo.NewRedisCache(redisClient, cfg.Cache.CustomerRevenueTTL),
		collector,
		appLogger,
	)
	reportWorker := worker.NewReportWorker(refresher, appLogger,
		worker.WithDebounce(cfg.Worker.DebounceWindow),
		worker.WithRetries(cfg.Worker.MaxRetries, cfg.Worker.InitialBackoff),
	)

	appLogger.Info("Connecting to NATS JetStream...")
	nc, err := nats.Connect(cfg.NATS.URL)
	if err != nil {
		appLogger.Fatal("Failed to connect to NATS", err)
	}
	defer nc.Close()

	js, err := nc.JetStream()
	if err != nil {
		appLogger.Fatal("Failed to create JetStream context", err)
	}

	streamConfig := events.NewStreamConfig(js, events.SettingsFromConfig(cfg), appLogger)
	if err := streamConfig.EnsureStream(); err != nil {
		appLogger.Fatal("Failed to ensure stream", err)
	}
	if err := streamConfig.EnsureConsumer(); err != nil {
		appLogger.Fatal("Failed to ensure consumer", err)
	}

	sub, err := js.PullSubscribe(domain.OrdersSubject, events.ConsumerName, nats.ManualAck())
	if err != nil {
		appLogger.Fatal("Failed to subscribe to JetStream consumer", err)
	}
	defer func() {
		if err := sub.Unsubscribe(); err != nil {
			appLogger.Error("Failed to unsubscribe from JetStream", err)
		}
	}()

	appLogger.WithFields(map[string]any{
		"stream":   events.StreamName,
		"consumer": events.ConsumerName,
	}).Info("Subscribed to JetStream consumer")

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return worker.NewPuller(sub, reportWorker.HandleEvent, appLogger).Run(gctx)
	})

	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Worker.MetricsPort),
		Handler:           collector.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	g.Go(func() error {
		appLogger.Infof("Metrics listening on port %s", cfg.Worker.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Received shutdown signal")

		metricsCtx, cancelMetrics := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelMetrics()
		if err := metricsServer.Shutdown(metricsCtx); err != nil {
			appLogger.Error("Failed to stop metrics server", err)
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return reportWorker.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		appLogger.Error("Error during shutdown", err)
	}

	appLogger.Info("Report worker stopped")
}
