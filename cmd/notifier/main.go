package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Pesokrava/bugstore/internal/config"
	"github.com/Pesokrava/bugstore/internal/delivery/events"
	"github.com/Pesokrava/bugstore/internal/domain"
	"github.com/Pesokrava/bugstore/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.NewWithLevel(cfg.Env, cfg.Log.Level)
	appLogger.Info("Starting order notifier...")

	consumer, err := events.NewConsumer(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create NATS consumer", err)
	}
	defer consumer.Close()

	if err := consumer.Subscribe(domain.OrdersSubject, events.LoggingHandler(appLogger)); err != nil {
		appLogger.Fatalf(err, "Failed to subscribe to %s", domain.OrdersSubject)
	}

	appLogger.Info("Notifier started and listening for order events...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down notifier...")
}
