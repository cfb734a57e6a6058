package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Pesokrava/bugstore/internal/config"
	"github.com/Pesokrava/bugstore/internal/delivery/events"
	httpDelivery "github.com/Pesokrava/bugstore/internal/delivery/http"
	"github.com/Pesokrava/bugstore/internal/delivery/http/handler"
	"github.com/Pesokrava/bugstore/internal/pkg/cache"
	"github.com/Pesokrava/bugstore/internal/pkg/database"
	"github.com/Pesokrava/bugstore/internal/pkg/logger"
	"github.com/Pesokrava/bugstore/internal/pkg/metrics"
	cacheRepo "github.com/Pesokrava/bugstore/internal/repository/cache"
	"github.com/Pesokrava/bugstore/internal/repository/postgres"
	"github.com/Pesokrava/bugstore/internal/usecase/customer"
	"github.com/Pesokrava/bugstore/internal/usecase/order"
	"github.com/Pesokrava/bugstore/internal/usecase/product"
	"github.com/Pesokrava/bugstore/internal/usecase/report"

	_ "github.com/Pesokrava/bugstore/docs"
)

// @title BugStore API
// @version 1.0
// @description Store management backend: customers, products, orders with lines, and revenue reports.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://github.com/Pesokrava/bugstore
// @contact.email support@example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @tag.name Customers
// @tag.description Customer management endpoints

// @tag.name Products
// @tag.description Product catalogue endpoints

// @tag.name Orders
// @tag.description Orders and order lines

// @tag.name Reports
// @tag.description Revenue reports

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.NewWithLevel(cfg.Env, cfg.Log.Level)
	logger.SetGlobalLogger(appLogger)
	appLogger.Info("Starting BugStore API...")

	startCtx, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStart()

	appLogger.Info("Connecting to PostgreSQL...")
	db, err := database.WaitForDB(startCtx, cfg, 10, 2*time.Second)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL successfully")

	if err := database.RunMigrations(db, cfg.Database.MigrationsDir); err != nil {
		appLogger.Fatal("Failed to run migrations", err)
	}

	appLogger.Info("Connecting to Redis...")
	redisClient, err := cache.WaitForRedis(startCtx, cfg, 10, 2*time.Second)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", err)
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis successfully")

	appLogger.Info("Connecting to NATS...")
	publisher, err := events.NewPublisher(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create NATS publisher", err)
	}
	defer publisher.Close()

	collector := metrics.NewCollector(cfg.Metrics.Namespace)

	uow := postgres.NewUnitOfWork(db)
	customerRepo := postgres.NewCustomerRepository(db)
	productRepo := postgres.NewProductRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	reportRepo := postgres.NewReportRepository(db)
	redisCache := cacheRepo.NewRedisCache(redisClient, cfg.Cache.CustomerRevenueTTL)

	customerService := customer.NewService(customerRepo, uow, redisCache, appLogger)
	productService := product.NewService(productRepo, uow, appLogger)
	orderService := order.NewService(orderRepo, customerRepo, productRepo, uow, redisCache, publisher, collector, appLogger)
	reportService := report.NewService(reportRepo, customerRepo, redisCache, collector, appLogger)

	router := httpDelivery.NewRouter(httpDelivery.Handlers{
		Customer: handler.NewCustomerHandler(customerService, appLogger),
		Product:  handler.NewProductHandler(productService, appLogger),
		Order:    handler.NewOrderHandler(orderService, appLogger),
		Report:   handler.NewReportHandler(reportService, appLogger),
	}, collector, cfg, appLogger)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		appLogger.Infof("HTTP server listening on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("HTTP server failed", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}

	// Let in-flight event publishes finish before the NATS connection closes
	if err := orderService.WaitContext(ctx); err != nil {
		appLogger.Error("Pending order events abandoned at shutdown", err)
	}

	appLogger.Info("Server stopped gracefully")
}
