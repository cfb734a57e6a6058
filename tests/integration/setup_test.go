//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

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
)

type testEnv struct {
	server http.Handler
	db     *sqlx.DB
	redis  *redis.Client
	cache  *cacheRepo.RedisCache
	orders *order.Service
	cfg    *config.Config
	log    *logger.Logger
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg, err := config.Load()
	require.NoError(t, err)
	log := logger.New(cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.WaitForDB(ctx, cfg, 5, 2*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.RunMigrations(db, "../../migrations"))

	redisClient, err := cache.WaitForRedis(ctx, cfg, 5, 2*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = redisClient.Close() })

	publisher, err := events.NewPublisher(cfg, log)
	require.NoError(t, err)
	t.Cleanup(publisher.Close)

	collector := metrics.NewCollector("integration")
	uow := postgres.NewUnitOfWork(db)
	customerRepo := postgres.NewCustomerRepository(db)
	productRepo := postgres.NewProductRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	redisCache := cacheRepo.NewRedisCache(redisClient, cfg.Cache.CustomerRevenueTTL)

	orderService := order.NewService(orderRepo, customerRepo, productRepo, uow, redisCache, publisher, collector, log)
	t.Cleanup(orderService.Wait)

	router := httpDelivery.NewRouter(httpDelivery.Handlers{
		Customer: handler.NewCustomerHandler(customer.NewService(customerRepo, uow, redisCache, log), log),
		Product:  handler.NewProductHandler(product.NewService(productRepo, uow, log), log),
		Order:    handler.NewOrderHandler(orderService, log),
		Report: handler.NewReportHandler(
			report.NewService(postgres.NewReportRepository(db), customerRepo, redisCache, collector, log), log),
	}, collector, cfg, log)

	return &testEnv{
		server: router.Setup(),
		db:     db,
		redis:  redisClient,
		cache:  redisCache,
		orders: orderService,
		cfg:    cfg,
		log:    log,
	}
}

// do sends a JSON request and decodes the JSON response, if any
func (e *testEnv) do(t *testing.T, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.server.ServeHTTP(w, req)

	if w.Body.Len() == 0 {
		return w.Code, nil
	}

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w.Code, out
}

func data(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	d, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "no data in %v", body)
	return d
}
