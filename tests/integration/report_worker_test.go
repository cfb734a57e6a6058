//go:build integration
// +build integration

package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pesokrava/bugstore/internal/domain"
	"github.com/Pesokrava/bugstore/internal/repository/postgres"
	"github.com/Pesokrava/bugstore/internal/worker"
)

func TestReportWorker_RefreshesCachedRevenue(t *testing.T) {
	env := setupTestEnv(t)

	customerID := createCustomer(t, env, "Dora")
	productID := createProduct(t, env, "4.00")

	status, body := env.do(t, http.MethodPost, "/api/v1/orders", map[string]string{"customerId": customerID})
	require.Equal(t, http.StatusCreated, status)
	orderID := data(t, body)["id"].(string)

	status, _ = env.do(t, http.MethodPost, "/api/v1/orders/"+orderID+"/line", map[string]interface{}{
		"productId": productID, "quantity": 5, "price": "4.00",
	})
	require.Equal(t, http.StatusOK, status)
	env.orders.Wait()

	refresher := worker.NewRevenueRefresher(postgres.NewReportRepository(env.db), env.cache, nil, env.log)
	reportWorker := worker.NewReportWorker(refresher, env.log)

	cid := uuid.MustParse(customerID)
	event := domain.OrderEvent{
		EventType:  domain.EventOrderLineAdded,
		Timestamp:  time.Now().UTC(),
		OrderID:    uuid.MustParse(orderID),
		CustomerID: cid,
	}
	payload, err := json.Marshal(event)
	require.NoError(t, err)

	// Several events inside the debounce window collapse into one refresh
	for i := 0; i < 5; i++ {
		require.NoError(t, reportWorker.HandleEvent(payload))
	}
	assert.Equal(t, 1, reportWorker.PendingCount())

	require.Eventually(t, func() bool {
		summary, err := env.cache.GetCustomerRevenue(context.Background(), cid)
		return err == nil && summary.TotalOrders == 1 && summary.TotalRevenue.String() == "20"
	}, 5*time.Second, 100*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, reportWorker.Shutdown(ctx))
}
