package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Pesokrava/bugstore/internal/config"
	"github.com/Pesokrava/bugstore/internal/delivery/http/handler"
	"github.com/Pesokrava/bugstore/internal/pkg/logger"
	"github.com/Pesokrava/bugstore/internal/pkg/metrics"
	"github.com/Pesokrava/bugstore/internal/usecase/customer"
	"github.com/Pesokrava/bugstore/internal/usecase/mocks"
	"github.com/Pesokrava/bugstore/internal/usecase/order"
	"github.com/Pesokrava/bugstore/internal/usecase/product"
	"github.com/Pesokrava/bugstore/internal/usecase/report"
)

func newTestRouter() http.Handler {
	log := logger.New("test")
	customers := new(mocks.CustomerRepository)
	products := new(mocks.ProductRepository)
	orders := new(mocks.OrderRepository)
	uow := new(mocks.UnitOfWork)

	handlers := Handlers{
		Customer: handler.NewCustomerHandler(customer.NewService(customers, uow, nil, log), log),
		Product:  handler.NewProductHandler(product.NewService(products, uow, log), log),
		Order: handler.NewOrderHandler(
			order.NewService(orders, customers, products, uow, nil, nil, nil, log), log),
		Report: handler.NewReportHandler(
			report.NewService(new(mocks.ReportRepository), customers, nil, nil, log), log),
	}

	cfg := &config.Config{Server: config.ServerConfig{AllowedOrigins: []string{"http://localhost:3000"}}}
	return NewRouter(handlers, metrics.NewCollector("test"), cfg, log).Setup()
}

func TestRouter_Health(t *testing.T) {
	w := httptest.NewRecorder()

	newTestRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestRouter_Metrics(t *testing.T) {
	router := newTestRouter()
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `test_http_requests_total{method="GET",route="/health",status="200"} 1`)
}

// Every id-bearing route rejects malformed identifiers before touching a service
func TestRouter_MalformedIdentifiers(t *testing.T) {
	routes := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/api/v1/customers/xyz", ""},
		{http.MethodPut, "/api/v1/customers/xyz", "{}"},
		{http.MethodDelete, "/api/v1/customers/xyz", ""},
		{http.MethodGet, "/api/v1/products/xyz", ""},
		{http.MethodPut, "/api/v1/products/xyz", "{}"},
		{http.MethodPatch, "/api/v1/products/xyz", "{}"},
		{http.MethodDelete, "/api/v1/products/xyz", ""},
		{http.MethodGet, "/api/v1/orders/xyz", ""},
		{http.MethodGet, "/api/v1/orders/customer/xyz", ""},
		{http.MethodPost, "/api/v1/orders/xyz/line", "{}"},
		{http.MethodDelete, "/api/v1/orders/xyz/line", "{}"},
		{http.MethodDelete, "/api/v1/orders/xyz", ""},
		{http.MethodGet, "/api/v1/reports/xyz", ""},
	}

	router := newTestRouter()
	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			req := httptest.NewRequest(rt.method, rt.path, strings.NewReader(rt.body))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"errors":["invalid identifier format"]}`, w.Body.String())
		})
	}
}

func TestRouter_CORSAllowsPatch(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/products/abc", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	w := httptest.NewRecorder()

	newTestRouter().ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch)
}
