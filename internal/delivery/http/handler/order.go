package handler

import (
	"net/http"

	"github.com/Pesokrava/bugstore/internal/delivery/http/request"
	"github.com/Pesokrava/bugstore/internal/delivery/http/response"
	"github.com/Pesokrava/bugstore/internal/pkg/logger"
	"github.com/Pesokrava/bugstore/internal/usecase/order"
)

// OrderHandler handles HTTP requests for orders and their lines
type OrderHandler struct {
	service *order.Service
	logger  *logger.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(service *order.Service, log *logger.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  log,
	}
}

// Create handles POST /api/v1/orders
// @Summary Open an order
// @Tags Orders
// @Accept json
// @Produce json
// @Param order body order.CreateRequest true "Owning customer"
// @Success 201 {object} map[string]interface{} "Order created"
// @Failure 400 {object} map[string][]string "Validation errors"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /orders [post]
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req order.CreateRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		h.handleError(w, err)
		return
	}

	created, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Created(w, created)
}

// GetByID handles GET /api/v1/orders/{id}
// @Summary Get an order with its lines
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID (UUID)"
// @Success 200 {object} map[string]interface{} "Order details"
// @Failure 400 {object} map[string][]string "Invalid order ID"
// @Failure 404 {object} map[string]string "Order not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /orders/{id} [get]
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		h.handleError(w, err)
		return
	}

	found, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, found)
}

// List handles GET /api/v1/orders
// @Summary List orders, newest first
// @Tags Orders
// @Produce json
// @Param page query int false "Page number (1-based)" default(1)
// @Param pageSize query int false "Items per page (max 100)" default(10)
// @Success 200 {object} map[string]interface{} "Paginated list of orders"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /orders [get]
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := request.GetPageParams(r)

	orders, info, err := h.service.List(r.Context(), page, pageSize)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Paginated(w, orders, info)
}

// ListByCustomer handles GET /api/v1/orders/customer/{customerId}
// @Summary List a customer's orders
// @Tags Orders
// @Produce json
// @Param customerId path string true "Customer ID (UUID)"
// @Param page query int false "Page number (1-based)" default(1)
// @Param pageSize query int false "Items per page (max 100)" default(10)
// @Success 200 {object} map[string]interface{} "Paginated list of orders"
// @Failure 400 {object} map[string][]string "Invalid customer ID"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /orders/customer/{customerId} [get]
func (h *OrderHandler) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := request.GetUUIDParam(r, "customerId")
	if err != nil {
		h.handleError(w, err)
		return
	}

	page, pageSize := request.GetPageParams(r)

	orders, info, err := h.service.ListByCustomer(r.Context(), customerID, page, pageSize)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Paginated(w, orders, info)
}

// AddLine handles POST /api/v1/orders/{id}/line
// @Summary Add a product line to an order
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID (UUID)"
// @Param line body order.LineRequest true "Product, quantity and unit price"
// @Success 200 {object} map[string]interface{} "Updated order"
// @Failure 400 {object} map[string][]string "Validation errors or duplicate product"
// @Failure 404 {object} map[string]string "Order or product not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /orders/{id}/line [post]
func (h *OrderHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		h.handleError(w, err)
		return
	}

	var req order.LineRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		h.handleError(w, err)
		return
	}

	updated, err := h.service.AddLine(r.Context(), id, req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, updated)
}

// RemoveLine handles DELETE /api/v1/orders/{id}/line
// @Summary Remove a product line from an order
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID (UUID)"
// @Param line body order.RemoveLineRequest true "Product whose line is removed"
// @Success 200 {object} map[string]interface{} "Updated order"
// @Failure 400 {object} map[string][]string "Invalid request"
// @Failure 404 {object} map[string]string "Order or line not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /orders/{id}/line [delete]
func (h *OrderHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		h.handleError(w, err)
		return
	}

	var req order.RemoveLineRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		h.handleError(w, err)
		return
	}

	updated, err := h.service.RemoveLine(r.Context(), id, req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, updated)
}

// Delete handles DELETE /api/v1/orders/{id}
// @Summary Delete an order and its lines
// @Description Deleting an order that does not exist succeeds
// @Tags Orders
// @Param id path string true "Order ID (UUID)"
// @Success 204 "Order deleted"
// @Failure 400 {object} map[string][]string "Invalid order ID"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /orders/{id} [delete]
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		h.handleError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.handleError(w, err)
		return
	}

	response.NoContent(w)
}

func (h *OrderHandler) handleError(w http.ResponseWriter, err error) {
	writeError(w, h.logger, "order", err)
}
