package handler

import (
	"net/http"

	"github.com/Pesokrava/bugstore/internal/delivery/http/request"
	"github.com/Pesokrava/bugstore/internal/delivery/http/response"
	"github.com/Pesokrava/bugstore/internal/pkg/logger"
	"github.com/Pesokrava/bugstore/internal/usecase/customer"
)

// CustomerHandler handles HTTP requests for customers
type CustomerHandler struct {
	service *customer.Service
	logger  *logger.Logger
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(service *customer.Service, log *logger.Logger) *CustomerHandler {
	return &CustomerHandler{
		service: service,
		logger:  log,
	}
}

// Create handles POST /api/v1/customers
// @Summary Register a customer
// @Description Create a customer with name, email, phone and birth date
// @Tags Customers
// @Accept json
// @Produce json
// @Param customer body customer.Request true "Customer details"
// @Success 201 {object} map[string]interface{} "Customer created"
// @Failure 400 {object} map[string][]string "Validation errors"
// @Failure 409 {object} map[string]string "Email already registered"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /customers [post]
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req customer.Request
	if err := request.DecodeJSON(r, &req); err != nil {
		h.handleError(w, err)
		return
	}

	created, err := h.service.Add(r.Context(), req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Created(w, created)
}

// GetByID handles GET /api/v1/customers/{id}
// @Summary Get a customer by ID
// @Tags Customers
// @Produce json
// @Param id path string true "Customer ID (UUID)"
// @Success 200 {object} map[string]interface{} "Customer details"
// @Failure 400 {object} map[string][]string "Invalid customer ID"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /customers/{id} [get]
func (h *CustomerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
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

// List handles GET /api/v1/customers
// @Summary List customers
// @Tags Customers
// @Produce json
// @Param page query int false "Page number (1-based)" default(1)
// @Param pageSize query int false "Items per page (max 100)" default(10)
// @Success 200 {object} map[string]interface{} "Paginated list of customers"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /customers [get]
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := request.GetPageParams(r)

	customers, info, err := h.service.List(r.Context(), page, pageSize)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Paginated(w, customers, info)
}

// Update handles PUT /api/v1/customers/{id}
// @Summary Update a customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID (UUID)"
// @Param customer body customer.Request true "Customer details"
// @Success 200 {object} map[string]interface{} "Customer updated"
// @Failure 400 {object} map[string][]string "Validation errors"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 409 {object} map[string]string "Email already registered"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /customers/{id} [put]
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		h.handleError(w, err)
		return
	}

	var req customer.Request
	if err := request.DecodeJSON(r, &req); err != nil {
		h.handleError(w, err)
		return
	}

	updated, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, updated)
}

// Delete handles DELETE /api/v1/customers/{id}
// @Summary Delete a customer
// @Tags Customers
// @Param id path string true "Customer ID (UUID)"
// @Success 204 "Customer deleted"
// @Failure 400 {object} map[string][]string "Invalid customer ID"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /customers/{id} [delete]
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

func (h *CustomerHandler) handleError(w http.ResponseWriter, err error) {
	writeError(w, h.logger, "customer", err)
}
