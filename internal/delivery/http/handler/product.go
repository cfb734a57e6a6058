package handler

import (
	"net/http"

	"github.com/Pesokrava/bugstore/internal/delivery/http/request"
	"github.com/Pesokrava/bugstore/internal/delivery/http/response"
	"github.com/Pesokrava/bugstore/internal/pkg/logger"
	"github.com/Pesokrava/bugstore/internal/usecase/product"
)

// ProductHandler handles HTTP requests for products
type ProductHandler struct {
	service *product.Service
	logger  *logger.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *product.Service, log *logger.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  log,
	}
}

// Create handles POST /api/v1/products
// @Summary Create a new product
// @Description Create a product with title, description, slug and a positive price
// @Tags Products
// @Accept json
// @Produce json
// @Param product body product.Request true "Product details"
// @Success 201 {object} map[string]interface{} "Product created"
// @Failure 400 {object} map[string][]string "Validation errors"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /products [post]
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req product.Request
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

// GetByID handles GET /api/v1/products/{id}
// @Summary Get a product by ID
// @Tags Products
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Success 200 {object} map[string]interface{} "Product details"
// @Failure 400 {object} map[string][]string "Invalid product ID"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /products/{id} [get]
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
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

// List handles GET /api/v1/products
// @Summary List products
// @Tags Products
// @Produce json
// @Param page query int false "Page number (1-based)" default(1)
// @Param pageSize query int false "Items per page (max 100)" default(10)
// @Success 200 {object} map[string]interface{} "Paginated list of products"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /products [get]
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := request.GetPageParams(r)

	products, info, err := h.service.List(r.Context(), page, pageSize)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Paginated(w, products, info)
}

// Update handles PUT /api/v1/products/{id}
// @Summary Update a product
// @Tags Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Param product body product.Request true "Product details"
// @Success 200 {object} map[string]interface{} "Product updated"
// @Failure 400 {object} map[string][]string "Validation errors"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /products/{id} [put]
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		h.handleError(w, err)
		return
	}

	var req product.Request
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

// UpdatePrice handles PATCH /api/v1/products/{id}
// @Summary Change a product's price
// @Tags Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Param price body product.PriceRequest true "New price"
// @Success 200 {object} map[string]interface{} "Product updated"
// @Failure 400 {object} map[string][]string "Negative price"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /products/{id} [patch]
func (h *ProductHandler) UpdatePrice(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		h.handleError(w, err)
		return
	}

	var req product.PriceRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		h.handleError(w, err)
		return
	}

	updated, err := h.service.UpdatePrice(r.Context(), id, req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, updated)
}

// Delete handles DELETE /api/v1/products/{id}
// @Summary Delete a product
// @Description Deleting a product that does not exist succeeds
// @Tags Products
// @Param id path string true "Product ID (UUID)"
// @Success 204 "Product deleted"
// @Failure 400 {object} map[string][]string "Invalid product ID"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

func (h *ProductHandler) handleError(w http.ResponseWriter, err error) {
	writeError(w, h.logger, "product", err)
}
