package handler

import (
	"net/http"

	"github.com/Pesokrava/bugstore/internal/delivery/http/request"
	"github.com/Pesokrava/bugstore/internal/delivery/http/response"
	"github.com/Pesokrava/bugstore/internal/pkg/logger"
	"github.com/Pesokrava/bugstore/internal/usecase/report"
)

// ReportHandler serves revenue reports
type ReportHandler struct {
	service *report.Service
	logger  *logger.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(service *report.Service, log *logger.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  log,
	}
}

// RevenueByPeriod handles GET /api/v1/reports/period
// @Summary Revenue of orders created in a date window
// @Description Dates accept yyyy-MM-dd, dd/MM/yyyy, dd-MM-yyyy, MM/dd/yyyy, MM-dd-yyyy or RFC 3339. A date-only endDate covers the whole day.
// @Tags Reports
// @Produce json
// @Param startDate query string true "Window start"
// @Param endDate query string true "Window end (inclusive)"
// @Success 200 {object} map[string]interface{} "Order count and revenue"
// @Failure 400 {object} map[string][]string "Invalid date"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports/period [get]
func (h *ReportHandler) RevenueByPeriod(w http.ResponseWriter, r *http.Request) {
	start, end, err := request.GetDateRange(r)
	if err != nil {
		h.handleError(w, err)
		return
	}

	result, err := h.service.RevenueByPeriod(r.Context(), start, end)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, result)
}

// BestCustomers handles GET /api/v1/reports/best
// @Summary Top customers by total spend
// @Tags Reports
// @Produce json
// @Param topCustomers query int false "Ranking size (1-100)" default(5)
// @Success 200 {object} map[string]interface{} "Ranked customers"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports/best [get]
func (h *ReportHandler) BestCustomers(w http.ResponseWriter, r *http.Request) {
	n := request.GetIntQuery(r, "topCustomers", report.DefaultTopCustomers)

	result, err := h.service.BestCustomers(r.Context(), n)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, result)
}

// RevenueByCustomer handles GET /api/v1/reports/{customerId}
// @Summary A customer's order count and spend
// @Tags Reports
// @Produce json
// @Param customerId path string true "Customer ID (UUID)"
// @Success 200 {object} map[string]interface{} "Customer revenue"
// @Failure 400 {object} map[string][]string "Invalid customer ID"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports/{customerId} [get]
func (h *ReportHandler) RevenueByCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := request.GetUUIDParam(r, "customerId")
	if err != nil {
		h.handleError(w, err)
		return
	}

	result, err := h.service.RevenueByCustomer(r.Context(), customerID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *ReportHandler) handleError(w http.ResponseWriter, err error) {
	writeError(w, h.logger, "report", err)
}
