package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Pesokrava/bugstore/internal/domain"
)

// CreateRequest opens an order for a customer
type CreateRequest struct {
	CustomerID uuid.UUID `json:"customerId" validate:"required"`
}

// LineRequest adds a product to an order
type LineRequest struct {
	ProductID uuid.UUID       `json:"productId" validate:"required"`
	Quantity  int             `json:"quantity" validate:"gt=0,lte=2147483647"`
	Price     decimal.Decimal `json:"price" validate:"gt=0"`
}

// RemoveLineRequest names the product whose line is removed
type RemoveLineRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
}

// SummaryResponse is the order representation used in lists
type SummaryResponse struct {
	ID         uuid.UUID       `json:"id"`
	CustomerID uuid.UUID       `json:"customerId"`
	CreatedAt  time.Time       `json:"createdAt"`
	Total      decimal.Decimal `json:"total"`
}

// LineResponse is one order line with the current product price
type LineResponse struct {
	ProductID uuid.UUID       `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Total     decimal.Decimal `json:"total"`
}

// DetailedResponse is the full order representation
type DetailedResponse struct {
	ID         uuid.UUID       `json:"id"`
	CustomerID uuid.UUID       `json:"customerId"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  *time.Time      `json:"updatedAt"`
	Lines      []LineResponse  `json:"lines"`
	Total      decimal.Decimal `json:"total"`
}

func toSummary(o *domain.Order) *SummaryResponse {
	return &SummaryResponse{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		CreatedAt:  o.CreatedAt,
		Total:      o.Total(),
	}
}

func toSummaries(orders []*domain.Order) []*SummaryResponse {
	out := make([]*SummaryResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toSummary(o))
	}
	return out
}

func toDetailed(o *domain.Order) *DetailedResponse {
	lines := make([]LineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, LineResponse{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Price:     l.Price,
			Total:     l.Total,
		})
	}

	return &DetailedResponse{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
		Lines:      lines,
		Total:      o.Total(),
	}
}
