package product

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Pesokrava/bugstore/internal/domain"
)

// Request carries the fields of a product create or update
type Request struct {
	Title       string          `json:"title" validate:"required,max=200"`
	Description string          `json:"description" validate:"required"`
	Slug        string          `json:"slug" validate:"required,slug,max=200"`
	Price       decimal.Decimal `json:"price" validate:"gt=0"`
}

// PriceRequest carries a new price
type PriceRequest struct {
	Price decimal.Decimal `json:"price"`
}

// DetailedResponse is the full product representation
type DetailedResponse struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Slug        string          `json:"slug"`
	Price       decimal.Decimal `json:"price"`
}

// Response is the product representation used in lists
type Response struct {
	ID    uuid.UUID       `json:"id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
}

func toDetailed(p *domain.Product) *DetailedResponse {
	return &DetailedResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Slug:        p.Slug,
		Price:       p.Price,
	}
}

func toResponses(products []*domain.Product) []*Response {
	out := make([]*Response, 0, len(products))
	for _, p := range products {
		out = append(out, &Response{ID: p.ID, Title: p.Title, Price: p.Price})
	}
	return out
}
