package customer

import (
	"time"

	"github.com/google/uuid"

	"github.com/Pesokrava/bugstore/internal/domain"
)

// Request carries the fields of a customer create or update
type Request struct {
	Name      string    `json:"name" validate:"required,max=200"`
	Email     string    `json:"email" validate:"required,email,max=320"`
	Phone     string    `json:"phone" validate:"required,max=50"`
	BirthDate time.Time `json:"birthDate" validate:"past"`
}

// Response is the customer representation returned to clients
type Response struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	BirthDate time.Time `json:"birthDate"`
}

func toResponse(c *domain.Customer) *Response {
	return &Response{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		BirthDate: c.BirthDate,
	}
}

func toResponses(customers []*domain.Customer) []*Response {
	out := make([]*Response, 0, len(customers))
	for _, c := range customers {
		out = append(out, toResponse(c))
	}
	return out
}
