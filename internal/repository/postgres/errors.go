package postgres

import (
	"errors"

	"github.com/lib/pq"

	"github.com/Pesokrava/bugstore/internal/domain"
)

const (
	pqForeignKeyViolation pq.ErrorCode = "23503"
	pqUniqueViolation     pq.ErrorCode = "23505"
	pqNumericOutOfRange   pq.ErrorCode = "22003"
)

// translateError turns constraint violations into domain conflicts and
// out-of-range values into invalid input. Other errors pass through unchanged.
func translateError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch pqErr.Code {
	case pqForeignKeyViolation:
		return domain.NewError(domain.ErrConflict, domain.MsgStillReferenced)
	case pqUniqueViolation:
		switch pqErr.Constraint {
		case "idx_customers_email":
			return domain.NewError(domain.ErrConflict, domain.MsgEmailAlreadyRegistered)
		case "uq_order_lines_order_product":
			return domain.NewError(domain.ErrInvalidOperation, domain.MsgProductDuplicated)
		}
		return domain.NewError(domain.ErrConflict, domain.MsgAlreadyExists)
	case pqNumericOutOfRange:
		return domain.Invalid(domain.MsgValueOutOfRange)
	default:
		return err
	}
}
