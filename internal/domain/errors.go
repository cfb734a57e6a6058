package domain

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a referenced resource does not exist
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation or an entity invariant fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidOperation is returned when a valid request breaks a domain rule
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrConflict is returned on uniqueness violations (e.g., duplicate email)
	ErrConflict = errors.New("conflict occurred")

	// ErrInvalidFormat is returned when structured input is malformed
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInternal is returned when an internal error occurs
	ErrInternal = errors.New("internal error")
)

// Human-readable messages carried by domain errors
const (
	MsgCustomerNotFound       = "customer not found"
	MsgProductNotFound        = "product not found"
	MsgOrderNotFound          = "order not found"
	MsgOrderLineNotFound      = "order line not found for product"
	MsgEmailAlreadyRegistered = "email already registered"
	MsgProductDuplicated      = "product already added to this order"
	MsgQuantityInvalid        = "quantity must be greater than zero"
	MsgQuantityTooLarge       = "quantity must not exceed 2147483647"
	MsgPriceNegative          = "price must not be negative"
	MsgPriceScale             = "price must have at most 2 decimal places"
	MsgPriceTooLarge          = "price must not exceed 9999999999999999.99"
	MsgLineTotalTooLarge      = "line total must not exceed 9999999999999999.99"
	MsgInvalidIdentifier      = "invalid identifier format"
	MsgInvalidDate            = "invalid date format"
	MsgInvalidBody            = "invalid request body"
	MsgStillReferenced        = "resource is still referenced by other records"
	MsgAlreadyExists          = "resource already exists"
	MsgValueOutOfRange        = "value out of range for storage"
)

// Error is a classified domain failure with one or more messages.
// errors.Is(err, ErrNotFound) and friends match on Kind.
type Error struct {
	Kind     error
	Messages []string
}

// NewError creates a classified error
func NewError(kind error, messages ...string) *Error {
	return &Error{Kind: kind, Messages: messages}
}

func (e *Error) Error() string {
	if len(e.Messages) == 0 {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + strings.Join(e.Messages, "; ")
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Messages returns the messages carried by err, or the error text itself
// when err is not a *Error.
func Messages(err error) []string {
	var de *Error
	if errors.As(err, &de) && len(de.Messages) > 0 {
		return de.Messages
	}
	return []string{err.Error()}
}

// NotFound builds an ErrNotFound error
func NotFound(msg string) error {
	return NewError(ErrNotFound, msg)
}

// Invalid builds an ErrInvalidInput error
func Invalid(msgs ...string) error {
	return NewError(ErrInvalidInput, msgs...)
}
