package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var now = func() time.Time { return time.Now().UTC() }

// Order is the aggregate root owning its lines
type Order struct {
	ID         uuid.UUID    `db:"id"`
	CustomerID uuid.UUID    `db:"customer_id"`
	CreatedAt  time.Time    `db:"created_at"`
	UpdatedAt  *time.Time   `db:"updated_at"`
	Lines      []*OrderLine `db:"-"`
}

// OrderLine is one product entry of an order. Price is the current product
// price joined in on reads.
type OrderLine struct {
	ID        uuid.UUID       `db:"id"`
	OrderID   uuid.UUID       `db:"order_id"`
	ProductID uuid.UUID       `db:"product_id"`
	Quantity  int             `db:"quantity"`
	Total     decimal.Decimal `db:"total"`
	Price     decimal.Decimal `db:"price"`
}

// NewOrder creates an empty order for a customer
func NewOrder(customerID uuid.UUID) *Order {
	return &Order{
		ID:         newID(),
		CustomerID: customerID,
		CreatedAt:  now(),
		Lines:      []*OrderLine{},
	}
}

// AddLine appends a line for a product not yet on the order
func (o *Order) AddLine(productID uuid.UUID, quantity int, price decimal.Decimal) (*OrderLine, error) {
	if o.FindLine(productID) != nil {
		return nil, NewError(ErrInvalidOperation, MsgProductDuplicated)
	}

	line, err := newOrderLine(o.ID, productID, quantity, price)
	if err != nil {
		return nil, err
	}

	o.Lines = append(o.Lines, line)
	o.touch()
	return line, nil
}

// RemoveLine drops the given line instance. Removing an absent line only
// updates the timestamp.
func (o *Order) RemoveLine(line *OrderLine) {
	for i, l := range o.Lines {
		if l == line {
			o.Lines = append(o.Lines[:i], o.Lines[i+1:]...)
			break
		}
	}
	o.touch()
}

// FindLine returns the line holding productID, or nil
func (o *Order) FindLine(productID uuid.UUID) *OrderLine {
	for _, l := range o.Lines {
		if l.ProductID == productID {
			return l
		}
	}
	return nil
}

// Total is always derived from the lines
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.Lines {
		total = total.Add(l.Total)
	}
	return total
}

func (o *Order) touch() {
	t := now()
	o.UpdatedAt = &t
}

func newOrderLine(orderID, productID uuid.UUID, quantity int, price decimal.Decimal) (*OrderLine, error) {
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}
	total, err := lineTotal(quantity, price)
	if err != nil {
		return nil, err
	}

	return &OrderLine{
		ID:        newID(),
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  quantity,
		Price:     price,
		Total:     total,
	}, nil
}

// UpdateQuantity changes the quantity and recomputes the total
func (l *OrderLine) UpdateQuantity(quantity int, price decimal.Decimal) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	total, err := lineTotal(quantity, price)
	if err != nil {
		return err
	}
	l.Quantity = quantity
	l.Total = total
	return nil
}

// OrderReader defines read access to orders. Returned orders carry their lines.
type OrderReader interface {
	// GetByID retrieves an order with its lines, ErrNotFound if absent
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// List retrieves one page of orders
	List(ctx context.Context, page Page) ([]*Order, error)

	// ListByCustomer retrieves one page of a customer's orders
	ListByCustomer(ctx context.Context, customerID uuid.UUID, page Page) ([]*Order, error)

	// Count returns the total number of orders
	Count(ctx context.Context) (int64, error)

	// CountByCustomer returns the number of orders placed by a customer
	CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)
}

// OrderWriter stages order changes in the current unit of work
type OrderWriter interface {
	Add(ctx context.Context, order *Order) error
	Update(ctx context.Context, order *Order) error
	AddLine(ctx context.Context, line *OrderLine) error
	RemoveLine(ctx context.Context, line *OrderLine) error

	// Delete removes the order and its lines; a missing id is a no-op
	Delete(ctx context.Context, id uuid.UUID) error
}

// UnitOfWork batches staged writes of one request into a single transaction
type UnitOfWork interface {
	// Begin returns a context carrying a fresh change set
	Begin(ctx context.Context) context.Context

	// Commit applies every change staged on ctx atomically
	Commit(ctx context.Context) error
}
