package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrdersSubject is the NATS subject carrying order events
const OrdersSubject = "orders.events"

// Order event types
const (
	EventOrderCreated     = "order.created"
	EventOrderLineAdded   = "order.line_added"
	EventOrderLineRemoved = "order.line_removed"
	EventOrderDeleted     = "order.deleted"
)

// OrderEvent is published after an order change has been committed
type OrderEvent struct {
	EventType  string          `json:"eventType"`
	Timestamp  time.Time       `json:"timestamp"`
	OrderID    uuid.UUID       `json:"orderId"`
	CustomerID uuid.UUID       `json:"customerId"`
	Total      decimal.Decimal `json:"total"`
}

// NewOrderEvent snapshots an order for publication
func NewOrderEvent(eventType string, order *Order) OrderEvent {
	return OrderEvent{
		EventType:  eventType,
		Timestamp:  now(),
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		Total:      order.Total(),
	}
}
