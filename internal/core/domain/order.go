package domain

import (
	"errors"
	"time"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusRequested OrderStatus = "requested"
	StatusPreparing OrderStatus = "preparing"
	StatusShipped   OrderStatus = "shipped"
	StatusCollected OrderStatus = "collected"
	StatusCancelled OrderStatus = "cancelled"
)

// validTransitions defines the allowed state machine transitions.
// Cancellation is possible until the order has shipped.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusRequested: {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusCollected},
}

var ErrOrderNotFound = errors.New("order not found")
var ErrOrderNumberTaken = errors.New("order number already in use")
var ErrOrderNoItems = errors.New("order requires at least one item")
var ErrInvalidTransition = errors.New("invalid order status transition")

// CanTransitionTo reports whether moving from s to next is a valid transition.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsValidOrderStatus reports whether status names a known lifecycle state.
func IsValidOrderStatus(status OrderStatus) bool {
	switch status {
	case StatusRequested, StatusPreparing, StatusShipped, StatusCollected, StatusCancelled:
		return true
	}
	return false
}

// OrderItem is a single line on an order. UnitPrice is the article price
// captured when the line was written, so later catalogue changes do not
// rewrite order history.
type OrderItem struct {
	ArticleID string  `json:"article_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Order is the core aggregate: a client reference, one or more line items,
// a lifecycle status, and a human-readable sequential number assigned once
// at creation.
type Order struct {
	ID        string      `json:"id"`
	Number    string      `json:"number"`
	Date      time.Time   `json:"date"`
	Status    OrderStatus `json:"status"`
	ClientID  string      `json:"client_id"`
	Items     []OrderItem `json:"items"`
	Total     float64     `json:"total"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
