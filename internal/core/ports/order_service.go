package ports

import (
	"context"
	"time"

	"github.com/minicrm/crm-api/internal/core/domain"
)

// OrderItemInput is a single requested order line. A nil UnitPrice means
// "capture the article's current catalogue price"; an explicit zero is a
// free line and is stored as-is.
type OrderItemInput struct {
	ArticleID string
	Quantity  int
	UnitPrice *float64
}

// CreateOrderInput carries all data needed to create an order. Number is
// optional: when empty the service assigns the next sequential number.
type CreateOrderInput struct {
	Number   string
	Date     time.Time
	Status   domain.OrderStatus
	ClientID string
	Items    []OrderItemInput
	Total    float64
}

// UpdateOrderInput replaces an order's mutable fields. The stored number is
// never reassigned; status changes must follow the lifecycle transitions.
type UpdateOrderInput struct {
	Date     time.Time
	Status   domain.OrderStatus
	ClientID string
	Items    []OrderItemInput
	Total    float64
}

// OrderService defines order use cases.
type OrderService interface {
	List(ctx context.Context) ([]*domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	Create(ctx context.Context, input CreateOrderInput) (*domain.Order, error)
	Update(ctx context.Context, id string, input UpdateOrderInput) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}
