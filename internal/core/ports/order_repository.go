package ports

import (
	"context"

	"github.com/minicrm/crm-api/internal/core/domain"
)

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	Update(ctx context.Context, order *domain.Order) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}

// Sequencer hands out strictly increasing integers for a named sequence.
// Implementations must be safe under concurrent callers: two simultaneous
// Next calls never return the same value.
type Sequencer interface {
	Next(ctx context.Context, name string) (int64, error)
}
