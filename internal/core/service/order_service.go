package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/minicrm/crm-api/internal/core/domain"
	"github.com/minicrm/crm-api/internal/core/ports"
)

const (
	orderSequence     = "orders"
	orderNumberPrefix = "CMD"
	orderNumberWidth  = 3
)

// OrderService implements order use cases. Numbering draws from an atomic
// sequence so concurrent creations never collide (the read-latest-and
// increment approach is not carried forward).
type OrderService struct {
	orders   ports.OrderRepository
	clients  ports.ClientRepository
	articles ports.ArticleRepository
	sequence ports.Sequencer
	logger   zerolog.Logger
}

func NewOrderService(
	orders ports.OrderRepository,
	clients ports.ClientRepository,
	articles ports.ArticleRepository,
	sequence ports.Sequencer,
	logger zerolog.Logger,
) *OrderService {
	return &OrderService{
		orders:   orders,
		clients:  clients,
		articles: articles,
		sequence: sequence,
		logger:   logger,
	}
}

func (s *OrderService) List(ctx context.Context) ([]*domain.Order, error) {
	return s.orders.List(ctx)
}

func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.orders.FindByID(ctx, id)
}

// Create validates references, resolves line prices, assigns a number when
// none is supplied, and persists the order.
func (s *OrderService) Create(ctx context.Context, input ports.CreateOrderInput) (*domain.Order, error) {
	if len(input.Items) == 0 {
		return nil, domain.ErrOrderNoItems
	}

	if _, err := s.clients.FindByID(ctx, input.ClientID); err != nil {
		return nil, err
	}

	items, err := s.resolveItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = domain.StatusRequested
	}

	number := input.Number
	if number == "" {
		seq, err := s.sequence.Next(ctx, orderSequence)
		if err != nil {
			return nil, fmt.Errorf("order sequence: %w", err)
		}
		number = formatOrderNumber(seq)
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	now := time.Now().UTC()
	order := &domain.Order{
		Number:    number,
		Date:      date,
		Status:    status,
		ClientID:  input.ClientID,
		Items:     items,
		Total:     input.Total,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("order_id", created.ID).Str("number", created.Number).Msg("order created")
	return created, nil
}

// Update replaces an order's mutable fields. The stored number is kept
// regardless of payload, and a status change must be a valid lifecycle
// transition from the current state.
func (s *OrderService) Update(ctx context.Context, id string, input ports.UpdateOrderInput) (*domain.Order, error) {
	if len(input.Items) == 0 {
		return nil, domain.ErrOrderNoItems
	}

	existing, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.clients.FindByID(ctx, input.ClientID); err != nil {
		return nil, err
	}

	items, err := s.resolveItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = existing.Status
	}
	if status != existing.Status && !existing.Status.CanTransitionTo(status) {
		return nil, domain.ErrInvalidTransition
	}

	date := input.Date
	if date.IsZero() {
		date = existing.Date
	}

	order := &domain.Order{
		ID:        existing.ID,
		Number:    existing.Number,
		Date:      date,
		Status:    status,
		ClientID:  input.ClientID,
		Items:     items,
		Total:     input.Total,
		CreatedAt: existing.CreatedAt,
		UpdatedAt: time.Now().UTC(),
	}

	updated, err := s.orders.Update(ctx, order)
	if err != nil {
		return nil, err
	}

	if status != existing.Status {
		s.logger.Info().
			Str("order_id", updated.ID).
			Str("from", string(existing.Status)).
			Str("to", string(status)).
			Msg("order status changed")
	}
	return updated, nil
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	return s.orders.Delete(ctx, id)
}

// resolveItems checks every referenced article exists and captures its
// current price for lines that do not carry an explicit unit price.
func (s *OrderService) resolveItems(ctx context.Context, inputs []ports.OrderItemInput) ([]domain.OrderItem, error) {
	items := make([]domain.OrderItem, 0, len(inputs))
	for _, in := range inputs {
		article, err := s.articles.FindByID(ctx, in.ArticleID)
		if err != nil {
			return nil, err
		}
		price := article.Price
		if in.UnitPrice != nil {
			price = *in.UnitPrice
		}
		items = append(items, domain.OrderItem{
			ArticleID: article.ID,
			Quantity:  in.Quantity,
			UnitPrice: price,
		})
	}
	return items, nil
}

// formatOrderNumber renders a sequence value as CMD001, CMD002, ...
// Values beyond the padding width keep growing naturally (CMD1000).
func formatOrderNumber(seq int64) string {
	return fmt.Sprintf("%s%0*d", orderNumberPrefix, orderNumberWidth, seq)
}
