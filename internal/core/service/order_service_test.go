package service

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	"github.com/minicrm/crm-api/internal/core/domain"
	"github.com/minicrm/crm-api/internal/core/ports"
)

type stubOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*domain.Order
	nextID int
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[string]*domain.Order)}
}

func cloneOrder(o *domain.Order) *domain.Order {
	clone := *o
	clone.Items = append([]domain.OrderItem(nil), o.Items...)
	return &clone
}

func (r *stubOrderRepo) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.Number == order.Number {
			return nil, domain.ErrOrderNumberTaken
		}
	}
	r.nextID++
	copy := cloneOrder(order)
	copy.ID = "order-" + strconv.Itoa(r.nextID)
	r.orders[copy.ID] = cloneOrder(copy)
	return copy, nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

func (r *stubOrderRepo) List(_ context.Context) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, cloneOrder(o))
	}
	return out, nil
}

func (r *stubOrderRepo) Update(_ context.Context, order *domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[order.ID]; !ok {
		return nil, domain.ErrOrderNotFound
	}
	r.orders[order.ID] = cloneOrder(order)
	return cloneOrder(order), nil
}

func (r *stubOrderRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.orders, id)
	return nil
}

type stubClientRepo struct {
	clients map[string]*domain.Client
}

func (r *stubClientRepo) Create(_ context.Context, c *domain.Client) (*domain.Client, error) {
	for _, existing := range r.clients {
		if existing.Email == c.Email {
			return nil, domain.ErrClientExists
		}
	}
	copy := *c
	copy.ID = "client-" + strconv.Itoa(len(r.clients)+1)
	r.clients[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubClientRepo) FindByID(_ context.Context, id string) (*domain.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	copy := *c
	return &copy, nil
}

func (r *stubClientRepo) List(_ context.Context) ([]*domain.Client, error) {
	out := make([]*domain.Client, 0, len(r.clients))
	for _, c := range r.clients {
		copy := *c
		out = append(out, &copy)
	}
	return out, nil
}

func (r *stubClientRepo) Update(_ context.Context, c *domain.Client) (*domain.Client, error) {
	if _, ok := r.clients[c.ID]; !ok {
		return nil, domain.ErrClientNotFound
	}
	copy := *c
	r.clients[c.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubClientRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.clients[id]; !ok {
		return domain.ErrClientNotFound
	}
	delete(r.clients, id)
	return nil
}

type stubArticleRepo struct {
	articles map[string]*domain.Article
}

func (r *stubArticleRepo) Create(_ context.Context, a *domain.Article) (*domain.Article, error) {
	copy := *a
	copy.ID = "article-" + strconv.Itoa(len(r.articles)+1)
	r.articles[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubArticleRepo) FindByID(_ context.Context, id string) (*domain.Article, error) {
	a, ok := r.articles[id]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	copy := *a
	return &copy, nil
}

func (r *stubArticleRepo) List(_ context.Context) ([]*domain.Article, error) {
	out := make([]*domain.Article, 0, len(r.articles))
	for _, a := range r.articles {
		copy := *a
		out = append(out, &copy)
	}
	return out, nil
}

func (r *stubArticleRepo) Update(_ context.Context, a *domain.Article) (*domain.Article, error) {
	if _, ok := r.articles[a.ID]; !ok {
		return nil, domain.ErrArticleNotFound
	}
	copy := *a
	r.articles[a.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubArticleRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.articles[id]; !ok {
		return domain.ErrArticleNotFound
	}
	delete(r.articles, id)
	return nil
}

// stubSequencer mimics the Mongo counter: atomic, shared, strictly increasing.
type stubSequencer struct {
	n int64
}

func (s *stubSequencer) Next(_ context.Context, _ string) (int64, error) {
	return atomic.AddInt64(&s.n, 1), nil
}

func newOrderFixture() (*OrderService, *stubOrderRepo) {
	orders := newStubOrderRepo()
	clients := &stubClientRepo{clients: map[string]*domain.Client{
		"client-1": {ID: "client-1", FirstName: "Jean", LastName: "Dupont", Email: "jean@example.com"},
	}}
	articles := &stubArticleRepo{articles: map[string]*domain.Article{
		"article-1": {ID: "article-1", Name: "Chair", Brand: "Acme", Price: 49.90, Stock: 10, Color: "black"},
		"article-2": {ID: "article-2", Name: "Desk", Brand: "Acme", Price: 199.00, Stock: 3, Color: "white"},
	}}
	svc := NewOrderService(orders, clients, articles, &stubSequencer{}, zerolog.Nop())
	return svc, orders
}

func orderInput(items ...ports.OrderItemInput) ports.CreateOrderInput {
	return ports.CreateOrderInput{ClientID: "client-1", Items: items, Total: 49.90}
}

func TestOrderService_Create_SequentialNumbers(t *testing.T) {
	svc, _ := newOrderFixture()

	want := []string{"CMD001", "CMD002", "CMD003"}
	for i, expected := range want {
		order, err := svc.Create(context.Background(), orderInput(ports.OrderItemInput{ArticleID: "article-1", Quantity: 1}))
		if err != nil {
			t.Fatalf("create %d failed: %v", i, err)
		}
		if order.Number != expected {
			t.Fatalf("expected number %s, got %s", expected, order.Number)
		}
		if order.Status != domain.StatusRequested {
			t.Fatalf("expected default status requested, got %s", order.Status)
		}
	}
}

func TestOrderService_Create_ConcurrentNumbersDistinct(t *testing.T) {
	svc, _ := newOrderFixture()

	const n = 16
	numbers := make(chan string, n)
	errs := make(chan error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			order, err := svc.Create(context.Background(), orderInput(ports.OrderItemInput{ArticleID: "article-1", Quantity: 1}))
			if err != nil {
				errs <- err
				return
			}
			numbers <- order.Number
		}()
	}
	wg.Wait()
	close(numbers)
	close(errs)

	for err := range errs {
		t.Fatalf("concurrent create failed: %v", err)
	}

	seen := make(map[string]bool, n)
	for num := range numbers {
		if seen[num] {
			t.Fatalf("duplicate order number under concurrency: %s", num)
		}
		seen[num] = true
	}
	if len(seen) != n {
		t.Fatalf("expected %d distinct numbers, got %d", n, len(seen))
	}
}

func TestOrderService_Create_ExplicitNumberKept(t *testing.T) {
	svc, _ := newOrderFixture()

	input := orderInput(ports.OrderItemInput{ArticleID: "article-1", Quantity: 2})
	input.Number = "CMD999"
	order, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if order.Number != "CMD999" {
		t.Fatalf("expected explicit number kept, got %s", order.Number)
	}

	// A second order reusing the number is rejected by the unique constraint.
	if _, err := svc.Create(context.Background(), input); err != domain.ErrOrderNumberTaken {
		t.Fatalf("expected ErrOrderNumberTaken, got %v", err)
	}
}

func unitPrice(v float64) *float64 { return &v }

func TestOrderService_Create_CapturesUnitPrice(t *testing.T) {
	svc, _ := newOrderFixture()

	order, err := svc.Create(context.Background(), orderInput(
		ports.OrderItemInput{ArticleID: "article-1", Quantity: 1},
		ports.OrderItemInput{ArticleID: "article-2", Quantity: 2, UnitPrice: unitPrice(150)},
	))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if order.Items[0].UnitPrice != 49.90 {
		t.Fatalf("expected catalogue price captured, got %f", order.Items[0].UnitPrice)
	}
	if order.Items[1].UnitPrice != 150 {
		t.Fatalf("expected explicit unit price kept, got %f", order.Items[1].UnitPrice)
	}
}

// An explicit zero is a free line, not a request to capture the catalogue
// price.
func TestOrderService_Create_KeepsExplicitZeroUnitPrice(t *testing.T) {
	svc, _ := newOrderFixture()

	order, err := svc.Create(context.Background(), orderInput(
		ports.OrderItemInput{ArticleID: "article-1", Quantity: 1, UnitPrice: unitPrice(0)},
	))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if order.Items[0].UnitPrice != 0 {
		t.Fatalf("expected free line kept at 0, got %f", order.Items[0].UnitPrice)
	}
}

func TestOrderService_Create_ReferentialChecks(t *testing.T) {
	svc, _ := newOrderFixture()

	input := orderInput(ports.OrderItemInput{ArticleID: "article-1", Quantity: 1})
	input.ClientID = "client-missing"
	if _, err := svc.Create(context.Background(), input); err != domain.ErrClientNotFound {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}

	if _, err := svc.Create(context.Background(), orderInput(
		ports.OrderItemInput{ArticleID: "article-missing", Quantity: 1},
	)); err != domain.ErrArticleNotFound {
		t.Fatalf("expected ErrArticleNotFound, got %v", err)
	}
}

func TestOrderService_Create_RequiresItems(t *testing.T) {
	svc, _ := newOrderFixture()

	if _, err := svc.Create(context.Background(), orderInput()); err != domain.ErrOrderNoItems {
		t.Fatalf("expected ErrOrderNoItems, got %v", err)
	}
}

func TestOrderService_Update_NumberImmutable(t *testing.T) {
	svc, _ := newOrderFixture()

	order, err := svc.Create(context.Background(), orderInput(ports.OrderItemInput{ArticleID: "article-1", Quantity: 1}))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Update(context.Background(), order.ID, ports.UpdateOrderInput{
		Status:   domain.StatusPreparing,
		ClientID: "client-1",
		Items:    []ports.OrderItemInput{{ArticleID: "article-1", Quantity: 3}},
		Total:    149.70,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Number != order.Number {
		t.Fatalf("order number changed on update: %s -> %s", order.Number, updated.Number)
	}
	if updated.Status != domain.StatusPreparing {
		t.Fatalf("expected status preparing, got %s", updated.Status)
	}
}

func TestOrderService_Update_InvalidTransition(t *testing.T) {
	svc, _ := newOrderFixture()

	order, err := svc.Create(context.Background(), orderInput(ports.OrderItemInput{ArticleID: "article-1", Quantity: 1}))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// requested → collected skips the whole progression.
	if _, err := svc.Update(context.Background(), order.ID, ports.UpdateOrderInput{
		Status:   domain.StatusCollected,
		ClientID: "client-1",
		Items:    []ports.OrderItemInput{{ArticleID: "article-1", Quantity: 1}},
	}); err != domain.ErrInvalidTransition {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestOrderService_Delete_NoCascade(t *testing.T) {
	svc, orders := newOrderFixture()

	order, err := svc.Create(context.Background(), orderInput(ports.OrderItemInput{ArticleID: "article-1", Quantity: 1}))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Delete(context.Background(), order.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := orders.FindByID(context.Background(), order.ID); err != domain.ErrOrderNotFound {
		t.Fatalf("expected order gone, got %v", err)
	}
}
