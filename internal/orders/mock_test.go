package orders

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/storefront-admin/storefront-admin/internal/shared"
)

// memoryRepository mimics the pedido/item_pedido tables.
type memoryRepository struct {
	mu        sync.Mutex
	orders    map[int64]Order
	items     map[int64][]Item
	clients   map[int64]Client
	prices    map[int64]decimal.Decimal
	nextID    int64
	failErr   error
	snapshots int
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		orders:  make(map[int64]Order),
		items:   make(map[int64][]Item),
		clients: map[int64]Client{1: {ID: 1, Name: "Ana", Email: "ana@example.com"}},
		prices:  map[int64]decimal.Decimal{10: decimal.RequireFromString("2.50"), 11: decimal.RequireFromString("10")},
		nextID:  1,
	}
}

func (m *memoryRepository) Create(ctx context.Context, clientID int64, items []NewItem) (Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return Order{}, m.failErr
	}
	if _, ok := m.clients[clientID]; !ok {
		return Order{}, fmt.Errorf("orders: create: %w: pedido_id_cliente_fkey", shared.ErrConstraint)
	}
	order := Order{ID: m.nextID, ClientID: clientID, State: Initial(), CreatedAt: time.Now(), Total: decimal.Zero}
	m.nextID++
	var stored []Item
	for i, in := range items {
		price, ok := m.prices[in.ProductID]
		if !ok {
			return Order{}, fmt.Errorf("orders: create: %w: product %d does not exist", shared.ErrConstraint, in.ProductID)
		}
		item := Item{ID: int64(i + 1), OrderID: order.ID, ProductID: in.ProductID, Quantity: in.Quantity, UnitPrice: price}
		order.Total = order.Total.Add(item.Subtotal())
		stored = append(stored, item)
	}
	m.orders[order.ID] = order
	m.items[order.ID] = stored
	order.Items = stored
	return order, nil
}

func (m *memoryRepository) AlterState(ctx context.Context, id int64, state State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	o, ok := m.orders[id]
	if !ok {
		return fmt.Errorf("orders: alter state: %w", shared.ErrNotFound)
	}
	o.State = state
	m.orders[id] = o
	return nil
}

func (m *memoryRepository) TransitionState(ctx context.Context, id int64, from, to State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	o, ok := m.orders[id]
	if !ok {
		return fmt.Errorf("orders: transition state: %w", shared.ErrNotFound)
	}
	if o.State != from {
		return fmt.Errorf("orders: transition %s to %s: %w", from, to, ErrStateConflict)
	}
	o.State = to
	m.orders[id] = o
	return nil
}

func (m *memoryRepository) Get(ctx context.Context, id int64) (Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return Order{}, m.failErr
	}
	o, ok := m.orders[id]
	if !ok {
		return Order{}, fmt.Errorf("orders: get: %w", shared.ErrNotFound)
	}
	return o, nil
}

func (m *memoryRepository) ListByState(ctx context.Context, state State) ([]Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	out := []Order{}
	for _, o := range m.orders {
		if o.State == state {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryRepository) ListItems(ctx context.Context, orderID int64) ([]Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	return m.items[orderID], nil
}

func (m *memoryRepository) GetClient(ctx context.Context, clientID int64) (Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.clients[clientID]
	if !ok {
		return Client{}, fmt.Errorf("orders: get client: %w", shared.ErrNotFound)
	}
	return c, nil
}

func (m *memoryRepository) WithSnapshot(ctx context.Context, fn func(Reader) error) error {
	m.mu.Lock()
	m.snapshots++
	m.mu.Unlock()
	return fn(m)
}

// recordingObserver collects transition outcomes.
type recordingObserver struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingObserver) RecordOrderTransition(transition, result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, transition+":"+result)
}
