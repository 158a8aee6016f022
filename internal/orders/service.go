package orders

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/storefront-admin/storefront-admin/internal/shared"
)

// TransitionObserver records the outcome of lifecycle transitions.
type TransitionObserver interface {
	RecordOrderTransition(transition, result string)
}

type noopObserver struct{}

func (noopObserver) RecordOrderTransition(string, string) {}

// Service applies the order lifecycle on top of the repository.
type Service struct {
	repo     Repository
	observer TransitionObserver
}

// NewService builds the service. observer may be nil.
func NewService(repo Repository, observer TransitionObserver) *Service {
	if observer == nil {
		observer = noopObserver{}
	}
	return &Service{repo: repo, observer: observer}
}

// Create places an order for clientID in the initial state.
func (s *Service) Create(ctx context.Context, clientID int64, items []NewItem) (Order, error) {
	if clientID <= 0 {
		return Order{}, fmt.Errorf("%w: invalid client ID", shared.ErrValidation)
	}
	if len(items) == 0 {
		return Order{}, fmt.Errorf("%w: order needs at least one item", shared.ErrValidation)
	}
	for _, it := range items {
		if it.ProductID <= 0 || it.Quantity <= 0 || it.Quantity > math.MaxInt32 {
			return Order{}, fmt.Errorf("%w: invalid item %+v", shared.ErrValidation, it)
		}
	}
	order, err := s.repo.Create(ctx, clientID, items)
	s.record("create", err)
	return order, err
}

// Evolve advances the order one position along the lifecycle and returns
// the new state.
func (s *Service) Evolve(ctx context.Context, id int64) (State, error) {
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		s.record("evolve", err)
		return "", err
	}
	next, err := Next(order.State)
	if err != nil {
		s.record("evolve", err)
		return "", fmt.Errorf("orders: evolve %d: %w", id, err)
	}
	err = s.repo.TransitionState(ctx, id, order.State, next)
	s.record("evolve", err)
	if err != nil {
		return "", err
	}
	return next, nil
}

// Cancel moves the order to cancelled from any state.
func (s *Service) Cancel(ctx context.Context, id int64) error {
	err := s.repo.AlterState(ctx, id, StateCancelled)
	s.record("cancel", err)
	return err
}

// Alter sets the state directly, bypassing the forward-only sequence.
func (s *Service) Alter(ctx context.Context, id int64, state State) error {
	if !state.Valid() {
		return fmt.Errorf("%w: unknown order state %q", shared.ErrValidation, state)
	}
	err := s.repo.AlterState(ctx, id, state)
	s.record("alter", err)
	return err
}

func (s *Service) Get(ctx context.Context, id int64) (Order, error) {
	return s.repo.Get(ctx, id)
}

// Detail returns the order with its items and client read from a single
// snapshot.
func (s *Service) Detail(ctx context.Context, id int64) (Order, error) {
	var order Order
	err := s.repo.WithSnapshot(ctx, func(r Reader) error {
		o, err := r.Get(ctx, id)
		if err != nil {
			return err
		}
		items, err := r.ListItems(ctx, id)
		if err != nil {
			return err
		}
		client, err := r.GetClient(ctx, o.ClientID)
		if err != nil {
			return err
		}
		if items == nil {
			items = []Item{}
		}
		o.Items = items
		o.Client = &client
		order = o
		return nil
	})
	if err != nil {
		return Order{}, err
	}
	return order, nil
}

func (s *Service) ListByState(ctx context.Context, state State) ([]Order, error) {
	if !state.Valid() {
		return nil, fmt.Errorf("%w: unknown order state %q", shared.ErrValidation, state)
	}
	return s.repo.ListByState(ctx, state)
}

func (s *Service) record(transition string, err error) {
	s.observer.RecordOrderTransition(transition, outcome(err))
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, shared.ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid"
	case errors.Is(err, ErrStateConflict):
		return "conflict"
	case errors.Is(err, shared.ErrValidation), errors.Is(err, shared.ErrConstraint):
		return "rejected"
	default:
		return "error"
	}
}
