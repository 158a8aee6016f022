package orders

import (
	"errors"
	"fmt"
	"strings"
)

// State is the lifecycle position of an order.
type State string

const (
	StateReceived  State = "received"
	StatePaid      State = "paid"
	StateShipped   State = "shipped"
	StateDelivered State = "delivered"
	StateCancelled State = "cancelled"
)

var (
	// ErrInvalidTransition is returned when evolving an order that is
	// delivered or cancelled.
	ErrInvalidTransition = errors.New("invalid state transition")
	// ErrStateConflict is returned when the order changed state between
	// read and write.
	ErrStateConflict = errors.New("order state changed concurrently")
)

// sequence is the forward path. cancelled sits outside it.
var sequence = []State{StateReceived, StatePaid, StateShipped, StateDelivered}

// Sequence returns the forward lifecycle, first state first.
func Sequence() []State {
	out := make([]State, len(sequence))
	copy(out, sequence)
	return out
}

// States lists every storable state.
func States() []State {
	return append(Sequence(), StateCancelled)
}

// Initial is the state of a newly created order.
func Initial() State {
	return sequence[0]
}

// ParseState accepts the lowercase state name.
func ParseState(raw string) (State, error) {
	s := State(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("unknown order state %q", raw)
	}
	return s, nil
}

func (s State) Valid() bool {
	if s == StateCancelled {
		return true
	}
	return s.position() >= 0
}

// Terminal reports whether no evolve is possible from s.
func (s State) Terminal() bool {
	return s == StateCancelled || s == sequence[len(sequence)-1]
}

func (s State) position() int {
	for i, candidate := range sequence {
		if candidate == s {
			return i
		}
	}
	return -1
}

// Next returns the state one position ahead of s.
func Next(s State) (State, error) {
	pos := s.position()
	if pos < 0 || s.Terminal() {
		return "", fmt.Errorf("%w: cannot evolve from %s", ErrInvalidTransition, s)
	}
	return sequence[pos+1], nil
}
