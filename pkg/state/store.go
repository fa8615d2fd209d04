package state

import (
	"log/slog"
	"slices"
	"sync"
)

// Listener observes a transition. It runs outside the store lock and may
// dispatch further actions.
type Listener func(prev, next GameState, a Action)

type subscription struct {
	id int
	fn Listener
}

type change struct {
	prev, next GameState
	action     Action
}

// Store owns the canonical GameState. Dispatch is safe for concurrent use:
// transitions are serialized, and listeners receive them in order.
type Store struct {
	mu        sync.Mutex
	state     GameState
	listeners []subscription
	nextID    int
	pending   []change
	draining  bool
	logger    *slog.Logger
}

// NewStore creates a store holding initial.
func NewStore(initial GameState, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{state: initial, logger: logger}
}

// State returns the current state. The value must be treated as read-only.
func (s *Store) State() GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch reduces a into the current state and returns the result.
// Listeners are notified before Dispatch returns unless another goroutine
// is already delivering, in which case delivery is left to it.
func (s *Store) Dispatch(a Action) GameState {
	if a == nil {
		return s.State()
	}

	s.mu.Lock()
	prev := s.state
	next := Reduce(prev, a)
	s.state = next
	s.pending = append(s.pending, change{prev: prev, next: next, action: a})
	deliver := !s.draining
	s.draining = true
	s.mu.Unlock()

	s.logger.Debug("Action dispatched", "action", a.Type(), "phase", next.Phase)
	if prev.Phase != next.Phase {
		s.logger.Info("Phase changed", "from", prev.Phase, "to", next.Phase, "action", a.Type())
	}

	if deliver {
		s.drain()
	}
	return next
}

// drain delivers queued changes until none are left. Nested dispatches from
// a listener are queued and delivered after the current change.
func (s *Store) drain() {
	for {
		s.mu.Lock()
		if len(s.pending) == 0 {
			s.draining = false
			s.mu.Unlock()
			return
		}
		c := s.pending[0]
		s.pending = s.pending[1:]
		subs := slices.Clone(s.listeners)
		s.mu.Unlock()

		for _, sub := range subs {
			sub.fn(c.prev, c.next, c.action)
		}
	}
}

// Subscribe registers fn for every subsequent transition. The returned
// function removes the subscription and is safe to call more than once.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.listeners = slices.DeleteFunc(slices.Clone(s.listeners), func(sub subscription) bool {
			return sub.id == id
		})
	}
}
