package viewmodel

import (
	"context"
	"sync"
)

// Store holds the current snapshot and publishes every new one to its
// subscribers. Subscribers only ever see the latest snapshot; intermediate
// ones are skipped when a reader falls behind.
type Store struct {
	mu     sync.Mutex
	state  State
	runner *Runner
	subs   map[int]chan State
	nextID int
}

// NewStore creates a store; runner may be nil when Run is unused
func NewStore(initial State, runner *Runner) *Store {
	return &Store{
		state:  initial,
		runner: runner,
		subs:   make(map[int]chan State),
	}
}

// Snapshot returns the current state
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies an event and returns the effect the caller must perform
func (s *Store) Dispatch(ev Event) Effect {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, eff := Reduce(s.state, ev)
	s.state = next
	s.publish(next)

	return eff
}

// Subscribe returns a channel of snapshots and a cancel function
func (s *Store) Subscribe() (<-chan State, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan State, 1)
	ch <- s.state
	s.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// publish must be called with mu held
func (s *Store) publish(st State) {
	for _, ch := range s.subs {
		select {
		case ch <- st:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- st
		}
	}
}

// Run dispatches ev, performs the resulting effect and dispatches its
// completion. It returns the final snapshot together with the validation
// or service error that ended the submission, if any.
func (s *Store) Run(ctx context.Context, ev Event) (State, error) {
	eff := s.Dispatch(ev)
	if eff == nil {
		st := s.Snapshot()
		if st.ValidationErr != nil {
			return st, st.ValidationErr
		}
		return st, nil
	}

	done := s.runner.Execute(ctx, eff)
	s.Dispatch(done)

	var err error
	switch done := done.(type) {
	case AutomaticFailed:
		err = done.Err
	case ManualFailed:
		err = done.Err
	}
	return s.Snapshot(), err
}
