// Package testutil provides in-process collaborators for exercising the
// binding layer: a reducer-driven store satisfying the StoreHandle contract
// and a recording render host that applies scheduled renders in order.
package testutil

import "github.com/comalice/storebind/internal/primitives"

// Reducer computes the next state from the current state and an action.
type Reducer func(state, action any) any

// Store is a minimal reducer-driven state container. Listener bookkeeping is
// snapshotted per dispatch round: a listener that unsubscribes itself (or any
// other listener) from within its own invocation neither skips nor
// double-invokes the others in that round.
//
// Single-goroutine use only, matching the binding layer's cooperative model.
type Store struct {
	reducer Reducer
	state   any

	current     []*listenerEntry
	next        []*listenerEntry
	mutableNext bool

	batchDepth int
	batchDirty bool
}

type listenerEntry struct {
	fn func()
}

// NewStore creates a store with the given reducer and initial state.
func NewStore(reducer Reducer, initial any) *Store {
	return &Store{reducer: reducer, state: initial}
}

// GetState returns the current state.
func (s *Store) GetState() any {
	return s.state
}

// Dispatch applies the reducer and notifies the listeners subscribed as of
// this round. Inside a batch, notification is deferred to batch end.
func (s *Store) Dispatch(action any) any {
	s.state = s.reducer(s.state, action)

	if s.batchDepth > 0 {
		s.batchDirty = true
		return action
	}

	s.notify()
	return action
}

// Subscribe registers listener for change notification and returns its
// unsubscribe. Subscriptions and unsubscriptions take effect at the next
// dispatch round, never mid-round.
func (s *Store) Subscribe(listener func()) func() {
	entry := &listenerEntry{fn: listener}
	s.ensureCanMutateNext()
	s.next = append(s.next, entry)

	subscribed := true
	return func() {
		if !subscribed {
			return
		}
		subscribed = false
		s.ensureCanMutateNext()
		for i, e := range s.next {
			if e == entry {
				s.next = append(s.next[:i], s.next[i+1:]...)
				break
			}
		}
	}
}

// BeginBatch suspends listener notification until the matching EndBatch.
// Nestable.
func (s *Store) BeginBatch() {
	s.batchDepth++
}

// EndBatch closes a batch; the outermost EndBatch emits a single
// notification round if any dispatch happened inside.
func (s *Store) EndBatch() {
	if s.batchDepth == 0 {
		return
	}
	s.batchDepth--
	if s.batchDepth == 0 && s.batchDirty {
		s.batchDirty = false
		s.notify()
	}
}

func (s *Store) notify() {
	s.current = s.next
	s.mutableNext = false
	for _, e := range s.current {
		e.fn()
	}
}

// ensureCanMutateNext copies the listener slice when it is shared with an
// in-flight notification round.
func (s *Store) ensureCanMutateNext() {
	if s.mutableNext {
		return
	}
	s.next = append([]*listenerEntry(nil), s.next...)
	s.mutableNext = true
}

// compile-time contract check
var _ primitives.Store = (*Store)(nil)
