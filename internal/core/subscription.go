package core

import (
	"github.com/google/uuid"

	"github.com/comalice/storebind/internal/primitives"
)

// Subscription is one node in the change-propagation tree that mirrors the
// connected-component hierarchy. A node with a parent chains into the
// existing propagation tree; a parentless node attaches directly to its
// store, rooting a new subtree.
//
// Not safe for concurrent use; all methods run on the host's goroutine.
type Subscription struct {
	store  primitives.Store
	parent *Subscription

	// OnStateChange is the node's single assignable callback slot, invoked
	// when the parent (or store) signals a change.
	OnStateChange func()

	unsubscribe func()
	listeners   listenerCollection

	// children holds back-references in registration order, used only for
	// traversal (diagnostics, visualization), never for lifetime.
	children []*Subscription

	id    string
	label string
}

// NewSubscription creates a detached node. parent may be nil, in which case
// TrySubscribe attaches directly to store.
func NewSubscription(store primitives.Store, parent *Subscription) *Subscription {
	return &Subscription{
		store:  store,
		parent: parent,
		id:     uuid.NewString(),
	}
}

// ID returns the node's unique identifier.
func (s *Subscription) ID() string { return s.id }

// Label returns the diagnostic label, typically the owning instance's
// display name.
func (s *Subscription) Label() string { return s.label }

// SetLabel sets the diagnostic label.
func (s *Subscription) SetLabel(label string) { s.label = label }

// Parent returns the parent node, or nil for a subtree root.
func (s *Subscription) Parent() *Subscription { return s.parent }

// handleChangeWrapper guards the assignable slot: a node whose owner has
// already torn down keeps propagating to nothing.
func (s *Subscription) handleChangeWrapper() {
	if s.OnStateChange != nil {
		s.OnStateChange()
	}
}

// AddNestedSub registers child below this node and returns its unsubscribe.
// Subscribing lazily attaches this node itself so that a chain of nodes built
// root-last still ends up fully wired.
func (s *Subscription) AddNestedSub(child *Subscription) func() {
	s.TrySubscribe()

	s.children = append(s.children, child)
	unsub := s.listeners.subscribe(child.handleChangeWrapper)

	removed := false
	return func() {
		if !removed {
			removed = true
			for i, c := range s.children {
				if c == child {
					s.children = append(s.children[:i], s.children[i+1:]...)
					break
				}
			}
		}
		unsub()
	}
}

// NotifyNestedSubs synchronously invokes every directly nested callback in
// registration order.
func (s *Subscription) NotifyNestedSubs() {
	s.listeners.notify()
}

// TrySubscribe attaches the node to its parent, or to the store when it has
// none. Idempotent.
func (s *Subscription) TrySubscribe() {
	if s.unsubscribe != nil {
		return
	}
	if s.parent != nil {
		s.unsubscribe = s.parent.AddNestedSub(s)
	} else {
		s.unsubscribe = s.store.Subscribe(s.handleChangeWrapper)
	}
}

// TryUnsubscribe detaches the node and drops its nested callbacks.
// Idempotent.
func (s *Subscription) TryUnsubscribe() {
	if s.unsubscribe == nil {
		return
	}
	s.unsubscribe()
	s.unsubscribe = nil
	s.listeners.clear()
	s.children = nil
}

// IsSubscribed reports whether the node is currently attached.
func (s *Subscription) IsSubscribed() bool {
	return s.unsubscribe != nil
}

// Children returns the directly nested nodes in registration order. The
// returned slice is a copy; mutating it does not affect the tree.
func (s *Subscription) Children() []*Subscription {
	out := make([]*Subscription, len(s.children))
	copy(out, s.children)
	return out
}
