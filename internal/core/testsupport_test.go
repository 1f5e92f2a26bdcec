package core

import "github.com/comalice/storebind/internal/primitives"

// fakeStore is the minimal StoreHandle used by core tests: Dispatch replaces
// state with the action and notifies a snapshot of the listener list.
type fakeStore struct {
	state     any
	listeners []*storeListener
}

type storeListener struct {
	fn     func()
	active bool
}

func newFakeStore(initial any) *fakeStore {
	return &fakeStore{state: initial}
}

func (s *fakeStore) GetState() any { return s.state }

func (s *fakeStore) Dispatch(action any) any {
	s.state = action
	round := append([]*storeListener(nil), s.listeners...)
	for _, l := range round {
		if l.active {
			l.fn()
		}
	}
	return action
}

func (s *fakeStore) Subscribe(listener func()) func() {
	l := &storeListener{fn: listener, active: true}
	s.listeners = append(s.listeners, l)
	return func() {
		l.active = false
	}
}

// fakeHost queues scheduled renderables and applies them on flush.
type fakeHost struct {
	queue []Renderable
	errs  []error
}

func (h *fakeHost) ScheduleRender(r Renderable) {
	h.queue = append(h.queue, r)
}

func (h *fakeHost) flush() {
	for len(h.queue) > 0 {
		r := h.queue[0]
		h.queue = h.queue[1:]
		if _, err := r.Rerender(); err != nil {
			h.errs = append(h.errs, err)
			continue
		}
		r.Commit()
	}
}

// passthroughFactory derives merged props straight from state, tagging them
// with the owner props so staleness is observable.
func passthroughFactory() SelectorFactory {
	return func(dispatch DispatchFunc, options primitives.Props) (Selector, error) {
		var lastState, lastOwn any
		var lastMerged any
		return func(state, ownProps any) (any, error) {
			if lastMerged != nil && primitives.Identical(state, lastState) && primitives.Identical(ownProps, lastOwn) {
				return lastMerged, nil
			}
			lastState, lastOwn = state, ownProps
			lastMerged = primitives.Props{"state": state, "own": ownProps}
			return lastMerged, nil
		}, nil
	}
}

func newTestCoordinator(host RenderHost, opts ...Option) *Coordinator {
	cfg := Config{
		DisplayName: "Connect(test)",
		Factory:     passthroughFactory(),
		Host:        host,
	}
	cfg.Options.HandlesStateChanges = true
	c, err := NewCoordinator(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return c
}
