package production

// stubStore satisfies primitives.Store for tree construction; none of these
// tests dispatch through it.
type stubStore struct {
	state any
}

func (s *stubStore) GetState() any { return s.state }

func (s *stubStore) Dispatch(action any) any {
	s.state = action
	return action
}

func (s *stubStore) Subscribe(listener func()) func() {
	return func() {}
}
