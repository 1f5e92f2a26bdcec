package primitives

// Store is the external state container capability bundle. The binding layer
// never mutates state through any path other than Dispatch, and treats the
// result of Dispatch as opaque.
//
// Subscribe must tolerate a listener that calls its own unsubscribe from
// within its invocation; doing so must neither skip nor double-invoke other
// listeners in the same notification round.
type Store interface {
	GetState() any
	Dispatch(action any) any
	Subscribe(listener func()) (unsubscribe func())
}

// StoreCarrier lets typed owner-props values supply their own store, the
// structural analog of a "store" key inside a Props bag. An owner-supplied
// store takes precedence over the ambient one and isolates the instance's
// descendants into a new store subtree.
type StoreCarrier interface {
	OwnStore() Store
}

// StoreFromProps extracts an owner-supplied store from ownProps, or nil.
func StoreFromProps(ownProps any) Store {
	if c, ok := ownProps.(StoreCarrier); ok {
		return c.OwnStore()
	}
	if bag, ok := ownProps.(Props); ok {
		if s, ok := bag[StoreKey].(Store); ok {
			return s
		}
	}
	return nil
}
