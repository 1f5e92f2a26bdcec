package storebind

// Batcher is the optional store capability for coalescing notification
// rounds. Stores that implement it emit at most one round per batch no
// matter how many dispatches happen inside.
type Batcher interface {
	BeginBatch()
	EndBatch()
}

// Batch runs fn, coalescing store notifications into a single round when the
// store supports batching. Stores without the capability just run fn; every
// dispatch notifies as usual.
func Batch(store Store, fn func()) {
	if b, ok := store.(Batcher); ok {
		b.BeginBatch()
		defer b.EndBatch()
	}
	fn()
}
