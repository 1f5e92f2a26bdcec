package storebind

import (
	"github.com/comalice/storebind/internal/core"
	"github.com/comalice/storebind/internal/primitives"
)

// AmbientContext is the value flowing down the render tree: the store and
// the notification node descendants chain into.
type AmbientContext = core.AmbientContext

// ContextMap carries every ambient-context slot by key.
type ContextMap = core.ContextMap

// DefaultContextKey is the process-wide default ambient-context slot.
const DefaultContextKey = primitives.DefaultContextKey

// NewContextMap builds an ambient context exposing store under the default
// key with no notification node, the bare alternative to mounting a
// Provider: first-level connected instances subscribe straight to the store.
func NewContextMap(store Store) ContextMap {
	return ContextMap{DefaultContextKey: AmbientContext{Store: store}}
}
