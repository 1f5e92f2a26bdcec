package core

import "github.com/comalice/storebind/internal/primitives"

// RenderResult is what a render pass hands back to the host: the merged props
// for the wrapped component and the ambient context its descendants see.
type RenderResult struct {
	MergedProps  any
	ChildContext ContextMap

	// Unchanged reports that MergedProps is Identical to the previously
	// committed value; a host may skip re-rendering the wrapped component.
	Unchanged bool
}

// Renderable is the host-facing face of a mounted instance. The host must,
// for each scheduled renderable, eventually call Rerender followed by Commit,
// applying renders in the order they were produced for any one subtree.
// Renders may be deferred or batched; the host may coalesce multiple schedule
// requests for the same renderable into one pass.
type Renderable interface {
	Rerender() (RenderResult, error)
	Commit()
}

// RenderHost is the rendering framework boundary. ScheduleRender requests
// that the host re-render the given instance at its convenience; it must
// never render synchronously from inside the call.
type RenderHost interface {
	ScheduleRender(r Renderable)
}

// AmbientContext is the value flowing down the render tree: the store and the
// notification node that descendants chain into. Node is nil above the first
// subscribing instance of a subtree.
type AmbientContext struct {
	Store primitives.Store
	Node  *Subscription
}

// ContextMap carries every ambient-context slot by key. Instances read and
// write only the slot named by their configured context key; all other slots
// pass through untouched.
type ContextMap map[string]AmbientContext

// With returns a copy of m with key overridden. A nil receiver is treated as
// empty.
func (m ContextMap) With(key string, v AmbientContext) ContextMap {
	out := make(ContextMap, len(m)+1)
	for k, val := range m {
		out[k] = val
	}
	out[key] = v
	return out
}
