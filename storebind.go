// Package storebind connects components in a declarative render tree to an
// external centralized state container. Given a component and a derivation
// function it produces a wrapped component that reads store state and owner
// props, computes merged props, re-renders only when that result actually
// changes, and propagates store-change notifications top-down so no component
// observes state inconsistent with its ancestors' rendering decisions.
//
// The rendering framework is abstracted behind RenderHost: the host schedules
// renders at its convenience and drives each instance through Render, Commit
// and Unmount on a single goroutine.
package storebind

import (
	"github.com/comalice/storebind/internal/core"
	"github.com/comalice/storebind/internal/primitives"
)

// Store is the external state container capability bundle.
type Store = primitives.Store

// StoreCarrier lets typed owner-props values supply their own store.
type StoreCarrier = primitives.StoreCarrier

// Props is the conventional bag of owner-supplied or derived properties.
type Props = primitives.Props

// Selector is the derivation function mapping (state, ownProps) to merged
// props, signalling "unchanged" by returning an Identical value.
type Selector = core.Selector

// SelectorFactory builds a Selector for one store handle.
type SelectorFactory = core.SelectorFactory

// DispatchFunc requests a state transition from the store.
type DispatchFunc = core.DispatchFunc

// RenderHost is the rendering framework boundary.
type RenderHost = core.RenderHost

// Renderable is the host-facing face of a mounted instance.
type Renderable = core.Renderable

// RenderResult is the outcome of a render pass.
type RenderResult = core.RenderResult

// Option configures the wrapper factory.
type Option = core.Option

// EventPublisher receives binding lifecycle events.
type EventPublisher = core.EventPublisher

// BindingEvent describes one observable coordination step.
type BindingEvent = core.BindingEvent

// EventKind classifies a binding lifecycle event.
type EventKind = core.EventKind

// Binding lifecycle event kinds.
const (
	EventRender    = core.EventRender
	EventScheduled = core.EventScheduled
	EventSkipped   = core.EventSkipped
	EventCascade   = core.EventCascade
)

// Component is anything the host can render with a set of props.
type Component interface {
	Render(props any)
}

// Identical reports reference equality, the comparison all change gating in
// this module is built on.
func Identical(a, b any) bool { return primitives.Identical(a, b) }

// ShallowEqual reports one-level-deep identity equality of Props bags.
func ShallowEqual(a, b any) bool { return primitives.ShallowEqual(a, b) }

// Sentinel configuration errors, surfaced at wrap time or first render.
var (
	ErrNoStore      = core.ErrNoStore
	ErrNilComponent = core.ErrNilComponent
	ErrNilFactory   = core.ErrNilFactory
	ErrNilHost      = core.ErrNilHost
)

// Wrapper factory configuration options.
var (
	// WithNameFormatter configures how wrapper display names are derived.
	WithNameFormatter = core.WithNameFormatter
	// WithLabel configures the diagnostic label used in error messages.
	WithLabel = core.WithLabel
	// WithHandlesStateChanges controls store-change subscription; defaults
	// to true under Connect.
	WithHandlesStateChanges = core.WithHandlesStateChanges
	// WithForwardRef exposes the wrapped component through Instance.Ref.
	WithForwardRef = core.WithForwardRef
	// WithContextKey selects the ambient-context slot to read and write.
	WithContextKey = core.WithContextKey
	// WithFactoryOptions passes an open bag through to the selector factory.
	WithFactoryOptions = core.WithFactoryOptions
	// WithPublisher configures a binding-event publisher for diagnostics.
	WithPublisher = core.WithPublisher
)
