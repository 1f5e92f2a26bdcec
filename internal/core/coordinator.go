// Package core provides the update-coordination tier of the binding layer:
// the per-mounted-instance state machine that resolves a store, detects
// derived-output changes, gates re-renders, and propagates store-change
// notifications down the tree in ancestor-before-descendant order.
//
// The model is single-threaded and cooperative: store notifications run
// synchronously on whatever goroutine dispatches, and the host's render and
// commit calls are the only other actor. No locking; re-entrancy is handled
// by idempotent guards, not mutexes.
package core

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/comalice/storebind/internal/primitives"
)

// DispatchFunc requests a state transition from the store. The result is
// opaque to this layer.
type DispatchFunc func(action any) any

// Selector is the derivation function: pure map from current store state and
// owner props to the merged props handed to the wrapped component. It signals
// "unchanged" by returning a value Identical to its previous return.
type Selector func(state, ownProps any) (any, error)

// SelectorFactory builds a Selector for one store handle. Called once per
// resolved store; any cross-call memoization is the factory's concern.
type SelectorFactory func(dispatch DispatchFunc, options primitives.Props) (Selector, error)

// Option applies configuration to a Config via functional options pattern.
type Option func(*Config)

// Config is the static per-wrapper configuration shared by all instances of
// one connected component type.
type Config struct {
	DisplayName string
	Options     primitives.ConnectOptions
	Factory     SelectorFactory
	Publisher   EventPublisher
	Host        RenderHost

	// Self is scheduled with the host in place of the bare coordinator,
	// letting an embedding wrapper re-render its wrapped component too.
	// Nil means the coordinator schedules itself.
	Self Renderable
}

// Coordinator is the per-mounted-instance update-coordination state machine.
// One exists per mounted connected component; it owns that instance's
// notification node and all of its mutable coordination state.
//
// Not safe for concurrent use: Render, Commit, Unmount and store
// notifications must all run on the host's goroutine.
type Coordinator struct {
	cfg Config
	id  string

	store          primitives.Store
	storeFromProps bool
	selector       Selector
	sub            *Subscription
	parentSub      *Subscription

	lastOwnerProps  any
	lastMergedProps any
	lastAmbient     ContextMap
	contextKey      string

	pendingProps       any
	hasPending         bool
	renderScheduled    bool
	storeChangePending bool
	latchedErr         error
	updateSeq          uint64

	// staged by Render, promoted by Commit
	renderStaged         bool
	renderedOwnerProps   any
	renderedMergedProps  any
	renderedStoreUpdate  bool
	renderedSeq          uint64
	needsResubscribe     bool
	mounted              bool
	unsubscribed         bool

	logUrgent LogFunction
	logDebug  LogFunction
}

// NewCoordinator validates cfg and creates an unmounted coordinator.
func NewCoordinator(cfg Config, opts ...Option) (*Coordinator, error) {
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.Options.Normalize()
	if err := cfg.Options.Validate(); err != nil {
		return nil, err
	}
	if cfg.Factory == nil {
		return nil, ErrNilFactory
	}
	if cfg.Host == nil && cfg.Options.HandlesStateChanges {
		return nil, ErrNilHost
	}
	if cfg.DisplayName == "" {
		cfg.DisplayName = cfg.Options.NameFormatter("Component")
	}

	c := &Coordinator{
		cfg:        cfg,
		id:         uuid.NewString(),
		contextKey: cfg.Options.ContextKey,
	}
	c.logUrgent = LogFn(LogLevelUrgent, cfg.Options.Label)
	c.logDebug = LogFn(LogLevelDebug, cfg.Options.Label)
	return c, nil
}

// ID returns the instance's unique identifier.
func (c *Coordinator) ID() string { return c.id }

// DisplayName returns the wrapper's display name.
func (c *Coordinator) DisplayName() string { return c.cfg.DisplayName }

// Subscription returns the instance's notification node, or nil when the
// instance does not handle state changes or has not rendered yet.
func (c *Coordinator) Subscription() *Subscription { return c.sub }

// LastMergedProps returns the most recently committed derived props.
func (c *Coordinator) LastMergedProps() any { return c.lastMergedProps }

// StoreState returns the resolved store's current state, or nil before the
// first render.
func (c *Coordinator) StoreState() any {
	if c.store == nil {
		return nil
	}
	return c.store.GetState()
}

// Render resolves the store and ambient parent, computes merged props for
// this pass, and returns them with the ambient context the instance's
// descendants see. Owner-triggered and store-triggered renders both come
// through here. The host must pair every successful Render with a Commit
// once the output is applied.
func (c *Coordinator) Render(ownProps any, ambient ContextMap) (RenderResult, error) {
	stripped, keyOverride := primitives.StripControlProps(ownProps)
	key := c.cfg.Options.ContextKey
	if keyOverride != "" {
		key = keyOverride
	}
	return c.renderWith(stripped, key, ambient)
}

// Rerender replays the last committed owner props against the last ambient
// context; the host calls it for store-triggered renders.
func (c *Coordinator) Rerender() (RenderResult, error) {
	ownProps := c.lastOwnerProps
	if !c.mounted {
		ownProps = c.renderedOwnerProps
	}
	return c.renderWith(ownProps, c.contextKey, c.lastAmbient)
}

func (c *Coordinator) renderWith(ownProps any, key string, ambient ContextMap) (RenderResult, error) {
	// A render scheduled before Unmount may still be applied by the host.
	// Like the stale-callback guard in onStateChange, it must be inert: no
	// selector run, nothing staged for Commit.
	if c.unsubscribed {
		return RenderResult{
			MergedProps:  c.lastMergedProps,
			ChildContext: ambient,
			Unchanged:    true,
		}, nil
	}

	ambientVal := ambient[key]

	// Store resolution re-runs every render: the source may legitimately
	// change across the instance's lifetime.
	store := primitives.StoreFromProps(ownProps)
	fromProps := store != nil
	if store == nil {
		store = ambientVal.Store
	}
	if store == nil {
		return RenderResult{}, noStoreError(c.cfg.Options.Label, c.cfg.DisplayName)
	}

	if c.storeOrParentChanged(store, fromProps, ambientVal.Node) {
		if err := c.initForStore(store, fromProps, ambientVal.Node); err != nil {
			return RenderResult{}, err
		}
	}

	// An error latched by the change-detection callback surfaces here, as
	// the very first action of the render, so the host's error-boundary
	// machinery intercepts it. Latch cleared on rethrow.
	if c.latchedErr != nil {
		err := c.latchedErr
		c.latchedErr = nil
		c.hasPending = false
		c.pendingProps = nil
		// This render consumed the scheduled pass even though it failed;
		// later store updates must be able to schedule a fresh one.
		c.renderScheduled = false
		c.storeChangePending = false
		return RenderResult{}, err
	}

	var merged any
	if c.hasPending && primitives.Identical(ownProps, c.lastOwnerProps) {
		// The pending value already reflects exactly these owner props and
		// the latest store state; no recomputation needed.
		merged = c.pendingProps
	} else {
		var err error
		merged, err = c.runSelector(store.GetState(), ownProps)
		if err != nil {
			return RenderResult{}, err
		}
	}

	c.contextKey = key
	c.lastAmbient = ambient
	c.renderStaged = true
	c.renderedOwnerProps = ownProps
	c.renderedMergedProps = merged
	c.renderedStoreUpdate = c.storeChangePending
	c.renderedSeq = c.updateSeq

	child := ambient
	if c.cfg.Options.HandlesStateChanges {
		child = ambient.With(key, AmbientContext{Store: store, Node: c.sub})
	}

	c.publish(EventRender)
	return RenderResult{
		MergedProps:  merged,
		ChildContext: child,
		Unchanged:    c.mounted && primitives.Identical(merged, c.lastMergedProps),
	}, nil
}

func (c *Coordinator) storeOrParentChanged(store primitives.Store, fromProps bool, ambientNode *Subscription) bool {
	if c.selector == nil || !primitives.Identical(store, c.store) || fromProps != c.storeFromProps {
		return true
	}
	return !fromProps && ambientNode != c.parentSub
}

// initForStore rebuilds the selector and notification node for a newly
// resolved store or parent. A store sourced from owner props gets a
// parentless node, isolating its subtree from ancestor notification;
// otherwise the node chains into the ambient one.
func (c *Coordinator) initForStore(store primitives.Store, fromProps bool, ambientNode *Subscription) error {
	selector, err := c.cfg.Factory(store.Dispatch, c.cfg.Options.Extra)
	if err != nil {
		return err
	}

	if c.sub != nil {
		c.sub.OnStateChange = nil
		c.sub.TryUnsubscribe()
		c.logDebug("instance %s rewired to new store", c.id)
	}

	c.store = store
	c.storeFromProps = fromProps
	c.selector = selector
	c.sub = nil
	c.parentSub = nil
	c.hasPending = false
	c.pendingProps = nil
	c.storeChangePending = false
	c.latchedErr = nil

	if c.cfg.Options.HandlesStateChanges {
		var parent *Subscription
		if !fromProps {
			parent = ambientNode
		}
		c.sub = NewSubscription(store, parent)
		c.sub.SetLabel(c.cfg.DisplayName)
		c.sub.OnStateChange = c.onStateChange
		c.parentSub = parent
		c.needsResubscribe = true
	}
	return nil
}

// Commit runs after the host applies a render to the visible tree. It
// captures what was rendered, consumes the pending store update, performs
// the (re-)subscription effect, and cascades to nested nodes when the
// committed render consumed a store change, preserving top-down ordering.
func (c *Coordinator) Commit() {
	if !c.renderStaged || c.unsubscribed {
		return
	}
	c.renderStaged = false
	c.mounted = true
	c.lastOwnerProps = c.renderedOwnerProps
	c.lastMergedProps = c.renderedMergedProps

	if c.updateSeq == c.renderedSeq {
		c.hasPending = false
		c.pendingProps = nil
		c.storeChangePending = false
		c.renderScheduled = false
	} else {
		// A store update landed between render and commit; the committed
		// output predates it. Keep it pending and request another pass.
		c.renderScheduled = true
		c.cfg.Host.ScheduleRender(c.self())
	}

	if c.needsResubscribe && c.sub != nil {
		c.needsResubscribe = false
		c.sub.TrySubscribe()
		// Catch state mutations that happened between render and subscribe.
		c.onStateChange()
	}

	if c.renderedStoreUpdate && c.sub != nil {
		c.sub.NotifyNestedSubs()
		c.publish(EventCascade)
	}
	c.renderedStoreUpdate = false
}

// Unmount marks the instance unsubscribed and detaches its node. Idempotent;
// any change-detection callback already in flight becomes a no-op on entry.
func (c *Coordinator) Unmount() {
	c.unsubscribed = true
	if c.sub != nil {
		c.sub.OnStateChange = nil
		c.sub.TryUnsubscribe()
	}
	c.hasPending = false
	c.pendingProps = nil
	c.latchedErr = nil
	c.renderScheduled = false
	c.storeChangePending = false
	c.renderStaged = false
}

// onStateChange is the change-detection callback attached to the node's
// callback slot. Invoked synchronously whenever the store or parent node
// signals a change.
func (c *Coordinator) onStateChange() {
	// A store's unsubscribe is not guaranteed to take effect before the next
	// notification round; stale callbacks must be inert.
	if c.unsubscribed || c.selector == nil {
		return
	}

	merged, err := c.runSelector(c.store.GetState(), c.lastOwnerProps)

	if err == nil && primitives.Identical(merged, c.lastMergedProps) {
		c.latchedErr = nil
		// Output unchanged: this instance stays as-is, but descendants with
		// independent subscriptions still must get to check. Cascade now
		// unless a render is already scheduled, in which case the commit of
		// that render cascades instead.
		if c.renderScheduled {
			// The pending render will consume this value; refresh it so the
			// committed output never predates this notification.
			c.pendingProps = merged
			c.hasPending = true
			c.updateSeq++
			return
		}
		c.publish(EventSkipped)
		if c.sub != nil {
			c.sub.NotifyNestedSubs()
			c.publish(EventCascade)
		}
		return
	}

	if err != nil {
		c.latchedErr = err
		c.hasPending = false
		c.pendingProps = nil
	} else {
		c.latchedErr = nil
		c.pendingProps = merged
		c.hasPending = true
	}
	c.updateSeq++
	c.storeChangePending = true

	if !c.renderScheduled {
		c.renderScheduled = true
		c.publish(EventScheduled)
		c.cfg.Host.ScheduleRender(c.self())
	}
}

// runSelector invokes the derivation function, converting panics into
// errors: a callback invoked outside the render phase must not crash
// rendering infrastructure.
func (c *Coordinator) runSelector(state, ownProps any) (merged any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &derivationError{
				label:       c.cfg.Options.Label,
				displayName: c.cfg.DisplayName,
				value:       r,
			}
		}
	}()
	return c.selector(state, ownProps)
}

func (c *Coordinator) self() Renderable {
	if c.cfg.Self != nil {
		return c.cfg.Self
	}
	return c
}

func (c *Coordinator) publish(kind EventKind) {
	if c.cfg.Publisher == nil {
		return
	}
	event := BindingEvent{
		InstanceID:  c.id,
		DisplayName: c.cfg.DisplayName,
		Kind:        kind,
		Timestamp:   time.Now(),
	}
	if err := c.cfg.Publisher.Publish(context.Background(), event); err != nil {
		c.logUrgent("publish %s for instance %s: %v", kind, c.id, err)
	}
}
