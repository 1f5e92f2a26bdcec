package storebind

import (
	"reflect"

	"github.com/comalice/storebind/internal/core"
)

// Connector holds the derivation-function factory and configuration shared
// by every component type wrapped through it. Built once by Connect, applied
// to components via Wrap.
type Connector struct {
	cfg core.Config
}

// Connect builds a wrapper factory from a derivation-function factory and
// configuration options. Configuration errors (unsupported options, nil
// factory) surface here, at wrap time, and are not retried.
func Connect(factory SelectorFactory, opts ...Option) (*Connector, error) {
	cfg := core.Config{Factory: factory}
	cfg.Options.HandlesStateChanges = true
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.Options.Normalize()

	if factory == nil {
		return nil, ErrNilFactory
	}
	if err := cfg.Options.Validate(); err != nil {
		return nil, err
	}
	return &Connector{cfg: cfg}, nil
}

// Connected is a wrapped component type: the pairing of one wrapped
// component with the connector's configuration. Mounting it produces
// Instances.
type Connected struct {
	cfg     core.Config
	wrapped Component
}

// Wrap produces the wrapped component type for component.
func (c *Connector) Wrap(component Component) (*Connected, error) {
	if component == nil {
		return nil, ErrNilComponent
	}
	cfg := c.cfg
	cfg.DisplayName = cfg.Options.NameFormatter(componentName(component))
	return &Connected{cfg: cfg, wrapped: component}, nil
}

// DisplayName returns the formatted wrapper name, e.g. "Connect(Counter)".
func (w *Connected) DisplayName() string { return w.cfg.DisplayName }

// NewInstance mounts a fresh instance of the wrapped component type against
// host. The host owns the instance lifecycle from here: Render and Commit
// per pass, Unmount at teardown.
func (w *Connected) NewInstance(host RenderHost) (*Instance, error) {
	inst := &Instance{wrapped: w.wrapped, forwardRef: w.cfg.Options.ForwardRef}
	cfg := w.cfg
	cfg.Host = host
	cfg.Self = inst

	coord, err := core.NewCoordinator(cfg)
	if err != nil {
		return nil, err
	}
	inst.coord = coord
	return inst, nil
}

// Instance is one mounted connected component: the coordination state
// machine plus the wrapped component it renders.
//
// Not safe for concurrent use; all methods run on the host's goroutine.
type Instance struct {
	coord      *core.Coordinator
	wrapped    Component
	forwardRef bool
}

var _ core.Renderable = (*Instance)(nil)

// Render performs an owner-triggered render pass: computes merged props,
// renders the wrapped component with them, and returns the result carrying
// the ambient context for descendants. The wrapped component is skipped when
// the merged props did not change, and always after Unmount. The host must
// call Commit once the output is applied to the visible tree.
func (i *Instance) Render(ownProps any, ambient ContextMap) (RenderResult, error) {
	res, err := i.coord.Render(ownProps, ambient)
	if err != nil {
		return RenderResult{}, err
	}
	if !res.Unchanged {
		i.wrapped.Render(res.MergedProps)
	}
	return res, nil
}

// Rerender performs a store-triggered render pass, replaying the last
// committed owner props.
func (i *Instance) Rerender() (RenderResult, error) {
	res, err := i.coord.Rerender()
	if err != nil {
		return RenderResult{}, err
	}
	if !res.Unchanged {
		i.wrapped.Render(res.MergedProps)
	}
	return res, nil
}

// Commit reconciles coordination state after the host applies a render.
func (i *Instance) Commit() { i.coord.Commit() }

// Unmount tears the instance down. Idempotent.
func (i *Instance) Unmount() { i.coord.Unmount() }

// DisplayName returns the wrapper's display name.
func (i *Instance) DisplayName() string { return i.coord.DisplayName() }

// ID returns the instance's unique identifier.
func (i *Instance) ID() string { return i.coord.ID() }

// Ref returns the wrapped component when ref forwarding is enabled, else nil.
func (i *Instance) Ref() Component {
	if !i.forwardRef {
		return nil
	}
	return i.wrapped
}

// Coordinator exposes the underlying state machine for diagnostics
// (snapshot capture, visualization).
func (i *Instance) Coordinator() *core.Coordinator { return i.coord }

func componentName(c Component) string {
	if n, ok := c.(interface{ DisplayName() string }); ok && n.DisplayName() != "" {
		return n.DisplayName()
	}
	if n, ok := c.(interface{ Name() string }); ok && n.Name() != "" {
		return n.Name()
	}
	t := reflect.TypeOf(c)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return "Component"
}
