package core

import "github.com/comalice/storebind/internal/primitives"

// WithNameFormatter configures how wrapper display names are derived from the
// wrapped component's name.
func WithNameFormatter(f func(name string) string) Option {
	return func(c *Config) {
		c.Options.NameFormatter = f
	}
}

// WithLabel configures the diagnostic label used in error messages.
func WithLabel(label string) Option {
	return func(c *Config) {
		c.Options.Label = label
	}
}

// WithHandlesStateChanges configures whether instances subscribe to store
// changes at all.
func WithHandlesStateChanges(handles bool) Option {
	return func(c *Config) {
		c.Options.HandlesStateChanges = handles
	}
}

// WithForwardRef exposes the wrapped component instance through the wrapper.
func WithForwardRef(forward bool) Option {
	return func(c *Config) {
		c.Options.ForwardRef = forward
	}
}

// WithContextKey selects which ambient-context slot instances read and write.
func WithContextKey(key string) Option {
	return func(c *Config) {
		c.Options.ContextKey = key
	}
}

// WithFactoryOptions passes an open options bag through verbatim to the
// derivation-function factory.
func WithFactoryOptions(extra primitives.Props) Option {
	return func(c *Config) {
		c.Options.Extra = extra
	}
}

// WithPublisher configures a binding-event publisher for diagnostics.
func WithPublisher(p EventPublisher) Option {
	return func(c *Config) {
		c.Publisher = p
	}
}
