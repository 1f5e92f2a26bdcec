package primitives

import "fmt"

// DefaultContextKey is the process-wide default ambient-context slot.
const DefaultContextKey = "storebind"

// DefaultDiagnosticLabel identifies the wrapper factory in error messages
// when the caller supplies no label of its own.
const DefaultDiagnosticLabel = "connect"

// ConnectOptions is the static configuration bundle recognized by the wrapper
// factory. Zero value is usable: defaults are applied by Normalize.
type ConnectOptions struct {
	// NameFormatter derives the wrapper display name from the wrapped
	// component's name. Defaults to "Connect(<name>)".
	NameFormatter func(name string) string

	// Label is the diagnostic label used in error messages, e.g. "connect".
	Label string

	// HandlesStateChanges controls whether instances subscribe to store
	// changes at all. When false no notification node is created and
	// propagation passes through untouched.
	HandlesStateChanges bool

	// ForwardRef exposes the wrapped component instance through the wrapper.
	ForwardRef bool

	// ContextKey selects which ambient-context slot instances read and write.
	ContextKey string

	// Extra is an open bag passed through verbatim to the derivation-function
	// factory. Keys that shadow recognized options are rejected by Validate.
	Extra Props
}

// reservedExtraKeys are recognized top-level options that must not be smuggled
// through the factory bag; their presence indicates a caller ported from an
// older configuration surface.
var reservedExtraKeys = []string{
	"store",
	"context",
	"displayName",
	"forwardRef",
	"shouldHandleStateChanges",
	"withRef",
}

// Normalize fills defaulted fields in place.
func (o *ConnectOptions) Normalize() {
	if o.NameFormatter == nil {
		o.NameFormatter = func(name string) string {
			return "Connect(" + name + ")"
		}
	}
	if o.Label == "" {
		o.Label = DefaultDiagnosticLabel
	}
	if o.ContextKey == "" {
		o.ContextKey = DefaultContextKey
	}
}

// Validate rejects removed or unsupported configuration options. Fatal and
// not retried: these indicate programmer error at wrap time.
func (o *ConnectOptions) Validate() error {
	for _, key := range reservedExtraKeys {
		if _, ok := o.Extra[key]; ok {
			return fmt.Errorf("%s: extra option %q is not supported; use the dedicated configuration option instead", o.labelOrDefault(), key)
		}
	}
	return nil
}

func (o *ConnectOptions) labelOrDefault() string {
	if o.Label != "" {
		return o.Label
	}
	return DefaultDiagnosticLabel
}
