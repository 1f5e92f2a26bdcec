package core

import (
	"errors"
	"fmt"
)

var (
	// ErrNoStore indicates no store was resolvable from owner props or the
	// ambient context. Programmer error; never retried.
	ErrNoStore = errors.New("could not find store in owner props or ambient context")

	// ErrNilComponent indicates the wrapper factory received nothing to wrap.
	ErrNilComponent = errors.New("wrapped component must not be nil")

	// ErrNilFactory indicates the wrapper factory received no derivation
	// factory.
	ErrNilFactory = errors.New("derivation-function factory must not be nil")

	// ErrNilHost indicates a state-change-handling instance was built without
	// a render host to schedule against.
	ErrNilHost = errors.New("render host must not be nil when handling state changes")
)

// noStoreError annotates ErrNoStore with the diagnostic label and display
// name of the offending instance.
func noStoreError(label, displayName string) error {
	return fmt.Errorf("%w: pass a store prop to %s for %q or mount a provider above it", ErrNoStore, label, displayName)
}

// derivationError wraps a panic recovered from a derivation function invoked
// outside the render phase.
type derivationError struct {
	label       string
	displayName string
	value       any
}

func (e *derivationError) Error() string {
	return fmt.Sprintf("%s: derivation function for %q panicked: %v", e.label, e.displayName, e.value)
}
