package core

import (
	"context"
	"time"
)

// EventKind classifies a binding lifecycle event.
type EventKind string

const (
	// EventRender: an instance computed merged props for a render pass.
	EventRender EventKind = "render"
	// EventScheduled: a store change produced new output and a render was
	// requested from the host.
	EventScheduled EventKind = "scheduled"
	// EventSkipped: a store change produced identical output and no render
	// was needed.
	EventSkipped EventKind = "skipped"
	// EventCascade: the instance forwarded the change to its nested nodes.
	EventCascade EventKind = "cascade"
)

// BindingEvent describes one observable step of an instance's update
// coordination, for diagnostics and devtools-style consumers.
type BindingEvent struct {
	InstanceID  string    `json:"instanceID" yaml:"instanceID"`
	DisplayName string    `json:"displayName" yaml:"displayName"`
	Kind        EventKind `json:"kind" yaml:"kind"`
	Timestamp   time.Time `json:"timestamp" yaml:"timestamp"`
}

// EventPublisher receives binding lifecycle events. Implementations must not
// block: publishing happens inline on the host goroutine.
type EventPublisher interface {
	Publish(ctx context.Context, event BindingEvent) error
	Close() error
}
