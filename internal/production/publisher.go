// Package production provides production integrations for the binding layer:
// event publishing, snapshot persistence, notification-tree visualization.
package production

import (
	"context"

	"github.com/comalice/storebind/internal/core"
)

// ChannelPublisher forwards binding events to a Go channel.
// Non-blocking publish with drop on backpressure.
type ChannelPublisher struct {
	ch  chan<- core.BindingEvent
	log core.LogFunction
}

// NewChannelPublisher creates a ChannelPublisher with the given output channel.
func NewChannelPublisher(ch chan<- core.BindingEvent) *ChannelPublisher {
	return &ChannelPublisher{
		ch:  ch,
		log: core.LogFn(core.LogLevelDebug, "publisher"),
	}
}

func (p *ChannelPublisher) Publish(ctx context.Context, event core.BindingEvent) error {
	select {
	case p.ch <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		p.log("dropped %s event for instance %s (backpressure)", event.Kind, event.InstanceID)
		return nil
	}
}

func (p *ChannelPublisher) Close() error {
	close(p.ch)
	return nil
}
