package storebind

import (
	"fmt"

	"github.com/comalice/storebind/internal/core"
)

// Provider roots an ambient-context subtree: it owns the root notification
// node for one store and supplies the context value descendants resolve
// their store from. The root node's only job on a store change is to cascade
// to its nested nodes; connected instances take it from there.
type Provider struct {
	store Store
	key   string
	sub   *core.Subscription
}

// ProviderOption configures NewProvider.
type ProviderOption func(*Provider)

// ProviderContextKey overrides the ambient-context slot the provider writes.
func ProviderContextKey(key string) ProviderOption {
	return func(p *Provider) { p.key = key }
}

// NewProvider creates a provider for store.
func NewProvider(store Store, opts ...ProviderOption) (*Provider, error) {
	if store == nil {
		return nil, fmt.Errorf("provider: %w", ErrNoStore)
	}
	p := &Provider{store: store, key: DefaultContextKey}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Mount attaches the root node to the store and returns the ambient context
// for the subtree. Idempotent.
func (p *Provider) Mount() ContextMap {
	if p.sub == nil {
		p.sub = core.NewSubscription(p.store, nil)
		p.sub.SetLabel("Provider")
		p.sub.OnStateChange = p.sub.NotifyNestedSubs
		p.sub.TrySubscribe()
	}
	return ContextMap{p.key: AmbientContext{Store: p.store, Node: p.sub}}
}

// Unmount detaches the root node. Idempotent.
func (p *Provider) Unmount() {
	if p.sub != nil {
		p.sub.OnStateChange = nil
		p.sub.TryUnsubscribe()
		p.sub = nil
	}
}

// Subscription returns the root notification node, or nil when unmounted.
// Useful for diagnostics and visualization.
func (p *Provider) Subscription() *core.Subscription { return p.sub }
