package production

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// Registry manages versioned snapshots of mounted binding instances, the
// storage side of devtools-style time travel: capture on interesting events,
// look up by version later.
type Registry interface {
	// Register saves snapshot under its instance ID and version.
	Register(ctx context.Context, snapshot BindingSnapshot) error

	// Latest returns the most recently registered snapshot for instanceID.
	Latest(ctx context.Context, instanceID string) (BindingSnapshot, error)

	// Version returns the snapshot with the given version.
	Version(ctx context.Context, instanceID, version string) (BindingSnapshot, error)

	// ListVersions returns versions for instanceID, newest first.
	ListVersions(ctx context.Context, instanceID string) ([]string, error)

	// ListInstances returns all registered instance IDs, sorted.
	ListInstances(ctx context.Context) ([]string, error)
}

var (
	ErrNotFound = errors.New("version or instance not found")
	ErrExists   = errors.New("version already exists")
)

// MemoryRegistry is an in-memory Registry. Safe for concurrent use.
type MemoryRegistry struct {
	mu        sync.RWMutex
	snapshots map[string][]BindingSnapshot
}

// NewMemoryRegistry creates an empty MemoryRegistry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{snapshots: make(map[string][]BindingSnapshot)}
}

func (r *MemoryRegistry) Register(ctx context.Context, snapshot BindingSnapshot) error {
	if snapshot.Version == "" {
		snapshot.Version = ComputeVersion(&snapshot)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.snapshots[snapshot.InstanceID] {
		if s.Version == snapshot.Version {
			return ErrExists
		}
	}
	r.snapshots[snapshot.InstanceID] = append(r.snapshots[snapshot.InstanceID], snapshot)
	return nil
}

func (r *MemoryRegistry) Latest(ctx context.Context, instanceID string) (BindingSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	history := r.snapshots[instanceID]
	if len(history) == 0 {
		return BindingSnapshot{}, ErrNotFound
	}
	return history[len(history)-1], nil
}

func (r *MemoryRegistry) Version(ctx context.Context, instanceID, version string) (BindingSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.snapshots[instanceID] {
		if s.Version == version {
			return s, nil
		}
	}
	return BindingSnapshot{}, ErrNotFound
}

func (r *MemoryRegistry) ListVersions(ctx context.Context, instanceID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	history := r.snapshots[instanceID]
	if len(history) == 0 {
		return nil, ErrNotFound
	}
	out := make([]string, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		out = append(out, history[i].Version)
	}
	return out, nil
}

func (r *MemoryRegistry) ListInstances(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.snapshots))
	for id := range r.snapshots {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}
