package production

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/comalice/storebind/internal/core"
)

// BindingSnapshot is the serializable snapshot of one connected instance's
// observable state, for devtools-style inspection of a running tree.
type BindingSnapshot struct {
	InstanceID  string    `json:"instanceID" yaml:"instanceID"`
	DisplayName string    `json:"displayName" yaml:"displayName"`
	Version     string    `json:"version" yaml:"version"`
	StoreState  any       `json:"storeState" yaml:"storeState"`
	MergedProps any       `json:"mergedProps" yaml:"mergedProps"`
	Timestamp   time.Time `json:"timestamp" yaml:"timestamp"`
}

// CaptureSnapshot reads a coordinator's observable state into a snapshot.
func CaptureSnapshot(c *core.Coordinator) BindingSnapshot {
	snap := BindingSnapshot{
		InstanceID:  c.ID(),
		DisplayName: c.DisplayName(),
		StoreState:  c.StoreState(),
		MergedProps: c.LastMergedProps(),
		Timestamp:   time.Now(),
	}
	snap.Version = ComputeVersion(&snap)
	return snap
}

// Persister saves and loads binding snapshots.
type Persister interface {
	Save(ctx context.Context, snapshot BindingSnapshot) error
	Load(ctx context.Context, instanceID string) (BindingSnapshot, error)
}

// JSONPersister is a stdlib-only file-based persister using JSON serialization.
type JSONPersister struct {
	dir string
}

// NewJSONPersister creates a JSONPersister, ensuring the directory exists.
func NewJSONPersister(dir string) (*JSONPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &JSONPersister{dir: dir}, nil
}

func (p *JSONPersister) Save(ctx context.Context, snapshot BindingSnapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}

	fn := filepath.Join(p.dir, snapshot.InstanceID+".json")
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}

	return nil
}

func (p *JSONPersister) Load(ctx context.Context, instanceID string) (BindingSnapshot, error) {
	fn := filepath.Join(p.dir, instanceID+".json")
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			var empty BindingSnapshot
			return empty, fmt.Errorf("instance %q: %w", instanceID, os.ErrNotExist)
		}
		return BindingSnapshot{}, fmt.Errorf("read %s: %w", fn, err)
	}

	var snapshot BindingSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return BindingSnapshot{}, fmt.Errorf("json unmarshal: %w", err)
	}
	snapshot.InstanceID = instanceID // Ensure ID

	return snapshot, nil
}

// YAMLPersister is a file-based persister using YAML serialization for
// BindingSnapshot.
type YAMLPersister struct {
	dir string
}

// NewYAMLPersister creates a YAMLPersister, ensuring the directory exists.
func NewYAMLPersister(dir string) (*YAMLPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &YAMLPersister{dir: dir}, nil
}

func (p *YAMLPersister) Save(ctx context.Context, snapshot BindingSnapshot) error {
	data, err := yaml.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}

	fn := filepath.Join(p.dir, snapshot.InstanceID+".yaml")
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}

	return nil
}

func (p *YAMLPersister) Load(ctx context.Context, instanceID string) (BindingSnapshot, error) {
	fn := filepath.Join(p.dir, instanceID+".yaml")
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			var empty BindingSnapshot
			return empty, fmt.Errorf("instance %q: %w", instanceID, os.ErrNotExist)
		}
		return BindingSnapshot{}, fmt.Errorf("read %s: %w", fn, err)
	}

	var snapshot BindingSnapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return BindingSnapshot{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	snapshot.InstanceID = instanceID // Ensure ID

	return snapshot, nil
}
