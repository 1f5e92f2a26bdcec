// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"fmt"

	"github.com/comalice/storebind"
	"github.com/comalice/storebind/testutil"
)

// NewBagStore creates a store whose state is a Props bag; dispatching a bag
// merges it over the current state.
func NewBagStore(initial storebind.Props) *testutil.Store {
	return testutil.NewStore(func(state, action any) any {
		s := state.(storebind.Props)
		a := action.(storebind.Props)
		next := make(storebind.Props, len(s)+len(a))
		for k, v := range s {
			next[k] = v
		}
		for k, v := range a {
			next[k] = v
		}
		return next
	}, initial)
}

// FieldSelector derives a bag holding one field of state.
func FieldSelector(field string) storebind.SelectorFactory {
	return storebind.NewSelectorFactory(func(state, own any) storebind.Props {
		return storebind.Props{field: state.(storebind.Props)[field]}
	}, nil, nil)
}

// MountChain mounts depth connected instances, each the context child of the
// previous, all deriving field. Returns the mounted probes.
func MountChain(host *testutil.RecordingHost, ambient storebind.ContextMap, field string, depth int) ([]*testutil.Probe, error) {
	conn, err := storebind.Connect(FieldSelector(field))
	if err != nil {
		return nil, err
	}

	probes := make([]*testutil.Probe, 0, depth)
	ctx := ambient
	for i := 0; i < depth; i++ {
		probe := testutil.NewProbe(fmt.Sprintf("Level%d", i), nil)
		wrapped, err := conn.Wrap(probe)
		if err != nil {
			return nil, err
		}
		inst, err := wrapped.NewInstance(host)
		if err != nil {
			return nil, err
		}
		ctx, err = host.Mount(inst, storebind.Props{}, ctx)
		if err != nil {
			return nil, err
		}
		probes = append(probes, probe)
	}
	return probes, nil
}

// MountFan mounts width sibling instances under the same ambient context.
func MountFan(host *testutil.RecordingHost, ambient storebind.ContextMap, field string, width int) ([]*testutil.Probe, error) {
	conn, err := storebind.Connect(FieldSelector(field))
	if err != nil {
		return nil, err
	}

	probes := make([]*testutil.Probe, 0, width)
	for i := 0; i < width; i++ {
		probe := testutil.NewProbe(fmt.Sprintf("Sibling%d", i), nil)
		wrapped, err := conn.Wrap(probe)
		if err != nil {
			return nil, err
		}
		inst, err := wrapped.NewInstance(host)
		if err != nil {
			return nil, err
		}
		if _, err := host.Mount(inst, storebind.Props{}, ambient); err != nil {
			return nil, err
		}
		probes = append(probes, probe)
	}
	return probes, nil
}
