package extensibility

import (
	"testing"

	"github.com/comalice/storebind/internal/core"
	"github.com/comalice/storebind/internal/primitives"
)

func noopDispatch(action any) any { return action }

func buildSelector(t *testing.T, ms MapStateToProps, md MapDispatchToProps, mp MergeProps, opts ...FactoryOption) core.Selector {
	t.Helper()
	factory := NewSelectorFactory(ms, md, mp, opts...)
	sel, err := factory(noopDispatch, nil)
	if err != nil {
		t.Fatalf("factory: %v", err)
	}
	return sel
}

func TestPureSelector_StableWhenInputsUnchanged(t *testing.T) {
	sel := buildSelector(t, func(state, own any) primitives.Props {
		return primitives.Props{"n": state}
	}, nil, nil)

	state := primitives.Props{"n": 1}
	own := primitives.Props{"label": "x"}

	first, err := sel(state, own)
	if err != nil {
		t.Fatal(err)
	}
	second, err := sel(state, own)
	if err != nil {
		t.Fatal(err)
	}
	if !primitives.Identical(first, second) {
		t.Fatal("unchanged inputs produced a fresh bag; render gating depends on reference stability")
	}
}

func TestPureSelector_StableWhenStatePropsShallowEqual(t *testing.T) {
	calls := 0
	sel := buildSelector(t, func(state, own any) primitives.Props {
		calls++
		// A fresh but shallow-equal bag every call, like a mapState that
		// picks unchanged fields out of a changing state.
		return primitives.Props{"n": 1}
	}, nil, nil)

	first, _ := sel(primitives.Props{"v": 1}, nil)
	second, _ := sel(primitives.Props{"v": 2}, nil)

	if calls != 2 {
		t.Fatalf("mapState ran %d times for two distinct states, want 2", calls)
	}
	if !primitives.Identical(first, second) {
		t.Fatal("shallow-equal state props must reuse the previous merged bag")
	}
}

func TestPureSelector_NewBagWhenStatePropsChange(t *testing.T) {
	sel := buildSelector(t, func(state, own any) primitives.Props {
		return primitives.Props{"n": state}
	}, nil, nil)

	first, _ := sel(1, nil)
	second, _ := sel(2, nil)

	if primitives.Identical(first, second) {
		t.Fatal("changed state props must produce a fresh merged bag")
	}
	if second.(primitives.Props)["n"] != 2 {
		t.Errorf("merged n = %v, want 2", second.(primitives.Props)["n"])
	}
}

func TestPureSelector_OwnPropsChangeRecomputesMerge(t *testing.T) {
	sel := buildSelector(t, nil, nil, nil)

	state := primitives.Props{}
	first, _ := sel(state, primitives.Props{"a": 1})
	second, _ := sel(state, primitives.Props{"a": 2})

	if primitives.Identical(first, second) {
		t.Fatal("changed owner props must flow into a fresh merged bag")
	}
	if second.(primitives.Props)["a"] != 2 {
		t.Errorf("merged a = %v, want 2", second.(primitives.Props)["a"])
	}
}

func TestPureSelector_MapStateSkippedWithoutDeclaredOwnPropsDependence(t *testing.T) {
	calls := 0
	sel := buildSelector(t, func(state, own any) primitives.Props {
		calls++
		return primitives.Props{"n": state}
	}, nil, nil)

	state := primitives.Props{}
	sel(state, primitives.Props{"a": 1})
	sel(state, primitives.Props{"a": 2}) // props changed, state did not

	if calls != 1 {
		t.Errorf("mapState ran %d times, want 1: no own-props dependence declared", calls)
	}
}

func TestPureSelector_MapStateRerunsWithDeclaredOwnPropsDependence(t *testing.T) {
	calls := 0
	sel := buildSelector(t, func(state, own any) primitives.Props {
		calls++
		return primitives.Props{"n": own.(primitives.Props)["a"]}
	}, nil, nil, WithStateDependsOnOwnProps())

	state := primitives.Props{}
	sel(state, primitives.Props{"a": 1})
	second, _ := sel(state, primitives.Props{"a": 2})

	if calls != 2 {
		t.Fatalf("mapState ran %d times, want 2", calls)
	}
	if second.(primitives.Props)["n"] != 2 {
		t.Errorf("merged n = %v, want value from latest owner props", second.(primitives.Props)["n"])
	}
}

func TestPureSelector_MapDispatchRunsOncePerStore(t *testing.T) {
	calls := 0
	sel := buildSelector(t, func(state, own any) primitives.Props {
		return primitives.Props{"n": state}
	}, func(dispatch core.DispatchFunc, own any) primitives.Props {
		calls++
		return primitives.Props{"send": dispatch}
	}, nil)

	sel(1, primitives.Props{"a": 1})
	sel(2, primitives.Props{"a": 2})
	sel(3, primitives.Props{"a": 2})

	if calls != 1 {
		t.Errorf("mapDispatch ran %d times, want 1", calls)
	}
}

func TestPureSelector_MapDispatchRerunsWithDeclaredOwnPropsDependence(t *testing.T) {
	calls := 0
	sel := buildSelector(t, nil, func(dispatch core.DispatchFunc, own any) primitives.Props {
		calls++
		return primitives.Props{"send": dispatch}
	}, nil, WithDispatchDependsOnOwnProps())

	state := primitives.Props{}
	sel(state, primitives.Props{"a": 1})
	sel(state, primitives.Props{"a": 2})

	if calls != 2 {
		t.Errorf("mapDispatch ran %d times, want 2", calls)
	}
}

func TestImpureSelector_FreshBagEveryCall(t *testing.T) {
	sel := buildSelector(t, func(state, own any) primitives.Props {
		return primitives.Props{"n": 1}
	}, nil, nil, WithImpure())

	state := primitives.Props{}
	own := primitives.Props{}
	first, _ := sel(state, own)
	second, _ := sel(state, own)

	if primitives.Identical(first, second) {
		t.Fatal("impure selector must recompute on every call")
	}
}

func TestDefaultMergeProps_Precedence(t *testing.T) {
	owner := primitives.Props{"x": "owner", "y": "owner"}
	stateProps := primitives.Props{"y": "state", "z": "state"}
	dispatchProps := primitives.Props{"z": "dispatch"}

	out := DefaultMergeProps(stateProps, dispatchProps, owner)

	if out["x"] != "owner" || out["y"] != "state" || out["z"] != "dispatch" {
		t.Errorf("merge = %v, want dispatch over state over owner", out)
	}
}

func TestDefaultMergeProps_NonBagOwnerProps(t *testing.T) {
	type typed struct{ N int }
	own := typed{N: 3}

	out := DefaultMergeProps(primitives.Props{"s": 1}, primitives.Props{}, own)

	if out["ownProps"] != any(own) {
		t.Errorf("ownProps entry = %v, want the typed value", out["ownProps"])
	}
	if out["s"] != 1 {
		t.Errorf("state entry = %v, want 1", out["s"])
	}
}

func TestDefaultedParts(t *testing.T) {
	sel := buildSelector(t, nil, nil, nil)

	out, err := sel(primitives.Props{"ignored": true}, primitives.Props{"a": 1})
	if err != nil {
		t.Fatal(err)
	}
	bag := out.(primitives.Props)
	if bag["a"] != 1 {
		t.Errorf("owner prop a = %v, want 1", bag["a"])
	}
	if _, ok := bag["dispatch"].(core.DispatchFunc); !ok {
		t.Errorf("dispatch entry has type %T, want core.DispatchFunc", bag["dispatch"])
	}
}
