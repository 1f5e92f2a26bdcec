// Package extensibility provides implementations of the core's pluggable
// collaborator interfaces. The default selector factory here builds the
// derivation function most callers want: mapState + mapDispatch + merge with
// reference-stable memoization, so the coordinator's change gating works
// without every caller hand-rolling memoization.
package extensibility

import (
	"github.com/comalice/storebind/internal/core"
	"github.com/comalice/storebind/internal/primitives"
)

// MapStateToProps derives the state-dependent slice of merged props.
type MapStateToProps func(state any, ownProps any) primitives.Props

// MapDispatchToProps derives the dispatch-bound slice of merged props.
type MapDispatchToProps func(dispatch core.DispatchFunc, ownProps any) primitives.Props

// MergeProps combines the three prop sources into the final bag. It must
// allocate a fresh bag on every call; reference stability of the final
// result is the selector's job, not the merger's.
type MergeProps func(stateProps, dispatchProps primitives.Props, ownProps any) primitives.Props

// FactoryOption configures NewSelectorFactory.
type FactoryOption func(*factoryConfig)

type factoryConfig struct {
	pure                      bool
	stateDependsOnOwnProps    bool
	dispatchDependsOnOwnProps bool
}

// WithImpure disables memoization: every invocation recomputes all three
// parts and returns a fresh bag, so the instance re-renders on every store
// change.
func WithImpure() FactoryOption {
	return func(c *factoryConfig) { c.pure = false }
}

// WithStateDependsOnOwnProps declares that mapState reads ownProps, so it
// must be re-run when owner props change even if state did not.
func WithStateDependsOnOwnProps() FactoryOption {
	return func(c *factoryConfig) { c.stateDependsOnOwnProps = true }
}

// WithDispatchDependsOnOwnProps declares that mapDispatch reads ownProps.
func WithDispatchDependsOnOwnProps() FactoryOption {
	return func(c *factoryConfig) { c.dispatchDependsOnOwnProps = true }
}

// NewSelectorFactory builds a core.SelectorFactory from the three prop
// sources. Nil parts get defaults: empty state props, a bag exposing
// "dispatch", and an owner-then-state-then-dispatch merge.
//
// The produced selector is referentially stable: with unchanged inputs it
// returns the exact bag it returned last time, which is what the
// coordinator's Identical check gates renders on.
func NewSelectorFactory(mapState MapStateToProps, mapDispatch MapDispatchToProps, merge MergeProps, opts ...FactoryOption) core.SelectorFactory {
	cfg := factoryConfig{pure: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(dispatch core.DispatchFunc, options primitives.Props) (core.Selector, error) {
		ms := mapState
		if ms == nil {
			ms = defaultMapState
		}
		md := mapDispatch
		if md == nil {
			md = defaultMapDispatch
		}
		mp := merge
		if mp == nil {
			mp = DefaultMergeProps
		}

		if !cfg.pure {
			return impureSelector(dispatch, ms, md, mp), nil
		}
		return pureSelector(dispatch, ms, md, mp, cfg), nil
	}
}

func impureSelector(dispatch core.DispatchFunc, ms MapStateToProps, md MapDispatchToProps, mp MergeProps) core.Selector {
	return func(state, ownProps any) (any, error) {
		return mp(ms(state, ownProps), md(dispatch, ownProps), ownProps), nil
	}
}

// pureSelector tracks the previous state, owner props and intermediate
// results across calls, re-running only the parts whose inputs changed and
// reusing the previous merged bag when nothing visible moved.
func pureSelector(dispatch core.DispatchFunc, ms MapStateToProps, md MapDispatchToProps, mp MergeProps, cfg factoryConfig) core.Selector {
	var (
		hasRun        bool
		state         any
		ownProps      any
		stateProps    primitives.Props
		dispatchProps primitives.Props
		merged        primitives.Props
	)

	handleFirstCall := func(newState, newOwn any) primitives.Props {
		hasRun = true
		state, ownProps = newState, newOwn
		stateProps = ms(state, ownProps)
		dispatchProps = md(dispatch, ownProps)
		merged = mp(stateProps, dispatchProps, ownProps)
		return merged
	}

	handleNewPropsAndNewState := func() primitives.Props {
		stateProps = ms(state, ownProps)
		if cfg.dispatchDependsOnOwnProps {
			dispatchProps = md(dispatch, ownProps)
		}
		merged = mp(stateProps, dispatchProps, ownProps)
		return merged
	}

	handleNewProps := func() primitives.Props {
		if cfg.stateDependsOnOwnProps {
			stateProps = ms(state, ownProps)
		}
		if cfg.dispatchDependsOnOwnProps {
			dispatchProps = md(dispatch, ownProps)
		}
		merged = mp(stateProps, dispatchProps, ownProps)
		return merged
	}

	handleNewState := func() primitives.Props {
		next := ms(state, ownProps)
		changed := !primitives.ShallowEqual(next, stateProps)
		stateProps = next
		if changed {
			merged = mp(stateProps, dispatchProps, ownProps)
		}
		return merged
	}

	return func(newState, newOwn any) (any, error) {
		if !hasRun {
			return handleFirstCall(newState, newOwn), nil
		}

		propsChanged := !primitives.ShallowEqual(newOwn, ownProps)
		stateChanged := !primitives.Identical(newState, state)
		state, ownProps = newState, newOwn

		switch {
		case propsChanged && stateChanged:
			return handleNewPropsAndNewState(), nil
		case propsChanged:
			return handleNewProps(), nil
		case stateChanged:
			return handleNewState(), nil
		}
		return merged, nil
	}
}
