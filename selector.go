package storebind

import "github.com/comalice/storebind/internal/extensibility"

// MapStateToProps derives the state-dependent slice of merged props.
type MapStateToProps = extensibility.MapStateToProps

// MapDispatchToProps derives the dispatch-bound slice of merged props.
type MapDispatchToProps = extensibility.MapDispatchToProps

// MergeProps combines the three prop sources into the final bag.
type MergeProps = extensibility.MergeProps

// FactoryOption configures NewSelectorFactory.
type FactoryOption = extensibility.FactoryOption

// Selector-factory behavior options.
var (
	// WithImpure disables memoization entirely.
	WithImpure = extensibility.WithImpure
	// WithStateDependsOnOwnProps declares that mapState reads ownProps.
	WithStateDependsOnOwnProps = extensibility.WithStateDependsOnOwnProps
	// WithDispatchDependsOnOwnProps declares that mapDispatch reads ownProps.
	WithDispatchDependsOnOwnProps = extensibility.WithDispatchDependsOnOwnProps
)

// NewSelectorFactory builds the default memoizing derivation-function
// factory from mapState, mapDispatch and merge parts; nil parts get
// defaults. The produced selectors are referentially stable, which is what
// render gating keys off.
func NewSelectorFactory(mapState MapStateToProps, mapDispatch MapDispatchToProps, merge MergeProps, opts ...FactoryOption) SelectorFactory {
	return extensibility.NewSelectorFactory(mapState, mapDispatch, merge, opts...)
}
