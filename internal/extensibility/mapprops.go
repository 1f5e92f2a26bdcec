package extensibility

import (
	"github.com/comalice/storebind/internal/core"
	"github.com/comalice/storebind/internal/primitives"
)

// emptyStateProps is shared across all defaulted selectors so that a nil
// mapState contributes a reference-stable value.
var emptyStateProps = primitives.Props{}

func defaultMapState(state any, ownProps any) primitives.Props {
	return emptyStateProps
}

// defaultMapDispatch exposes the raw dispatch capability. It declares no
// own-props dependence, so a pure selector invokes it once per store and the
// bag stays reference-stable from there on.
func defaultMapDispatch(dispatch core.DispatchFunc, ownProps any) primitives.Props {
	return primitives.Props{"dispatch": dispatch}
}

// DefaultMergeProps merges owner props under state props under dispatch
// props, allocating a fresh bag. Owner props that are not a Props bag
// contribute a single "ownProps" entry instead of being spread.
func DefaultMergeProps(stateProps, dispatchProps primitives.Props, ownProps any) primitives.Props {
	out := make(primitives.Props, len(stateProps)+len(dispatchProps)+4)
	if bag, ok := ownProps.(primitives.Props); ok {
		for k, v := range bag {
			out[k] = v
		}
	} else if ownProps != nil {
		out["ownProps"] = ownProps
	}
	for k, v := range stateProps {
		out[k] = v
	}
	for k, v := range dispatchProps {
		out[k] = v
	}
	return out
}
