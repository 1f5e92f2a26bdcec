package primitives

import "reflect"

// Props is the conventional bag of owner-supplied or derived properties.
// Bags are treated as immutable once handed to the binding layer; derivation
// functions signal change by returning a freshly allocated bag.
type Props map[string]any

// Recognized control keys inside an owner Props bag. ContextKeyProp and
// ForwardedRefKey are consumed by the wrapper and never reach the derivation
// function; StoreKey is read in place and stays in the bag so store-triggered
// re-renders keep resolving it.
const (
	// StoreKey carries an owner-supplied store, overriding the ambient one.
	StoreKey = "store"
	// ContextKeyProp overrides which ambient-context slot the instance reads.
	ContextKeyProp = "context"
	// ForwardedRefKey carries a ref-forwarding target; opaque to this layer.
	ForwardedRefKey = "forwardedRef"
)

// Identical reports whether a and b are the same reference, the analog of
// identity comparison in the host render tree. Maps, slices, funcs, channels
// and pointers compare by referent; comparable scalars compare by value;
// values of non-comparable types are never identical unless they share a
// referent.
func Identical(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va := reflect.ValueOf(a)
	vb := reflect.ValueOf(b)
	if va.Kind() != vb.Kind() || va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Map, reflect.Func, reflect.Chan, reflect.Pointer, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}

	if !va.Type().Comparable() {
		return false
	}
	return a == b
}

// ShallowEqual reports whether a and b are Identical, or are Props bags with
// the same keys and Identical values. One level deep only; nested bags
// compare by reference.
func ShallowEqual(a, b any) bool {
	if Identical(a, b) {
		return true
	}

	pa, okA := a.(Props)
	pb, okB := b.(Props)
	if !okA || !okB {
		return false
	}
	if len(pa) != len(pb) {
		return false
	}
	for k, v := range pa {
		w, ok := pb[k]
		if !ok || !Identical(v, w) {
			return false
		}
	}
	return true
}

// StripControlProps returns ownProps with control keys removed, along with the
// extracted context-key override (empty when absent). Non-bag props pass
// through untouched: typed props structs carry no control keys.
func StripControlProps(ownProps any) (stripped any, contextKey string) {
	bag, ok := ownProps.(Props)
	if !ok {
		return ownProps, ""
	}

	if key, ok := bag[ContextKeyProp].(string); ok {
		contextKey = key
	}
	_, hasCtx := bag[ContextKeyProp]
	_, hasRef := bag[ForwardedRefKey]
	if !hasCtx && !hasRef {
		return bag, contextKey
	}

	out := make(Props, len(bag))
	for k, v := range bag {
		if k == ContextKeyProp || k == ForwardedRefKey {
			continue
		}
		out[k] = v
	}
	return out, contextKey
}
