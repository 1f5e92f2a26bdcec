// Package primitives provides the foundational, zero-dependency data structures
// for the store binding layer.
//
// This package uses ONLY the Go standard library. No external dependencies are
// permitted in the primitives tier to achieve:
// - Minimal binary size
// - Zero vendor bloat
// - Deterministic builds
// - Cheap per-render identity checks
//
// Core invariants:
// - Identity semantics (Identical) match reference equality, never deep equality
// - Props bags are treated as immutable once handed to the binding layer
// - Option bundles validate eagerly, at wrap time
package primitives
