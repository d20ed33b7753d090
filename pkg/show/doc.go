// Package show defines the data model for a sketch show: sketches with
// their casts, position anchors, and the Order value type used by the
// solver in package order.
//
// # Value Semantics
//
// Sketch, Cast, and Order are value types with structural equality. Two
// sketches with the same title, cast, and anchored flag are equal; two
// orders are equal iff their index sequences match element-wise. Order is
// hashable by content via [Order.Key], which lets the solver use orders as
// deduplication keys in a set.
//
// # Indices
//
// The solver works purely on 0-based sketch indices into the slice handed
// to it. Mapping external identifiers (CSV row titles, API sketch IDs) to
// indices is the caller's responsibility.
package show
