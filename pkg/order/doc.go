// Package order implements the running-order solver: given sketches with
// casts, find a sequence in which no two adjacent sketches share a
// performer, fixed positions (anchors) are honored, and total adjacent
// cast overlap is minimal.
//
// # Pipeline
//
// [BuildFeasibility] derives an overlap [Matrix] and a [Feasibility]
// relation from the sketch list. From there two solvers are available:
//
//   - [Search.FindAll] exhaustively enumerates every full-length order
//     satisfying feasibility and anchors via backtracking, and
//     [SelectBest] picks a deterministic winner by cost against an
//     optional desired order.
//   - [Optimize] runs a greedy pairwise-swap hill climb directly on the
//     overlap matrix for instances too large to enumerate. It minimizes
//     summed adjacent overlap rather than enforcing zero overlap, so it
//     always produces a result even when no conflict-free arrangement
//     exists.
//
// # Scale
//
// The exhaustive search is factorial in the worst case and is only
// appropriate for small shows (low double digits of sketches). Callers
// must route larger instances to [Optimize], optionally capping the
// exhaustive search with [Search.MaxStates] or [Search.Deadline] and
// falling back when it reports RESOURCE_EXHAUSTED.
//
// # Purity
//
// Everything in this package is synchronous, single-threaded, and free of
// shared mutable state: each call works on its own worklist and scratch
// buffers, so read-only inputs can be shared across goroutines.
package order
