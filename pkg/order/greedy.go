package order

import (
	"github.com/sketchbomb/runorder/pkg/show"
)

// GreedyOptions configures the pairwise-swap optimizer.
type GreedyOptions struct {
	// Desired breaks ties between swaps with equal adjacent overlap:
	// among them, the one with lower displacement cost wins. Empty means
	// no tie-break.
	Desired show.Order

	// RespectAnchors excludes anchored positions from the swap candidate
	// set entirely, so anchored sketches stay put. Requires Anchors.
	RespectAnchors bool

	// Anchors is consulted only when RespectAnchors is set.
	Anchors show.Anchors
}

// Optimize improves a full-length order by greedy pairwise swaps until no
// single swap helps: a 2-swap local optimum. A swap is better when it
// strictly lowers summed adjacent overlap, or keeps it equal while
// strictly lowering the displacement cost against opts.Desired.
//
// Unlike the exhaustive search, the optimizer does not enforce the
// zero-overlap adjacency constraint - it only minimizes the total - so it
// is usable even when no conflict-free arrangement exists, and it never
// fails. Termination is guaranteed: the (overlap, cost) pair decreases
// lexicographically on every accepted move and both values are bounded
// non-negative integers on a fixed instance, so no cycling is possible.
//
// The returned order is a fresh value; initial is never mutated. Applying
// Optimize to its own output returns an equal order (a fixed point).
func Optimize(m Matrix, initial show.Order, opts GreedyOptions) show.Order {
	current := show.NewOrder(initial.Seq()...)
	currentOverlap := AdjacentOverlap(m, current)
	currentCost := Cost(current, opts.Desired)

	swappable := swappablePositions(current.Len(), opts)
	scratch := make([]int, current.Len())

	for {
		seq := current.Seq()
		bestI, bestJ := -1, -1
		bestOverlap, bestCost := currentOverlap, currentCost

		for a := 0; a < len(swappable); a++ {
			for b := a + 1; b < len(swappable); b++ {
				i, j := swappable[a], swappable[b]

				copy(scratch, seq)
				scratch[i], scratch[j] = scratch[j], scratch[i]
				candidate := show.NewOrder(scratch...)

				overlap := AdjacentOverlap(m, candidate)
				cost := Cost(candidate, opts.Desired)
				if overlap < bestOverlap || (overlap == bestOverlap && cost < bestCost) {
					bestI, bestJ = i, j
					bestOverlap, bestCost = overlap, cost
				}
			}
		}

		if bestI < 0 {
			return current // local optimum
		}

		copy(scratch, seq)
		scratch[bestI], scratch[bestJ] = scratch[bestJ], scratch[bestI]
		current = show.NewOrder(scratch...)
		currentOverlap, currentCost = bestOverlap, bestCost
	}
}

// swappablePositions lists the positions the optimizer may touch: all of
// them, unless anchors are respected, in which case anchored positions are
// dropped from the candidate set.
func swappablePositions(n int, opts GreedyOptions) []int {
	positions := make([]int, 0, n)
	for pos := 0; pos < n; pos++ {
		if opts.RespectAnchors {
			if _, anchored := opts.Anchors[pos]; anchored {
				continue
			}
		}
		positions = append(positions, pos)
	}
	return positions
}
