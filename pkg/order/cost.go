package order

import (
	"github.com/sketchbomb/runorder/pkg/errors"
	"github.com/sketchbomb/runorder/pkg/show"
)

// Cost measures how far a candidate order sits from a desired order: the
// sum over all sketches of the absolute distance between the sketch's
// position in the candidate and its position in desired. A nil desired
// order costs zero for every candidate.
func Cost(candidate show.Order, desired show.Order) int {
	if desired.Len() == 0 {
		return 0
	}
	candidatePos := candidate.PosMap()
	total := 0
	for pos := 0; pos < desired.Len(); pos++ {
		idx := desired.At(pos)
		if actual, ok := candidatePos[idx]; ok {
			total += abs(actual - pos)
		}
	}
	return total
}

// SelectBest picks the winner among complete candidates: the subset with
// minimum cost against desired (all candidates tie at zero when desired is
// empty), then the lexicographically smallest index sequence within that
// subset. The tie-break makes the result deterministic and reproducible
// across runs regardless of candidate ordering.
//
// An empty candidate slice is an INFEASIBLE error.
func SelectBest(candidates []show.Order, desired show.Order) (show.Order, error) {
	if len(candidates) == 0 {
		return show.Order{}, errors.New(errors.ErrCodeInfeasible, "no candidate orders to select from")
	}

	best := candidates[0]
	bestCost := Cost(best, desired)
	for _, candidate := range candidates[1:] {
		cost := Cost(candidate, desired)
		if cost < bestCost || (cost == bestCost && candidate.Compare(best) < 0) {
			best = candidate
			bestCost = cost
		}
	}
	return best, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
