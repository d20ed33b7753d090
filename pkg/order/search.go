package order

import (
	"slices"
	"time"

	"github.com/sketchbomb/runorder/pkg/errors"
	"github.com/sketchbomb/runorder/pkg/show"
)

// Search enumerates every full-length running order that satisfies the
// feasibility relation and the anchor map. The zero value runs uncapped.
//
// The search is a depth-first walk over partial orders with an explicit
// stack and a discovered-state set, so a partial order reachable by more
// than one path is only expanded once. Worst case is factorial in the
// number of sketches; callers with large shows must use [Optimize]
// instead, or set MaxStates/Deadline and fall back on RESOURCE_EXHAUSTED.
type Search struct {
	// MaxStates caps the number of partial orders expanded. 0 means no cap.
	MaxStates int
	// Deadline stops the search at a wall-clock time. Zero means no deadline.
	Deadline time.Time
}

// FindAll returns every complete order consistent with feasibility and
// anchors, sorted lexicographically for deterministic iteration.
//
// An empty result is reported as an INFEASIBLE error rather than a silent
// empty slice: no running order exists under the given constraints. If a
// cap stops the search first, the error is RESOURCE_EXHAUSTED instead,
// since feasibility was not decided either way.
func (s Search) FindAll(feas Feasibility, anchors show.Anchors) ([]show.Order, error) {
	n := feas.Len()
	if err := anchors.Validate(n); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, errors.New(errors.ErrCodeInfeasible, "no sketches to order")
	}

	empty := show.NewOrder()
	stack := []show.Order{empty}
	discovered := map[string]struct{}{empty.Key(): {}}
	var complete []show.Order

	expanded := 0
	for len(stack) > 0 {
		if s.MaxStates > 0 && expanded >= s.MaxStates {
			return nil, errors.New(errors.ErrCodeResourceExhausted,
				"search stopped after expanding %d states", expanded)
		}
		if !s.Deadline.IsZero() && expanded%1024 == 0 && time.Now().After(s.Deadline) {
			return nil, errors.New(errors.ErrCodeResourceExhausted,
				"search deadline exceeded after %d states", expanded)
		}

		partial := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		expanded++

		for _, next := range successors(partial, feas, anchors, n) {
			if next.Len() == n {
				complete = append(complete, next)
				continue
			}
			key := next.Key()
			if _, seen := discovered[key]; !seen {
				discovered[key] = struct{}{}
				stack = append(stack, next)
			}
		}
	}

	if len(complete) == 0 {
		return nil, errors.New(errors.ErrCodeInfeasible,
			"no running order satisfies the casting constraints and anchors")
	}

	slices.SortFunc(complete, show.Order.Compare)
	return complete, nil
}

// FindAllOrders runs an uncapped search. See [Search.FindAll].
func FindAllOrders(feas Feasibility, anchors show.Anchors) ([]show.Order, error) {
	return Search{}.FindAll(feas, anchors)
}

// successors returns every partial order one longer than partial that
// still complies with the feasibility relation and anchors.
//
// From the empty order: the position-0 anchor if present, otherwise every
// sketch. From a non-empty order: if the next position is anchored, the
// single anchored extension - but only when it is feasible after the last
// sketch and unused, otherwise the branch dead-ends; if unanchored, every
// unused sketch feasible after the last one.
func successors(partial show.Order, feas Feasibility, anchors show.Anchors, n int) []show.Order {
	if partial.Len() == 0 {
		if first, ok := anchors[0]; ok {
			return []show.Order{partial.Append(first)}
		}
		out := make([]show.Order, 0, n)
		for idx := 0; idx < n; idx++ {
			out = append(out, partial.Append(idx))
		}
		return out
	}

	last := partial.Last()
	if required, ok := anchors[partial.Len()]; ok {
		if slices.Contains(feas[last], required) && !partial.Contains(required) {
			return []show.Order{partial.Append(required)}
		}
		return nil
	}

	var out []show.Order
	for _, idx := range feas[last] {
		if !partial.Contains(idx) {
			out = append(out, partial.Append(idx))
		}
	}
	return out
}
