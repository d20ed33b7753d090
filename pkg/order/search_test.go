package order

import (
	"testing"
	"time"

	"github.com/sketchbomb/runorder/pkg/errors"
	"github.com/sketchbomb/runorder/pkg/show"
)

// threeSketchShow is the canonical small instance: A and C share a
// performer, B conflicts with nothing. Exactly two full orders exist.
func threeSketchShow() []show.Sketch {
	return []show.Sketch{
		{Title: "A", Cast: show.NewCast("x", "y", "z")},
		{Title: "B", Cast: show.NewCast("p", "q")},
		{Title: "C", Cast: show.NewCast("x")},
	}
}

func ordersEqual(got []show.Order, want []show.Order) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if !got[i].Equal(want[i]) {
			return false
		}
	}
	return true
}

func TestFindAllOrders(t *testing.T) {
	_, feas := BuildFeasibility(threeSketchShow())

	got, err := FindAllOrders(feas, nil)
	if err != nil {
		t.Fatalf("FindAllOrders error: %v", err)
	}

	// A-C adjacency is infeasible, so only A,B,C and its reverse survive.
	want := []show.Order{show.NewOrder(0, 1, 2), show.NewOrder(2, 1, 0)}
	if !ordersEqual(got, want) {
		t.Errorf("FindAllOrders = %v, want %v", got, want)
	}
}

func TestFindAllOrdersWithAnchor(t *testing.T) {
	_, feas := BuildFeasibility(threeSketchShow())

	got, err := FindAllOrders(feas, show.Anchors{0: 0})
	if err != nil {
		t.Fatalf("FindAllOrders error: %v", err)
	}
	want := []show.Order{show.NewOrder(0, 1, 2)}
	if !ordersEqual(got, want) {
		t.Errorf("FindAllOrders with anchor = %v, want %v", got, want)
	}
}

func TestFindAllOrdersMidAnchor(t *testing.T) {
	// Anchoring B to the middle keeps both orders; anchoring C to the
	// middle kills every branch since B never conflicts but C does.
	_, feas := BuildFeasibility(threeSketchShow())

	got, err := FindAllOrders(feas, show.Anchors{1: 1})
	if err != nil {
		t.Fatalf("FindAllOrders error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("anchoring B mid-show should keep both orders, got %v", got)
	}

	_, err = FindAllOrders(feas, show.Anchors{1: 2})
	if !errors.Is(err, errors.ErrCodeInfeasible) {
		t.Errorf("anchoring C mid-show should be infeasible, got %v", err)
	}
}

func TestFindAllOrdersInfeasible(t *testing.T) {
	// Two sketches sharing their full cast: every 2-permutation violates
	// feasibility, so the search must report infeasibility, not an empty
	// success.
	sketches := []show.Sketch{
		{Title: "A", Cast: show.NewCast("x", "y")},
		{Title: "B", Cast: show.NewCast("x", "y")},
	}
	_, feas := BuildFeasibility(sketches)

	got, err := FindAllOrders(feas, nil)
	if !errors.Is(err, errors.ErrCodeInfeasible) {
		t.Fatalf("want INFEASIBLE, got orders=%v err=%v", got, err)
	}
}

func TestFindAllOrdersInvariants(t *testing.T) {
	// Larger instance: every returned order must satisfy the feasibility
	// and anchor invariants.
	sketches := []show.Sketch{
		{Title: "Opener", Cast: show.NewCast("amy", "bob")},
		{Title: "Duo", Cast: show.NewCast("cat", "dan")},
		{Title: "Solo", Cast: show.NewCast("amy")},
		{Title: "Chorus", Cast: show.NewCast("bob", "cat")},
		{Title: "Closer", Cast: show.NewCast("dan", "eve")},
	}
	anchors := show.Anchors{0: 0}

	m, feas := BuildFeasibility(sketches)
	got, err := Search{}.FindAll(feas, anchors)
	if err != nil {
		t.Fatalf("FindAll error: %v", err)
	}

	for _, o := range got {
		if o.Len() != len(sketches) {
			t.Fatalf("order %v is not full-length", o)
		}
		for k := 0; k+1 < o.Len(); k++ {
			if m.Overlap(o.At(k), o.At(k+1)) != 0 {
				t.Errorf("order %v has adjacent overlap at %d", o, k)
			}
		}
		for pos, idx := range anchors {
			if o.At(pos) != idx {
				t.Errorf("order %v violates anchor %d->%d", o, pos, idx)
			}
		}
	}
}

func TestFindAllOrdersAnchorValidation(t *testing.T) {
	_, feas := BuildFeasibility(threeSketchShow())

	// Out-of-range anchors fail before the search starts.
	_, err := FindAllOrders(feas, show.Anchors{7: 0})
	if !errors.Is(err, errors.ErrCodeInvalidAnchor) {
		t.Errorf("want INVALID_ANCHOR, got %v", err)
	}
}

func TestSearchMaxStates(t *testing.T) {
	// Five mutually compatible sketches: plenty of states to expand.
	sketches := make([]show.Sketch, 5)
	for i := range sketches {
		sketches[i] = show.Sketch{Title: string(rune('A' + i))}
	}
	_, feas := BuildFeasibility(sketches)

	_, err := Search{MaxStates: 3}.FindAll(feas, nil)
	if !errors.Is(err, errors.ErrCodeResourceExhausted) {
		t.Errorf("want RESOURCE_EXHAUSTED, got %v", err)
	}
}

func TestSearchDeadline(t *testing.T) {
	sketches := make([]show.Sketch, 4)
	for i := range sketches {
		sketches[i] = show.Sketch{Title: string(rune('A' + i))}
	}
	_, feas := BuildFeasibility(sketches)

	_, err := Search{Deadline: time.Now().Add(-time.Second)}.FindAll(feas, nil)
	if !errors.Is(err, errors.ErrCodeResourceExhausted) {
		t.Errorf("expired deadline should stop the search, got %v", err)
	}
}

func TestSuccessorsUnanchored(t *testing.T) {
	feas := Feasibility{
		0: {1, 2, 3},
		1: {0, 2},
		2: {1},
		3: {},
	}
	partial := show.NewOrder(1, 0)

	got := successors(partial, feas, nil, 4)
	want := []show.Order{show.NewOrder(1, 0, 2), show.NewOrder(1, 0, 3)}
	if !ordersEqual(got, want) {
		t.Errorf("successors = %v, want %v", got, want)
	}
}

func TestSuccessorsEmptyOrder(t *testing.T) {
	feas := Feasibility{0: {1}, 1: {0}}

	// Without anchors every sketch may open the show.
	got := successors(show.NewOrder(), feas, nil, 2)
	if len(got) != 2 {
		t.Errorf("every sketch should be a candidate opener, got %v", got)
	}

	// With a position-0 anchor there is exactly one opener.
	got = successors(show.NewOrder(), feas, show.Anchors{0: 1}, 2)
	want := []show.Order{show.NewOrder(1)}
	if !ordersEqual(got, want) {
		t.Errorf("anchored opener = %v, want %v", got, want)
	}
}

func TestSuccessorsAnchorDeadEnd(t *testing.T) {
	// The anchored sketch is not feasibility-reachable from the last
	// placed sketch, so the branch dead-ends.
	feas := Feasibility{0: {}, 1: {2}, 2: {1, 3}, 3: {2}}
	partial := show.NewOrder(1, 2)

	got := successors(partial, feas, show.Anchors{2: 0}, 4)
	if len(got) != 0 {
		t.Errorf("unreachable anchor should produce no successors, got %v", got)
	}

	// Reachable anchor produces exactly the forced extension.
	got = successors(partial, feas, show.Anchors{2: 3}, 4)
	want := []show.Order{show.NewOrder(1, 2, 3)}
	if !ordersEqual(got, want) {
		t.Errorf("forced extension = %v, want %v", got, want)
	}
}

func TestSuccessorsExcludesUsed(t *testing.T) {
	feas := Feasibility{0: {1, 2}, 1: {0, 2}, 2: {0, 1}}
	partial := show.NewOrder(2, 0)

	got := successors(partial, feas, nil, 3)
	want := []show.Order{show.NewOrder(2, 0, 1)}
	if !ordersEqual(got, want) {
		t.Errorf("successors must exclude already-placed sketches: %v", got)
	}
}
