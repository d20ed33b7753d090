package show

import (
	"github.com/sketchbomb/runorder/pkg/errors"
)

// Anchors maps sequence position -> sketch index required at that position.
// At most one sketch per position; building a conflicting map is a
// construction-time error, surfaced by Validate before any search runs.
type Anchors map[int]int

// AnchorsFromSketches derives the anchor map from the Anchored flags:
// each anchored sketch is pinned to its current index in the slice.
func AnchorsFromSketches(sketches []Sketch) Anchors {
	a := Anchors{}
	for i, s := range sketches {
		if s.Anchored {
			a[i] = i
		}
	}
	return a
}

// Validate checks the anchor map against a show of n sketches:
// positions and sketch indices in [0, n), and no sketch pinned to two
// positions. (Two sketches on one position cannot be expressed by the map
// type itself; callers building the map from external input must check for
// that while inserting.)
func (a Anchors) Validate(n int) error {
	seen := make(map[int]int, len(a))
	for pos, idx := range a {
		if pos < 0 || pos >= n {
			return errors.New(errors.ErrCodeInvalidAnchor, "anchor position %d out of range [0,%d)", pos, n)
		}
		if idx < 0 || idx >= n {
			return errors.New(errors.ErrCodeInvalidAnchor, "anchored sketch index %d out of range [0,%d)", idx, n)
		}
		if prev, dup := seen[idx]; dup {
			return errors.New(errors.ErrCodeInvalidAnchor, "sketch %d anchored to both position %d and %d", idx, prev, pos)
		}
		seen[idx] = pos
	}
	return nil
}
