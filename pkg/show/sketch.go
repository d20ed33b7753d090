package show

import (
	"slices"
	"strings"

	"github.com/sketchbomb/runorder/pkg/errors"
)

// Cast is the set of performers appearing in a sketch, stored as a sorted,
// deduplicated slice so that equal casts compare equal element-wise.
type Cast []string

// NewCast builds a cast set from performer names.
// Names are trimmed, duplicates removed, and the result sorted.
func NewCast(names ...string) Cast {
	c := make(Cast, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if !slices.Contains(c, n) {
			c = append(c, n)
		}
	}
	slices.Sort(c)
	return c
}

// Has reports whether the cast contains the performer.
func (c Cast) Has(name string) bool {
	_, found := slices.BinarySearch(c, name)
	return found
}

// Overlap returns the number of performers shared with another cast.
// Both casts are sorted, so this is a linear merge.
func (c Cast) Overlap(other Cast) int {
	count, i, j := 0, 0, 0
	for i < len(c) && j < len(other) {
		switch {
		case c[i] == other[j]:
			count++
			i++
			j++
		case c[i] < other[j]:
			i++
		default:
			j++
		}
	}
	return count
}

// Equal reports whether two casts contain exactly the same performers.
func (c Cast) Equal(other Cast) bool {
	return slices.Equal(c, other)
}

// Sketch is one unit to be ordered: a titled scene with a cast and an
// optional anchor flag pinning it to its current position.
//
// Sketches are immutable for the duration of one optimization run.
type Sketch struct {
	Title    string `json:"title" bson:"title"`                           // display title, non-empty after trimming
	Cast     Cast   `json:"cast" bson:"cast"`                             // performers, possibly empty
	Anchored bool   `json:"anchored,omitempty" bson:"anchored,omitempty"` // pinned to its assigned position
}

// NewSketch creates a sketch with a validated title and cast.
func NewSketch(title string, cast Cast, anchored bool) (Sketch, error) {
	if err := errors.ValidateTitle(title); err != nil {
		return Sketch{}, err
	}
	for _, name := range cast {
		if err := errors.ValidateActorName(name); err != nil {
			return Sketch{}, err
		}
	}
	return Sketch{Title: strings.TrimSpace(title), Cast: cast, Anchored: anchored}, nil
}

// Equal reports structural equality of two sketches.
func (s Sketch) Equal(other Sketch) bool {
	return s.Title == other.Title && s.Anchored == other.Anchored && s.Cast.Equal(other.Cast)
}

// ValidateSketches checks every sketch in the slice, reporting the first
// invalid one. Run this before handing the slice to the solver.
func ValidateSketches(sketches []Sketch) error {
	for i, s := range sketches {
		if err := errors.ValidateTitle(s.Title); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "sketch %d", i)
		}
		for _, name := range s.Cast {
			if err := errors.ValidateActorName(name); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "sketch %d", i)
			}
		}
	}
	return nil
}
