package order

import (
	"github.com/sketchbomb/runorder/pkg/show"
)

// Matrix is an N×N symmetric matrix of cast overlap counts. Entry (i, j)
// is the number of performers shared by sketches i and j; the diagonal
// holds cast sizes and is never consulted by the solvers.
type Matrix [][]int

// Overlap returns the number of shared performers between sketches i and j.
func (m Matrix) Overlap(i, j int) int { return m[i][j] }

// Len returns the number of sketches the matrix covers.
func (m Matrix) Len() int { return len(m) }

// Feasibility maps each sketch index to the sorted set of sketch indices
// that may legally be placed immediately after it: exactly those with zero
// cast overlap. The relation is symmetric in content but stored
// directionally, since adjacency in a sequence is directional.
type Feasibility map[int][]int

// Len returns the number of sketches the relation covers.
func (f Feasibility) Len() int { return len(f) }

// BuildFeasibility derives the overlap matrix and feasibility relation
// from the sketch list in one pass. It is a pure function of its input and
// cannot fail; a sketch with an empty cast is feasible next to everything.
//
// Cost is O(N² × average cast size).
func BuildFeasibility(sketches []show.Sketch) (Matrix, Feasibility) {
	n := len(sketches)
	m := make(Matrix, n)
	feas := make(Feasibility, n)

	for i := range sketches {
		m[i] = make([]int, n)
		feas[i] = []int{}
	}
	for i := range sketches {
		for j := range sketches {
			overlap := sketches[i].Cast.Overlap(sketches[j].Cast)
			m[i][j] = overlap
			if i != j && overlap == 0 {
				feas[i] = append(feas[i], j)
			}
		}
	}
	return m, feas
}

// AdjacentOverlap returns the summed cast overlap across every adjacent
// pair in the order: the quantity the greedy optimizer minimizes, and zero
// for every order the exhaustive search produces.
func AdjacentOverlap(m Matrix, o show.Order) int {
	total := 0
	for k := 0; k+1 < o.Len(); k++ {
		total += m[o.At(k)][o.At(k+1)]
	}
	return total
}
