package show

import (
	"slices"
	"strconv"
	"strings"
)

// Order is an ordered sequence of sketch indices: a complete or partial
// candidate running order. It is a value type - Append returns a fresh
// Order with its own backing array, so partial orders on the search stack
// never alias each other.
type Order struct {
	seq []int
}

// NewOrder creates an order from the given index sequence.
// The slice is copied; the caller keeps ownership of its argument.
func NewOrder(seq ...int) Order {
	return Order{seq: slices.Clone(seq)}
}

// Len returns the number of sketches placed so far.
func (o Order) Len() int { return len(o.seq) }

// At returns the sketch index at position i.
func (o Order) At(i int) int { return o.seq[i] }

// Last returns the final sketch index. Panics on an empty order.
func (o Order) Last() int { return o.seq[len(o.seq)-1] }

// Seq returns a copy of the underlying index sequence.
func (o Order) Seq() []int { return slices.Clone(o.seq) }

// Append returns a new order one longer than o, ending in idx.
// The receiver is not modified.
func (o Order) Append(idx int) Order {
	seq := make([]int, len(o.seq)+1)
	copy(seq, o.seq)
	seq[len(o.seq)] = idx
	return Order{seq: seq}
}

// Contains reports whether the sketch index already appears in the order.
func (o Order) Contains(idx int) bool {
	return slices.Contains(o.seq, idx)
}

// Equal reports whether two orders have identical sequences.
func (o Order) Equal(other Order) bool {
	return slices.Equal(o.seq, other.seq)
}

// Compare orders two sequences lexicographically, shorter-first on prefix
// equality. It is the deterministic tie-break used by the selector.
func (o Order) Compare(other Order) int {
	return slices.Compare(o.seq, other.seq)
}

// Key returns a content key for use in deduplication sets. Two orders have
// the same key iff they are Equal.
func (o Order) Key() string {
	var b strings.Builder
	for i, idx := range o.seq {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(idx))
	}
	return b.String()
}

// String formats the order for logging and debugging.
func (o Order) String() string {
	return "[" + o.Key() + "]"
}

// PosMap returns a position lookup: sketch index -> position in the order.
func (o Order) PosMap() map[int]int {
	m := make(map[int]int, len(o.seq))
	for pos, idx := range o.seq {
		m[idx] = pos
	}
	return m
}

// Identity returns the order [0, 1, ..., n-1].
func Identity(n int) Order {
	seq := make([]int, n)
	for i := range seq {
		seq[i] = i
	}
	return Order{seq: seq}
}
