package show

import (
	"testing"
)

func TestOrderEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Order
		want bool
	}{
		{"Equal", NewOrder(0, 1, 2), NewOrder(0, 1, 2), true},
		{"DifferentSequence", NewOrder(0, 1, 2), NewOrder(0, 2, 1), false},
		{"DifferentLengths", NewOrder(0, 1), NewOrder(0, 1, 2), false},
		{"BothEmpty", NewOrder(), NewOrder(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
			// Key agrees with Equal.
			if (tt.a.Key() == tt.b.Key()) != tt.want {
				t.Errorf("Key equality should match Equal: %q vs %q", tt.a.Key(), tt.b.Key())
			}
		})
	}
}

func TestOrderAppendDoesNotAlias(t *testing.T) {
	base := NewOrder(4, 2)
	a := base.Append(15)
	b := base.Append(7)

	if !base.Equal(NewOrder(4, 2)) {
		t.Errorf("base mutated by Append: %v", base)
	}
	if !a.Equal(NewOrder(4, 2, 15)) || !b.Equal(NewOrder(4, 2, 7)) {
		t.Errorf("Append results wrong: %v, %v", a, b)
	}
}

func TestOrderCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Order
		want int
	}{
		{"Less", NewOrder(0, 1, 2), NewOrder(0, 2, 1), -1},
		{"Greater", NewOrder(2, 1, 0), NewOrder(0, 1, 2), 1},
		{"Equal", NewOrder(1, 2), NewOrder(1, 2), 0},
		{"PrefixShorterFirst", NewOrder(0, 1), NewOrder(0, 1, 2), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Compare(tt.b)
			if (got < 0) != (tt.want < 0) || (got > 0) != (tt.want > 0) || (got == 0) != (tt.want == 0) {
				t.Errorf("Compare = %d, want sign of %d", got, tt.want)
			}
		})
	}
}

func TestOrderKeyDistinguishesMultiDigit(t *testing.T) {
	// [1, 2] and [12] must not collide.
	if NewOrder(1, 2).Key() == NewOrder(12).Key() {
		t.Error("Key should distinguish [1,2] from [12]")
	}
}

func TestOrderPosMap(t *testing.T) {
	m := NewOrder(4, 2, 15).PosMap()
	want := map[int]int{4: 0, 2: 1, 15: 2}
	for idx, pos := range want {
		if m[idx] != pos {
			t.Errorf("PosMap[%d] = %d, want %d", idx, m[idx], pos)
		}
	}
}

func TestIdentity(t *testing.T) {
	if !Identity(3).Equal(NewOrder(0, 1, 2)) {
		t.Errorf("Identity(3) = %v", Identity(3))
	}
	if Identity(0).Len() != 0 {
		t.Errorf("Identity(0) should be empty")
	}
}

func TestOrderContains(t *testing.T) {
	o := NewOrder(3, 0, 2)
	if !o.Contains(0) || o.Contains(1) {
		t.Errorf("Contains wrong for %v", o)
	}
}
