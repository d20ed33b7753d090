package show

import (
	"testing"
)

func TestNewCast(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  Cast
	}{
		{"Sorted", []string{"zoe", "amy"}, Cast{"amy", "zoe"}},
		{"Deduplicated", []string{"amy", "amy", "bob"}, Cast{"amy", "bob"}},
		{"TrimsAndDropsEmpty", []string{" amy ", "", "  "}, Cast{"amy"}},
		{"Empty", nil, Cast{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewCast(tt.names...)
			if !got.Equal(tt.want) {
				t.Errorf("NewCast(%v) = %v, want %v", tt.names, got, tt.want)
			}
		})
	}
}

func TestCastOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b Cast
		want int
	}{
		{"Disjoint", NewCast("amy", "bob"), NewCast("cat", "dan"), 0},
		{"OneShared", NewCast("amy", "bob"), NewCast("bob", "cat"), 1},
		{"AllShared", NewCast("amy", "bob"), NewCast("amy", "bob"), 2},
		{"EmptyLeft", NewCast(), NewCast("amy"), 0},
		{"EmptyBoth", NewCast(), NewCast(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlap(tt.b); got != tt.want {
				t.Errorf("Overlap(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
			// Overlap is symmetric.
			if got := tt.b.Overlap(tt.a); got != tt.want {
				t.Errorf("Overlap(%v, %v) = %d, want %d", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestCastHas(t *testing.T) {
	c := NewCast("amy", "bob", "cat")
	if !c.Has("bob") {
		t.Error("Has should find a member")
	}
	if c.Has("dan") {
		t.Error("Has should not find a non-member")
	}
}

func TestNewSketch(t *testing.T) {
	s, err := NewSketch("  Jedi Warrior  ", NewCast("amy"), true)
	if err != nil {
		t.Fatalf("NewSketch error: %v", err)
	}
	if s.Title != "Jedi Warrior" {
		t.Errorf("Title = %q, want trimmed", s.Title)
	}
	if !s.Anchored {
		t.Error("Anchored should be true")
	}

	if _, err := NewSketch("   ", nil, false); err == nil {
		t.Error("empty title should be rejected")
	}

	if _, err := NewSketch("Cold Open", Cast{"amy\x00"}, false); err == nil {
		t.Error("control characters in a cast name should be rejected")
	}
}

func TestValidateSketchesCast(t *testing.T) {
	bad := []Sketch{{Title: "A", Cast: Cast{"amy", "bob\tbad"}}}
	if err := ValidateSketches(bad); err == nil {
		t.Error("control characters in a cast name should be rejected")
	}

	good := []Sketch{{Title: "A", Cast: NewCast("amy", "bob")}}
	if err := ValidateSketches(good); err != nil {
		t.Errorf("valid cast rejected: %v", err)
	}
}

func TestSketchEqual(t *testing.T) {
	a := Sketch{Title: "A", Cast: NewCast("x", "y"), Anchored: false}
	b := Sketch{Title: "A", Cast: NewCast("y", "x"), Anchored: false}
	c := Sketch{Title: "A", Cast: NewCast("x"), Anchored: false}

	if !a.Equal(b) {
		t.Error("sketches with equal title/cast/anchored should be equal")
	}
	if a.Equal(c) {
		t.Error("sketches with different casts should not be equal")
	}
}

func TestAnchorsFromSketches(t *testing.T) {
	sketch1 := Sketch{Title: "Jedi Warrior", Anchored: true}
	sketch2 := Sketch{Title: "I am the boss"}
	sketch3 := Sketch{Title: "It's just me", Anchored: true}

	got := AnchorsFromSketches([]Sketch{sketch1, sketch2, sketch3})
	want := Anchors{0: 0, 2: 2}
	if len(got) != len(want) {
		t.Fatalf("anchors = %v, want %v", got, want)
	}
	for pos, idx := range want {
		if got[pos] != idx {
			t.Errorf("anchors[%d] = %d, want %d", pos, got[pos], idx)
		}
	}

	if got := AnchorsFromSketches([]Sketch{sketch2}); len(got) != 0 {
		t.Errorf("no anchored sketches should give empty anchors, got %v", got)
	}
}

func TestAnchorsValidate(t *testing.T) {
	tests := []struct {
		name    string
		anchors Anchors
		n       int
		wantErr bool
	}{
		{"Valid", Anchors{0: 1, 2: 0}, 3, false},
		{"Empty", Anchors{}, 3, false},
		{"PositionOutOfRange", Anchors{3: 0}, 3, true},
		{"NegativePosition", Anchors{-1: 0}, 3, true},
		{"SketchOutOfRange", Anchors{0: 5}, 3, true},
		{"SketchTwice", Anchors{0: 1, 2: 1}, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.anchors.Validate(tt.n)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
