package action

import (
	"testing"

	"github.com/matzehuels/fpgroups/pkg/fpgroup"
)

// torus is Z^2 = <a, b | [a,b]> acting on Z/2 x Z/3, encoded as 3i+j.
func torus() *Finite[int] {
	A := fpgroup.MustFiniteAlphabet("a", "b")
	G := fpgroup.MustParseGroup(A, "a*b*a^-1*b^-1")
	return NewFinite(G, []int{0, 1, 2, 3, 4, 5}, func(x, letter, sign int) int {
		i, j := x/3, x%3
		if letter == 1 {
			i = (i + sign + 2) % 2
		} else {
			j = (j + sign + 3) % 3
		}
		return 3*i + j
	})
}

func TestStabilizerGeneratorsFixBasepoint(t *testing.T) {
	a := torus()
	s, err := NewStabilizer[int](a, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Generators()) < 2 {
		t.Errorf("got %d generators, want at least 2", len(s.Generators()))
	}
	for _, w := range s.Generators() {
		if y, ok := a.Apply(0, w); !ok || y != 0 {
			t.Errorf("generator %s maps 0 to %d", w, y)
		}
	}
}

func TestStabilizerPresentation(t *testing.T) {
	s, err := NewStabilizer[int](torus(), 0)
	if err != nil {
		t.Fatal(err)
	}
	pres := s.Presentation()
	if pres.NumGenerators() != len(s.Generators()) {
		t.Errorf("presentation has %d generators, want %d", pres.NumGenerators(), len(s.Generators()))
	}
	// The stabilizer of a point is a finite-index subgroup of Z^2, so free abelian of rank 2.
	inv := pres.AbelianInvariants()
	if len(inv) != 2 || inv[0].Sign() != 0 || inv[1].Sign() != 0 {
		t.Errorf("AbelianInvariants() = %v, want [0 0]", inv)
	}

	labels := s.EdgeLabels()
	if len(labels) != 6*4 {
		t.Errorf("len(EdgeLabels()) = %d, want 24", len(labels))
	}
	for e, w := range labels {
		if !fpgroup.SameAlphabet(w.Alphabet(), pres.Alphabet()) && !w.IsIdentity() {
			t.Errorf("label of %v is over %s", e, w.Alphabet())
		}
	}
}

func TestStabilizerOfRegularAction(t *testing.T) {
	A := fpgroup.MustFiniteAlphabet("a")
	G := fpgroup.MustParseGroup(A, "a^3")
	a := NewFinite(G, []int{0, 1, 2}, func(x, _, sign int) int { return (x + sign + 3) % 3 })

	s, err := NewStabilizer[int](a, 0, WithMaxLabelLength(4))
	if err != nil {
		t.Fatal(err)
	}
	if n := len(s.Generators()); n != 0 {
		t.Errorf("got %d generators, want 0", n)
	}
	if inv := s.Presentation().AbelianInvariants(); len(inv) != 0 {
		t.Errorf("AbelianInvariants() = %v, want []", inv)
	}
	if s.Basepoint() != 0 || s.Action() != GroupAction[int](a) {
		t.Error("accessors do not return the inputs")
	}
}

func TestStabilizerIllegalBasepoint(t *testing.T) {
	if _, err := NewStabilizer[int](torus(), 17); err == nil {
		t.Error("NewStabilizer with a point outside the domain should fail")
	}
}
