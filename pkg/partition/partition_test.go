package partition

import (
	"slices"
	"testing"
)

func TestFindUnknown(t *testing.T) {
	p := New[int]()
	if got := p.Find(7); got != 7 {
		t.Errorf("Find(7) = %d, want 7", got)
	}
	if p.Len() != 0 {
		t.Errorf("Len() = %d, want 0", p.Len())
	}
}

func TestUnite(t *testing.T) {
	p := New[int]()
	p.Unite(1, 2)
	p.Unite(3, 4)
	p.Unite(2, 4)
	p.Unite(5, 6)

	tests := []struct {
		a, b int
		want bool
	}{
		{1, 2, true},
		{1, 4, true},
		{3, 2, true},
		{1, 5, false},
		{5, 6, true},
		{7, 7, true},
		{7, 1, false},
	}
	for _, tt := range tests {
		if got := p.AreEquivalent(tt.a, tt.b); got != tt.want {
			t.Errorf("AreEquivalent(%d, %d) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestRepresentativeTieKeepsFirst(t *testing.T) {
	p := New[int]()
	p.Unite(3, 8)
	if got := p.Find(8); got != 3 {
		t.Errorf("Find(8) = %d, want 3", got)
	}

	// The larger class absorbs the smaller one regardless of argument order.
	p.Unite(9, 3)
	if got := p.Find(9); got != 3 {
		t.Errorf("Find(9) = %d, want 3", got)
	}
}

func TestClasses(t *testing.T) {
	p := New[string]()
	p.Unite("a", "b")
	p.Unite("c", "d")
	p.Unite("b", "e")

	got := p.Classes()
	want := [][]string{{"a", "b", "e"}, {"c", "d"}}
	if len(got) != len(want) {
		t.Fatalf("Classes() = %v, want %v", got, want)
	}
	for i := range want {
		if !slices.Equal(got[i], want[i]) {
			t.Errorf("Classes()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRepresentativeMap(t *testing.T) {
	p := New[int]()
	p.Unite(1, 2)
	p.Unite(2, 3)
	m := p.RepresentativeMap()
	if len(m) != 3 {
		t.Fatalf("len(RepresentativeMap()) = %d, want 3", len(m))
	}
	for _, x := range []int{1, 2, 3} {
		if m[x] != p.Find(1) {
			t.Errorf("RepresentativeMap()[%d] = %d, want %d", x, m[x], p.Find(1))
		}
	}
}

func TestLongChainCompression(t *testing.T) {
	p := New[int]()
	for i := 1; i < 1000; i++ {
		p.Unite(i, i+1)
	}
	r := p.Find(1)
	for i := 1; i <= 1000; i++ {
		if p.Find(i) != r {
			t.Fatalf("Find(%d) = %d, want %d", i, p.Find(i), r)
		}
	}
}
