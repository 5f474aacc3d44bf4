package fpgroup

import (
	"math/big"
	"testing"

	"github.com/matzehuels/fpgroups/pkg/errors"
)

func TestGroupCanonicalRelators(t *testing.T) {
	G := MustParseGroup(abc, "a*b^-1*a^-1*b", "a^-1*c^-1*a*c", "b*c*b^-1*c^-1")

	want := `FpGroup(Alphabet({"a", "b", "c"}), {a*b*a^-1*b^-1, a*c*a^-1*c^-1, b*c*b^-1*c^-1})`
	if got := G.String(); got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
	if G.NumGenerators() != 3 {
		t.Errorf("NumGenerators() = %d, want 3", G.NumGenerators())
	}
	if n := len(G.Relators()); n != 3 {
		t.Errorf("len(Relators()) = %d, want 3", n)
	}
}

func TestGroupDropsEmptyAndDuplicateRelators(t *testing.T) {
	G := MustParseGroup(abc, "a^3", "a*a^-1", "a^-3", "a*a*a", "b^2")
	if got := G.String(); got != `FpGroup(Alphabet({"a", "b", "c"}), {a*a*a, b*b})` {
		t.Errorf("String() = %s", got)
	}
}

func TestGroupEqual(t *testing.T) {
	G := MustParseGroup(abc, "a*b*a^-1*b^-1", "c^2")
	H := MustParseGroup(abc, "c^-2", "b*a*b^-1*a^-1")
	if !G.Equal(H) {
		t.Errorf("%s and %s should be equal", G, H)
	}

	again, err := NewGroup(G.Alphabet(), G.Relators()...)
	if err != nil {
		t.Fatal(err)
	}
	if !again.Equal(G) {
		t.Error("canonicalisation should be idempotent")
	}

	K := MustParseGroup(MustFiniteAlphabet("a", "b", "d"), "a*b*a^-1*b^-1", "d^2")
	if G.Equal(K) {
		t.Error("groups over different alphabets should differ")
	}
}

func TestGroupGenerators(t *testing.T) {
	G := MustParseGroup(abc)
	gens := G.Generators()
	if len(gens) != 3 {
		t.Fatalf("len(Generators()) = %d, want 3", len(gens))
	}
	for i, want := range []string{"a", "b", "c"} {
		if gens[i].String() != want {
			t.Errorf("Generators()[%d] = %s, want %s", i, gens[i], want)
		}
	}
	if !G.Identity().IsIdentity() {
		t.Error("Identity() should be empty")
	}
}

func TestNewGroupAlphabetMismatch(t *testing.T) {
	xy := MustFiniteAlphabet("x", "y")
	_, err := NewGroup(abc, MustWord(xy, 1, 2))
	if !errors.Is(err, errors.ErrCodeInvalidPresentation) {
		t.Errorf("NewGroup error = %v, want %s", err, errors.ErrCodeInvalidPresentation)
	}
	if _, err := NewGroup(nil); err == nil {
		t.Error("NewGroup(nil) should fail")
	}
}

func TestParseGroupSyntaxError(t *testing.T) {
	_, err := ParseGroup(abc, "a^2", "(a*b")
	if err == nil {
		t.Fatal("ParseGroup should fail")
	}
	if errors.GetCode(err) != errors.ErrCodeInvalidPresentation {
		t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidPresentation)
	}
}

func TestRelatorRepresentative(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"a*b^-1*a^-1*b", "a*b*a^-1*b^-1"},
		{"c*b*a", "a*c*b"},
		{"b^-1*a^-1", "a*b"},
		{"*", "*"},
	}
	for _, tt := range tests {
		got := RelatorRepresentative(MustParseWord(abc, tt.in))
		if got.String() != tt.want {
			t.Errorf("RelatorRepresentative(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestRelatorMatrix(t *testing.T) {
	G := MustParseGroup(MustFiniteAlphabet("a", "b"), "a^3*b^-1*a", "b^2")
	M := G.RelatorMatrix()
	want := [][]int64{{4, -1}, {0, 2}}
	if len(M) != len(want) {
		t.Fatalf("RelatorMatrix() = %v, want %v", M, want)
	}
	for i := range want {
		for j := range want[i] {
			if M[i][j] != want[i][j] {
				t.Errorf("RelatorMatrix()[%d][%d] = %d, want %d", i, j, M[i][j], want[i][j])
			}
		}
	}
}

func TestAbelianInvariants(t *testing.T) {
	ab := MustFiniteAlphabet("a", "b")
	tests := []struct {
		name string
		G    *Group
		want []int64
	}{
		{"free abelian", MustParseGroup(abc, "a*b^-1*a^-1*b", "a^-1*c^-1*a*c", "b*c*b^-1*c^-1"), []int64{0, 0, 0}},
		{"trivial", MustParseGroup(MustFiniteAlphabet()), []int64{}},
		{"perfect", MustParseGroup(abc, "a^3*b*c^4*a^-1*c^-1*b", "c^7*b^-2*a*b^5*c^-1*a^2*c^-2", "(a*b*c)^2*c*b^-1"), []int64{}},
		{"free", MustParseGroup(ab), []int64{0, 0}},
		{"cyclic", MustParseGroup(MustFiniteAlphabet("a"), "a^6"), []int64{6}},
		{"coprime", MustParseGroup(ab, "a^2", "b^3"), []int64{6}},
		{"divisibility", MustParseGroup(ab, "a^4", "b^6"), []int64{2, 12}},
		{"mixed", MustParseGroup(ab, "a^2"), []int64{0, 2}},
		{"gcd step", MustParseGroup(MustFiniteAlphabet("a"), "a^4", "a^6"), []int64{2}},
		{"dihedral", MustParseGroup(ab, "a^2", "b^2", "(a*b)^3"), []int64{2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.G.AbelianInvariants()
			if len(got) != len(tt.want) {
				t.Fatalf("AbelianInvariants() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i].Int64() != tt.want[i] {
					t.Errorf("AbelianInvariants() = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestGcdex(t *testing.T) {
	tests := []struct {
		m, n, g int64
	}{
		{5, 12, 1},
		{111, -740, 37},
		{-6100, 9870, 10},
		{7, 0, 7},
		{0, -4, 4},
	}
	for _, tt := range tests {
		m, n := big.NewInt(tt.m), big.NewInt(tt.n)
		g, a, b, c, d := gcdex(m, n)
		if g.Int64() != tt.g {
			t.Errorf("gcdex(%d, %d) gcd = %v, want %d", tt.m, tt.n, g, tt.g)
		}
		if v := combine(a, m, b, n); v.Cmp(g) != 0 {
			t.Errorf("gcdex(%d, %d): a*m+b*n = %v, want %v", tt.m, tt.n, v, g)
		}
		if v := combine(c, m, d, n); v.Sign() != 0 {
			t.Errorf("gcdex(%d, %d): c*m+d*n = %v, want 0", tt.m, tt.n, v)
		}
		det := new(big.Int).Sub(new(big.Int).Mul(a, d), new(big.Int).Mul(b, c))
		if det.CmpAbs(big.NewInt(1)) != 0 {
			t.Errorf("gcdex(%d, %d): determinant %v is not a unit", tt.m, tt.n, det)
		}
	}
}
