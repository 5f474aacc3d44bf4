package fpgroup_test

import (
	"fmt"

	"github.com/matzehuels/fpgroups/pkg/fpgroup"
)

func ExampleParseWord() {
	A := fpgroup.MustFiniteAlphabet("a", "b")
	w, _ := fpgroup.ParseWord(A, "[a,b]^2")
	fmt.Println(w)
	fmt.Println(w.Inverse())
	// Output:
	// a*b*a^-1*b^-1*a*b*a^-1*b^-1
	// b*a*b^-1*a^-1*b*a*b^-1*a^-1
}

func ExampleGroup_AbelianInvariants() {
	// The symmetric group S3 = <a, b | a^2, b^3, (a*b)^2> abelianises to Z/2.
	A := fpgroup.MustFiniteAlphabet("a", "b")
	G := fpgroup.MustParseGroup(A, "a^2", "b^3", "(a*b)^2")
	fmt.Println(G)
	fmt.Println(G.AbelianInvariants())
	// Output:
	// FpGroup(Alphabet({"a", "b"}), {a*a, a*b*a*b, b*b*b})
	// [2]
}
