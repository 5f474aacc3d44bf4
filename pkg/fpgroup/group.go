package fpgroup

import (
	"strings"

	"github.com/emirpasic/gods/trees/redblacktree"

	"github.com/matzehuels/fpgroups/pkg/errors"
)

// Group is a finitely presented group: a finite alphabet of generators and
// a list of relators, words declared equal to the identity.
//
// Relators are stored in canonical form. Each one is replaced by its
// [RelatorRepresentative], empty and duplicate relators are dropped and the
// remainder is sorted by [Word.Compare]. Two presentations over the same
// alphabet whose relators agree up to rotation and inversion therefore
// compare equal.
type Group struct {
	alphabet *FiniteAlphabet
	relators []Word
}

// NewGroup creates a group from an alphabet and relator words over it.
func NewGroup(A *FiniteAlphabet, relators ...Word) (*Group, error) {
	if A == nil {
		return nil, errors.New(errors.ErrCodeInvalidAlphabet, "alphabet is required")
	}
	canon := redblacktree.NewWith(func(a, b interface{}) int {
		return a.(Word).Compare(b.(Word))
	})
	for _, r := range relators {
		if !SameAlphabet(A, r.Alphabet()) && !r.IsIdentity() {
			return nil, errors.New(errors.ErrCodeInvalidPresentation, "relator %s is not over %s", r, A)
		}
		w := RelatorRepresentative(r)
		if w.Len() > 0 {
			canon.Put(fromReduced(A, w.data), struct{}{})
		}
	}

	G := &Group{alphabet: A, relators: make([]Word, 0, canon.Size())}
	for it := canon.Iterator(); it.Next(); {
		G.relators = append(G.relators, it.Key().(Word))
	}
	return G, nil
}

// ParseGroup creates a group from relators given as strings.
func ParseGroup(A *FiniteAlphabet, relators ...string) (*Group, error) {
	words, err := ParseWords(A, relators...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPresentation, err, "parse relators")
	}
	return NewGroup(A, words...)
}

// MustParseGroup is like [ParseGroup] but panics on error.
func MustParseGroup(A *FiniteAlphabet, relators ...string) *Group {
	G, err := ParseGroup(A, relators...)
	if err != nil {
		panic(err)
	}
	return G
}

// RelatorRepresentative returns the smallest word among all cyclic
// rotations of w and their inverses.
func RelatorRepresentative(w Word) Word {
	best := w
	for i := 0; i < w.Len(); i++ {
		cand := w.Rotation(i)
		if best.Compare(cand) > 0 {
			best = cand
		}
		if inv := cand.Inverse(); best.Compare(inv) > 0 {
			best = inv
		}
	}
	return best
}

// Alphabet returns the generator alphabet.
func (G *Group) Alphabet() *FiniteAlphabet {
	return G.alphabet
}

// NumGenerators returns the number of generators.
func (G *Group) NumGenerators() int {
	return G.alphabet.Size()
}

// Generators returns the generators as one-letter words, in alphabet order.
func (G *Group) Generators() []Word {
	gens := make([]Word, G.alphabet.Size())
	for i := range gens {
		gens[i] = fromReduced(G.alphabet, []int{i + 1})
	}
	return gens
}

// Relators returns the canonical relators.
func (G *Group) Relators() []Word {
	out := make([]Word, len(G.relators))
	copy(out, G.relators)
	return out
}

// Identity returns the empty word over the group's alphabet.
func (G *Group) Identity() Word {
	return Identity(G.alphabet)
}

// Parse reads a word over the group's alphabet.
func (G *Group) Parse(s string) (Word, error) {
	return ParseWord(G.alphabet, s)
}

// Equal reports whether both presentations have the same alphabet and relators.
func (G *Group) Equal(H *Group) bool {
	if G == H {
		return true
	}
	if G == nil || H == nil || !G.alphabet.Equal(H.alphabet) || len(G.relators) != len(H.relators) {
		return false
	}
	for i := range G.relators {
		if G.relators[i].Compare(H.relators[i]) != 0 {
			return false
		}
	}
	return true
}

// String renders the presentation, e.g. FpGroup(Alphabet({"a"}), {a*a*a}).
func (G *Group) String() string {
	var b strings.Builder
	b.WriteString("FpGroup(")
	b.WriteString(G.alphabet.String())
	b.WriteString(", {")
	for i, r := range G.relators {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(r.String())
	}
	b.WriteString("})")
	return b.String()
}
