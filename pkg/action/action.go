package action

import (
	"iter"
	"slices"

	"github.com/matzehuels/fpgroups/pkg/fpgroup"
)

// GroupAction is a right action of a finitely presented group on points of type E.
type GroupAction[E any] interface {
	// Group returns the acting group.
	Group() *fpgroup.Group

	// Domain yields every point once. Each call starts a fresh sequence.
	Domain() iter.Seq[E]

	// Size returns the number of points.
	Size() int

	// Apply returns the image of x under w, or false if it is undefined.
	Apply(x E, w fpgroup.Word) (E, bool)

	// IsDefinedOn reports whether x is a point of the action.
	IsDefinedOn(x E) bool
}

// GeneratorFunc returns the image of x under a generator (sign +1) or its
// inverse (sign -1). Letters count from 1.
type GeneratorFunc[E any] func(x E, letter, sign int) E

// Finite is an action given by an explicit domain and a generator function.
type Finite[E comparable] struct {
	group  *fpgroup.Group
	domain []E
	member map[E]struct{}
	gen    GeneratorFunc[E]
}

// NewFinite creates an action of G on domain. The generator function is
// trusted to map domain points to domain points.
func NewFinite[E comparable](G *fpgroup.Group, domain []E, gen GeneratorFunc[E]) *Finite[E] {
	member := make(map[E]struct{}, len(domain))
	for _, x := range domain {
		member[x] = struct{}{}
	}
	return &Finite[E]{
		group:  G,
		domain: slices.Clone(domain),
		member: member,
		gen:    gen,
	}
}

func (a *Finite[E]) Group() *fpgroup.Group { return a.group }

func (a *Finite[E]) Domain() iter.Seq[E] { return slices.Values(a.domain) }

func (a *Finite[E]) Size() int { return len(a.domain) }

func (a *Finite[E]) IsDefinedOn(x E) bool {
	_, ok := a.member[x]
	return ok
}

func (a *Finite[E]) Apply(x E, w fpgroup.Word) (E, bool) {
	if !a.IsDefinedOn(x) || !sameGroupAlphabet(a.group, w) {
		var zero E
		return zero, false
	}
	z := x
	for i := 0; i < w.Len(); i++ {
		z = a.gen(z, w.Letter(i), w.Sign(i))
	}
	return z, true
}

// sameGroupAlphabet reports whether w can act through G.
func sameGroupAlphabet(G *fpgroup.Group, w fpgroup.Word) bool {
	return w.IsIdentity() || fpgroup.SameAlphabet(G.Alphabet(), w.Alphabet())
}

// generatorWords returns g1, g1^-1, g2, g2^-1, ... for the generators of G.
func generatorWords(G *fpgroup.Group) []fpgroup.Word {
	gens := G.Generators()
	out := make([]fpgroup.Word, 0, 2*len(gens))
	for _, g := range gens {
		out = append(out, g, g.Inverse())
	}
	return out
}

// Collect returns the domain of a as a slice.
func Collect[E any](a GroupAction[E]) []E {
	return slices.Collect(a.Domain())
}
