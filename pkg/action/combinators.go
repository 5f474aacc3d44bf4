package action

import (
	"iter"
	"slices"

	"github.com/matzehuels/fpgroups/pkg/errors"
	"github.com/matzehuels/fpgroups/pkg/fpgroup"
	"github.com/matzehuels/fpgroups/pkg/perm"
)

// =============================================================================
// Product
// =============================================================================

// Pair is a point of a product action.
type Pair[A, B any] struct {
	First  A
	Second B
}

// ProductAction acts on pairs by (x, y)·w = (x·w, y·w).
type ProductAction[A, B any] struct {
	a GroupAction[A]
	b GroupAction[B]
}

// Product returns the componentwise action on pairs. Both actions must
// act on the same group.
func Product[A, B any](a GroupAction[A], b GroupAction[B]) (*ProductAction[A, B], error) {
	if !a.Group().Equal(b.Group()) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "actions of different groups")
	}
	return &ProductAction[A, B]{a: a, b: b}, nil
}

func (p *ProductAction[A, B]) Group() *fpgroup.Group { return p.a.Group() }

// Domain enumerates pairs along anti-diagonals, so that every pair shows up
// after finitely many steps even for long domains.
func (p *ProductAction[A, B]) Domain() iter.Seq[Pair[A, B]] {
	return cantorPairs(p.a.Domain(), p.b.Domain())
}

func (p *ProductAction[A, B]) Size() int { return p.a.Size() * p.b.Size() }

func (p *ProductAction[A, B]) Apply(x Pair[A, B], w fpgroup.Word) (Pair[A, B], bool) {
	first, ok1 := p.a.Apply(x.First, w)
	second, ok2 := p.b.Apply(x.Second, w)
	if !ok1 || !ok2 {
		return Pair[A, B]{}, false
	}
	return Pair[A, B]{first, second}, true
}

func (p *ProductAction[A, B]) IsDefinedOn(x Pair[A, B]) bool {
	return p.a.IsDefinedOn(x.First) && p.b.IsDefinedOn(x.Second)
}

// cantorPairs yields (a0,b0), (a0,b1), (a1,b0), (a0,b2), (a1,b1), ...
// When one side runs out, the diagonals shrink from that end.
func cantorPairs[A, B any](as iter.Seq[A], bs iter.Seq[B]) iter.Seq[Pair[A, B]] {
	return func(yield func(Pair[A, B]) bool) {
		nextA, stopA := iter.Pull(as)
		defer stopA()
		nextB, stopB := iter.Pull(bs)
		defer stopB()

		var cacheA []A
		var cacheB []B // newest first
		for {
			if a, ok := nextA(); ok {
				cacheA = append(cacheA, a)
			} else if len(cacheB) > 0 {
				cacheB = cacheB[:len(cacheB)-1]
			}
			if b, ok := nextB(); ok {
				cacheB = slices.Insert(cacheB, 0, b)
			} else if len(cacheA) > 0 {
				cacheA = cacheA[1:]
			}
			if len(cacheA) == 0 || len(cacheB) == 0 {
				return
			}
			for i := range min(len(cacheA), len(cacheB)) {
				if !yield(Pair[A, B]{cacheA[i], cacheB[i]}) {
					return
				}
			}
		}
	}
}

// =============================================================================
// Cover
// =============================================================================

// CoverAction is the action on orderings of a finite domain,
// (x1, ..., xn)·w = (x1·w, ..., xn·w).
type CoverAction[E comparable] struct {
	base   GroupAction[E]
	points []E
}

// Cover returns the induced action on permutations of the domain of a.
func Cover[E comparable](a GroupAction[E]) *CoverAction[E] {
	return &CoverAction[E]{base: a, points: Collect(a)}
}

func (c *CoverAction[E]) Group() *fpgroup.Group { return c.base.Group() }

// Domain yields the orderings of the base domain in lexicographic order of
// their positions, starting with the base domain order itself.
func (c *CoverAction[E]) Domain() iter.Seq[[]E] {
	return func(yield func([]E) bool) {
		for p := range perm.All(len(c.points)) {
			if !yield(perm.Apply(p, c.points)) {
				return
			}
		}
	}
}

func (c *CoverAction[E]) Size() int { return perm.Factorial(len(c.points)) }

func (c *CoverAction[E]) Apply(x []E, w fpgroup.Word) ([]E, bool) {
	if !c.IsDefinedOn(x) {
		return nil, false
	}
	result := make([]E, len(x))
	for i, y := range x {
		z, ok := c.base.Apply(y, w)
		if !ok {
			return nil, false
		}
		result[i] = z
	}
	return result, true
}

func (c *CoverAction[E]) IsDefinedOn(x []E) bool {
	if len(x) != len(c.points) {
		return false
	}
	seen := make(map[E]struct{}, len(x))
	for _, y := range x {
		if _, dup := seen[y]; dup || !c.base.IsDefinedOn(y) {
			return false
		}
		seen[y] = struct{}{}
	}
	return true
}

// =============================================================================
// Orbit
// =============================================================================

// OrbitAction is the restriction of an action to a single orbit.
type OrbitAction[E comparable] struct {
	base   GroupAction[E]
	points []E
	member map[E]struct{}
}

// Orbit restricts a to the orbit of base. Points are listed in
// breadth-first order from base.
func Orbit[E comparable](base E, a GroupAction[E]) (*OrbitAction[E], error) {
	if !a.IsDefinedOn(base) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%v is not a point of the action", base)
	}
	gens := generatorWords(a.Group())
	o := &OrbitAction[E]{base: a, points: []E{base}, member: map[E]struct{}{base: {}}}
	for head := 0; head < len(o.points); head++ {
		x := o.points[head]
		for _, g := range gens {
			y, ok := a.Apply(x, g)
			if !ok {
				continue
			}
			if _, seen := o.member[y]; !seen {
				o.member[y] = struct{}{}
				o.points = append(o.points, y)
			}
		}
	}
	return o, nil
}

// OrbitOf restricts a to the orbit of its first domain point.
func OrbitOf[E comparable](a GroupAction[E]) (*OrbitAction[E], error) {
	for x := range a.Domain() {
		return Orbit(x, a)
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "action has an empty domain")
}

func (o *OrbitAction[E]) Group() *fpgroup.Group { return o.base.Group() }

func (o *OrbitAction[E]) Domain() iter.Seq[E] { return slices.Values(o.points) }

func (o *OrbitAction[E]) Size() int { return len(o.points) }

func (o *OrbitAction[E]) Apply(x E, w fpgroup.Word) (E, bool) {
	if !o.IsDefinedOn(x) {
		var zero E
		return zero, false
	}
	return o.base.Apply(x, w)
}

func (o *OrbitAction[E]) IsDefinedOn(x E) bool {
	_, ok := o.member[x]
	return ok && o.base.IsDefinedOn(x)
}

// =============================================================================
// Flat
// =============================================================================

// FlatAction is an action on 0..n-1 backed by one lookup table per
// generator and inverse.
type FlatAction struct {
	group *fpgroup.Group
	n     int
	maps  [][2][]int // maps[letter-1][0] for the inverse, [1] for the generator
}

// Flat renumbers the domain of a to 0..n-1 in domain order.
func Flat[E comparable](a GroupAction[E]) (*FlatAction, error) {
	var new2old []E
	old2new := make(map[E]int)
	for x := range a.Domain() {
		old2new[x] = len(new2old)
		new2old = append(new2old, x)
	}
	n := len(new2old)

	G := a.Group()
	maps := make([][2][]int, G.NumGenerators())
	for k, g := range G.Generators() {
		for s, w := range []fpgroup.Word{g.Inverse(), g} {
			m := make([]int, n)
			for i, x := range new2old {
				y, ok := a.Apply(x, w)
				j, known := old2new[y]
				if !ok || !known {
					return nil, errors.New(errors.ErrCodeInvalidInput, "image of %v under %s is not in the domain", x, w)
				}
				m[i] = j
			}
			maps[k][s] = m
		}
	}
	return &FlatAction{group: G, n: n, maps: maps}, nil
}

func (f *FlatAction) Group() *fpgroup.Group { return f.group }

func (f *FlatAction) Domain() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := range f.n {
			if !yield(i) {
				return
			}
		}
	}
}

func (f *FlatAction) Size() int { return f.n }

func (f *FlatAction) Apply(x int, w fpgroup.Word) (int, bool) {
	if !f.IsDefinedOn(x) || !sameGroupAlphabet(f.group, w) {
		return 0, false
	}
	y := x
	for i := 0; i < w.Len(); i++ {
		s := 0
		if w.Sign(i) > 0 {
			s = 1
		}
		y = f.maps[w.Letter(i)-1][s][y]
	}
	return y, true
}

func (f *FlatAction) IsDefinedOn(x int) bool { return x >= 0 && x < f.n }

// Table returns the image of every point under each generator, one row per
// point and one column per generator.
func (f *FlatAction) Table() [][]int {
	t := make([][]int, f.n)
	for i := range t {
		t[i] = make([]int, len(f.maps))
		for k := range f.maps {
			t[i][k] = f.maps[k][1][i]
		}
	}
	return t
}
