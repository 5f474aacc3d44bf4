package action

import (
	"github.com/emirpasic/gods/sets/treeset"

	"github.com/matzehuels/fpgroups/pkg/errors"
	"github.com/matzehuels/fpgroups/pkg/fpgroup"
)

// DefaultMaxLabelLength bounds the length of words assigned to Schreier
// graph edges while closing relations.
const DefaultMaxLabelLength = 10

// StabilizerOption configures [NewStabilizer].
type StabilizerOption func(*stabilizerConfig)

type stabilizerConfig struct {
	maxLabelLength int
}

// WithMaxLabelLength sets the longest word that may label an edge. Smaller
// values give more generators with shorter relators; larger values give
// fewer generators with longer relators.
func WithMaxLabelLength(n int) StabilizerOption {
	return func(c *stabilizerConfig) { c.maxLabelLength = n }
}

// Edge is a directed edge of the Schreier graph: a point and a signed
// generator letter.
type Edge[E comparable] struct {
	Point  E
	Letter int
}

// Stabilizer holds generators and a presentation of the subgroup fixing a point.
type Stabilizer[E comparable] struct {
	action    GroupAction[E]
	basepoint E
	maxLabel  int

	byStart    map[int][]fpgroup.Word
	genWords   map[int]fpgroup.Word
	labels     map[Edge[E]]fpgroup.Word
	generators []fpgroup.Word
	pres       *fpgroup.Group
}

// NewStabilizer computes the stabilizer of basepoint under a.
func NewStabilizer[E comparable](a GroupAction[E], basepoint E, opts ...StabilizerOption) (*Stabilizer[E], error) {
	if !a.IsDefinedOn(basepoint) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "illegal basepoint %v for action", basepoint)
	}
	cfg := stabilizerConfig{maxLabelLength: DefaultMaxLabelLength}
	for _, opt := range opts {
		opt(&cfg)
	}
	s := &Stabilizer[E]{
		action:    a,
		basepoint: basepoint,
		maxLabel:  cfg.maxLabelLength,
		labels:    make(map[Edge[E]]fpgroup.Word),
	}
	if err := s.compute(); err != nil {
		return nil, err
	}
	return s, nil
}

// Action returns the underlying action.
func (s *Stabilizer[E]) Action() GroupAction[E] { return s.action }

// Basepoint returns the stabilized point.
func (s *Stabilizer[E]) Basepoint() E { return s.basepoint }

// Generators returns words of the acting group that generate the stabilizer.
func (s *Stabilizer[E]) Generators() []fpgroup.Word {
	out := make([]fpgroup.Word, len(s.generators))
	copy(out, s.generators)
	return out
}

// Presentation returns a presentation of the stabilizer over s_1, s_2, ...
// where s_i stands for the i-th entry of [Stabilizer.Generators].
func (s *Stabilizer[E]) Presentation() *fpgroup.Group { return s.pres }

// EdgeLabels returns the word over the presentation's alphabet assigned to
// each edge of the Schreier graph.
func (s *Stabilizer[E]) EdgeLabels() map[Edge[E]]fpgroup.Word {
	out := make(map[Edge[E]]fpgroup.Word, len(s.labels))
	for e, w := range s.labels {
		out[e] = w
	}
	return out
}

func (s *Stabilizer[E]) compute() error {
	G := s.action.Group()
	gens := generatorWords(G)
	s.genWords = make(map[int]fpgroup.Word, len(gens))
	for _, g := range gens {
		s.genWords[g.Entry(0)] = g
	}
	s.preprocessRelators(G)

	A := fpgroup.NewPrefixAlphabet("s_")
	id := fpgroup.Identity(A)
	point2word := map[E]fpgroup.Word{s.basepoint: G.Identity()}
	queue := []E{s.basepoint}

	// Spanning tree: tree edges carry the identity.
	for len(queue) > 0 {
		x := queue[0]
		queue = queue[1:]
		w := point2word[x]
		for _, g := range gens {
			y, ok := s.action.Apply(x, g)
			if !ok {
				return errors.New(errors.ErrCodeInvalidInput, "action undefined at %v under %s", x, g)
			}
			if _, seen := point2word[y]; seen {
				continue
			}
			s.labels[Edge[E]{x, g.Entry(0)}] = id
			s.labels[Edge[E]{y, -g.Entry(0)}] = id
			queue = append(queue, y)
			point2word[y] = w.Times(g)
			s.closeRelations(y, -g.Entry(0))
		}
	}

	// Every edge still unlabelled yields a new generator.
	for x := range s.action.Domain() {
		wx, ok := point2word[x]
		if !ok {
			return errors.New(errors.ErrCodeInvalidInput, "action is not transitive: %v is not reachable from %v", x, s.basepoint)
		}
		for _, g := range gens {
			edge := Edge[E]{x, g.Entry(0)}
			if _, done := s.labels[edge]; done {
				continue
			}
			y, _ := s.action.Apply(x, g)
			wy := point2word[y]
			label := fpgroup.MustWord(A, len(s.generators)+1)
			s.labels[edge] = label
			s.labels[Edge[E]{y, -g.Entry(0)}] = label.Inverse()
			s.generators = append(s.generators, wx.Times(g).Times(wy.Inverse()))
			s.closeRelations(x, g.Entry(0))
			s.closeRelations(y, -g.Entry(0))
		}
	}

	B := fpgroup.NewNumberedAlphabet("s_", len(s.generators))
	for e, w := range s.labels {
		s.labels[e] = fpgroup.MustWord(B, w.Letters()...)
	}

	var relators []fpgroup.Word
	for x := range s.action.Domain() {
		for _, r := range G.Relators() {
			if t, ok := s.traceWord(x, r); ok {
				relators = append(relators, t)
			}
		}
	}
	pres, err := fpgroup.NewGroup(B, relators...)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "stabilizer presentation")
	}
	s.pres = pres
	return nil
}

// preprocessRelators sorts all cyclic rotations of the relators and their
// inverses into bins by first letter.
func (s *Stabilizer[E]) preprocessRelators(G *fpgroup.Group) {
	sets := make(map[int]*treeset.Set)
	for _, rel := range G.Relators() {
		for _, w := range []fpgroup.Word{rel.Inverse(), rel} {
			for i := 0; i < w.Len(); i++ {
				v := w.Rotation(i)
				if v.IsIdentity() {
					continue
				}
				set, ok := sets[v.Entry(0)]
				if !ok {
					set = treeset.NewWith(func(a, b interface{}) int {
						return a.(fpgroup.Word).Compare(b.(fpgroup.Word))
					})
					sets[v.Entry(0)] = set
				}
				set.Add(v)
			}
		}
	}
	s.byStart = make(map[int][]fpgroup.Word, len(sets))
	for g, set := range sets {
		for _, v := range set.Values() {
			s.byStart[g] = append(s.byStart[g], v.(fpgroup.Word))
		}
	}
}

// closeRelations labels edges that complete a relator cycle with exactly
// one unlabelled edge, starting from the given edge and following every
// newly labelled edge in turn. A cycle is left open when its label would
// be longer than the configured maximum.
func (s *Stabilizer[E]) closeRelations(start E, startGen int) {
	queue := []Edge[E]{{start, startGen}}
	seen := make(map[Edge[E]]struct{})

	for len(queue) > 0 {
		edge := queue[0]
		queue = queue[1:]
		if _, ok := seen[edge]; ok {
			continue
		}
		seen[edge] = struct{}{}

		for _, r := range s.byStart[edge.Letter] {
			n := r.Len()
			y := edge.Point
			var cut *Edge[E]
			cutIndex := 0
			for i := 0; i < n; i++ {
				next := Edge[E]{y, r.Entry(i)}
				if _, ok := s.labels[next]; !ok {
					if cut != nil {
						cut = nil
						break
					}
					cut = &next
					cutIndex = i
				}
				y, _ = s.action.Apply(y, s.genWords[r.Entry(i)])
			}
			if cut == nil {
				continue
			}

			h := cut.Letter
			z, _ := s.action.Apply(cut.Point, s.genWords[h])
			w := r.Rotation(cutIndex).Inverse()
			trace, ok := s.traceWord(cut.Point, w)
			if ok && trace.Len() <= s.maxLabel {
				s.labels[*cut] = trace
				s.labels[Edge[E]{z, -h}] = trace.Inverse()
				queue = append(queue, *cut)
			}
		}
	}
}

// traceWord multiplies the labels along the path of w from x. Unlabelled
// edges are skipped; the result is false if no edge was labelled.
func (s *Stabilizer[E]) traceWord(x E, w fpgroup.Word) (fpgroup.Word, bool) {
	var res fpgroup.Word
	found := false
	y := x
	for i := 0; i < w.Len(); i++ {
		g := w.Entry(i)
		if label, ok := s.labels[Edge[E]{y, g}]; ok {
			if found {
				res = res.Times(label)
			} else {
				res, found = label, true
			}
		}
		y, _ = s.action.Apply(y, s.genWords[g])
	}
	return res, found
}
