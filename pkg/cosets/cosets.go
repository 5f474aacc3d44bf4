package cosets

import (
	"context"
	"io"
	"iter"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fpgroups/pkg/errors"
	"github.com/matzehuels/fpgroups/pkg/fpgroup"
	"github.com/matzehuels/fpgroups/pkg/partition"
)

// DefaultSizeLimit is the default bound on live table rows.
const DefaultSizeLimit = 100000

// rowsPerChunk is the number of rows allocated at once by the row arena.
const rowsPerChunk = 256

// ctxCheckInterval is the number of new rows between context checks.
const ctxCheckInterval = 1024

// Option configures coset enumeration.
type Option func(*config)

type config struct {
	sizeLimit int
	logger    *log.Logger
}

// WithSizeLimit bounds the number of live rows during construction.
// Zero or a negative value means no limit.
func WithSizeLimit(n int) Option {
	return func(c *config) { c.sizeLimit = n }
}

// WithLogger sets the logger for construction progress.
func WithLogger(l *log.Logger) Option {
	return func(c *config) { c.logger = l }
}

// Action is the action of a group on the cosets of a subgroup.
// It is immutable once built and safe for concurrent reads.
type Action struct {
	group     *fpgroup.Group
	subgens   []fpgroup.Word
	sizeLimit int

	idx2gen []fpgroup.Word
	table   [][]int
	reps    []fpgroup.Word
}

// Coset is a coset of an [Action], identified by its row in the table.
// Cosets compare equal when they belong to the same action and row.
type Coset struct {
	action *Action
	index  int
}

// Action returns the action the coset belongs to.
func (c Coset) Action() *Action { return c.action }

// Index returns the table row of the coset, counting from 1.
func (c Coset) Index() int { return c.index }

// Representative returns a shortest word leading from the trivial coset to c.
func (c Coset) Representative() fpgroup.Word {
	if c.action == nil {
		return fpgroup.Word{}
	}
	return c.action.reps[c.index]
}

// String returns the representative word.
func (c Coset) String() string {
	if c.action == nil {
		return "<nil>"
	}
	return c.Representative().String()
}

// New enumerates the cosets of the subgroup of G generated by subgens.
func New(G *fpgroup.Group, subgens []fpgroup.Word, opts ...Option) (*Action, error) {
	return Enumerate(context.Background(), G, subgens, opts...)
}

// Enumerate is like [New] but stops with a TIMEOUT error when ctx is done.
func Enumerate(ctx context.Context, G *fpgroup.Group, subgens []fpgroup.Word, opts ...Option) (*Action, error) {
	cfg := config{sizeLimit: DefaultSizeLimit}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	for _, w := range subgens {
		if !w.IsIdentity() && !fpgroup.SameAlphabet(G.Alphabet(), w.Alphabet()) {
			return nil, errors.New(errors.ErrCodeInvalidWord, "subgroup generator %s is not over %s", w, G.Alphabet())
		}
	}

	a := &Action{
		group:     G,
		subgens:   append([]fpgroup.Word(nil), subgens...),
		sizeLimit: cfg.sizeLimit,
	}
	e := newEnumerator(G, a.subgens, cfg)
	if err := e.run(ctx); err != nil {
		return nil, err
	}
	a.idx2gen = e.idx2gen
	a.table = e.table
	a.reps = e.representatives()
	cfg.logger.Debug("coset enumeration complete", "cosets", a.Size(), "rows", e.created)
	return a, nil
}

// Group returns the acting group.
func (a *Action) Group() *fpgroup.Group { return a.group }

// Size returns the number of cosets.
func (a *Action) Size() int { return len(a.table) - 1 }

// SizeLimit returns the row limit used during construction.
func (a *Action) SizeLimit() int { return a.sizeLimit }

// SubgroupGenerators returns the words generating the subgroup.
func (a *Action) SubgroupGenerators() []fpgroup.Word {
	return append([]fpgroup.Word(nil), a.subgens...)
}

// Domain yields the cosets 1..Size() in table order.
func (a *Action) Domain() iter.Seq[Coset] {
	return func(yield func(Coset) bool) {
		for i := 1; i < len(a.table); i++ {
			if !yield(Coset{a, i}) {
				return
			}
		}
	}
}

// IsDefinedOn reports whether c is a coset of this action.
func (a *Action) IsDefinedOn(c Coset) bool {
	return c.action == a && c.index >= 1 && c.index < len(a.table)
}

// Apply returns the coset c·w. The result is undefined when c belongs to
// another action or w uses letters outside the group's alphabet.
func (a *Action) Apply(c Coset, w fpgroup.Word) (Coset, bool) {
	if !a.IsDefinedOn(c) {
		return Coset{}, false
	}
	if !w.IsIdentity() && !fpgroup.SameAlphabet(a.group.Alphabet(), w.Alphabet()) {
		return Coset{}, false
	}
	current := c.index
	for i := 0; i < w.Len(); i++ {
		current = a.table[current][column(w.Entry(i))]
	}
	return Coset{a, current}, true
}

// TrivialCoset returns the coset of the subgroup itself.
func (a *Action) TrivialCoset() Coset { return Coset{a, 1} }

// Coset returns the coset containing w.
func (a *Action) Coset(w fpgroup.Word) (Coset, bool) {
	return a.Apply(a.TrivialCoset(), w)
}

// CosetOf parses s and returns the coset containing it.
func (a *Action) CosetOf(s string) (Coset, error) {
	w, err := a.group.Parse(s)
	if err != nil {
		return Coset{}, err
	}
	c, _ := a.Coset(w)
	return c, nil
}

// Representative returns the representative word of coset i.
func (a *Action) Representative(i int) (fpgroup.Word, bool) {
	if i < 1 || i >= len(a.table) {
		return fpgroup.Word{}, false
	}
	return a.reps[i], true
}

// Table returns a copy of the coset table. Row i-1 holds coset i; column 2k
// is generator k+1 and column 2k+1 its inverse.
func (a *Action) Table() [][]int {
	out := make([][]int, len(a.table)-1)
	for i := range out {
		out[i] = append([]int(nil), a.table[i+1]...)
	}
	return out
}

// column returns the table column of a signed letter.
func column(letter int) int {
	if letter > 0 {
		return 2 * (letter - 1)
	}
	return 2*(-letter-1) + 1
}

// inverseColumn maps a column to the column of the inverse generator.
func inverseColumn(j int) int { return j ^ 1 }

// =============================================================================
// Enumeration
// =============================================================================

// rowArena hands out fixed-width rows carved from larger chunks.
type rowArena struct {
	width int
	chunk []int
}

func (r *rowArena) alloc() []int {
	if len(r.chunk) < r.width {
		r.chunk = make([]int, r.width*rowsPerChunk)
	}
	row := r.chunk[:r.width:r.width]
	r.chunk = r.chunk[r.width:]
	return row
}

type pair struct{ a, b int }

type enumerator struct {
	cfg     config
	alpha   fpgroup.Alphabet
	ngens   int
	idx2gen []fpgroup.Word
	rels    [][]int
	subgens [][]int
	arena   rowArena
	table   [][]int
	created int
}

func newEnumerator(G *fpgroup.Group, subgens []fpgroup.Word, cfg config) *enumerator {
	ngens := 2 * G.NumGenerators()
	e := &enumerator{
		cfg:   cfg,
		alpha: G.Alphabet(),
		ngens: ngens,
		arena: rowArena{width: ngens},
	}
	for _, g := range G.Generators() {
		e.idx2gen = append(e.idx2gen, g, g.Inverse())
	}
	for _, r := range G.Relators() {
		for i := 0; i < r.Len(); i++ {
			w := r.Rotation(i)
			e.rels = append(e.rels, translate(w), translate(w.Inverse()))
		}
	}
	for _, g := range subgens {
		e.subgens = append(e.subgens, translate(g), translate(g.Inverse()))
	}
	return e
}

func translate(w fpgroup.Word) []int {
	out := make([]int, w.Len())
	for i := range out {
		out[i] = column(w.Entry(i))
	}
	return out
}

func (e *enumerator) run(ctx context.Context) error {
	e.table = [][]int{e.arena.alloc(), e.arena.alloc()}
	P := partition.New[int]()
	invalid := 0

	for i := 1; i < len(e.table); i++ {
		if P.Find(i) != i {
			continue
		}
		// The row is fixed for the whole scan even if i is merged away meanwhile.
		row := e.table[i]
		for j := 0; j < e.ngens; j++ {
			if row[j] != 0 {
				continue
			}
			if e.created%ctxCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					return errors.Wrap(errors.ErrCodeTimeout, err, "coset enumeration interrupted")
				}
			}

			newRow := e.arena.alloc()
			e.table = append(e.table, newRow)
			e.created++
			n := len(e.table)
			row[j] = n - 1
			newRow[inverseColumn(j)] = i

			var identify []pair
			for _, rel := range e.rels {
				identify = e.scanRelation(rel, n-1, identify)
			}
			one := P.Find(1)
			for _, gen := range e.subgens {
				identify = e.scanRelation(gen, one, identify)
			}

			invalid += e.performIdentifications(identify, P)

			if e.cfg.sizeLimit > 0 && n-invalid > e.cfg.sizeLimit {
				return errors.New(errors.ErrCodeSizeLimit, "table limit reached: more than %d rows", e.cfg.sizeLimit)
			}
			if invalid > n/2 {
				old2new := e.compress(P)
				P = partition.New[int]()
				i = old2new[i]
				invalid = 0
				e.cfg.logger.Debug("compressed coset table", "rows", len(e.table)-1, "created", e.created)
			}
		}
	}

	e.compress(P)
	return nil
}

// scanRelation traces rel from start forwards and backwards. A single gap
// left between both ends is filled in; crossing ends at different rows are
// queued for identification.
func (e *enumerator) scanRelation(rel []int, start int, identify []pair) []pair {
	head, headPos := start, 0
	for ; headPos < len(rel); headPos++ {
		next := e.table[head][rel[headPos]]
		if next == 0 {
			break
		}
		head = next
	}

	tail, tailPos := start, len(rel)-1
	for ; tailPos >= headPos; tailPos-- {
		next := e.table[tail][inverseColumn(rel[tailPos])]
		if next == 0 {
			break
		}
		tail = next
	}

	if tailPos == headPos {
		g := rel[headPos]
		e.table[head][g] = tail
		e.table[tail][inverseColumn(g)] = head
	} else if tailPos < headPos && head != tail {
		identify = append(identify, pair{head, tail})
	}
	return identify
}

// performIdentifications merges queued pairs of rows and every pair of rows
// the merges force together. Merged rows share one row slice. It returns the
// number of merges.
func (e *enumerator) performIdentifications(queue []pair, P *partition.Partition[int]) int {
	count := 0
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		a, b := P.Find(p.a), P.Find(p.b)
		if a == b {
			continue
		}
		P.Unite(a, b)
		count++

		rowA, rowB := e.table[a], e.table[b]
		for g := 0; g < e.ngens; g++ {
			ag, bg := rowA[g], rowB[g]
			switch {
			case ag == 0:
				rowA[g] = bg
			case bg == 0:
				rowB[g] = ag
			case !P.AreEquivalent(ag, bg):
				queue = append(queue, pair{ag, bg})
			}
		}
		e.table[b] = rowA
	}
	return count
}

// compress keeps the first row of each class, renumbers all entries and
// returns the map from old to new row numbers.
func (e *enumerator) compress(P *partition.Partition[int]) []int {
	old2new := make([]int, len(e.table))
	kept := [][]int{e.table[0]}
	for i := 1; i < len(e.table); i++ {
		ri := P.Find(i)
		if old2new[ri] == 0 {
			old2new[ri] = len(kept)
			kept = append(kept, e.table[ri])
		}
		old2new[i] = old2new[ri]
	}
	e.table = kept
	for i := 1; i < len(e.table); i++ {
		row := e.table[i]
		for j := range row {
			row[j] = old2new[row[j]]
		}
	}
	return old2new
}

// representatives assigns each coset a shortest word by breadth-first search from coset 1.
func (e *enumerator) representatives() []fpgroup.Word {
	n := len(e.table) - 1
	reps := make([]fpgroup.Word, n+1)
	known := make([]bool, n+1)
	if n < 1 {
		return reps
	}
	reps[1] = fpgroup.Identity(e.alpha)
	known[1] = true
	queue := []int{1}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		for col, next := range e.table[i] {
			if !known[next] {
				known[next] = true
				reps[next] = reps[i].Times(e.idx2gen[col])
				queue = append(queue, next)
			}
		}
	}
	return reps
}
