package smallactions

import (
	"context"
	"io"
	"iter"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fpgroups/pkg/errors"
	"github.com/matzehuels/fpgroups/pkg/fpgroup"
)

// Option configures an [Iterator].
type Option func(*config)

// ctxCheckInterval is the number of moves between context checks.
const ctxCheckInterval = 256

type config struct {
	maxChoices int64
	logger     *log.Logger
	ctx        context.Context
}

// WithMaxChoices bounds the number of moves the search may make. Zero or a
// negative value means no limit.
func WithMaxChoices(n int64) Option {
	return func(c *config) { c.maxChoices = n }
}

// WithContext stops the search with a TIMEOUT error once ctx is done.
// Without it the search runs until it is exhausted or hits a limit.
func WithContext(ctx context.Context) Option {
	return func(c *config) { c.ctx = ctx }
}

// WithLogger sets the logger for search progress.
func WithLogger(l *log.Logger) Option {
	return func(c *config) { c.logger = l }
}

// move fills table[row][column] with value. Choices are branch points of
// the search; everything else was deduced from the choice before it.
type move struct {
	row, column, value int
	startsRow          bool
	isChoice           bool
}

// Iterator enumerates canonical transitive actions of a group. It is not
// safe for concurrent use.
type Iterator struct {
	group      *fpgroup.Group
	maxSize    int
	normalOnly bool
	cfg        config

	ngens     int
	relByCol  [][][]int
	table     [][]int
	stack     []move
	rows      int
	choices   int64
	startTime time.Time
	found     int

	current *Action
	err     error
	done    bool
	trivial bool
}

// New prepares the enumeration of transitive actions of G on at most
// maxSize points. With normalOnly set, only actions on the cosets of normal
// subgroups are produced.
func New(G *fpgroup.Group, maxSize int, normalOnly bool, opts ...Option) (*Iterator, error) {
	if G == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "group is nil")
	}
	if maxSize < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "maximal size must be positive, got %d", maxSize)
	}
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	ngens := 2 * G.NumGenerators()
	it := &Iterator{
		group:      G,
		maxSize:    maxSize,
		normalOnly: normalOnly,
		cfg:        cfg,
		ngens:      ngens,
		relByCol:   make([][][]int, ngens),
		table:      make([][]int, maxSize+1),
		rows:       1,
		startTime:  time.Now(),
		trivial:    ngens == 0,
	}
	for _, rel := range G.Relators() {
		for _, r := range []fpgroup.Word{rel, rel.Inverse()} {
			for i := 0; i < r.Len(); i++ {
				w := r.Rotation(i)
				if w.IsIdentity() {
					continue
				}
				k := column(w.Entry(0))
				it.relByCol[k] = append(it.relByCol[k], translate(w))
			}
		}
	}
	cells := make([]int, (maxSize+1)*ngens)
	for i := range it.table {
		it.table[i] = cells[i*ngens : (i+1)*ngens : (i+1)*ngens]
	}
	if ngens > 0 {
		it.stack = append(it.stack, move{row: 1, isChoice: true})
	}
	return it, nil
}

// Next advances to the next action. It returns false when the search is
// exhausted or has failed; [Iterator.Err] tells both cases apart.
func (it *Iterator) Next() bool {
	if it.done {
		return false
	}
	a, err := it.findNext()
	if err != nil || a == nil {
		it.done = true
		it.err = err
		it.current = nil
		it.cfg.logger.Debug("small actions search finished",
			"found", it.found, "choices", it.choices, "elapsed", it.Elapsed(), "err", err)
		return false
	}
	it.found++
	it.current = a
	it.cfg.logger.Debug("found action", "size", a.Size(), "choices", it.choices)
	return true
}

// Action returns the action found by the last successful call to Next.
func (it *Iterator) Action() *Action { return it.current }

// Err returns the error that stopped the search, or nil after normal
// exhaustion.
func (it *Iterator) Err() error { return it.err }

// All returns the remaining actions as a sequence. Check [Iterator.Err]
// once the sequence ends.
func (it *Iterator) All() iter.Seq[*Action] {
	return func(yield func(*Action) bool) {
		for it.Next() {
			if !yield(it.current) {
				return
			}
		}
	}
}

// Collect drains the iterator. On error the actions found so far are
// returned along with it.
func (it *Iterator) Collect() ([]*Action, error) {
	var out []*Action
	for a := range it.All() {
		out = append(out, a)
	}
	return out, it.err
}

// ChoicesSoFar returns the number of moves made.
func (it *Iterator) ChoicesSoFar() int64 { return it.choices }

// Elapsed returns the time since the iterator was created.
func (it *Iterator) Elapsed() time.Duration { return time.Since(it.startTime) }

// =============================================================================
// Search
// =============================================================================

func (it *Iterator) findNext() (*Action, error) {
	if it.trivial {
		it.trivial = false
		return it.constructAction(), nil
	}
	for {
		choice, ok := it.undoLastChoice()
		if !ok {
			return nil, nil
		}
		invCol := inverseColumn(choice.column)
		next := choice.value + 1
		for next <= it.rows && it.table[next][invCol] != 0 {
			next++
		}
		if next > it.rows && (choice.startsRow || next > it.maxSize) {
			continue
		}

		ok, err := it.performMove(choice.row, choice.column, next)
		if err != nil {
			return nil, err
		}
		if !ok || !it.isCanonical() {
			continue
		}
		if it.findNextChoice(choice.row, choice.column) {
			continue
		}
		if !it.normalOnly || it.isNormal() {
			return it.constructAction(), nil
		}
	}
}

// performMove fills an entry and everything it forces. It returns false if
// the relators force two different rows together.
func (it *Iterator) performMove(row, col, value int) (bool, error) {
	it.choices++
	if it.cfg.maxChoices > 0 && it.choices >= it.cfg.maxChoices {
		return false, errors.New(errors.ErrCodeChoiceLimit, "too many choices made: limit is %d", it.cfg.maxChoices)
	}
	if it.cfg.ctx != nil && (it.choices-1)%ctxCheckInterval == 0 {
		if err := it.cfg.ctx.Err(); err != nil {
			return false, errors.Wrap(errors.ErrCodeTimeout, err, "small actions search interrupted after %d choices", it.choices)
		}
	}

	queue := []move{{row, col, value, value > it.rows, true}}
	for len(queue) > 0 {
		m := queue[0]
		queue = queue[1:]
		it.stack = append(it.stack, m)
		it.table[m.row][m.column] = m.value
		it.table[m.value][inverseColumn(m.column)] = m.row
		if m.startsRow {
			it.rows++
		}
		for _, rel := range it.relByCol[m.column] {
			next, found := it.scanRelation(rel, m.row)
			switch {
			case !found:
			case next.isChoice:
				return false, nil
			default:
				queue = append(queue, next)
			}
		}
	}
	return true, nil
}

// scanRelation traces rel from start in both directions. A single gap
// gives a deduction; ends that meet at different rows give a contradiction,
// reported as a choice move.
func (it *Iterator) scanRelation(rel []int, start int) (move, bool) {
	head, headPos := start, 0
	for ; headPos < len(rel); headPos++ {
		next := it.table[head][rel[headPos]]
		if next == 0 {
			break
		}
		head = next
	}

	tail, tailPos := start, len(rel)-1
	for ; tailPos >= headPos; tailPos-- {
		next := it.table[tail][inverseColumn(rel[tailPos])]
		if next == 0 {
			break
		}
		tail = next
	}

	switch {
	case tailPos == headPos:
		return move{row: head, column: rel[headPos], value: tail}, true
	case tailPos < headPos && head != tail:
		return move{row: head, value: tail, isChoice: true}, true
	}
	return move{}, false
}

func (it *Iterator) undoLastChoice() (move, bool) {
	for len(it.stack) > 0 {
		last := it.stack[len(it.stack)-1]
		it.stack = it.stack[:len(it.stack)-1]
		it.table[last.row][last.column] = 0
		it.table[last.value][inverseColumn(last.column)] = 0
		if last.startsRow {
			it.rows--
		}
		if last.isChoice {
			return last, true
		}
	}
	return move{}, false
}

// findNextChoice pushes a placeholder for the first empty entry after
// (row, col) in row-major order. It returns false if the table is full.
func (it *Iterator) findNextChoice(row, col int) bool {
	for {
		col++
		if col >= it.ngens {
			col = 0
			row++
			if row > it.rows {
				return false
			}
		}
		if it.table[row][col] == 0 {
			it.stack = append(it.stack, move{row: row, column: col, isChoice: true})
			return true
		}
	}
}

func (it *Iterator) isCanonical() bool {
	for start := 2; start <= it.rows; start++ {
		if compareStart(it.table, it.rows, it.ngens, start) < 0 {
			return false
		}
	}
	return true
}

func (it *Iterator) isNormal() bool {
	for start := 2; start <= it.rows; start++ {
		if compareStart(it.table, it.rows, it.ngens, start) != 0 {
			return false
		}
	}
	return true
}

func (it *Iterator) constructAction() *Action {
	n := it.rows
	table := make([][]int, n+1)
	for i := range table {
		table[i] = slices.Clone(it.table[i])
	}
	return &Action{group: it.group, ngens: it.ngens, table: table}
}

// compareStart relabels the first n rows of table by breadth-first search
// from start and compares the result with the table as it is. A negative
// result means the relabelled table is smaller. Empty entries sort last.
func compareStart(table [][]int, n, ngens, start int) int {
	old2new := make([]int, n+1)
	new2old := make([]int, n+1)
	seen := 1
	old2new[start] = 1
	new2old[1] = start

	for row := 1; row <= n; row++ {
		if row > seen {
			panic("smallactions: the current action is not transitive")
		}
		for col := 0; col < ngens; col++ {
			oldVal := table[row][col]
			newVal := table[new2old[row]][col]
			if newVal != 0 && old2new[newVal] == 0 {
				seen++
				old2new[newVal] = seen
				new2old[seen] = newVal
			}
			newVal = old2new[newVal]
			if newVal != oldVal {
				switch {
				case oldVal == 0:
					return -1
				case newVal == 0:
					return 1
				default:
					return newVal - oldVal
				}
			}
		}
	}
	return 0
}

func column(letter int) int {
	if letter > 0 {
		return 2 * (letter - 1)
	}
	return 2*(-letter-1) + 1
}

func inverseColumn(j int) int { return j ^ 1 }

func translate(w fpgroup.Word) []int {
	out := make([]int, w.Len())
	for i := range out {
		out[i] = column(w.Entry(i))
	}
	return out
}

// =============================================================================
// Actions
// =============================================================================

// Action is a transitive action of a group on the points 1..Size(). It owns
// its table and is safe for concurrent reads.
type Action struct {
	group *fpgroup.Group
	ngens int
	table [][]int
}

// Group returns the acting group.
func (a *Action) Group() *fpgroup.Group { return a.group }

// Domain yields the points 1..Size() in order.
func (a *Action) Domain() iter.Seq[int] {
	return func(yield func(int) bool) {
		for x := 1; x < len(a.table); x++ {
			if !yield(x) {
				return
			}
		}
	}
}

// Size returns the degree of the action.
func (a *Action) Size() int { return len(a.table) - 1 }

// IsDefinedOn reports whether x is one of the points.
func (a *Action) IsDefinedOn(x int) bool { return x >= 1 && x < len(a.table) }

// Apply returns the image of x under w, letter by letter from the left.
// It returns false for a point outside the domain or a word over another
// alphabet.
func (a *Action) Apply(x int, w fpgroup.Word) (int, bool) {
	if !a.IsDefinedOn(x) {
		return 0, false
	}
	if !w.IsIdentity() && !fpgroup.SameAlphabet(a.group.Alphabet(), w.Alphabet()) {
		return 0, false
	}
	for i := 0; i < w.Len(); i++ {
		x = a.table[x][column(w.Entry(i))]
	}
	return x, true
}

// Table returns a copy of the action table. Row i-1 holds point i; column
// 2k is generator k+1 and column 2k+1 its inverse.
func (a *Action) Table() [][]int {
	out := make([][]int, a.Size())
	for i := range out {
		out[i] = slices.Clone(a.table[i+1])
	}
	return out
}

// IsTransitive reports whether every point is reachable from point 1.
func (a *Action) IsTransitive() bool {
	n := a.Size()
	if n == 0 {
		return false
	}
	seen := make([]bool, n+1)
	seen[1] = true
	queue := []int{1}
	count := 1
	for len(queue) > 0 {
		x := queue[0]
		queue = queue[1:]
		for _, y := range a.table[x] {
			if y >= 1 && y <= n && !seen[y] {
				seen[y] = true
				count++
				queue = append(queue, y)
			}
		}
	}
	return count == n
}

// IsNormal reports whether the point stabilizers are normal subgroups, that
// is whether relabelling from any point reproduces the same table.
func (a *Action) IsNormal() bool {
	n := a.Size()
	for start := 2; start <= n; start++ {
		if compareStart(a.table, n, a.ngens, start) != 0 {
			return false
		}
	}
	return true
}
