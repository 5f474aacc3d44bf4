// Package partition implements a disjoint-set (union-find) structure over
// arbitrary comparable elements.
//
// Elements are stored in an index-based arena: each element gets a slot the
// first time it takes part in a [Partition.Unite], and parent links and ranks
// are kept in parallel slices. Find applies full path compression. Unite
// attaches the root with the smaller accumulated rank below the other one;
// on a tie the root of the first argument stays the representative, which
// makes the choice of representatives deterministic for a fixed sequence of
// calls.
//
// Elements that were never united with anything are their own class and
// are not stored at all.
//
// A Partition is not safe for concurrent use.
package partition

// Partition is a union-find structure over values of type T.
type Partition[T comparable] struct {
	index  map[T]int
	values []T
	parent []int // -1 for roots
	rank   []int
}

// New returns an empty partition.
func New[T comparable]() *Partition[T] {
	return &Partition[T]{index: make(map[T]int)}
}

// Len returns the number of elements stored in the partition.
func (p *Partition[T]) Len() int {
	return len(p.values)
}

// root returns the arena slot of the representative of slot x,
// compressing the path on the way.
func (p *Partition[T]) root(x int) int {
	r := x
	for p.parent[r] >= 0 {
		r = p.parent[r]
	}
	for p.parent[x] >= 0 {
		next := p.parent[x]
		p.parent[x] = r
		x = next
	}
	return r
}

// slot returns the representative slot for a, adding a as a singleton if needed.
func (p *Partition[T]) slot(a T) int {
	if i, ok := p.index[a]; ok {
		return p.root(i)
	}
	i := len(p.values)
	p.index[a] = i
	p.values = append(p.values, a)
	p.parent = append(p.parent, -1)
	p.rank = append(p.rank, 0)
	return i
}

// Find returns the representative of the class containing a.
func (p *Partition[T]) Find(a T) T {
	i, ok := p.index[a]
	if !ok {
		return a
	}
	return p.values[p.root(i)]
}

// AreEquivalent reports whether a and b are in the same class.
func (p *Partition[T]) AreEquivalent(a, b T) bool {
	return p.Find(a) == p.Find(b)
}

// Unite merges the classes of a and b.
func (p *Partition[T]) Unite(a, b T) {
	i := p.slot(a)
	j := p.slot(b)
	if i == j {
		return
	}
	if p.rank[j] > p.rank[i] {
		i, j = j, i
	}
	p.parent[j] = i
	p.rank[i] += p.rank[j] + 1
	p.rank[j] = 0
}

// RepresentativeMap maps every stored element to its representative.
func (p *Partition[T]) RepresentativeMap() map[T]T {
	result := make(map[T]T, len(p.values))
	for i, a := range p.values {
		result[a] = p.values[p.root(i)]
	}
	return result
}

// Classes returns the non-trivial classes in order of first insertion.
// Members of a class are listed in insertion order as well.
func (p *Partition[T]) Classes() [][]T {
	pos := make(map[int]int)
	var classes [][]T
	for i, a := range p.values {
		r := p.root(i)
		k, ok := pos[r]
		if !ok {
			k = len(classes)
			pos[r] = k
			classes = append(classes, nil)
		}
		classes[k] = append(classes[k], a)
	}
	return classes
}
