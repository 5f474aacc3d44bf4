package fpgroup

import (
	"math/big"
	"slices"
)

// RelatorMatrix returns the relation matrix of the abelianised group: one
// row per relator, one column per generator, each entry the signed number
// of occurrences of the generator in the relator.
func (G *Group) RelatorMatrix() [][]int64 {
	ngens := G.alphabet.Size()
	M := make([][]int64, len(G.relators))
	for i, r := range G.relators {
		M[i] = make([]int64, ngens)
		for _, x := range r.data {
			if x > 0 {
				M[i][x-1]++
			} else {
				M[i][-x-1]--
			}
		}
	}
	return M
}

// AbelianInvariants returns the invariants of the abelianised group in
// ascending order. Each zero stands for a free cyclic factor and each
// entry k > 1 for a cyclic factor of order k; successive torsion entries
// divide each other. The trivial group has no invariants.
func (G *Group) AbelianInvariants() []*big.Int {
	ngens := G.alphabet.Size()
	rows := G.RelatorMatrix()
	M := make([][]*big.Int, len(rows))
	for i, row := range rows {
		M[i] = make([]*big.Int, ngens)
		for j, v := range row {
			M[i][j] = big.NewInt(v)
		}
	}

	n := diagonalize(M, ngens)

	divs := make([]*big.Int, n)
	for i := range divs {
		divs[i] = new(big.Int).Abs(M[i][i])
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a, b := divs[i], divs[j]
			if a.Sign() == 0 || new(big.Int).Rem(b, a).Sign() == 0 {
				continue
			}
			g := new(big.Int).GCD(nil, nil, a, b)
			l := new(big.Int).Quo(a, g)
			l.Mul(l, b)
			divs[i], divs[j] = g, l
		}
	}

	result := make([]*big.Int, 0, ngens)
	one := big.NewInt(1)
	for _, d := range divs {
		if d.Cmp(one) != 0 {
			result = append(result, d)
		}
	}
	for i := n; i < ngens; i++ {
		result = append(result, new(big.Int))
	}
	slices.SortFunc(result, func(a, b *big.Int) int { return a.Cmp(b) })
	return result
}

// diagonalize brings M into diagonal form by unimodular row and column
// operations and returns the number of nonzero diagonal entries, which
// occupy the leading positions.
func diagonalize(M [][]*big.Int, ncols int) int {
	nrows := len(M)
	for i := 0; i < nrows && i < ncols; i++ {
		pr, pc := -1, -1
		var best big.Int
		for r := i; r < nrows; r++ {
			for c := i; c < ncols; c++ {
				if M[r][c].Sign() == 0 {
					continue
				}
				if pr < 0 || best.CmpAbs(M[r][c]) > 0 {
					pr, pc = r, c
					best.Set(M[r][c])
				}
			}
		}
		if pr < 0 {
			return i
		}
		M[i], M[pr] = M[pr], M[i]
		for r := range M {
			M[r][i], M[r][pc] = M[r][pc], M[r][i]
		}
		if M[i][i].Sign() < 0 {
			for c := i; c < ncols; c++ {
				M[i][c].Neg(M[i][c])
			}
		}

		for done := false; !done; {
			done = true

			for j := i + 1; j < nrows; j++ {
				e, f := M[i][i], M[j][i]
				if f.Sign() == 0 {
					continue
				}
				if new(big.Int).Rem(f, e).Sign() == 0 {
					x := new(big.Int).Quo(f, e)
					for c := i; c < ncols; c++ {
						M[j][c].Sub(M[j][c], new(big.Int).Mul(x, M[i][c]))
					}
					continue
				}
				_, a, b, c, d := gcdex(e, f)
				for k := i; k < ncols; k++ {
					u, v := M[i][k], M[j][k]
					M[i][k] = combine(a, u, b, v)
					M[j][k] = combine(c, u, d, v)
				}
			}

			for j := i + 1; j < ncols; j++ {
				e, f := M[i][i], M[i][j]
				if f.Sign() == 0 {
					continue
				}
				if new(big.Int).Rem(f, e).Sign() == 0 {
					x := new(big.Int).Quo(f, e)
					for r := i; r < nrows; r++ {
						M[r][j].Sub(M[r][j], new(big.Int).Mul(x, M[r][i]))
					}
					continue
				}
				_, a, b, c, d := gcdex(e, f)
				for r := i; r < nrows; r++ {
					u, v := M[r][i], M[r][j]
					M[r][i] = combine(a, u, b, v)
					M[r][j] = combine(c, u, d, v)
				}
				done = false
				break
			}
		}
	}
	return min(nrows, ncols)
}

// combine returns a*u + b*v as a fresh value.
func combine(a, u, b, v *big.Int) *big.Int {
	x := new(big.Int).Mul(a, u)
	return x.Add(x, new(big.Int).Mul(b, v))
}

// gcdex returns g = gcd(m, n) >= 0 together with a unimodular matrix
// [a b; c d] such that a*m + b*n = g and c*m + d*n = 0.
func gcdex(m, n *big.Int) (g, a, b, c, d *big.Int) {
	g, a, b = new(big.Int), new(big.Int), new(big.Int)
	g.GCD(a, b, m, n)
	if g.Sign() == 0 {
		return g, big.NewInt(1), new(big.Int), new(big.Int), big.NewInt(1)
	}
	c = new(big.Int).Quo(n, g)
	c.Neg(c)
	d = new(big.Int).Quo(m, g)
	return g, a, b, c, d
}
