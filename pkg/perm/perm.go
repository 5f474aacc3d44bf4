// Package perm provides small helpers for permutations of index sequences.
//
// Permutations are produced in lexicographic order, so the first one is the
// identity [0, 1, ..., n-1] and the last one is its reverse.
package perm

import (
	"iter"
	"slices"
)

// Seq returns a slice containing the sequence [0, 1, 2, ..., n-1].
//
// For n <= 0, Seq returns an empty slice.
func Seq(n int) []int {
	result := make([]int, max(n, 0))
	for i := range result {
		result[i] = i
	}
	return result
}

// Factorial returns n! (n factorial), the product 1 × 2 × ... × n.
// For n <= 1, Factorial returns 1.
//
// Factorials grow extremely fast: 21! already overflows int64.
func Factorial(n int) int {
	result := 1
	for i := 2; i <= n; i++ {
		result *= i
	}
	return result
}

// Next rearranges a into the lexicographically next permutation and
// reports whether there was one. When a is the last permutation it is left
// unchanged and Next returns false.
func Next(a []int) bool {
	n := len(a)
	i := n - 2
	for i >= 0 && a[i] >= a[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := n - 1
	for a[j] <= a[i] {
		j--
	}
	a[i], a[j] = a[j], a[i]
	slices.Reverse(a[i+1:])
	return true
}

// All yields every permutation of [0, 1, ..., n-1] in lexicographic order.
// The yielded slice is reused between iterations; clone it to keep it.
func All(n int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		a := Seq(n)
		for {
			if !yield(a) {
				return
			}
			if !Next(a) {
				return
			}
		}
	}
}

// Apply returns the elements of things in the order given by p.
func Apply[E any](p []int, things []E) []E {
	result := make([]E, len(p))
	for i, k := range p {
		result[i] = things[k]
	}
	return result
}
