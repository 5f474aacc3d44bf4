package fpgroup

import (
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/fpgroups/pkg/errors"
)

// Alphabet is a bijection between letters (positive integers) and generator names.
// The value 0 is never a letter.
type Alphabet interface {
	// LetterToName returns the name of letter i, or false if i is not a letter.
	LetterToName(i int) (string, bool)

	// NameToLetter returns the letter with the given name.
	NameToLetter(name string) (int, error)

	String() string
}

// FiniteAlphabet is an alphabet with a fixed, ordered list of names.
// Letter i is named by the i-th entry of the list, counting from 1.
type FiniteAlphabet struct {
	names []string
	index map[string]int
}

// NewFiniteAlphabet creates an alphabet from a list of distinct, non-empty names.
func NewFiniteAlphabet(names ...string) (*FiniteAlphabet, error) {
	index := make(map[string]int, len(names))
	for i, name := range names {
		if name == "" {
			return nil, errors.New(errors.ErrCodeInvalidAlphabet, "empty generator name at position %d", i+1)
		}
		if _, dup := index[name]; dup {
			return nil, errors.New(errors.ErrCodeInvalidAlphabet, "duplicate generator name %q", name)
		}
		index[name] = i + 1
	}
	return &FiniteAlphabet{names: slices.Clone(names), index: index}, nil
}

// MustFiniteAlphabet is like [NewFiniteAlphabet] but panics on error.
func MustFiniteAlphabet(names ...string) *FiniteAlphabet {
	A, err := NewFiniteAlphabet(names...)
	if err != nil {
		panic(err)
	}
	return A
}

// NewNumberedAlphabet returns the alphabet prefix1, prefix2, ..., prefixN.
func NewNumberedAlphabet(prefix string, n int) *FiniteAlphabet {
	names := make([]string, n)
	for i := range names {
		names[i] = prefix + strconv.Itoa(i+1)
	}
	return MustFiniteAlphabet(names...)
}

// Size returns the number of letters.
func (A *FiniteAlphabet) Size() int {
	return len(A.names)
}

// Names returns a copy of the name list.
func (A *FiniteAlphabet) Names() []string {
	return slices.Clone(A.names)
}

// LetterToName implements [Alphabet].
func (A *FiniteAlphabet) LetterToName(i int) (string, bool) {
	if i < 1 || i > len(A.names) {
		return "", false
	}
	return A.names[i-1], true
}

// NameToLetter implements [Alphabet].
func (A *FiniteAlphabet) NameToLetter(name string) (int, error) {
	if i, ok := A.index[name]; ok {
		return i, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidWord, "%q is not a letter name", name)
}

// Equal reports whether both alphabets have the same name list.
func (A *FiniteAlphabet) Equal(B *FiniteAlphabet) bool {
	if A == nil || B == nil {
		return A == B
	}
	return A == B || slices.Equal(A.names, B.names)
}

// String returns the alphabet in the form Alphabet({"a", "b"}).
func (A *FiniteAlphabet) String() string {
	var b strings.Builder
	b.WriteString("Alphabet({")
	for i, name := range A.names {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Quote(name))
	}
	b.WriteString("})")
	return b.String()
}

// PrefixAlphabet is the unbounded alphabet prefix1, prefix2, ...
// It labels words whose number of generators is not known in advance.
type PrefixAlphabet struct {
	prefix string
}

// NewPrefixAlphabet returns the alphabet with the given name prefix.
func NewPrefixAlphabet(prefix string) PrefixAlphabet {
	return PrefixAlphabet{prefix: prefix}
}

// Prefix returns the shared prefix of all letter names.
func (A PrefixAlphabet) Prefix() string {
	return A.prefix
}

// LetterToName implements [Alphabet].
func (A PrefixAlphabet) LetterToName(i int) (string, bool) {
	if i <= 0 {
		return "", false
	}
	return A.prefix + strconv.Itoa(i), true
}

// NameToLetter implements [Alphabet].
func (A PrefixAlphabet) NameToLetter(name string) (int, error) {
	if rest, ok := strings.CutPrefix(name, A.prefix); ok {
		if i, err := strconv.Atoi(rest); err == nil && i > 0 {
			return i, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidWord, "%q is not a letter name", name)
}

// String returns the alphabet in the form PrefixAlphabet("s_").
func (A PrefixAlphabet) String() string {
	return "PrefixAlphabet(" + strconv.Quote(A.prefix) + ")"
}

// SameAlphabet reports whether words over a and b may be combined.
// Finite alphabets compare by their name lists, other alphabets by value.
func SameAlphabet(a, b Alphabet) bool {
	if fa, ok := a.(*FiniteAlphabet); ok {
		fb, ok := b.(*FiniteAlphabet)
		return ok && fa.Equal(fb)
	}
	return a == b
}
