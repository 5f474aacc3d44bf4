package fpgroup

import (
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/fpgroups/pkg/errors"
)

// Word is an element of the free group over an alphabet.
//
// A word is a sequence of signed letters: +i stands for the i-th generator
// and -i for its inverse. Words are always reduced, meaning no letter is
// directly followed by its inverse, and are immutable once built. The zero
// Word is the identity over no alphabet.
type Word struct {
	alphabet Alphabet
	data     []int
}

// NewWord builds the reduced word for the given signed letters.
// Zero entries are skipped and adjacent inverse pairs cancel.
func NewWord(A Alphabet, letters ...int) (Word, error) {
	tmp := make([]int, 0, len(letters))
	for _, next := range letters {
		k := len(tmp) - 1
		switch {
		case k >= 0 && next == -tmp[k]:
			tmp = tmp[:k]
		case next == 0:
		default:
			if _, ok := A.LetterToName(abs(next)); !ok {
				return Word{}, errors.New(errors.ErrCodeInvalidWord, "illegal entry %d", next)
			}
			tmp = append(tmp, next)
		}
	}
	return Word{alphabet: A, data: tmp}, nil
}

// MustWord is like [NewWord] but panics on error.
func MustWord(A Alphabet, letters ...int) Word {
	w, err := NewWord(A, letters...)
	if err != nil {
		panic(err)
	}
	return w
}

// Identity returns the empty word over A.
func Identity(A Alphabet) Word {
	return Word{alphabet: A}
}

// Generator returns the one-letter word for letter i, or for its inverse
// when i is negative.
func Generator(A Alphabet, i int) (Word, error) {
	if i == 0 {
		return Word{}, errors.New(errors.ErrCodeInvalidWord, "illegal entry 0")
	}
	return NewWord(A, i)
}

// fromReduced wraps data that is known to be reduced and valid.
func fromReduced(A Alphabet, data []int) Word {
	return Word{alphabet: A, data: data}
}

// Alphabet returns the alphabet the word is written in.
func (w Word) Alphabet() Alphabet {
	return w.alphabet
}

// Len returns the number of letters.
func (w Word) Len() int {
	return len(w.data)
}

// IsIdentity reports whether w is the empty word.
func (w Word) IsIdentity() bool {
	return len(w.data) == 0
}

// Letter returns the (unsigned) letter at position i.
func (w Word) Letter(i int) int {
	return abs(w.data[i])
}

// Sign returns +1 or -1 for the entry at position i.
func (w Word) Sign(i int) int {
	if w.data[i] < 0 {
		return -1
	}
	return 1
}

// Entry returns the signed letter at position i.
func (w Word) Entry(i int) int {
	return w.data[i]
}

// LetterName returns the name of the letter at position i.
func (w Word) LetterName(i int) string {
	name, _ := w.alphabet.LetterToName(abs(w.data[i]))
	return name
}

// Letters returns a copy of the signed letters.
func (w Word) Letters() []int {
	return slices.Clone(w.data)
}

// Subword returns the letters in positions start to end-1.
func (w Word) Subword(start, end int) (Word, error) {
	if start < 0 || start >= len(w.data) {
		return Word{}, errors.New(errors.ErrCodeInvalidInput, "start index out of bounds")
	}
	if end < start || end > len(w.data) {
		return Word{}, errors.New(errors.ErrCodeInvalidInput, "end index out of bounds")
	}
	return w.slice(start, end), nil
}

// slice is Subword without bounds reporting.
func (w Word) slice(start, end int) Word {
	return fromReduced(w.alphabet, slices.Clone(w.data[start:end]))
}

// Rotation returns the cyclic rotation of w starting at position i,
// reduced at the seam.
func (w Word) Rotation(i int) Word {
	return w.slice(i, len(w.data)).Times(w.slice(0, i))
}

// Times returns the product w*other.
// It panics if the words are over different alphabets.
func (w Word) Times(other Word) Word {
	if !SameAlphabet(w.alphabet, other.alphabet) {
		panic("fpgroup: must have equal alphabets")
	}
	n1, n2 := len(w.data), len(other.data)
	m := min(n1, n2)
	k := 0
	for k < m && other.data[k] == -w.data[n1-1-k] {
		k++
	}
	out := make([]int, 0, n1+n2-2*k)
	out = append(out, w.data[:n1-k]...)
	out = append(out, other.data[k:]...)
	return fromReduced(w.alphabet, out)
}

// Inverse returns the inverse of w.
func (w Word) Inverse() Word {
	n := len(w.data)
	out := make([]int, n)
	for i := range out {
		out[i] = -w.data[n-1-i]
	}
	return fromReduced(w.alphabet, out)
}

// RaisedTo returns the n-th power of w.
// For |n| > 1 the cancellation between consecutive copies is computed once.
func (w Word) RaisedTo(n int) Word {
	m := len(w.data)
	switch {
	case n == 0 || m == 0:
		return Identity(w.alphabet)
	case n == 1:
		return fromReduced(w.alphabet, slices.Clone(w.data))
	case n == -1:
		return w.Inverse()
	case n < 0:
		return w.Inverse().RaisedTo(-n)
	}

	k := w.cancellation()
	length, ok := w.powerLength(n)
	if !ok {
		panic("fpgroup: power length overflows int")
	}
	out := make([]int, length)
	for i := 0; i < k; i++ {
		out[i] = w.data[i]
		out[length-1-i] = w.data[m-1-i]
	}
	for j := 0; j < n; j++ {
		for i := k; i < m-k; i++ {
			out[j*(m-2*k)+i] = w.data[i]
		}
	}
	return fromReduced(w.alphabet, out)
}

// cancellation returns how many letters cancel between two consecutive
// copies of w.
func (w Word) cancellation() int {
	m := len(w.data)
	k := 0
	for k < m && w.data[k] == -w.data[m-1-k] {
		k++
	}
	return k
}

// powerLength returns the length of w^n for n >= 0, and false when it does
// not fit in an int.
func (w Word) powerLength(n int) (int, bool) {
	m := len(w.data)
	if n == 0 || m == 0 {
		return 0, true
	}
	k := w.cancellation()
	period := m - 2*k
	if n > (math.MaxInt-2*k)/period {
		return 0, false
	}
	return n*period + 2*k, true
}

// Compare orders words letter by letter: a generator sorts before an
// inverse, then smaller letters first, then shorter words first.
func (w Word) Compare(other Word) int {
	n := min(len(w.data), len(other.data))
	for i := 0; i < n; i++ {
		if d := other.Sign(i) - w.Sign(i); d != 0 {
			return d
		}
		if d := w.Letter(i) - other.Letter(i); d != 0 {
			return d
		}
	}
	return len(w.data) - len(other.data)
}

// Equal reports whether both words have the same alphabet and letters.
func (w Word) Equal(other Word) bool {
	return SameAlphabet(w.alphabet, other.alphabet) && slices.Equal(w.data, other.data)
}

// String renders w as a product like a*b^-1*a, or "*" for the identity.
func (w Word) String() string {
	if len(w.data) == 0 {
		return "*"
	}
	var b strings.Builder
	for i := range w.data {
		if i > 0 {
			b.WriteByte('*')
		}
		b.WriteString(w.LetterName(i))
		if w.data[i] < 0 {
			b.WriteString("^-1")
		}
	}
	return b.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
