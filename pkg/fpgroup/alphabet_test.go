package fpgroup

import (
	"testing"

	"github.com/matzehuels/fpgroups/pkg/errors"
)

func TestFiniteAlphabet(t *testing.T) {
	if got := abc.String(); got != `Alphabet({"a", "b", "c"})` {
		t.Errorf("String() = %s", got)
	}
	if name, ok := abc.LetterToName(2); !ok || name != "b" {
		t.Errorf("LetterToName(2) = %q, %v, want b, true", name, ok)
	}
	for _, i := range []int{0, 4, -1} {
		if _, ok := abc.LetterToName(i); ok {
			t.Errorf("LetterToName(%d) should fail", i)
		}
	}
	if i, err := abc.NameToLetter("c"); err != nil || i != 3 {
		t.Errorf("NameToLetter(c) = %d, %v, want 3", i, err)
	}
	if _, err := abc.NameToLetter("d"); !errors.Is(err, errors.ErrCodeInvalidWord) {
		t.Errorf("NameToLetter(d) error = %v", err)
	}
}

func TestNewFiniteAlphabetRejects(t *testing.T) {
	for _, names := range [][]string{{"a", "a"}, {"a", ""}} {
		if _, err := NewFiniteAlphabet(names...); !errors.Is(err, errors.ErrCodeInvalidAlphabet) {
			t.Errorf("NewFiniteAlphabet(%q) error = %v, want %s", names, err, errors.ErrCodeInvalidAlphabet)
		}
	}
}

func TestNumberedAlphabet(t *testing.T) {
	A := NewNumberedAlphabet("x", 3)
	if got := A.Names(); len(got) != 3 || got[2] != "x3" {
		t.Errorf("Names() = %v", got)
	}
	if !A.Equal(MustFiniteAlphabet("x1", "x2", "x3")) {
		t.Error("numbered alphabet should equal the explicit one")
	}
}

func TestPrefixAlphabet(t *testing.T) {
	A := NewPrefixAlphabet("g_")
	if name, ok := A.LetterToName(3); !ok || name != "g_3" {
		t.Errorf("LetterToName(3) = %q, %v", name, ok)
	}
	if i, err := A.NameToLetter("g_3"); err != nil || i != 3 {
		t.Errorf("NameToLetter(g_3) = %d, %v", i, err)
	}
	for _, bad := range []string{"g3", "g_0", "g_-1", "g_", "h_1"} {
		if _, err := A.NameToLetter(bad); err == nil {
			t.Errorf("NameToLetter(%q) should fail", bad)
		}
	}
}

func TestSameAlphabet(t *testing.T) {
	tests := []struct {
		a, b Alphabet
		want bool
	}{
		{abc, MustFiniteAlphabet("a", "b", "c"), true},
		{abc, MustFiniteAlphabet("a", "b"), false},
		{NewPrefixAlphabet("s_"), NewPrefixAlphabet("s_"), true},
		{NewPrefixAlphabet("s_"), NewPrefixAlphabet("t_"), false},
		{abc, NewPrefixAlphabet("s_"), false},
	}
	for _, tt := range tests {
		if got := SameAlphabet(tt.a, tt.b); got != tt.want {
			t.Errorf("SameAlphabet(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
