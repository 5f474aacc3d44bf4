package fpgroup

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/matzehuels/fpgroups/pkg/errors"
)

// Grammar for words:
//
//	word   = factor ( "*" factor )*
//	factor = ( "(" word ")" | "[" word "," word "]" | name ) ( "^" [ "-" ] digits )?
//
// Names consist of letters, digits and underscores. Blanks are ignored.

type wordExpr struct {
	Factors []*factorExpr `@@ ( "*" @@ )*`
}

type factorExpr struct {
	Group *wordExpr       `(   "(" @@ ")"`
	Comm  *commutatorExpr `  | "[" @@ "]"`
	Name  *string         `  | @Name )`
	Exp   *exponentExpr   `( "^" @@ )?`
}

type commutatorExpr struct {
	Left  *wordExpr `@@ ","`
	Right *wordExpr `@@`
}

type exponentExpr struct {
	Negative bool   `@"-"?`
	Digits   string `@Name`
}

var wordLexer = lexer.MustSimple([]lexer.SimpleRule{
	{"Name", `[\p{L}\p{N}_]+`},
	{"Punct", `[-*^()\[\],]`},
	{"whitespace", `\s+`},
})

var wordParser = participle.MustBuild[wordExpr](
	participle.Lexer(wordLexer),
)

// ParseWord parses a word such as "a*b^-1*(b*c)^3" or "[a,b]" over A.
// The empty string and "*" denote the identity.
func ParseWord(A Alphabet, s string) (Word, error) {
	if strings.TrimSpace(s) == "" || strings.TrimSpace(s) == "*" {
		return Identity(A), nil
	}
	expr, err := wordParser.ParseString("", s)
	if err != nil {
		return Word{}, errors.Wrap(errors.ErrCodeWordSyntax, err, "%s in %q", diagnose(s), s)
	}
	return expr.eval(A)
}

// MustParseWord is like [ParseWord] but panics on error.
func MustParseWord(A Alphabet, s string) Word {
	w, err := ParseWord(A, s)
	if err != nil {
		panic(err)
	}
	return w
}

// ParseWords parses each string in turn.
func ParseWords(A Alphabet, specs ...string) ([]Word, error) {
	words := make([]Word, 0, len(specs))
	for _, s := range specs {
		w, err := ParseWord(A, s)
		if err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	return words, nil
}

func (e *wordExpr) eval(A Alphabet) (Word, error) {
	result := Identity(A)
	for _, f := range e.Factors {
		w, err := f.eval(A)
		if err != nil {
			return Word{}, err
		}
		result = result.Times(w)
		if err := checkLength(result); err != nil {
			return Word{}, err
		}
	}
	return result, nil
}

func checkLength(w Word) error {
	if w.Len() > errors.MaxExpandedLength {
		return errors.New(errors.ErrCodeWordSyntax, "word too long (max %d letters after expansion)", errors.MaxExpandedLength)
	}
	return nil
}

func (f *factorExpr) eval(A Alphabet) (Word, error) {
	var arg Word
	switch {
	case f.Group != nil:
		w, err := f.Group.eval(A)
		if err != nil {
			return Word{}, err
		}
		arg = w
	case f.Comm != nil:
		w1, err := f.Comm.Left.eval(A)
		if err != nil {
			return Word{}, err
		}
		w2, err := f.Comm.Right.eval(A)
		if err != nil {
			return Word{}, err
		}
		arg = w1.Times(w2).Times(w1.Inverse()).Times(w2.Inverse())
		if err := checkLength(arg); err != nil {
			return Word{}, err
		}
	default:
		i, err := A.NameToLetter(*f.Name)
		if err != nil {
			return Word{}, errors.Wrap(errors.ErrCodeWordSyntax, err, "unknown letter %q", *f.Name)
		}
		arg = fromReduced(A, []int{i})
	}

	if f.Exp == nil {
		return arg, nil
	}
	n, err := strconv.Atoi(f.Exp.Digits)
	if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
		return Word{}, errors.New(errors.ErrCodeWordSyntax, "exponent too large in %q", "^"+f.Exp.Digits)
	}
	if err != nil || strings.ContainsAny(f.Exp.Digits, "+-") {
		return Word{}, errors.New(errors.ErrCodeWordSyntax, "malformed exponent %q", f.Exp.Digits)
	}
	if l, ok := arg.powerLength(n); !ok || l > errors.MaxExpandedLength {
		return Word{}, errors.New(errors.ErrCodeWordSyntax, "exponent too large in %q (max %d letters after expansion)",
			"^"+f.Exp.Digits, errors.MaxExpandedLength)
	}
	if f.Exp.Negative {
		n = -n
	}
	return arg.RaisedTo(n), nil
}

// diagnose names the most likely structural problem in a word that failed to parse.
func diagnose(s string) string {
	var stack []rune
	commas := []bool{}
	for _, r := range s {
		switch r {
		case '(':
			stack = append(stack, r)
		case '[':
			stack = append(stack, r)
			commas = append(commas, false)
		case ',':
			if len(commas) > 0 {
				commas[len(commas)-1] = true
			}
		case ')':
			if len(stack) == 0 || stack[len(stack)-1] != '(' {
				return "unmatched parenthesis"
			}
			stack = stack[:len(stack)-1]
		case ']':
			if len(stack) > 0 && stack[len(stack)-1] == '(' {
				return "unmatched parenthesis"
			}
			if len(stack) == 0 {
				return "unmatched '['"
			}
			if !commas[len(commas)-1] {
				return "missing comma in commutator expression"
			}
			stack = stack[:len(stack)-1]
			commas = commas[:len(commas)-1]
		}
	}
	if len(stack) > 0 {
		if stack[len(stack)-1] == '(' {
			return "unmatched parenthesis"
		}
		return "unmatched '['"
	}
	if i := strings.IndexByte(s, '^'); i >= 0 {
		rest := strings.TrimLeft(s[i+1:], " \t-")
		if rest == "" || rest[0] < '0' || rest[0] > '9' {
			return "malformed exponent"
		}
	}
	return "bad syntax"
}
