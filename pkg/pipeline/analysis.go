package pipeline

import (
	"context"
	"math/big"
	"strings"

	"github.com/matzehuels/fpgroups/pkg/action"
	"github.com/matzehuels/fpgroups/pkg/cosets"
	"github.com/matzehuels/fpgroups/pkg/errors"
	"github.com/matzehuels/fpgroups/pkg/fpgroup"
	"github.com/matzehuels/fpgroups/pkg/observability"
	"github.com/matzehuels/fpgroups/pkg/smallactions"
)

// CosetAction enumerates the cosets of the subgroup named in opts.
func CosetAction(ctx context.Context, G *fpgroup.Group, opts Options) (*cosets.Action, error) {
	H, err := fpgroup.ParseWords(G.Alphabet(), opts.Subgroup...)
	if err != nil {
		return nil, err
	}
	return cosets.Enumerate(ctx, G, H,
		cosets.WithSizeLimit(opts.SizeLimit),
		cosets.WithLogger(opts.Logger))
}

// Cosets computes the coset table of the subgroup named in opts.
func Cosets(ctx context.Context, G *fpgroup.Group, opts Options) (*CosetTable, error) {
	T, err := CosetAction(ctx, G, opts)
	if err != nil {
		return nil, err
	}
	out := &CosetTable{Columns: Columns(G), Table: T.Table()}
	for c := range T.Domain() {
		out.Representatives = append(out.Representatives, c.Representative().String())
	}
	return out, nil
}

// Columns names the columns of an action table of G.
func Columns(G *fpgroup.Group) []string {
	var cols []string
	for _, g := range G.Generators() {
		cols = append(cols, g.String(), g.Inverse().String())
	}
	return cols
}

// Subgroups lists the conjugacy classes of subgroups of index at most
// opts.MaxSize. It returns the number of search moves along with the
// classes; on a CHOICE_LIMIT error the classes found so far are returned.
func Subgroups(ctx context.Context, G *fpgroup.Group, opts Options) ([]ClassSummary, int64, error) {
	it, err := smallactions.New(G, opts.MaxSize, opts.NormalOnly,
		smallactions.WithMaxChoices(opts.MaxChoices),
		smallactions.WithContext(ctx),
		smallactions.WithLogger(opts.Logger))
	if err != nil {
		return nil, 0, err
	}

	var classes []ClassSummary
	for a := range it.All() {
		observability.Enumeration().OnActionFound(ctx, a.Size())
		summary, err := Summarize(a, opts.MaxLabelLength)
		if err != nil {
			return classes, it.ChoicesSoFar(), err
		}
		classes = append(classes, summary)
		if err := ctx.Err(); err != nil {
			return classes, it.ChoicesSoFar(), errors.Wrap(errors.ErrCodeTimeout, err, "subgroup search interrupted")
		}
	}
	return classes, it.ChoicesSoFar(), it.Err()
}

// Summarize describes the stabilizer of point 1 of a transitive action.
func Summarize(a *smallactions.Action, maxLabel int) (ClassSummary, error) {
	s, err := action.NewStabilizer[int](a, 1, action.WithMaxLabelLength(maxLabel))
	if err != nil {
		return ClassSummary{}, err
	}
	return ClassSummary{
		Index:      a.Size(),
		Normal:     a.IsNormal(),
		Table:      a.Table(),
		Generators: wordStrings(s.Generators()),
		Invariants: NewInvariants(s.Presentation().AbelianInvariants()),
	}, nil
}

// Stabilizer computes a presentation of the stabilizer of the coset
// containing opts.Basepoint, which is the subgroup itself for the empty
// basepoint.
func Stabilizer(ctx context.Context, G *fpgroup.Group, opts Options) (*StabilizerInfo, error) {
	T, err := CosetAction(ctx, G, opts)
	if err != nil {
		return nil, err
	}
	base, err := T.CosetOf(opts.Basepoint)
	if err != nil {
		return nil, err
	}
	s, err := action.NewStabilizer[cosets.Coset](T, base, action.WithMaxLabelLength(opts.MaxLabelLength))
	if err != nil {
		return nil, err
	}
	pres := s.Presentation()
	return &StabilizerInfo{
		Basepoint:  base.String(),
		Index:      T.Size(),
		Generators: wordStrings(s.Generators()),
		Relators:   wordStrings(pres.Relators()),
		Invariants: NewInvariants(pres.AbelianInvariants()),
	}, nil
}

// NewInvariants formats abelian invariants.
func NewInvariants(vals []*big.Int) Invariants {
	inv := Invariants{Values: make([]string, len(vals))}
	factors := make([]string, len(vals))
	for i, v := range vals {
		inv.Values[i] = v.String()
		if v.Sign() == 0 {
			factors[i] = "Z"
		} else {
			factors[i] = "Z/" + v.String()
		}
	}
	inv.Text = strings.Join(factors, " x ")
	if inv.Text == "" {
		inv.Text = "0"
	}
	return inv
}

func wordStrings(ws []fpgroup.Word) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.String()
	}
	return out
}
