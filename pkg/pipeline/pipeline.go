// Package pipeline runs group analyses for the CLI and the HTTP API.
//
// An analysis takes a presentation, optionally a subgroup, and one of four
// kinds of computation:
//
//   - cosets: the coset table of the subgroup, with representatives;
//   - subgroups: conjugacy classes of subgroups of small index;
//   - invariants: the abelian invariants of the group;
//   - stabilizer: a presentation of the subgroup by Reidemeister–Schreier.
//
// Results are JSON-serializable and cached by a key derived from every
// option that affects them.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Kind:       pipeline.KindSubgroups,
//	    Generators: []string{"a", "b"},
//	    Relators:   []string{"a^2", "b^3", "(a*b)^2"},
//	    MaxSize:    4,
//	})
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fpgroups/pkg/cache"
	"github.com/matzehuels/fpgroups/pkg/cosets"
	"github.com/matzehuels/fpgroups/pkg/errors"
	fpio "github.com/matzehuels/fpgroups/pkg/io"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultMaxSize is the default index bound of a subgroup search.
	DefaultMaxSize = 4

	// DefaultSizeLimit is the default row limit of coset enumeration.
	DefaultSizeLimit = cosets.DefaultSizeLimit

	// DefaultMaxLabelLength is the longest edge label the stabilizer
	// computation will derive from a relator.
	DefaultMaxLabelLength = 10
)

// Analysis kinds.
const (
	KindCosets     = "cosets"
	KindSubgroups  = "subgroups"
	KindInvariants = "invariants"
	KindStabilizer = "stabilizer"
)

// ValidKinds is the set of supported analysis kinds.
var ValidKinds = map[string]bool{
	KindCosets:     true,
	KindSubgroups:  true,
	KindInvariants: true,
	KindStabilizer: true,
}

// ValidateKind checks that kind is supported.
func ValidateKind(kind string) error {
	if !ValidKinds[kind] {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid kind: %q (must be one of: cosets, subgroups, invariants, stabilizer)", kind)
	}
	return nil
}

// =============================================================================
// Options
// =============================================================================

// Options configures an analysis. It doubles as the JSON body of API
// requests.
type Options struct {
	Kind string `json:"kind"`

	// Presentation
	Name       string   `json:"name,omitempty"`
	Generators []string `json:"generators"`
	Relators   []string `json:"relators"`
	Subgroup   []string `json:"subgroup,omitempty"`

	// Subgroup search
	MaxSize    int   `json:"max_size,omitempty"`
	NormalOnly bool  `json:"normal_only,omitempty"`
	MaxChoices int64 `json:"max_choices,omitempty"`

	// Coset enumeration
	SizeLimit int `json:"size_limit,omitempty"`

	// Stabilizer
	Basepoint      string `json:"basepoint,omitempty"`
	MaxLabelLength int    `json:"max_label_length,omitempty"`

	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" bson:"-"`

	validated bool
}

// FromPresentation returns options for kind on the presentation p.
func FromPresentation(kind string, p *fpio.Presentation) Options {
	return Options{
		Kind:       kind,
		Name:       p.Name,
		Generators: p.Generators,
		Relators:   p.Relators,
		Subgroup:   p.Subgroup,
	}
}

// Presentation returns the presentation part of the options.
func (o *Options) Presentation() *fpio.Presentation {
	return &fpio.Presentation{
		Name:       o.Name,
		Generators: o.Generators,
		Relators:   o.Relators,
		Subgroup:   o.Subgroup,
	}
}

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := ValidateKind(o.Kind); err != nil {
		return err
	}
	if err := o.Presentation().Validate(); err != nil {
		return err
	}

	if o.Kind == KindSubgroups {
		if o.MaxSize == 0 {
			o.MaxSize = DefaultMaxSize
		}
		if err := errors.ValidateMaxSize(o.MaxSize); err != nil {
			return err
		}
	}
	if o.MaxChoices < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max_choices must not be negative")
	}
	if o.SizeLimit == 0 {
		o.SizeLimit = DefaultSizeLimit
	}
	if o.SizeLimit < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "size_limit must not be negative")
	}
	if o.MaxLabelLength == 0 {
		o.MaxLabelLength = DefaultMaxLabelLength
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// KeyOpts returns the cache key options. Fields that do not affect the
// result of the chosen kind are left out.
func (o *Options) KeyOpts() cache.AnalysisKeyOpts {
	k := cache.AnalysisKeyOpts{
		Generators: o.Generators,
		Relators:   o.Relators,
	}
	switch o.Kind {
	case KindCosets:
		k.Subgroup = o.Subgroup
		k.SizeLimit = o.SizeLimit
	case KindSubgroups:
		k.MaxSize = o.MaxSize
		k.NormalOnly = o.NormalOnly
		k.MaxChoices = o.MaxChoices
		k.MaxLabelLength = o.MaxLabelLength
	case KindStabilizer:
		k.Subgroup = o.Subgroup
		k.SizeLimit = o.SizeLimit
		k.Basepoint = o.Basepoint
		k.MaxLabelLength = o.MaxLabelLength
	}
	return k
}

// =============================================================================
// Results
// =============================================================================

// Result is the outcome of an analysis. Exactly one of Cosets, Subgroups,
// Invariants and Stabilizer is set, according to Kind.
type Result struct {
	Kind  string `json:"kind"`
	Group string `json:"group"`

	Cosets     *CosetTable     `json:"cosets,omitempty"`
	Subgroups  []ClassSummary  `json:"subgroups,omitempty"`
	Invariants *Invariants     `json:"invariants,omitempty"`
	Stabilizer *StabilizerInfo `json:"stabilizer,omitempty"`

	Stats     Stats     `json:"stats"`
	CacheInfo CacheInfo `json:"cache"`
}

// CosetTable is a coset table with one row per coset.
type CosetTable struct {
	// Columns names the table columns: each generator followed by its inverse.
	Columns         []string `json:"columns"`
	Representatives []string `json:"representatives"`
	Table           [][]int  `json:"table"`
}

// Size returns the number of cosets.
func (t *CosetTable) Size() int { return len(t.Table) }

// ClassSummary describes one conjugacy class of subgroups found by a
// subgroup search.
type ClassSummary struct {
	Index      int        `json:"index"`
	Normal     bool       `json:"normal"`
	Table      [][]int    `json:"table"`
	Generators []string   `json:"generators"`
	Invariants Invariants `json:"invariants"`
}

// Invariants are the abelian invariants of a group: 0 for a free factor Z,
// n for a cyclic factor Z/n.
type Invariants struct {
	Values []string `json:"values"`
	Text   string   `json:"text"`
}

// StabilizerInfo is a presentation of a point stabilizer.
type StabilizerInfo struct {
	Basepoint  string     `json:"basepoint"`
	Index      int        `json:"index"`
	Generators []string   `json:"generators"`
	Relators   []string   `json:"relators"`
	Invariants Invariants `json:"invariants"`
}

// Stats contains execution statistics.
type Stats struct {
	// Size is the number of cosets, classes or stabilizer generators.
	Size     int           `json:"size"`
	Choices  int64         `json:"choices,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

// CacheInfo reports how the result was obtained.
type CacheInfo struct {
	Key string `json:"key"`
	Hit bool   `json:"hit"`
}

// String summarises the result in one line.
func (r *Result) String() string {
	switch r.Kind {
	case KindCosets:
		return fmt.Sprintf("%d cosets", r.Cosets.Size())
	case KindSubgroups:
		return fmt.Sprintf("%d subgroup classes", len(r.Subgroups))
	case KindInvariants:
		return r.Invariants.Text
	case KindStabilizer:
		return fmt.Sprintf("stabilizer of index %d with %d generators", r.Stabilizer.Index, len(r.Stabilizer.Generators))
	}
	return r.Kind
}
