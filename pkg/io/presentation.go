package io

import (
	"strings"

	"github.com/matzehuels/fpgroups/pkg/errors"
	"github.com/matzehuels/fpgroups/pkg/fpgroup"
)

// Presentation is the serialized form of a finitely presented group and
// an optional subgroup.
type Presentation struct {
	Name       string   `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty" mapstructure:"name"`
	Generators []string `json:"generators" yaml:"generators" toml:"generators" mapstructure:"generators"`
	Relators   []string `json:"relators" yaml:"relators" toml:"relators" mapstructure:"relators"`
	Subgroup   []string `json:"subgroup,omitempty" yaml:"subgroup,omitempty" toml:"subgroup,omitempty" mapstructure:"subgroup"`
}

// Validate checks names and sizes without parsing the words.
func (p *Presentation) Validate() error {
	if err := errors.ValidateGeneratorNames(p.Generators); err != nil {
		return err
	}
	if err := errors.ValidateRelators(p.Relators); err != nil {
		return err
	}
	return errors.ValidateRelators(p.Subgroup)
}

// Group builds the group. Errors carry INVALID_ALPHABET or
// INVALID_PRESENTATION codes.
func (p *Presentation) Group() (*fpgroup.Group, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	A, err := fpgroup.NewFiniteAlphabet(p.Generators...)
	if err != nil {
		return nil, err
	}
	return fpgroup.ParseGroup(A, p.Relators...)
}

// SubgroupWords parses the subgroup generators over the alphabet of G.
func (p *Presentation) SubgroupWords(G *fpgroup.Group) ([]fpgroup.Word, error) {
	return fpgroup.ParseWords(G.Alphabet(), p.Subgroup...)
}

// FromGroup builds the presentation of G with the given subgroup.
func FromGroup(G *fpgroup.Group, subgroup ...fpgroup.Word) *Presentation {
	p := &Presentation{Generators: G.Alphabet().Names()}
	for _, r := range G.Relators() {
		p.Relators = append(p.Relators, r.String())
	}
	for _, w := range subgroup {
		p.Subgroup = append(p.Subgroup, w.String())
	}
	return p
}

// String returns the presentation in the usual ⟨gens | rels⟩ notation.
func (p *Presentation) String() string {
	return "<" + strings.Join(p.Generators, ", ") + " | " + strings.Join(p.Relators, ", ") + ">"
}
