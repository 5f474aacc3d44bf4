package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	fpio "github.com/matzehuels/fpgroups/pkg/io"
)

// presentationInput collects a presentation from an optional file argument
// and the --gen, --rel and --sub flags. Flags override the file.
type presentationInput struct {
	format     string
	name       string
	generators []string
	relators   []string
	subgroup   []string
}

func (in *presentationInput) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&in.generators, "gen", "g", nil, "generator names (comma-separated)")
	cmd.Flags().StringArrayVarP(&in.relators, "rel", "r", nil, "relator word (repeatable)")
	cmd.Flags().StringArrayVarP(&in.subgroup, "sub", "s", nil, "subgroup generator word (repeatable)")
	cmd.Flags().StringVar(&in.name, "name", "", "name of the presentation")
	cmd.Flags().StringVar(&in.format, "format", "", "input format when reading stdin: toml, yaml, json")
}

// load builds the presentation. args holds at most one path; "-" reads
// stdin in the --format format.
func (in *presentationInput) load(cmd *cobra.Command, args []string) (*fpio.Presentation, error) {
	p := &fpio.Presentation{}
	if len(args) > 0 {
		var err error
		if p, err = in.read(args[0], cmd.InOrStdin()); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("gen") {
		p.Generators = in.generators
	}
	if flags.Changed("rel") {
		p.Relators = in.relators
	}
	if flags.Changed("sub") {
		p.Subgroup = in.subgroup
	}
	if in.name != "" {
		p.Name = in.name
	}

	if len(args) == 0 && !flags.Changed("gen") {
		return nil, fmt.Errorf("no presentation given: pass a file or --gen")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (in *presentationInput) read(path string, stdin io.Reader) (*fpio.Presentation, error) {
	if path != "-" {
		p, err := fpio.Import(path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		return p, nil
	}
	if in.format == "" {
		return nil, fmt.Errorf("reading stdin requires --format")
	}
	return fpio.Read(stdin, fpio.Format(in.format))
}
