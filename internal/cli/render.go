package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fpgroups/pkg/action"
	"github.com/matzehuels/fpgroups/pkg/cosets"
	"github.com/matzehuels/fpgroups/pkg/errors"
	"github.com/matzehuels/fpgroups/pkg/fpgroup"
	"github.com/matzehuels/fpgroups/pkg/pipeline"
	"github.com/matzehuels/fpgroups/pkg/smallactions"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	input     presentationInput
	output    string // output file; stdout if empty
	format    string // dot or svg; inferred from output when empty
	class     int    // render the n-th subgroup class instead of the coset action
	maxSize   int    // index bound of the class search
	sizeLimit int    // row limit of coset enumeration
}

// renderCommand draws the Schreier graph of an action.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{maxSize: pipeline.DefaultMaxSize, sizeLimit: pipeline.DefaultSizeLimit}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Draw the Schreier graph of an action",
		Long: `Draw the Schreier graph of the action of a group on the cosets of a subgroup:
one node per coset, labelled by its representative, and one edge per coset
and generator.

With --class n the n-th transitive action found by 'fpgroups subgroups'
is drawn instead. Output is Graphviz DOT or SVG.`,
		Example: `  fpgroups render -g a,b -r 'a^3' -r 'b^2' -r '(a*b)^5' -s a -o a5.svg
  fpgroups render coxeter.yaml --class 3 --max 4 -f dot`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := resolveRenderFormat(opts.format, opts.output)
			if err != nil {
				return err
			}
			opts.format = format
			return c.runRender(cmd, args, &opts)
		},
	}

	opts.input.addFlags(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&opts.format, "to", "f", "", "output format: dot, svg (default: from --output, else dot)")
	cmd.Flags().IntVar(&opts.class, "class", 0, "draw the n-th subgroup class instead of the coset action")
	cmd.Flags().IntVarP(&opts.maxSize, "max", "n", opts.maxSize, "maximal index for --class")
	cmd.Flags().IntVar(&opts.sizeLimit, "size-limit", opts.sizeLimit, "maximum number of coset table rows")
	return cmd
}

// resolveRenderFormat picks the output format from the flag or the output
// file extension.
func resolveRenderFormat(format, output string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
		if format == "" || format == "gv" {
			format = formatDOT
		}
	}
	switch format {
	case formatDOT, formatSVG:
		return format, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unsupported format %q (must be 'dot' or 'svg')", format)
}

func (c *CLI) runRender(cmd *cobra.Command, args []string, opts *renderOpts) error {
	ctx := cmd.Context()
	p, err := opts.input.load(cmd, args)
	if err != nil {
		return err
	}
	G, err := p.Group()
	if err != nil {
		return err
	}

	title := p.String()
	var dot string
	if opts.class > 0 {
		a, err := nthClass(ctx, G, opts)
		if err != nil {
			return err
		}
		dot = action.ToDOT[int](a, action.DOTOptions{Title: fmt.Sprintf("%s, class %d", title, opts.class)})
	} else {
		po := pipeline.FromPresentation(pipeline.KindCosets, p)
		po.SizeLimit = opts.sizeLimit
		if err := po.ValidateAndSetDefaults(); err != nil {
			return err
		}
		po.Logger = c.Logger
		T, err := pipeline.CosetAction(ctx, G, po)
		if err != nil {
			return err
		}
		dot = action.ToDOT[cosets.Coset](T, action.DOTOptions{
			Title:  title,
			Labels: func(x any) string { return x.(cosets.Coset).String() },
		})
	}

	data := []byte(dot)
	if opts.format == formatSVG {
		spinner := newSpinner(ctx, "Rendering SVG...")
		spinner.Start()
		if data, err = action.RenderSVG(ctx, dot); err != nil {
			spinner.StopWithError("SVG rendering failed")
			return err
		}
		spinner.StopWithSuccess(cmd.ErrOrStderr(), "SVG rendered")
	}

	if opts.output == "" {
		_, err := c.Out.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return err
	}
	printSuccess(c.Out, "Rendered %s", opts.format)
	printFile(c.Out, opts.output)
	return nil
}

// nthClass returns the n-th (1-based) action of a subgroup search.
func nthClass(ctx context.Context, G *fpgroup.Group, opts *renderOpts) (*smallactions.Action, error) {
	it, err := smallactions.New(G, opts.maxSize, false, smallactions.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	n := 0
	for a := range it.All() {
		if n++; n == opts.class {
			return a, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return nil, errors.New(errors.ErrCodeNotFound, "only %d subgroup classes of index at most %d", n, opts.maxSize)
}
