package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fpgroups/pkg/errors"
	"github.com/matzehuels/fpgroups/pkg/observability"
	"github.com/matzehuels/fpgroups/pkg/pipeline"
)

// analysisFlags are shared by the analysis commands.
type analysisFlags struct {
	input   presentationInput
	cache   cacheOpts
	refresh bool
	json    bool
}

func (f *analysisFlags) addFlags(cmd *cobra.Command) {
	f.input.addFlags(cmd)
	f.cache.addFlags(cmd)
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even if a cached result exists")
	cmd.Flags().BoolVar(&f.json, "json", false, "print the result as JSON")
}

// options loads the presentation and turns it into pipeline options.
func (f *analysisFlags) options(cmd *cobra.Command, args []string, kind string) (pipeline.Options, error) {
	p, err := f.input.load(cmd, args)
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := pipeline.FromPresentation(kind, p)
	opts.Refresh = f.refresh
	return opts, nil
}

// =============================================================================
// Commands
// =============================================================================

func (c *CLI) cosetsCommand() *cobra.Command {
	var flags analysisFlags
	var sizeLimit int

	cmd := &cobra.Command{
		Use:   "cosets [file]",
		Short: "Enumerate the cosets of a subgroup",
		Long: `Enumerate the cosets of a subgroup by Todd-Coxeter coset enumeration.

The subgroup is generated by the --sub words, or by the "subgroup" list of the
presentation file; without either it is trivial and the table is the regular
representation of the group. Enumeration stops with an error once the table
holds more than --size-limit rows.`,
		Example: `  fpgroups cosets -g a,b -r 'a^2' -r 'b^3' -r '(a*b)^5' -s a
  fpgroups cosets a5.toml --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd, args, pipeline.KindCosets)
			if err != nil {
				return err
			}
			opts.SizeLimit = sizeLimit
			res, err := c.execute(cmd, flags, opts, "Enumerating cosets...")
			if err != nil {
				return err
			}
			if flags.json {
				return c.printJSON(res)
			}
			c.printCosets(res)
			return nil
		},
	}
	flags.addFlags(cmd)
	cmd.Flags().IntVar(&sizeLimit, "size-limit", pipeline.DefaultSizeLimit, "maximum number of table rows")
	return cmd
}

func (c *CLI) subgroupsCommand() *cobra.Command {
	var flags analysisFlags
	var (
		maxSize     int
		normalOnly  bool
		maxChoices  int64
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "subgroups [file]",
		Short: "List conjugacy classes of subgroups of small index",
		Long: `List the conjugacy classes of subgroups of index at most --max.

Each class is found as a transitive action of the group on at most --max
points, in canonical form. For each class the index, whether it is normal,
a generating set of the subgroup and its abelian invariants are shown.

The search can be bounded with --max-choices; when the bound is hit the
command fails with a CHOICE_LIMIT error.`,
		Example: `  fpgroups subgroups -g a,b -r 'a^2' -r 'b^3' -r '(a*b)^2' --max 6
  fpgroups subgroups coxeter.yaml --max 4 --normal -i`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd, args, pipeline.KindSubgroups)
			if err != nil {
				return err
			}
			opts.MaxSize = maxSize
			opts.NormalOnly = normalOnly
			opts.MaxChoices = maxChoices
			res, err := c.execute(cmd, flags, opts, "Searching subgroups...")
			if err != nil {
				if errors.Is(err, errors.ErrCodeChoiceLimit) {
					printNextStep(cmd.ErrOrStderr(), "Raise the search bound", "--max-choices "+strconv.FormatInt(2*max(maxChoices, 1), 10))
				}
				return err
			}
			if flags.json {
				return c.printJSON(res)
			}
			if interactive && len(res.Subgroups) > 0 {
				_, err := tea.NewProgram(NewClassBrowserModel(opts.Generators, res.Subgroups)).Run()
				return err
			}
			c.printSubgroups(res)
			return nil
		},
	}
	flags.addFlags(cmd)
	cmd.Flags().IntVarP(&maxSize, "max", "n", pipeline.DefaultMaxSize, "maximal subgroup index")
	cmd.Flags().BoolVar(&normalOnly, "normal", false, "list normal subgroups only")
	cmd.Flags().Int64Var(&maxChoices, "max-choices", 0, "bound on search moves (0 for none)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse the classes interactively")
	return cmd
}

func (c *CLI) invariantsCommand() *cobra.Command {
	var flags analysisFlags

	cmd := &cobra.Command{
		Use:   "invariants [file]",
		Short: "Compute the abelian invariants of a group",
		Long: `Compute the abelian invariants of a group from the Smith normal form of its
relation matrix. The result is printed as a product of cyclic groups, where
Z is infinite cyclic and Z/n cyclic of order n.`,
		Example: `  fpgroups invariants -g a,b -r 'a^2' -r 'b^3' -r '(a*b)^2'`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd, args, pipeline.KindInvariants)
			if err != nil {
				return err
			}
			res, err := c.execute(cmd, flags, opts, "Computing invariants...")
			if err != nil {
				return err
			}
			if flags.json {
				return c.printJSON(res)
			}
			printKeyValue(c.Out, "group", res.Group)
			printKeyValue(c.Out, "abelianized", res.Invariants.Text)
			return nil
		},
	}
	flags.addFlags(cmd)
	return cmd
}

func (c *CLI) stabilizerCommand() *cobra.Command {
	var flags analysisFlags
	var (
		basepoint string
		maxLabel  int
		sizeLimit int
	)

	cmd := &cobra.Command{
		Use:   "stabilizer [file]",
		Short: "Present the stabilizer of a coset",
		Long: `Compute a presentation of a point stabilizer by Reidemeister-Schreier.

The group acts on the cosets of the --sub subgroup. The stabilizer of the
coset containing --base is presented; with no --base this is the subgroup
itself. Relators longer than --max-label letters are left out.`,
		Example: `  fpgroups stabilizer -g a,b -r '[a,b]' -s 'a^2' -s 'b^3' --base a`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd, args, pipeline.KindStabilizer)
			if err != nil {
				return err
			}
			opts.Basepoint = basepoint
			opts.MaxLabelLength = maxLabel
			opts.SizeLimit = sizeLimit
			res, err := c.execute(cmd, flags, opts, "Computing stabilizer...")
			if err != nil {
				return err
			}
			if flags.json {
				return c.printJSON(res)
			}
			c.printStabilizer(res)
			return nil
		},
	}
	flags.addFlags(cmd)
	cmd.Flags().StringVar(&basepoint, "base", "", "word whose coset is stabilized")
	cmd.Flags().IntVar(&maxLabel, "max-label", pipeline.DefaultMaxLabelLength, "longest relator to keep")
	cmd.Flags().IntVar(&sizeLimit, "size-limit", pipeline.DefaultSizeLimit, "maximum number of coset table rows")
	return cmd
}

// =============================================================================
// Execution
// =============================================================================

// execute runs opts through a cached runner behind a spinner.
func (c *CLI) execute(cmd *cobra.Command, flags analysisFlags, opts pipeline.Options, message string) (*pipeline.Result, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	runner, err := c.newRunner(cmd, flags.cache)
	if err != nil {
		return nil, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	spinner := newSpinner(ctx, message)
	prev := observability.Enumeration()
	observability.SetEnumerationHooks(&spinnerHooks{EnumerationHooks: prev, spinner: spinner})
	defer observability.SetEnumerationHooks(prev)

	prog := newProgress(c.Logger)
	spinner.Start()
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			printWarning(cmd.ErrOrStderr(), "Cancelled")
			return nil, err
		}
		spinner.StopWithError(fmt.Sprintf("%s failed: %s", opts.Kind, errors.UserMessage(err)))
		return nil, err
	}
	spinner.Stop()
	prog.done("analysis finished", "kind", opts.Kind, "cached", res.CacheInfo.Hit)
	return res, nil
}

// spinnerHooks reports subgroup search progress on the spinner and passes
// events on to the previously registered hooks.
type spinnerHooks struct {
	observability.EnumerationHooks
	spinner *Spinner
	found   atomic.Int64
}

func (h *spinnerHooks) OnActionFound(ctx context.Context, size int) {
	n := h.found.Add(1)
	h.spinner.SetMessage("Searching subgroups... %d classes", n)
	h.EnumerationHooks.OnActionFound(ctx, size)
}

// =============================================================================
// Output
// =============================================================================

func (c *CLI) printJSON(res *pipeline.Result) error {
	enc := json.NewEncoder(c.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func (c *CLI) printCosets(res *pipeline.Result) {
	t := res.Cosets
	headers := append([]string{"coset", "representative"}, t.Columns...)
	rows := make([][]string, len(t.Table))
	for i, row := range t.Table {
		cells := []string{strconv.Itoa(i + 1), t.Representatives[i]}
		for _, v := range row {
			cells = append(cells, strconv.Itoa(v))
		}
		rows[i] = cells
	}
	fmt.Fprintln(c.Out, StyleTitle.Render("Coset table"))
	fmt.Fprintln(c.Out, renderTable(headers, rows))
	printStats(c.Out, t.Size(), "cosets", res.Stats.Duration, res.CacheInfo.Hit)
}

func (c *CLI) printSubgroups(res *pipeline.Result) {
	rows := make([][]string, len(res.Subgroups))
	normal := 0
	for i, s := range res.Subgroups {
		mark := ""
		if s.Normal {
			mark = iconSuccess
			normal++
		}
		rows[i] = []string{strconv.Itoa(i + 1), strconv.Itoa(s.Index), mark, joinOrDash(s.Generators), s.Invariants.Text}
	}
	fmt.Fprintln(c.Out, StyleTitle.Render("Subgroup classes"))
	fmt.Fprintln(c.Out, renderTable([]string{"#", "index", "normal", "generators", "abelianized"}, rows))
	printStats(c.Out, len(res.Subgroups), "classes", res.Stats.Duration, res.CacheInfo.Hit)
	printDetail(c.Out, "%d normal, %d search moves", normal, res.Stats.Choices)
}

func (c *CLI) printStabilizer(res *pipeline.Result) {
	s := res.Stabilizer
	base := s.Basepoint
	if base == "" {
		base = "*"
	}
	fmt.Fprintln(c.Out, StyleTitle.Render("Stabilizer of "+base))
	printKeyValue(c.Out, "index", strconv.Itoa(s.Index))
	printKeyValue(c.Out, "generators", joinOrDash(s.Generators))
	printKeyValue(c.Out, "relators", joinOrDash(s.Relators))
	printKeyValue(c.Out, "abelianized", s.Invariants.Text)
	printStats(c.Out, len(s.Generators), "generators", res.Stats.Duration, res.CacheInfo.Hit)
}

// elapsedOrCached formats a duration for reports.
func elapsedOrCached(res *pipeline.Result) string {
	if res.CacheInfo.Hit {
		return "cached"
	}
	return res.Stats.Duration.Round(time.Millisecond).String()
}
