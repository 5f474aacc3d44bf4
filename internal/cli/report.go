package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fpgroups/pkg/pipeline"
)

// reportCommand renders an analysis as a markdown report.
func (c *CLI) reportCommand() *cobra.Command {
	var flags analysisFlags
	var (
		kind      string
		output    string
		raw       bool
		maxSize   int
		normal    bool
		basepoint string
	)

	cmd := &cobra.Command{
		Use:   "report [file]",
		Short: "Write a markdown report of an analysis",
		Long: `Run an analysis and write it up as markdown.

The report is rendered for the terminal unless --raw is given or it is
written to a file with --output.`,
		Example: `  fpgroups report s3.toml --kind subgroups --max 6
  fpgroups report s3.toml --kind cosets -s a -o s3-cosets.md`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateKind(kind); err != nil {
				return err
			}
			opts, err := flags.options(cmd, args, kind)
			if err != nil {
				return err
			}
			opts.MaxSize = maxSize
			opts.NormalOnly = normal
			opts.Basepoint = basepoint
			res, err := c.execute(cmd, flags, opts, "Running "+kind+"...")
			if err != nil {
				return err
			}

			md := markdownReport(opts, res)
			if output != "" {
				if err := os.WriteFile(output, []byte(md), 0o644); err != nil {
					return err
				}
				printSuccess(c.Out, "Report written")
				printFile(c.Out, output)
				return nil
			}
			if raw {
				_, err := fmt.Fprint(c.Out, md)
				return err
			}
			r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
			if err != nil {
				return fmt.Errorf("markdown renderer: %w", err)
			}
			out, err := r.Render(md)
			if err != nil {
				return fmt.Errorf("render markdown: %w", err)
			}
			_, err = fmt.Fprint(c.Out, out)
			return err
		},
	}
	flags.addFlags(cmd)
	cmd.Flags().StringVarP(&kind, "kind", "k", pipeline.KindSubgroups, "analysis: cosets, subgroups, invariants, stabilizer")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the markdown to a file")
	cmd.Flags().BoolVar(&raw, "raw", false, "print markdown without terminal rendering")
	cmd.Flags().IntVarP(&maxSize, "max", "n", pipeline.DefaultMaxSize, "maximal subgroup index (subgroups)")
	cmd.Flags().BoolVar(&normal, "normal", false, "normal subgroups only (subgroups)")
	cmd.Flags().StringVar(&basepoint, "base", "", "word whose coset is stabilized (stabilizer)")
	_ = cmd.RegisterFlagCompletionFunc("kind", cobra.FixedCompletions(
		[]string{pipeline.KindCosets, pipeline.KindSubgroups, pipeline.KindInvariants, pipeline.KindStabilizer},
		cobra.ShellCompDirectiveNoFileComp))
	return cmd
}

// markdownReport writes res up as a markdown document.
func markdownReport(opts pipeline.Options, res *pipeline.Result) string {
	var b strings.Builder
	title := opts.Name
	if title == "" {
		title = "Group"
	}
	fmt.Fprintf(&b, "# %s: %s\n\n", title, res.Kind)

	b.WriteString("## Presentation\n\n")
	fmt.Fprintf(&b, "- generators: %s\n", codeList(opts.Generators))
	fmt.Fprintf(&b, "- relators: %s\n", codeList(opts.Relators))
	if len(opts.Subgroup) > 0 && res.Kind != pipeline.KindSubgroups && res.Kind != pipeline.KindInvariants {
		fmt.Fprintf(&b, "- subgroup: %s\n", codeList(opts.Subgroup))
	}
	b.WriteString("\n")

	switch res.Kind {
	case pipeline.KindCosets:
		t := res.Cosets
		fmt.Fprintf(&b, "## Coset table\n\n%d cosets.\n\n", t.Size())
		header := append([]string{"coset", "representative"}, t.Columns...)
		rows := make([][]string, len(t.Table))
		for i, row := range t.Table {
			rows[i] = append([]string{strconv.Itoa(i + 1), "`" + t.Representatives[i] + "`"}, intStrings(row)...)
		}
		writeMarkdownTable(&b, header, rows)

	case pipeline.KindSubgroups:
		fmt.Fprintf(&b, "## Subgroups of index at most %d\n\n", opts.MaxSize)
		if opts.NormalOnly {
			b.WriteString("Normal subgroups only.\n\n")
		}
		rows := make([][]string, len(res.Subgroups))
		for i, s := range res.Subgroups {
			normal := "no"
			if s.Normal {
				normal = "yes"
			}
			rows[i] = []string{strconv.Itoa(i + 1), strconv.Itoa(s.Index), normal, codeList(s.Generators), s.Invariants.Text}
		}
		writeMarkdownTable(&b, []string{"#", "index", "normal", "generators", "abelianized"}, rows)

	case pipeline.KindInvariants:
		fmt.Fprintf(&b, "## Abelian invariants\n\n%s\n", res.Invariants.Text)

	case pipeline.KindStabilizer:
		s := res.Stabilizer
		fmt.Fprintf(&b, "## Stabilizer of `%s`\n\n", s.Basepoint)
		fmt.Fprintf(&b, "- index: %d\n", s.Index)
		fmt.Fprintf(&b, "- generators: %s\n", codeList(s.Generators))
		fmt.Fprintf(&b, "- relators: %s\n", codeList(s.Relators))
		fmt.Fprintf(&b, "- abelianized: %s\n", s.Invariants.Text)
	}

	fmt.Fprintf(&b, "\n---\n\n_%s, %s_\n", res.String(), elapsedOrCached(res))
	return b.String()
}

func writeMarkdownTable(b *strings.Builder, header []string, rows [][]string) {
	b.WriteString("| " + strings.Join(header, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(header)) + "\n")
	for _, row := range rows {
		b.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}
}

// codeList formats words as inline code, or "none".
func codeList(words []string) string {
	if len(words) == 0 {
		return "none"
	}
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = "`" + w + "`"
	}
	return strings.Join(parts, ", ")
}

func intStrings(row []int) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = strconv.Itoa(v)
	}
	return out
}
