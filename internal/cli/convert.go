package cli

import (
	"github.com/spf13/cobra"

	fpio "github.com/matzehuels/fpgroups/pkg/io"
)

// convertCommand rewrites a presentation in another file format.
func (c *CLI) convertCommand() *cobra.Command {
	var (
		input  presentationInput
		output string
		to     string
	)

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert a presentation between TOML, YAML and JSON",
		Long: `Convert a presentation between TOML, YAML and JSON.

The presentation can also be assembled from --gen/--rel/--sub flags, which
makes convert a quick way to start a presentation file.`,
		Example: `  fpgroups convert s3.toml -o s3.yaml
  fpgroups convert -g a,b -r 'a^2' -r 'b^3' -r '(a*b)^2' --to json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := input.load(cmd, args)
			if err != nil {
				return err
			}
			if _, err := p.Group(); err != nil {
				return err
			}
			if output != "" {
				if err := fpio.Export(p, output); err != nil {
					return err
				}
				printSuccess(c.Out, "Wrote %s", p)
				printFile(c.Out, output)
				return nil
			}
			return fpio.Write(p, c.Out, fpio.Format(to))
		},
	}

	input.addFlags(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file; the format follows its extension")
	cmd.Flags().StringVar(&to, "to", string(fpio.FormatTOML), "format for stdout: toml, yaml, json")
	return cmd
}
