package action

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// edgeColors cycles through colors for the generators of a Schreier graph.
var edgeColors = []string{"#1f77b4", "#d62728", "#2ca02c", "#9467bd", "#ff7f0e", "#8c564b", "#e377c2", "#17becf"}

// DOTOptions configures Schreier graph output.
type DOTOptions struct {
	// Title is written as the graph label when non-empty.
	Title string

	// Labels names the points; when nil, points are printed with %v.
	Labels func(x any) string
}

// ToDOT returns the Schreier graph of a in Graphviz DOT format: one node per
// point and one edge x -> x·g per point and generator, colored by generator.
func ToDOT[E comparable](a GroupAction[E], opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph Schreier {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontname=\"SF Mono, Menlo, monospace\", fontsize=12];\n")
	buf.WriteString("  edge [arrowsize=0.6];\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n", opts.Title)
	}
	buf.WriteString("\n")

	ids := make(map[E]int)
	for x := range a.Domain() {
		ids[x] = len(ids)
		fmt.Fprintf(&buf, "  n%d [label=%q];\n", ids[x], pointLabel(x, opts))
	}

	buf.WriteString("\n")
	names := a.Group().Alphabet().Names()
	for k, g := range a.Group().Generators() {
		color := edgeColors[k%len(edgeColors)]
		for x := range a.Domain() {
			y, ok := a.Apply(x, g)
			if !ok {
				continue
			}
			fmt.Fprintf(&buf, "  n%d -> n%d [label=%q, color=%q, fontcolor=%q];\n",
				ids[x], ids[y], names[k], color, color)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func pointLabel(x any, opts DOTOptions) string {
	if opts.Labels != nil {
		return opts.Labels(x)
	}
	return fmt.Sprint(x)
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
