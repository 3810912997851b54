package viz

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/TTAWDTT/ToGraph/internal/graph"
)

// ToDOT converts a knowledge graph to Graphviz DOT. The resulting string
// can be rendered with [RenderSVG] or [RenderPNG], or fed to any graphviz
// tool. Section nodes are filled by level and related edges drawn dashed,
// matching the interactive page.
func ToDOT(g *graph.Graph, theme Theme) string {
	if theme.Name == "" {
		theme = Light
	}

	var buf bytes.Buffer
	buf.WriteString("digraph knowledge {\n")
	buf.WriteString("  rankdir=TB;\n")
	fmt.Fprintf(&buf, "  bgcolor=%q;\n", theme.Background)
	fmt.Fprintf(&buf, "  node [shape=box, style=\"rounded,filled\", fontsize=14, fontcolor=%q, margin=\"0.2,0.1\"];\n", theme.Text)
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%q, color=%q, penwidth=2];\n",
			n.ID, n.Label, theme.nodeColor(n.Level), theme.NodeBorder)
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if e.Relation == graph.RelationRelated {
			fmt.Fprintf(&buf, "  %q -> %q [color=%q, penwidth=1, style=dashed];\n", e.From, e.To, theme.Edge)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [color=%q, penwidth=2];\n", e.From, e.To, theme.Edge)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.PNG)
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
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
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}
