// Package cli implements the tograph command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TTAWDTT/ToGraph/internal/convert"
	"github.com/TTAWDTT/ToGraph/internal/graph"
	"github.com/TTAWDTT/ToGraph/internal/viz"
)

const (
	formatHTML = "html" // interactive vis-network page
	formatPNG  = "png"  // static image via graphviz
	formatSVG  = "svg"  // static image via graphviz
	formatDOT  = "dot"  // graphviz source, for external tooling
)

// rootOpts holds the command-line flags for the convert run.
type rootOpts struct {
	output         string   // output file (single format) or base path (multiple)
	formats        []string // output formats, from the comma-separated -f flag
	theme          string   // color theme: "light" or "dark"
	title          string   // graph page title
	keepRedundant  bool     // keep boilerplate sections (references, appendix, ...)
	minSharedTerms int      // shared-term threshold for related edges
	budget         int      // per-node related-edge cap
	pdfFallback    bool     // shell out to pdftotext when native extraction is empty
}

// New creates the root command: parse a document, build its knowledge
// graph, and write it in one or more output formats.
func New() *cobra.Command {
	var formatsStr string
	opts := rootOpts{
		theme:          "light",
		title:          "Knowledge Graph",
		minSharedTerms: graph.DefaultMinSharedTerms,
		budget:         graph.DefaultRelationshipBudget,
		pdfFallback:    true,
	}

	cmd := &cobra.Command{
		Use:   "tograph [input]",
		Short: "Convert a document into an interactive knowledge graph",
		Long: `tograph parses a PDF, Markdown, text, HTML or DOCX document into a
section hierarchy, derives a knowledge graph linking related sections,
and renders it as an interactive HTML page, a static SVG/PNG image, or
Graphviz DOT.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			if _, ok := viz.ThemeByName(opts.theme); !ok {
				return fmt.Errorf("invalid theme: %s (must be 'light' or 'dark')", opts.theme)
			}
			return runConvert(cmd.Context(), args[0], &opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple formats)")
	cmd.Flags().StringVarP(&formatsStr, "formats", "f", "", "output format(s): html (default), png, svg, dot (comma-separated)")
	cmd.Flags().StringVarP(&opts.theme, "theme", "t", opts.theme, "color theme: light (default), dark")
	cmd.Flags().StringVar(&opts.title, "title", opts.title, "title shown on the rendered graph")
	cmd.Flags().BoolVar(&opts.keepRedundant, "keep-redundant", false, "keep boilerplate sections (references, appendix, ...)")
	cmd.Flags().IntVar(&opts.minSharedTerms, "min-shared-terms", opts.minSharedTerms, "shared key terms required to link two sections")
	cmd.Flags().IntVar(&opts.budget, "budget", opts.budget, "max related edges per section")
	cmd.Flags().BoolVar(&opts.pdfFallback, "pdftotext-fallback", opts.pdfFallback, "fall back to the pdftotext binary when PDF extraction yields nothing")

	return cmd
}

// parseFormats parses the -f flag into a slice of formats.
// If empty, defaults to ["html"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatHTML}
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(strings.ToLower(f)); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{
	formatHTML: true,
	formatPNG:  true,
	formatSVG:  true,
	formatDOT:  true,
}

// validateFormats checks that all requested formats are supported.
func validateFormats(formats []string) error {
	if len(formats) == 0 {
		return fmt.Errorf("no output format given")
	}
	for _, f := range formats {
		if !validFormats[f] {
			return fmt.Errorf("invalid format: %s (must be 'html', 'png', 'svg', or 'dot')", f)
		}
	}
	return nil
}

// outputPath derives the output file for one format. A single format with
// an explicit --output writes exactly there; otherwise the path is the
// output base (or the input name) with the format as extension.
func outputPath(output, input, format string, multi bool) string {
	if !multi && output != "" {
		return output
	}
	base := output
	if base == "" {
		base = input
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + "." + format
}

// runConvert parses the input document, builds the graph, and writes every
// requested output format, reporting progress as it goes.
func runConvert(ctx context.Context, input string, opts *rootOpts, out io.Writer) error {
	f, err := os.Open(input)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintf(out, "Processing %s...\n", filepath.Base(input))
	res, err := convert.Run(f, filepath.Base(input), convert.Options{
		Graph: graph.Options{
			RelationshipBudget: opts.budget,
			MinSharedTerms:     opts.minSharedTerms,
			KeepRedundant:      opts.keepRedundant,
		},
		PDFFallback: opts.pdfFallback,
	})
	if err != nil {
		return err
	}

	stats := res.Stats()
	fmt.Fprintf(out, "Extracted %d top-level sections\n", stats.Sections)
	fmt.Fprintf(out, "Graph built with %d nodes and %d edges\n", stats.Nodes, stats.Edges)

	theme, _ := viz.ThemeByName(opts.theme)
	multi := len(opts.formats) > 1
	for _, format := range opts.formats {
		path := outputPath(opts.output, input, format, multi)
		data, err := renderFormat(ctx, res, theme, opts.title, format)
		if err != nil {
			return fmt.Errorf("render %s: %w", format, err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintf(out, "Saved %s\n", path)
	}

	fmt.Fprintln(out, "Conversion complete")
	return nil
}

func renderFormat(ctx context.Context, res *convert.Result, theme viz.Theme, title, format string) ([]byte, error) {
	switch format {
	case formatHTML:
		return viz.RenderHTML(res.Graph, res.Content, viz.HTMLOptions{Title: title, Theme: theme})
	case formatDOT:
		return []byte(viz.ToDOT(res.Graph, theme)), nil
	case formatSVG:
		return viz.RenderSVG(ctx, viz.ToDOT(res.Graph, theme))
	case formatPNG:
		return viz.RenderPNG(ctx, viz.ToDOT(res.Graph, theme))
	}
	return nil, fmt.Errorf("invalid format: %s", format)
}
