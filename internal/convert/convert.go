// Package convert runs the document-to-graph pipeline shared by the CLI
// and the web server: pick a parser for the upload, build the knowledge
// graph, report stats.
package convert

import (
	"fmt"
	"io"

	"github.com/TTAWDTT/ToGraph/internal/graph"
	"github.com/TTAWDTT/ToGraph/internal/parser"
)

// Options configure one conversion.
type Options struct {
	// Graph holds the builder knobs: relationship budget, shared-term
	// threshold, and the keep-redundant switch.
	Graph graph.Options
	// PDFFallback shells out to pdftotext when the native PDF reader
	// extracts nothing.
	PDFFallback bool
}

// Result is one finished conversion.
type Result struct {
	Document *parser.Document  // parsed upload, section forest included
	Graph    *graph.Graph      // knowledge graph over the filtered forest
	Content  map[string]string // node ID -> full section text
}

// Stats summarize a conversion for API responses and CLI output.
type Stats struct {
	Nodes    int `json:"nodes"`
	Edges    int `json:"edges"`
	Sections int `json:"sections"`
}

// Run parses the named document from r and builds its knowledge graph.
func Run(r io.Reader, filename string, opts Options) (*Result, error) {
	p, err := parser.ForFile(filename)
	if err != nil {
		return nil, err
	}
	if pdf, ok := p.(*parser.PDFParser); ok {
		pdf.FallbackPdftotext = opts.PDFFallback
	}

	doc, err := p.Parse(r, filename)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	g, content, err := graph.NewBuilder(opts.Graph).Build(doc.Nodes, doc.Raw)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	return &Result{Document: doc, Graph: g, Content: content}, nil
}

// Stats reports graph size plus the number of top-level sections the
// parser found. Sections counts the forest before boilerplate filtering,
// so it can exceed the graph's top-level node count.
func (r *Result) Stats() Stats {
	return Stats{
		Nodes:    r.Graph.NodeCount(),
		Edges:    r.Graph.EdgeCount(),
		Sections: len(r.Document.Nodes),
	}
}
