package convert

import (
	"strings"
	"testing"

	"github.com/TTAWDTT/ToGraph/internal/graph"
)

const sampleMarkdown = `# Architecture

The system splits into a parsing layer and a rendering layer.

## Parsing

Documents flow through format detection before structure inference.

# Deployment

The rendering layer ships as a single binary.
`

func TestRun_Markdown(t *testing.T) {
	res, err := Run(strings.NewReader(sampleMarkdown), "design.md", Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Document.Title != "design" {
		t.Errorf("title = %q, want %q", res.Document.Title, "design")
	}
	if got := res.Graph.NodeCount(); got != 3 {
		t.Errorf("node count = %d, want 3", got)
	}
	if got := res.Graph.EdgeCountByRelation(graph.RelationContains); got != 1 {
		t.Errorf("contains count = %d, want 1", got)
	}
	if err := res.Graph.Validate(); err != nil {
		t.Errorf("graph validation: %v", err)
	}

	stats := res.Stats()
	if stats.Nodes != 3 || stats.Sections != 2 {
		t.Errorf("stats = %+v, want 3 nodes, 2 sections", stats)
	}
	if len(res.Content) != 3 {
		t.Errorf("content map has %d entries, want 3", len(res.Content))
	}
}

func TestRun_SectionsCountedBeforeFiltering(t *testing.T) {
	// The References root is dropped from the graph, but the section stat
	// reflects what the parser found.
	md := "# Introduction\n\nBody.\n\n# References\n\n[1] Smith.\n"
	res, err := Run(strings.NewReader(md), "paper.md", Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := res.Graph.NodeCount(); got != 1 {
		t.Errorf("node count = %d, want 1", got)
	}
	stats := res.Stats()
	if stats.Sections != 2 {
		t.Errorf("sections = %d, want 2", stats.Sections)
	}
}

func TestRun_KeepRedundantKnob(t *testing.T) {
	md := "# Introduction\n\nBody.\n\n# References\n\n[1] Smith.\n"
	res, err := Run(strings.NewReader(md), "paper.md", Options{
		Graph: graph.Options{KeepRedundant: true},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := res.Graph.NodeCount(); got != 2 {
		t.Errorf("node count = %d, want 2 with filter disabled", got)
	}
}

func TestRun_PlainText(t *testing.T) {
	text := "1. Scope\nThis document covers the build system.\n\n2. Targets\nEach target maps to one artifact.\n"
	res, err := Run(strings.NewReader(text), "notes.txt", Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := res.Graph.NodeCount(); got != 2 {
		t.Errorf("node count = %d, want 2", got)
	}
	if res.Document.Raw == "" {
		t.Error("raw text missing from document")
	}
}

func TestRun_UnsupportedExtension(t *testing.T) {
	_, err := Run(strings.NewReader("x"), "tables.csv", Options{})
	if err == nil {
		t.Fatal("expected error for unsupported extension")
	}
	if !strings.Contains(err.Error(), "unsupported") {
		t.Errorf("unexpected error: %v", err)
	}
}
