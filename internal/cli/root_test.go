package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"html"}},
		{"png", []string{"png"}},
		{"html,dot", []string{"html", "dot"}},
		{" PNG , svg ", []string{"png", "svg"}},
		{"html,,dot", []string{"html", "dot"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := validateFormats([]string{"html", "png", "svg", "dot"}); err != nil {
		t.Errorf("valid formats rejected: %v", err)
	}
	if err := validateFormats([]string{"html", "gif"}); err == nil {
		t.Error("expected error for unknown format")
	}
	if err := validateFormats(nil); err == nil {
		t.Error("expected error for empty format list")
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		output string
		input  string
		format string
		multi  bool
		want   string
	}{
		{"out.html", "doc.md", "html", false, "out.html"},
		{"", "doc.md", "html", false, "doc.html"},
		{"base.html", "doc.md", "dot", true, "base.dot"},
		{"", "notes.txt", "svg", true, "notes.svg"},
	}
	for _, tt := range tests {
		got := outputPath(tt.output, tt.input, tt.format, tt.multi)
		if got != tt.want {
			t.Errorf("outputPath(%q, %q, %q, %v) = %q, want %q",
				tt.output, tt.input, tt.format, tt.multi, got, tt.want)
		}
	}
}

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun_WritesHTML(t *testing.T) {
	input := writeInput(t, "doc.md", "# Alpha\n\nalpha body.\n\n## Beta\n\nbeta body.\n")
	output := filepath.Join(filepath.Dir(input), "graph.html")

	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{input, "-o", output})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v\n%s", err, out.String())
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	if !strings.Contains(string(data), "vis-network") {
		t.Error("output is not the interactive page")
	}
	progress := out.String()
	if !strings.Contains(progress, "Graph built with 2 nodes") {
		t.Errorf("unexpected progress output:\n%s", progress)
	}
	if !strings.Contains(progress, "Conversion complete") {
		t.Errorf("missing completion line:\n%s", progress)
	}
}

func TestRun_MultipleFormats(t *testing.T) {
	input := writeInput(t, "doc.md", "# Alpha\n\nalpha body.\n")
	base := filepath.Join(filepath.Dir(input), "out.html")

	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{input, "-o", base, "-f", "html,dot", "-t", "dark", "--title", "Doc Map"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v\n%s", err, out.String())
	}

	html, err := os.ReadFile(filepath.Join(filepath.Dir(input), "out.html"))
	if err != nil {
		t.Fatalf("html output missing: %v", err)
	}
	if !strings.Contains(string(html), "<title>Doc Map</title>") {
		t.Error("html output missing custom title")
	}

	dot, err := os.ReadFile(filepath.Join(filepath.Dir(input), "out.dot"))
	if err != nil {
		t.Fatalf("dot output missing: %v", err)
	}
	if !strings.Contains(string(dot), "digraph knowledge") {
		t.Error("dot output malformed")
	}
}

func TestRun_InvalidTheme(t *testing.T) {
	input := writeInput(t, "doc.md", "# Alpha\n")

	cmd := New()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{input, "-t", "sepia"})
	if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "invalid theme") {
		t.Errorf("expected invalid theme error, got %v", err)
	}
}

func TestRun_InvalidFormat(t *testing.T) {
	input := writeInput(t, "doc.md", "# Alpha\n")

	cmd := New()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{input, "-f", "gif"})
	if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "invalid format") {
		t.Errorf("expected invalid format error, got %v", err)
	}
}

func TestRun_MissingInput(t *testing.T) {
	cmd := New()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "absent.md")})
	if err := cmd.Execute(); err == nil {
		t.Error("expected error for missing input file")
	}
}
