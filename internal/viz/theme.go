// Package viz renders a knowledge graph as interactive HTML, Graphviz DOT,
// or static SVG/PNG images.
package viz

import "strings"

// Theme is a named color palette applied to every output format.
type Theme struct {
	Name       string
	Background string
	Node       string
	NodeBorder string
	Text       string
	Edge       string
	Highlight  string
	Accent     string
}

// Light is the default palette: dark text on white.
var Light = Theme{
	Name:       "light",
	Background: "#ffffff",
	Node:       "#4A90E2",
	NodeBorder: "#2E5C8A",
	Text:       "#333333",
	Edge:       "#999999",
	Highlight:  "#E74C3C",
	Accent:     "#F39C12",
}

// Dark is the inverted palette for dark backgrounds.
var Dark = Theme{
	Name:       "dark",
	Background: "#1a1a1a",
	Node:       "#3A7BC8",
	NodeBorder: "#5DADE2",
	Text:       "#E0E0E0",
	Edge:       "#666666",
	Highlight:  "#E74C3C",
	Accent:     "#F39C12",
}

// ThemeByName resolves a theme name, case-insensitively. The second return
// is false for unknown names.
func ThemeByName(name string) (Theme, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "light":
		return Light, true
	case "dark":
		return Dark, true
	}
	return Theme{}, false
}

// nodeColor picks the fill for a section by nesting depth: top-level
// sections use the primary node color, subsections the accent, anything
// deeper the highlight.
func (t Theme) nodeColor(level int) string {
	switch level {
	case 1:
		return t.Node
	case 2:
		return t.Accent
	default:
		return t.Highlight
	}
}

// nodeSize maps nesting depth to a display radius: deeper sections shrink,
// bottoming out at 15.
func nodeSize(level int) int {
	size := 30 - level*3
	if size < 15 {
		return 15
	}
	return size
}
