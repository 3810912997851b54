package graph

import (
	"strings"

	"github.com/TTAWDTT/ToGraph/internal/doctree"
)

// redundantSections lists boilerplate section titles dropped before graph
// construction. Sections like references or acknowledgments carry no
// topical structure worth graphing. Static configuration, never mutated.
var redundantSections = map[string]struct{}{
	"abstract":                {},
	"references":              {},
	"bibliography":            {},
	"acknowledgments":         {},
	"acknowledgements":        {},
	"author":                  {},
	"authors":                 {},
	"author information":      {},
	"authors information":     {},
	"funding":                 {},
	"conflicts of interest":   {},
	"conflict of interest":    {},
	"appendix":                {},
	"supplementary material":  {},
	"supplementary materials": {},
	"copyright":               {},
	"license":                 {},
	"permissions":             {},
	"keywords":                {},
	"key words":               {},
	"abbreviations":           {},
	"glossary":                {},
	"nomenclature":            {},
}

// IsRedundantTitle reports whether a section title names common boilerplate.
// The comparison is case-insensitive on the trimmed title.
func IsRedundantTitle(title string) bool {
	_, ok := redundantSections[strings.TrimSpace(strings.ToLower(title))]
	return ok
}

// FilterRedundant returns the forest with boilerplate sections removed.
// A matching node is dropped with its entire subtree; kept nodes have their
// children filtered recursively. The input forest is left untouched: kept
// nodes are shallow copies with rebuilt child lists.
func FilterRedundant(forest []*doctree.Node) []*doctree.Node {
	filtered := make([]*doctree.Node, 0, len(forest))
	for _, n := range forest {
		if IsRedundantTitle(n.Title) {
			continue
		}
		kept := *n
		kept.Children = FilterRedundant(n.Children)
		filtered = append(filtered, &kept)
	}
	return filtered
}
