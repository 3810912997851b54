package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/TTAWDTT/ToGraph/internal/doctree"
)

// Heading-detection patterns, tried per line in priority order.
var (
	// A run of punctuation underlining the previous line: "====", "----".
	underlineRe = regexp.MustCompile(`^[=\-#*]{2,}$`)
	// Numbered sections: "1 Introduction", "2.3: Methods", "Chapter 4 Results".
	// Up to four dot-separated numeric groups; their count is the nesting level.
	numberedRe = regexp.MustCompile(`^(?i:chapter|section|part|article)?\s*(\d+)(?:\.(\d+))?(?:\.(\d+))?(?:\.(\d+))?\s*[-:.]?\s*([A-Z].*)`)
	// Roman-numeral sections: "IV. Discussion".
	romanRe = regexp.MustCompile(`^([IVXLCDM]+)\.\s+([A-Z].*)`)
	// Bare title-case lines, further constrained in isTitleCaseHeading.
	titleCaseRe = regexp.MustCompile(`^[A-Z][A-Za-z\s-]+$`)
)

// lineKind tags which heading rule a line of extracted text matched.
type lineKind int

const (
	linePlain lineKind = iota
	lineUnderline
	lineNumbered
	lineRoman
	lineTitleCase
)

// lineClass is the classification of one line: the rule that fired, the
// nesting level implied by numbering, and the heading title text.
type lineClass struct {
	kind  lineKind
	level int    // lineNumbered only
	title string // empty for lineUnderline (the previous line is the title) and linePlain
}

// classifyLine runs the heading cascade on a trimmed, non-blank line.
// prev is the previous non-blank line, consulted by the underline rule.
func classifyLine(line, prev string) lineClass {
	if underlineRe.MatchString(line) && len(prev) > 3 {
		return lineClass{kind: lineUnderline}
	}
	if m := numberedRe.FindStringSubmatch(line); m != nil {
		level := 0
		for _, g := range m[1:5] {
			if g != "" {
				level++
			}
		}
		return lineClass{kind: lineNumbered, level: level, title: strings.TrimSpace(m[5])}
	}
	if m := romanRe.FindStringSubmatch(line); m != nil {
		return lineClass{kind: lineRoman, title: strings.TrimSpace(m[2])}
	}
	if isTitleCaseHeading(line) {
		return lineClass{kind: lineTitleCase, title: line}
	}
	return lineClass{kind: linePlain}
}

// isTitleCaseHeading reports whether a line looks like a bare heading:
// short, 2-8 words, letters/spaces/hyphens only, no trailing period or comma.
func isTitleCaseHeading(line string) bool {
	if !titleCaseRe.MatchString(line) {
		return false
	}
	if len(line) <= 3 || len(line) >= 100 {
		return false
	}
	words := len(strings.Fields(line))
	if words < 2 || words > 8 {
		return false
	}
	return !strings.HasSuffix(line, ".") && !strings.HasSuffix(line, ",")
}

// ExtractStructure infers a section forest from plain text by running the
// heading cascade over each line. PDF text carries no heading markup, so
// the result is best-effort: lines that merely look like headings become
// sections, and real headings with unusual formatting are missed.
func ExtractStructure(text string) []*doctree.Node {
	var (
		roots      []*doctree.Node
		section    *doctree.Node // open level-1 tier
		subsection *doctree.Node // open level-2 tier
		subsub     *doctree.Node // open level-3 tier
		buf        []string
		prev       string
		position   int
	)

	deepest := func() *doctree.Node {
		switch {
		case subsub != nil:
			return subsub
		case subsection != nil:
			return subsection
		default:
			return section
		}
	}

	// flush assigns the buffered body lines to the deepest open node and
	// resets the buffer. With no open node the buffered prefix is dropped.
	flush := func() {
		if node := deepest(); node != nil && len(buf) > 0 {
			joined := strings.Join(buf, "\n")
			if node.Content != "" {
				node.Content += "\n" + joined
			} else {
				node.Content = joined
			}
		}
		buf = buf[:0]
	}

	openRoot := func(title string) {
		node := doctree.New(title, 1, "", position)
		position++
		roots = append(roots, node)
		section, subsection, subsub = node, nil, nil
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		switch c := classifyLine(line, prev); c.kind {
		case lineUnderline:
			// The buffered line that turned out to be the title is not body text.
			if n := len(buf); n > 0 && buf[n-1] == prev {
				buf = buf[:n-1]
			}
			flush()
			openRoot(prev)

		case lineNumbered:
			flush()
			node := doctree.New(c.title, c.level, "", position)
			position++
			switch {
			case c.level == 1:
				roots = append(roots, node)
				section, subsection, subsub = node, nil, nil
			case c.level == 2 && section != nil:
				section.AddChild(node)
				subsection, subsub = node, nil
			case c.level == 3 && subsection != nil:
				subsection.AddChild(node)
				subsub = node
			case c.level > 3 && subsub != nil:
				subsub.AddChild(node)
			}
			// No eligible parent open: the node is dropped, its position spent.

		case lineRoman:
			flush()
			openRoot(c.title)

		case lineTitleCase:
			flush()
			if section != nil {
				node := doctree.New(c.title, 2, "", position)
				position++
				section.AddChild(node)
				subsection, subsub = node, nil
			} else {
				openRoot(c.title)
			}

		default:
			buf = append(buf, line)
		}
		prev = line
	}
	flush()

	if len(roots) == 0 {
		return fallbackSections(text)
	}
	return roots
}

// ParsePages joins already-extracted per-page text and infers structure
// from the whole. Blank pages contribute nothing.
func ParsePages(pages []string) []*doctree.Node {
	return ExtractStructure(joinPages(pages))
}

func joinPages(pages []string) string {
	kept := make([]string, 0, len(pages))
	for _, p := range pages {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}

// fallbackSections synthesizes structure when the cascade found no headings:
// one pseudo-section per blank-line paragraph (capped at 10), or a single
// "Document" node carrying the input verbatim when there is at most one
// paragraph. Empty input also lands here.
func fallbackSections(text string) []*doctree.Node {
	var paragraphs []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}

	if len(paragraphs) <= 1 {
		return []*doctree.Node{doctree.New("Document", 1, text, 0)}
	}

	if len(paragraphs) > 10 {
		paragraphs = paragraphs[:10]
	}
	nodes := make([]*doctree.Node, 0, len(paragraphs))
	for i, para := range paragraphs {
		title := para
		if idx := strings.IndexByte(para, '\n'); idx >= 0 {
			title = para[:idx]
		}
		if utf8.RuneCountInString(title) > 50 {
			title = string([]rune(title)[:50]) + "..."
		}
		nodes = append(nodes, doctree.New(title, 1, para, i))
	}
	return nodes
}
