package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/TTAWDTT/ToGraph/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return &Document{
		Title: docTitle(filename),
		Nodes: ParseMarkdown(src),
		Raw:   string(src),
	}, nil
}

// ParseMarkdown builds a section forest from Markdown source. Headings open
// nodes at their marker depth; body blocks accumulate into the deepest open
// node. Text before the first heading belongs to no node and is dropped.
func ParseMarkdown(src []byte) []*doctree.Node {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var (
		roots    []*doctree.Node
		stack    []*doctree.Node
		body     bytes.Buffer
		position int
	)

	flush := func() {
		t := strings.TrimSpace(body.String())
		if t != "" && len(stack) > 0 {
			top := stack[len(stack)-1]
			if top.Content != "" {
				top.Content += "\n\n" + t
			} else {
				top.Content = t
			}
		}
		body.Reset()
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok {
			if t := blockText(n, src); t != "" {
				if body.Len() > 0 {
					body.WriteString("\n\n")
				}
				body.WriteString(t)
			}
			continue
		}

		flush()
		node := doctree.New(strings.TrimSpace(string(h.Text(src))), h.Level, "", position)
		position++

		// Close nodes whose nesting the new heading supersedes or equals.
		for len(stack) > 0 && stack[len(stack)-1].Level >= h.Level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) > 0 {
			stack[len(stack)-1].AddChild(node)
		} else {
			roots = append(roots, node)
		}
		stack = append(stack, node)
	}
	flush()

	if len(roots) == 0 {
		return []*doctree.Node{doctree.New("Document", 1, string(src), 0)}
	}
	return roots
}

// blockText returns the source text of a block-level AST node. Blocks that
// own source lines (paragraphs, code blocks) are sliced verbatim; container
// blocks (lists, quotes) concatenate their children.
func blockText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	writeBlockText(&buf, n, src)
	return strings.TrimSpace(buf.String())
}

func writeBlockText(buf *bytes.Buffer, n ast.Node, src []byte) {
	if lines := n.Lines(); lines != nil && lines.Len() > 0 {
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
		}
		return
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		writeBlockText(buf, c, src)
	}
}
