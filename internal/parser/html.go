package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/TTAWDTT/ToGraph/internal/doctree"
	"golang.org/x/net/html"
)

// HTMLParser handles HTML files. Heading tags carry explicit levels, so
// h1-h6 map directly onto the section stack with no inference.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*Document, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	title := docTitle(filename)
	if t := findTitle(doc); t != "" {
		title = t
	}

	scope := findBody(doc)
	if scope == nil {
		scope = doc
	}
	raw := textContent(scope)

	var (
		roots    []*doctree.Node
		stack    []*doctree.Node
		body     strings.Builder
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

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 {
				flush()
				node := doctree.New(textContent(n), level, "", position)
				position++
				for len(stack) > 0 && stack[len(stack)-1].Level >= level {
					stack = stack[:len(stack)-1]
				}
				if len(stack) > 0 {
					stack[len(stack)-1].AddChild(node)
				} else {
					roots = append(roots, node)
				}
				stack = append(stack, node)
				return // Heading text already extracted; don't recurse.
			}

			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "p", "li", "td", "blockquote", "pre":
				if t := textContent(n); t != "" {
					if body.Len() > 0 {
						body.WriteString("\n\n")
					}
					body.WriteString(t)
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(scope)
	leftover := strings.TrimSpace(body.String())
	flush()

	if len(roots) == 0 {
		content := leftover
		if content == "" {
			content = raw
		}
		roots = []*doctree.Node{doctree.New("Document", 1, content, 0)}
	}

	return &Document{Title: title, Nodes: roots, Raw: raw}, nil
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
