package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/TTAWDTT/ToGraph/internal/doctree"
	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files. Paragraphs with Heading styles carry
// explicit levels and map directly onto the section stack.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*Document, error) {
	// go-docx needs a ReadSeeker+size, so write to a temp file.
	tmp, err := os.CreateTemp("", "tograph-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, int64(size))
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	var (
		roots    []*doctree.Node
		stack    []*doctree.Node
		body     strings.Builder
		all      strings.Builder
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

	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}

		level := docxHeadingLevel(para)
		text := docxParagraphText(para)
		if text == "" {
			continue
		}
		if all.Len() > 0 {
			all.WriteString("\n")
		}
		all.WriteString(text)

		if level > 0 {
			flush()
			node := doctree.New(text, level, "", position)
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
			continue
		}

		if body.Len() > 0 {
			body.WriteString("\n\n")
		}
		body.WriteString(text)
	}
	flush()

	raw := all.String()
	if len(roots) == 0 {
		roots = []*doctree.Node{doctree.New("Document", 1, raw, 0)}
	}

	return &Document{Title: docTitle(filename), Nodes: roots, Raw: raw}, nil
}

func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := para.Properties.Style.Val
	for lvl := 1; lvl <= 6; lvl++ {
		if strings.EqualFold(style, fmt.Sprintf("Heading%d", lvl)) ||
			strings.EqualFold(style, fmt.Sprintf("heading %d", lvl)) {
			return lvl
		}
	}
	return 0
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
