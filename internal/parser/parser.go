// Package parser turns uploaded documents into a forest of sections.
//
// Two strategies do real inference: the Markdown strategy reads explicit
// heading markers, and the heading cascade guesses structure in plain text
// (used for PDF and .txt input, where no markup exists). HTML and DOCX carry
// explicit heading markup and map onto the same forest shape directly.
package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/TTAWDTT/ToGraph/internal/doctree"
)

// Document is a parsed upload: the section forest plus the plain-text
// rendition the structure was derived from.
type Document struct {
	Title string          // Display title, filename-derived unless the source carries one
	Nodes []*doctree.Node // Section forest in document order
	Raw   string          // Plain text the forest was derived from
}

// Parser converts raw document bytes into a Document.
type Parser interface {
	Parse(r io.Reader, filename string) (*Document, error)
}

// SupportedExtensions lists the file extensions the shells accept.
var SupportedExtensions = map[string]bool{
	".pdf":      true,
	".md":       true,
	".markdown": true,
	".txt":      true,
	".html":     true,
	".htm":      true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".pdf":
		return &PDFParser{}, nil
	case ".txt":
		return &TextParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// docTitle derives a display title from a filename.
func docTitle(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
