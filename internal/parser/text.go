package parser

import "io"

// TextParser handles plain text files through the same heading cascade used
// for PDF text: underlines, numbering and title-case lines become sections.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := string(src)
	return &Document{
		Title: docTitle(filename),
		Nodes: ExtractStructure(text),
		Raw:   text,
	}, nil
}
