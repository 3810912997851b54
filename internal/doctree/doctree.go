// Package doctree defines the hierarchical outline produced by the parsers.
package doctree

// Node is a section of a document. Parsers return a forest of these in
// document order; each node owns its children exclusively.
type Node struct {
	Title    string  // Section heading
	Level    int     // Nesting depth, 1 for top-level sections
	Content  string  // Body text belonging to this section (children excluded)
	Position int     // Creation ordinal within the document, starting at 0
	Children []*Node // Subsections, in document order
}

// New returns a node with the given title, level, content and position.
func New(title string, level int, content string, position int) *Node {
	return &Node{Title: title, Level: level, Content: content, Position: position}
}

// AddChild appends child to n's children.
func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
}

// Walk visits n and all its descendants in depth-first pre-order.
// Returning false from fn stops the walk.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Count reports the number of nodes in the forest, descendants included.
func Count(forest []*Node) int {
	total := 0
	for _, root := range forest {
		root.Walk(func(*Node) bool {
			total++
			return true
		})
	}
	return total
}

// Titles returns the titles of the forest's roots in order.
func Titles(forest []*Node) []string {
	out := make([]string, 0, len(forest))
	for _, root := range forest {
		out = append(out, root.Title)
	}
	return out
}
