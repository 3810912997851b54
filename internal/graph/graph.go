// Package graph builds the knowledge graph derived from a document's
// section forest: one node per section, `contains` edges mirroring the
// hierarchy, and budget-capped `related` edges mined from shared key terms.
package graph

import "errors"

var (
	// ErrEmptyNodeID is returned by [Graph.AddNode] when the node ID is empty.
	ErrEmptyNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists. IDs embed the section's position ordinal, so a
	// duplicate indicates a malformed forest.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the To node
	// does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrInvalidEdgeEndpoint is returned by [Graph.Validate] when an edge
	// references a node that doesn't exist. This indicates graph corruption.
	ErrInvalidEdgeEndpoint = errors.New("invalid edge endpoint")

	// ErrMultipleParents is returned by [Graph.Validate] when a node has more
	// than one incoming contains edge. The contains relation must mirror a
	// forest, where every section has at most one parent.
	ErrMultipleParents = errors.New("node has multiple contains parents")

	// ErrContainsCycle is returned by [Graph.Validate] when the contains
	// edges form a cycle, which cannot happen for a well-formed forest.
	ErrContainsCycle = errors.New("contains edges form a cycle")
)

// Relation distinguishes the two edge kinds.
type Relation string

const (
	// RelationContains mirrors the section hierarchy: parent section to
	// child section, always present for every child.
	RelationContains Relation = "contains"
	// RelationRelated links two sections that share key terms but are not
	// hierarchically connected.
	RelationRelated Relation = "related"
)

// Node is one section of the document.
type Node struct {
	ID      string // Sanitized title plus position ordinal, unique per graph
	Label   string // Original heading text
	Level   int    // Nesting depth of the underlying section
	Preview string // Content truncated to a display budget
	Type    string // Always "section"
}

// Edge is a directed, typed connection between two sections.
type Edge struct {
	From        string
	To          string
	Relation    Relation
	SharedTerms []string // Up to 3 shared key terms; RelationRelated only
}

// Graph is the directed knowledge graph built from one conversion.
// Node iteration follows insertion order, which downstream consumers
// (relationship mining, serialization) depend on. Not safe for concurrent
// use; each conversion builds its own.
type Graph struct {
	nodes    map[string]*Node
	order    []string // node IDs in insertion order
	edges    []Edge
	outgoing map[string][]string
	incoming map[string][]string
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// AddNode adds a node. Returns ErrEmptyNodeID or ErrDuplicateNodeID when
// the ID is unusable.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrEmptyNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	node := &n
	g.nodes[node.ID] = node
	g.order = append(g.order, node.ID)
	return nil
}

// AddEdge adds a directed edge between two existing nodes. Returns
// ErrUnknownSourceNode or ErrUnknownTargetNode when an endpoint is missing.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := g.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	g.edges = append(g.edges, e)
	g.outgoing[e.From] = append(g.outgoing[e.From], e.To)
	g.incoming[e.To] = append(g.incoming[e.To], e.From)
	return nil
}

// HasEdge reports whether any edge runs from→to.
func (g *Graph) HasEdge(from, to string) bool {
	for _, t := range g.outgoing[from] {
		if t == to {
			return true
		}
	}
	return false
}

// Node returns the node with the given ID, or nil and false if not found.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// EdgeCountByRelation returns the number of edges with the given relation.
func (g *Graph) EdgeCountByRelation(rel Relation) int {
	count := 0
	for _, e := range g.edges {
		if e.Relation == rel {
			count++
		}
	}
	return count
}

// RelatedDegree returns the number of related edges touching the node,
// counting both directions.
func (g *Graph) RelatedDegree(id string) int {
	count := 0
	for _, e := range g.edges {
		if e.Relation == RelationRelated && (e.From == id || e.To == id) {
			count++
		}
	}
	return count
}

// Validate checks graph integrity: every edge connects existing nodes, no
// node has more than one contains parent, and the contains edges are
// acyclic. A violation indicates a bug in the builder, not bad input.
func (g *Graph) Validate() error {
	containsParents := make(map[string]int)
	containsOut := make(map[string][]string)
	for _, e := range g.edges {
		if _, ok := g.nodes[e.From]; !ok {
			return ErrInvalidEdgeEndpoint
		}
		if _, ok := g.nodes[e.To]; !ok {
			return ErrInvalidEdgeEndpoint
		}
		if e.Relation == RelationContains {
			containsParents[e.To]++
			containsOut[e.From] = append(containsOut[e.From], e.To)
		}
	}
	for _, parents := range containsParents {
		if parents > 1 {
			return ErrMultipleParents
		}
	}
	return detectContainsCycle(g.order, containsOut)
}

func detectContainsCycle(ids []string, out map[string][]string) error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(ids))
	var hasCycle bool

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, child := range out[id] {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				hasCycle = true
				return
			}
		}
		color[id] = black
	}

	for _, id := range ids {
		if color[id] == white {
			dfs(id)
			if hasCycle {
				return ErrContainsCycle
			}
		}
	}
	return nil
}
