package graph

import (
	"errors"
	"testing"
)

func TestGraph_AddNodeValidation(t *testing.T) {
	g := New()

	if err := g.AddNode(Node{ID: ""}); !errors.Is(err, ErrEmptyNodeID) {
		t.Errorf("expected ErrEmptyNodeID, got %v", err)
	}
	if err := g.AddNode(Node{ID: "a"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.AddNode(Node{ID: "a"}); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("expected ErrDuplicateNodeID, got %v", err)
	}
}

func TestGraph_AddEdgeValidation(t *testing.T) {
	g := New()
	if err := g.AddNode(Node{ID: "a"}); err != nil {
		t.Fatal(err)
	}
	if err := g.AddNode(Node{ID: "b"}); err != nil {
		t.Fatal(err)
	}

	if err := g.AddEdge(Edge{From: "missing", To: "b"}); !errors.Is(err, ErrUnknownSourceNode) {
		t.Errorf("expected ErrUnknownSourceNode, got %v", err)
	}
	if err := g.AddEdge(Edge{From: "a", To: "missing"}); !errors.Is(err, ErrUnknownTargetNode) {
		t.Errorf("expected ErrUnknownTargetNode, got %v", err)
	}
	if err := g.AddEdge(Edge{From: "a", To: "b", Relation: RelationContains}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !g.HasEdge("a", "b") {
		t.Error("expected HasEdge(a, b)")
	}
	if g.HasEdge("b", "a") {
		t.Error("HasEdge must be directional")
	}
}

func TestGraph_NodesInsertionOrder(t *testing.T) {
	g := New()
	ids := []string{"c", "a", "b"}
	for _, id := range ids {
		if err := g.AddNode(Node{ID: id}); err != nil {
			t.Fatal(err)
		}
	}

	nodes := g.Nodes()
	if len(nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(nodes))
	}
	for i, id := range ids {
		if nodes[i].ID != id {
			t.Errorf("position %d: expected %q, got %q", i, id, nodes[i].ID)
		}
	}
}

func TestGraph_CountsByRelation(t *testing.T) {
	g := New()
	for _, id := range []string{"a", "b", "c"} {
		if err := g.AddNode(Node{ID: id}); err != nil {
			t.Fatal(err)
		}
	}
	mustEdge(t, g, Edge{From: "a", To: "b", Relation: RelationContains})
	mustEdge(t, g, Edge{From: "a", To: "c", Relation: RelationRelated})

	if got := g.EdgeCountByRelation(RelationContains); got != 1 {
		t.Errorf("expected 1 contains edge, got %d", got)
	}
	if got := g.EdgeCountByRelation(RelationRelated); got != 1 {
		t.Errorf("expected 1 related edge, got %d", got)
	}
	if got := g.RelatedDegree("a"); got != 1 {
		t.Errorf("expected related degree 1 for a, got %d", got)
	}
	if got := g.RelatedDegree("c"); got != 1 {
		t.Errorf("expected related degree 1 for c, got %d", got)
	}
	if got := g.RelatedDegree("b"); got != 0 {
		t.Errorf("expected related degree 0 for b, got %d", got)
	}
}

func TestGraph_ValidateDetectsContainsCycle(t *testing.T) {
	g := New()
	for _, id := range []string{"a", "b"} {
		if err := g.AddNode(Node{ID: id}); err != nil {
			t.Fatal(err)
		}
	}
	mustEdge(t, g, Edge{From: "a", To: "b", Relation: RelationContains})
	mustEdge(t, g, Edge{From: "b", To: "a", Relation: RelationContains})

	if err := g.Validate(); !errors.Is(err, ErrContainsCycle) {
		t.Errorf("expected ErrContainsCycle, got %v", err)
	}
}

func TestGraph_ValidateDetectsMultipleParents(t *testing.T) {
	g := New()
	for _, id := range []string{"a", "b", "c"} {
		if err := g.AddNode(Node{ID: id}); err != nil {
			t.Fatal(err)
		}
	}
	mustEdge(t, g, Edge{From: "a", To: "c", Relation: RelationContains})
	mustEdge(t, g, Edge{From: "b", To: "c", Relation: RelationContains})

	if err := g.Validate(); !errors.Is(err, ErrMultipleParents) {
		t.Errorf("expected ErrMultipleParents, got %v", err)
	}
}

func TestGraph_ValidateAcceptsRelatedBackEdges(t *testing.T) {
	// Related edges are undirected in meaning; a pair of them between the
	// same nodes must not trip cycle detection, which applies to contains.
	g := New()
	for _, id := range []string{"a", "b"} {
		if err := g.AddNode(Node{ID: id}); err != nil {
			t.Fatal(err)
		}
	}
	mustEdge(t, g, Edge{From: "a", To: "b", Relation: RelationRelated})

	if err := g.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func mustEdge(t *testing.T, g *Graph, e Edge) {
	t.Helper()
	if err := g.AddEdge(e); err != nil {
		t.Fatalf("AddEdge(%+v): %v", e, err)
	}
}
