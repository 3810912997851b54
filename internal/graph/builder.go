package graph

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/TTAWDTT/ToGraph/internal/doctree"
)

const (
	// DefaultRelationshipBudget caps related edges per node to keep the
	// rendered graph readable.
	DefaultRelationshipBudget = 3
	// DefaultMinSharedTerms is the intersection size required before two
	// sections are considered related.
	DefaultMinSharedTerms = 3

	// miningNodeCap switches relationship mining to shallow nodes only when
	// the graph is larger than this, bounding the pairwise scan.
	miningNodeCap = 50
	// miningMaxLevel is the deepest level mined once the cap is exceeded.
	miningMaxLevel = 2
	// sharedTermSample is how many shared terms a related edge carries.
	sharedTermSample = 3
	// previewRunes is the display budget for a node's content preview.
	previewRunes = 500
)

var (
	idStripRe    = regexp.MustCompile(`[^\w\s-]`)
	idCollapseRe = regexp.MustCompile(`[-\s]+`)
)

// Options configure graph construction.
type Options struct {
	// RelationshipBudget is the per-node cap on related edges.
	// Zero means DefaultRelationshipBudget.
	RelationshipBudget int
	// MinSharedTerms is the shared-term threshold for a related edge.
	// Zero means DefaultMinSharedTerms; 2 gives looser linking.
	MinSharedTerms int
	// KeepRedundant skips the boilerplate-section filter.
	KeepRedundant bool
}

func (o Options) withDefaults() Options {
	if o.RelationshipBudget <= 0 {
		o.RelationshipBudget = DefaultRelationshipBudget
	}
	if o.MinSharedTerms <= 0 {
		o.MinSharedTerms = DefaultMinSharedTerms
	}
	return o
}

// Builder turns a section forest into a knowledge graph.
type Builder struct {
	opts Options
	raw  string
}

// NewBuilder returns a builder with the given options.
func NewBuilder(opts Options) *Builder {
	return &Builder{opts: opts.withDefaults()}
}

// Build constructs the graph from a forest. Phase one walks the (optionally
// filtered) forest depth-first, adding one node per section and a contains
// edge from each parent; phase two mines related edges between sections
// that share key terms. The returned map carries every node's full content,
// keyed by node ID. rawText is the source text the forest came from; it is
// retained with the builder and not consulted during construction.
//
// Build performs no I/O. The only errors are integrity violations that
// indicate a malformed forest, such as duplicate title-position pairs;
// malformed content merely degrades to empty term sets.
func (b *Builder) Build(forest []*doctree.Node, rawText string) (*Graph, map[string]string, error) {
	b.raw = rawText
	if !b.opts.KeepRedundant {
		forest = FilterRedundant(forest)
	}

	g := New()
	content := make(map[string]string)
	for _, root := range forest {
		if err := b.addTree(g, content, root, ""); err != nil {
			return nil, nil, err
		}
	}

	if err := b.mineRelationships(g, content); err != nil {
		return nil, nil, err
	}
	return g, content, nil
}

// addTree adds node and its subtree to the graph, wiring contains edges.
func (b *Builder) addTree(g *Graph, content map[string]string, node *doctree.Node, parentID string) error {
	id := NodeID(node)
	err := g.AddNode(Node{
		ID:      id,
		Label:   node.Title,
		Level:   node.Level,
		Preview: truncateRunes(node.Content, previewRunes),
		Type:    "section",
	})
	if err != nil {
		return fmt.Errorf("add node %q: %w", id, err)
	}
	content[id] = node.Content

	if parentID != "" {
		err := g.AddEdge(Edge{From: parentID, To: id, Relation: RelationContains})
		if err != nil {
			return fmt.Errorf("add contains edge %q -> %q: %w", parentID, id, err)
		}
	}

	for _, child := range node.Children {
		if err := b.addTree(g, content, child, id); err != nil {
			return err
		}
	}
	return nil
}

// NodeID derives the graph key for a section: the title stripped of
// punctuation with whitespace runs collapsed to underscores, suffixed with
// the position ordinal so duplicate titles stay distinct.
func NodeID(node *doctree.Node) string {
	clean := idStripRe.ReplaceAllString(node.Title, "")
	clean = idCollapseRe.ReplaceAllString(clean, "_")
	return fmt.Sprintf("%s_%d", clean, node.Position)
}

// mineRelationships adds related edges between sections sharing key terms.
// The scan is a single greedy pass over unordered pairs in insertion order:
// it finds some bounded set of related pairs, not a maximum matching.
func (b *Builder) mineRelationships(g *Graph, content map[string]string) error {
	candidates := g.Nodes()

	// Large graphs mine only shallow sections to bound the pairwise scan.
	if g.NodeCount() > miningNodeCap {
		shallow := candidates[:0]
		for _, n := range candidates {
			if n.Level <= miningMaxLevel {
				shallow = append(shallow, n)
			}
		}
		candidates = shallow
	}

	terms := make(map[string][]string, len(candidates))
	for _, n := range candidates {
		terms[n.ID] = KeyTerms(content[n.ID])
	}

	budget := b.opts.RelationshipBudget
	counts := make(map[string]int, len(candidates))
	for i, a := range candidates {
		if counts[a.ID] >= budget {
			continue
		}
		for _, c := range candidates[i+1:] {
			if counts[c.ID] >= budget {
				continue
			}
			shared := sharedTerms(terms[a.ID], terms[c.ID])
			if len(shared) < b.opts.MinSharedTerms {
				continue
			}
			// Never shadow a hierarchy edge in either direction.
			if g.HasEdge(a.ID, c.ID) || g.HasEdge(c.ID, a.ID) {
				continue
			}
			err := g.AddEdge(Edge{
				From:        a.ID,
				To:          c.ID,
				Relation:    RelationRelated,
				SharedTerms: termSample(shared),
			})
			if err != nil {
				return fmt.Errorf("add related edge %q -> %q: %w", a.ID, c.ID, err)
			}
			counts[a.ID]++
			counts[c.ID]++
			if counts[a.ID] >= budget {
				break
			}
		}
	}
	return nil
}

// termSample returns up to sharedTermSample terms, sorted for determinism.
func termSample(shared []string) []string {
	sample := make([]string, len(shared))
	copy(sample, shared)
	sort.Strings(sample)
	if len(sample) > sharedTermSample {
		sample = sample[:sharedTermSample]
	}
	return sample
}

func truncateRunes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
