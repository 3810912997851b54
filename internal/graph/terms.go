package graph

import (
	"regexp"
	"sort"
	"strings"
)

const (
	// termTextBudget bounds how much of a section's content is analyzed,
	// trading recall for bounded cost on large bodies.
	termTextBudget = 1000
	// termTopK is the number of key terms kept per section.
	termTopK = 5
)

// termRe matches candidate key terms: alphabetic words of 6+ letters.
var termRe = regexp.MustCompile(`\b[A-Za-z]{6,}\b`)

// stopWords holds common function and connective words excluded from key
// terms. Static configuration, never mutated after construction.
var stopWords = makeWordSet(`
	about above after again against all and any are
	because been before being below between both but
	cannot could did does doing down during each
	few for from further had has have having
	here how into more most must not now
	once only other our out over own same
	should some such than that the their them
	then there these they this those through under
	until very was were what when where which
	while who will with would your
	might shall upon within without therefore
	however moreover furthermore likewise nonetheless
	otherwise whereas whereby wherein herein therein`)

func makeWordSet(words string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(words) {
		set[w] = struct{}{}
	}
	return set
}

// KeyTerms extracts up to 5 key terms from text: words of at least six
// letters, lower-cased, stop words removed, ranked by frequency with ties
// broken by first appearance. Deterministic for a given input. Empty input
// yields no terms.
func KeyTerms(text string) []string {
	if text == "" {
		return nil
	}
	if len(text) > termTextBudget {
		text = text[:termTextBudget]
	}

	words := termRe.FindAllString(strings.ToLower(text), -1)
	if len(words) == 0 {
		return nil
	}

	type stat struct {
		count int
		first int
	}
	counts := make(map[string]*stat)
	for i, w := range words {
		if _, stop := stopWords[w]; stop {
			continue
		}
		if s, ok := counts[w]; ok {
			s.count++
		} else {
			counts[w] = &stat{count: 1, first: i}
		}
	}

	terms := make([]string, 0, len(counts))
	for w := range counts {
		terms = append(terms, w)
	}
	sort.Slice(terms, func(i, j int) bool {
		a, b := counts[terms[i]], counts[terms[j]]
		if a.count != b.count {
			return a.count > b.count
		}
		return a.first < b.first
	})

	if len(terms) > termTopK {
		terms = terms[:termTopK]
	}
	return terms
}

// sharedTerms returns the terms present in both ranked term lists,
// preserving a's ranking order.
func sharedTerms(a, b []string) []string {
	inB := make(map[string]struct{}, len(b))
	for _, t := range b {
		inB[t] = struct{}{}
	}
	var shared []string
	for _, t := range a {
		if _, ok := inB[t]; ok {
			shared = append(shared, t)
		}
	}
	return shared
}
