// Package matching resolves free-form user text against graph nodes and
// reported collisions, with "did you mean" suggestions when nothing clears
// the bar.
package matching

import (
	"sort"
	"strings"

	"github.com/dd0wney/sentinel/pkg/graph"
	"github.com/dd0wney/sentinel/pkg/text"
)

// MatchBy selects which node field a query is compared against.
type MatchBy string

const (
	MatchByLabel MatchBy = "label"
	MatchByID    MatchBy = "id"
)

// Options configures fuzzy node lookup.
type Options struct {
	MatchBy MatchBy

	// AIInferredOnly restricts candidates to ai-inferred nodes, protecting
	// user-stated facts from accidental correction.
	AIInferredOnly bool

	// Threshold is the minimum fuzzy score (0-100) to accept a match.
	Threshold int

	// MaxSuggestions caps suggestion and candidate lists.
	MaxSuggestions int

	// AmbiguityWindow: matches within this many points of the top score
	// make the result ambiguous.
	AmbiguityWindow int
}

// DefaultOptions returns the production lookup settings.
func DefaultOptions() Options {
	return Options{
		MatchBy:         MatchByLabel,
		AIInferredOnly:  true,
		Threshold:       70,
		MaxSuggestions:  5,
		AmbiguityWindow: 10,
	}
}

// MatchResult is the outcome of a fuzzy lookup. Exactly one of three shapes
// comes back: a single Match; no Match with Suggestions when nothing cleared
// the threshold; or no Match with multiple Candidates when the result was
// ambiguous and the caller must disambiguate.
type MatchResult struct {
	Match       *graph.Node
	IsExact     bool
	Score       int
	Suggestions []string
	Candidates  []graph.Node
}

type rankedNode struct {
	node  graph.Node
	score int
}

// FuzzyFindNode resolves a query against the graph's nodes. A
// case-insensitive exact match always wins with score 100; otherwise
// candidates are ranked by weighted fuzzy ratio.
func FuzzyFindNode(g *graph.Graph, query string, opts Options) MatchResult {
	field := func(n graph.Node) string {
		if opts.MatchBy == MatchByID {
			return n.ID
		}
		return n.Label
	}

	var eligible []graph.Node
	for _, n := range g.Nodes {
		if opts.AIInferredOnly && n.Source != graph.SourceAIInferred {
			continue
		}
		eligible = append(eligible, n)
	}
	if len(eligible) == 0 {
		return MatchResult{}
	}

	queryLower := strings.ToLower(query)
	for i, n := range eligible {
		if strings.ToLower(field(n)) == queryLower {
			return MatchResult{Match: &eligible[i], IsExact: true, Score: 100}
		}
	}

	ranked := make([]rankedNode, 0, len(eligible))
	for _, n := range eligible {
		ranked = append(ranked, rankedNode{node: n, score: text.WRatio(query, field(n))})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	var passing []rankedNode
	for _, r := range ranked {
		if r.score >= opts.Threshold {
			passing = append(passing, r)
		}
		if len(passing) == opts.MaxSuggestions {
			break
		}
	}

	if len(passing) == 0 {
		// Nothing cleared the threshold; suggest the best available so the
		// user always sees options.
		limit := opts.MaxSuggestions
		if limit > len(ranked) {
			limit = len(ranked)
		}
		suggestions := make([]string, 0, limit)
		for _, r := range ranked[:limit] {
			suggestions = append(suggestions, field(r.node))
		}
		return MatchResult{Suggestions: suggestions}
	}

	top := passing[0].score
	var nearTop []rankedNode
	for _, r := range passing {
		if r.score >= top-opts.AmbiguityWindow {
			nearTop = append(nearTop, r)
		}
	}

	if len(nearTop) > 1 {
		result := MatchResult{Score: top}
		for _, r := range nearTop {
			result.Candidates = append(result.Candidates, r.node)
			result.Suggestions = append(result.Suggestions, field(r.node))
		}
		return result
	}

	best := passing[0]
	return MatchResult{
		Match:      &best.node,
		Score:      best.score,
		Candidates: []graph.Node{best.node},
	}
}

// FormatSuggestions renders a "did you mean" block for error messages.
func FormatSuggestions(suggestions []string, maxShow int) string {
	if len(suggestions) == 0 {
		return "No AI-inferred nodes available."
	}

	shown := suggestions
	if len(shown) > maxShow {
		shown = shown[:maxShow]
	}
	var b strings.Builder
	b.WriteString("Did you mean one of these?")
	for _, s := range shown {
		b.WriteString("\n  - ")
		b.WriteString(s)
	}
	if len(suggestions) > maxShow {
		b.WriteString("\n  ... and more")
	}
	return b.String()
}
