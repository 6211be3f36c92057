// Package consolidate merges nodes whose labels denote the same concept but
// differ lexically, so collision traversal is not defeated by inconsistent
// upstream labeling ("drained" vs "energy drained").
package consolidate

import (
	"fmt"
	"strings"

	"github.com/dd0wney/sentinel/pkg/graph"
	"github.com/dd0wney/sentinel/pkg/text"
)

// Options configures similarity scoring and grouping. Keyword sets and
// thresholds are explicit here rather than package-level state so they can be
// tuned per call.
type Options struct {
	Threshold      int      // minimum WRatio score to merge two energy nodes
	KeywordBoost   int      // added when both labels carry an energy keyword
	BoostGate      int      // minimum base score before the boost applies
	EnergyKeywords []string // lower-case substrings marking energy-state labels
}

// DefaultOptions returns the tuning used in production.
func DefaultOptions() Options {
	return Options{
		Threshold:    70,
		KeywordBoost: 20,
		BoostGate:    40,
		EnergyKeywords: []string{
			"energy", "fatigue", "drain", "focus", "alertness", "tired",
			"depleted", "mental", "concentration", "sharpness", "exhaustion",
		},
	}
}

// ComputeSimilarity scores two labels from 0 to 100. The base score is the
// weighted token/substring ratio; when both labels contain an energy keyword
// and the base score is at least BoostGate, KeywordBoost is added (capped at
// 100). The gate keeps thematically opposite energy states apart: "drained"
// and "focused" both mention energy but share almost no letters.
func ComputeSimilarity(a, b string, opts Options) int {
	base := text.WRatio(a, b)

	if base >= opts.BoostGate && hasEnergyKeyword(a, opts) && hasEnergyKeyword(b, opts) {
		boosted := base + opts.KeywordBoost
		if boosted > 100 {
			boosted = 100
		}
		return boosted
	}
	return base
}

func hasEnergyKeyword(label string, opts Options) bool {
	lower := strings.ToLower(label)
	for _, kw := range opts.EnergyKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// GroupSimilarNodes partitions nodes into merge groups. Only nodes whose
// labels carry an energy keyword are grouping candidates; every other node
// becomes a singleton, which keeps persons, activities and timeslots that
// happen to share generic words from being merged.
//
// Grouping is greedy in input order: each ungrouped energy node pulls in
// every later ungrouped energy node scoring at or above the threshold.
func GroupSimilarNodes(nodes []graph.Node, opts Options) [][]graph.Node {
	if len(nodes) == 0 {
		return nil
	}

	groups := make([][]graph.Node, 0, len(nodes))
	used := make(map[string]bool, len(nodes))

	for _, node := range nodes {
		if used[node.ID] {
			continue
		}
		group := []graph.Node{node}
		used[node.ID] = true

		if hasEnergyKeyword(node.Label, opts) {
			for _, other := range nodes {
				if used[other.ID] || !hasEnergyKeyword(other.Label, opts) {
					continue
				}
				if ComputeSimilarity(node.Label, other.Label, opts) >= opts.Threshold {
					group = append(group, other)
					used[other.ID] = true
				}
			}
		}
		groups = append(groups, group)
	}
	return groups
}

// SelectCanonicalNode picks the surviving representative of a merge group:
// the shortest label, ties broken by the lexicographically smallest label.
func SelectCanonicalNode(group []graph.Node) (graph.Node, error) {
	if len(group) == 0 {
		return graph.Node{}, fmt.Errorf("%w: cannot select canonical node", graph.ErrEmptyGroup)
	}

	canonical := group[0]
	for _, n := range group[1:] {
		if len(n.Label) < len(canonical.Label) ||
			(len(n.Label) == len(canonical.Label) && n.Label < canonical.Label) {
			canonical = n
		}
	}
	return canonical, nil
}

// Consolidate returns a new graph in which every merge group is collapsed to
// its canonical node and all edge endpoints are rewritten through the
// old-ID → canonical-ID map. Edges that become identical after rewriting
// (same source, target and relationship) are collapsed to one edge keeping
// the maximum confidence. The input graph is not modified. Running
// Consolidate on its own output is a no-op.
func Consolidate(g *graph.Graph, opts Options) *graph.Graph {
	if len(g.Nodes) == 0 {
		return &graph.Graph{Nodes: []graph.Node{}, Edges: append([]graph.Edge(nil), g.Edges...)}
	}

	groups := GroupSimilarNodes(g.Nodes, opts)

	idMap := make(map[string]string, len(g.Nodes))
	canonical := make([]graph.Node, 0, len(groups))
	for _, group := range groups {
		// Groups from GroupSimilarNodes are never empty.
		survivor, _ := SelectCanonicalNode(group)
		canonical = append(canonical, survivor)
		for _, n := range group {
			idMap[n.ID] = survivor.ID
		}
	}

	type edgeKey struct {
		source, target, rel string
	}
	seen := make(map[edgeKey]int, len(g.Edges))
	edges := make([]graph.Edge, 0, len(g.Edges))
	for _, e := range g.Edges {
		if mapped, ok := idMap[e.SourceID]; ok {
			e.SourceID = mapped
		}
		if mapped, ok := idMap[e.TargetID]; ok {
			e.TargetID = mapped
		}

		key := edgeKey{e.SourceID, e.TargetID, e.Relationship}
		if i, dup := seen[key]; dup {
			if e.Confidence > edges[i].Confidence {
				edges[i].Confidence = e.Confidence
			}
			continue
		}
		seen[key] = len(edges)
		edges = append(edges, e)
	}

	return &graph.Graph{Nodes: canonical, Edges: edges}
}
