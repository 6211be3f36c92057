package matching

import (
	"regexp"
	"strings"

	"github.com/dd0wney/sentinel/pkg/graph"
	"github.com/dd0wney/sentinel/pkg/text"
)

var whitespaceRuns = regexp.MustCompile(`\s+`)

// GenerateCollisionKey derives the acknowledgment key for a collision: the
// leading entity label with any "[DOMAIN]" prefix stripped, lower-cased,
// whitespace runs replaced with single dashes.
func GenerateCollisionKey(c graph.ScoredCollision) string {
	if len(c.Path) == 0 {
		return ""
	}
	label := graph.StripDomainPrefix(c.Path[0])
	label = strings.ToLower(strings.TrimSpace(label))
	return whitespaceRuns.ReplaceAllString(label, "-")
}

// FindCollisionByLabel resolves a free-text query against a collision list
// using the same exact-then-fuzzy strategy as node lookup, scoped to each
// collision's normalized key and leading entity label. Returns nil when
// nothing clears the threshold.
func FindCollisionByLabel(query string, collisions []graph.ScoredCollision, threshold int) *graph.ScoredCollision {
	queryLower := strings.ToLower(strings.TrimSpace(query))
	queryKey := whitespaceRuns.ReplaceAllString(queryLower, "-")

	for i, c := range collisions {
		if len(c.Path) == 0 {
			continue
		}
		label := strings.ToLower(graph.StripDomainPrefix(c.Path[0]))
		if GenerateCollisionKey(c) == queryKey || label == queryLower {
			return &collisions[i]
		}
	}

	bestScore := 0
	bestIndex := -1
	for i, c := range collisions {
		if len(c.Path) == 0 {
			continue
		}
		label := graph.StripDomainPrefix(c.Path[0])
		score := text.WRatio(query, label)
		if s := text.WRatio(queryKey, GenerateCollisionKey(c)); s > score {
			score = s
		}
		if score > bestScore {
			bestScore = score
			bestIndex = i
		}
	}

	if bestIndex >= 0 && bestScore >= threshold {
		return &collisions[bestIndex]
	}
	return nil
}

// FilterAcknowledged drops collisions whose key appears in acked. The
// engine itself never consults the acknowledgment store; this is the
// consumer-side filter.
func FilterAcknowledged(collisions []graph.ScoredCollision, acked map[string]bool) []graph.ScoredCollision {
	if len(acked) == 0 {
		return collisions
	}
	kept := make([]graph.ScoredCollision, 0, len(collisions))
	for _, c := range collisions {
		if !acked[GenerateCollisionKey(c)] {
			kept = append(kept, c)
		}
	}
	return kept
}
