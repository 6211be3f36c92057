package ingest

import (
	"strings"

	"github.com/dd0wney/sentinel/pkg/graph"
	"github.com/dd0wney/sentinel/pkg/text"
)

// exactRelations maps canonical and near-canonical phrases directly.
var exactRelations = map[string]string{
	"drains":         graph.RelDrains,
	"drain":          graph.RelDrains,
	"drained by":     graph.RelDrains,
	"conflicts_with": graph.RelConflictsWith,
	"conflicts with": graph.RelConflictsWith,
	"conflict":       graph.RelConflictsWith,
	"requires":       graph.RelRequires,
	"require":        graph.RelRequires,
	"needs":          graph.RelRequires,
	"scheduled_at":   graph.RelScheduledAt,
	"scheduled at":   graph.RelScheduledAt,
	"scheduled for":  graph.RelScheduledAt,
	"involves":       graph.RelInvolves,
	"involve":        graph.RelInvolves,
	"with":           graph.RelInvolves,
}

// semanticKeywords catches phrases like "really tires me out" that carry a
// canonical meaning without matching any exact form.
var semanticKeywords = []struct {
	keywords []string
	relation string
}{
	{[]string{"exhaust", "tire", "deplete", "sap", "wear"}, graph.RelDrains},
	{[]string{"clash", "overlap", "compete", "interfere"}, graph.RelConflictsWith},
	{[]string{"need", "depend", "demand", "prerequisite"}, graph.RelRequires},
	{[]string{"schedule", "planned", "booked", "calendar"}, graph.RelScheduledAt},
	{[]string{"include", "involve", "together", "participat"}, graph.RelInvolves},
}

var canonicalRelations = []string{
	graph.RelDrains,
	graph.RelConflictsWith,
	graph.RelRequires,
	graph.RelScheduledAt,
	graph.RelInvolves,
}

// MapRelation resolves a free-form relationship phrase onto the canonical
// vocabulary in three tiers: exact lookup, semantic keyword scan, then fuzzy
// match against the canonical names. Returns false when no tier resolves.
func MapRelation(phrase string, fuzzyThreshold int) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(phrase))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	if normalized == "" {
		return "", false
	}

	if rel, ok := exactRelations[normalized]; ok {
		return rel, true
	}
	if rel, ok := exactRelations[strings.ReplaceAll(normalized, "_", " ")]; ok {
		return rel, true
	}

	for _, entry := range semanticKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(normalized, kw) {
				return entry.relation, true
			}
		}
	}

	bestScore := 0
	best := ""
	for _, rel := range canonicalRelations {
		candidate := strings.ToLower(strings.ReplaceAll(rel, "_", " "))
		subject := strings.ReplaceAll(normalized, "_", " ")
		if score := text.WRatio(subject, candidate); score > bestScore {
			bestScore = score
			best = rel
		}
	}
	if bestScore >= fuzzyThreshold {
		return best, true
	}
	return "", false
}
