// Package ingest normalizes raw extraction payloads into graphs. Payloads
// arrive from upstream extractors as loosely typed JSON; this package
// validates them, assigns stable node IDs, maps free-form relationship
// phrases onto the canonical vocabulary, and tags every element with its
// provenance.
package ingest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dd0wney/sentinel/pkg/graph"
	"github.com/dd0wney/sentinel/pkg/logging"
	"github.com/dd0wney/sentinel/pkg/text"
)

// DefaultConfidence is assigned to relations that arrive without one.
const DefaultConfidence = 0.8

// RawEntity is one extracted entity before normalization.
type RawEntity struct {
	Label    string            `json:"label" validate:"required"`
	Type     string            `json:"type" validate:"required"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// RawRelation is one extracted relationship before normalization.
type RawRelation struct {
	Source     string  `json:"source" validate:"required"`
	Target     string  `json:"target" validate:"required"`
	Relation   string  `json:"relation" validate:"required"`
	Confidence float64 `json:"confidence" validate:"gte=0,lte=1"`
}

// RawGraph is the full extraction payload.
type RawGraph struct {
	Entities  []RawEntity   `json:"entities" validate:"required,dive"`
	Relations []RawRelation `json:"relations,omitempty" validate:"dive"`
}

// Options configures payload normalization.
type Options struct {
	// FuzzyThreshold is the minimum weighted ratio for the fuzzy tier of
	// relation mapping.
	FuzzyThreshold int
	Logger         logging.Logger
}

// DefaultOptions returns the production normalization settings.
func DefaultOptions() Options {
	return Options{
		FuzzyThreshold: 80,
		Logger:         logging.NewNopLogger(),
	}
}

var validate = validator.New()

// Validate checks a raw payload against its struct constraints, returning a
// readable message rather than validator's internal format.
func Validate(raw RawGraph) error {
	err := validate.Struct(raw)
	if err == nil {
		return nil
	}
	if errs, ok := err.(validator.ValidationErrors); ok {
		parts := make([]string, 0, len(errs))
		for _, fe := range errs {
			parts = append(parts, formatFieldError(fe))
		}
		return fmt.Errorf("invalid payload: %s", strings.Join(parts, "; "))
	}
	return fmt.Errorf("invalid payload: %w", err)
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Namespace())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Namespace(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Namespace(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Namespace(), fe.Tag())
	}
}

// Normalize converts a raw payload into a graph. sourceText is the original
// user text the payload was extracted from; entities whose label appears
// verbatim in it are tagged user-stated, everything else ai-inferred.
// Relations referencing unknown entities are dropped with a warning rather
// than failing the whole payload.
func Normalize(raw RawGraph, sourceText string, opts Options) (*graph.Graph, error) {
	if err := Validate(raw); err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = logging.NewNopLogger()
	}

	g := &graph.Graph{}
	idByLabel := make(map[string]string, len(raw.Entities))

	for _, e := range raw.Entities {
		key := strings.ToLower(strings.TrimSpace(e.Label))
		if _, dup := idByLabel[key]; dup {
			log.Warn("duplicate entity label in payload, keeping first",
				logging.String("label", e.Label))
			continue
		}

		nodeType := normalizeType(e.Type)
		id := nodeID(nodeType, e.Label)
		idByLabel[key] = id

		g.Nodes = append(g.Nodes, graph.Node{
			ID:       id,
			Label:    strings.TrimSpace(e.Label),
			Type:     nodeType,
			Source:   determineSource(e.Label, sourceText),
			Metadata: e.Metadata,
		})
	}

	for _, r := range raw.Relations {
		sourceID, okSource := idByLabel[strings.ToLower(strings.TrimSpace(r.Source))]
		targetID, okTarget := idByLabel[strings.ToLower(strings.TrimSpace(r.Target))]
		if !okSource || !okTarget {
			log.Warn("relation references unknown entity, dropping",
				logging.String("source", r.Source),
				logging.String("target", r.Target),
				logging.String("relation", r.Relation))
			continue
		}

		rel, ok := MapRelation(r.Relation, opts.FuzzyThreshold)
		if !ok {
			log.Warn("unmapped relationship phrase, dropping",
				logging.String("relation", r.Relation))
			continue
		}

		confidence := r.Confidence
		if confidence == 0 {
			confidence = DefaultConfidence
		}

		g.Edges = append(g.Edges, graph.Edge{
			SourceID:     sourceID,
			TargetID:     targetID,
			Relationship: rel,
			Confidence:   confidence,
		})
	}

	log.Info("payload normalized",
		logging.NodeCount(len(g.Nodes)),
		logging.EdgeCount(len(g.Edges)))
	return g, nil
}

func normalizeType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "person", "people":
		return graph.TypePerson
	case "activity", "event", "task":
		return graph.TypeActivity
	case "energy_state", "energy-state", "state":
		return graph.TypeEnergyState
	case "time_slot", "time-slot", "time":
		return graph.TypeTimeSlot
	default:
		return strings.ToLower(strings.TrimSpace(raw))
	}
}

// nodeID builds a "{type}-{slug}" identifier, falling back to a UUID when
// the label slugs to nothing. The type prefix is lowercased even though the
// node's Type field keeps its canonical case.
func nodeID(nodeType, label string) string {
	slug := text.Slugify(label)
	if slug == "" {
		slug = uuid.NewString()
	}
	return strings.ToLower(nodeType) + "-" + slug
}

// determineSource tags a label user-stated when it appears in the source
// text as whole words, case-insensitively.
func determineSource(label, sourceText string) graph.Source {
	if sourceText == "" {
		return graph.SourceAIInferred
	}
	pattern := `(?i)\b` + regexp.QuoteMeta(strings.TrimSpace(label)) + `\b`
	matched, err := regexp.MatchString(pattern, sourceText)
	if err != nil || !matched {
		return graph.SourceAIInferred
	}
	return graph.SourceUserStated
}
