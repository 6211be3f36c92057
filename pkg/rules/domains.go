// Package rules implements collision detection over schedule graphs:
// domain classification, multi-hop collision traversal, and confidence
// scoring.
package rules

import "strings"

// Domain is the life-domain classification of a node.
type Domain int

const (
	DomainUnknown Domain = iota
	DomainSocial
	DomainProfessional
	DomainHealth
)

// String returns the display name used in "[DOMAIN] label" path prefixes.
func (d Domain) String() string {
	switch d {
	case DomainSocial:
		return "SOCIAL"
	case DomainProfessional:
		return "PROFESSIONAL"
	case DomainHealth:
		return "HEALTH"
	default:
		return "UNKNOWN"
	}
}

// Keywords holds the classifier's dictionaries. They are passed in rather
// than read from package state so callers can tune them per call.
type Keywords struct {
	Social       []string
	Professional []string
	Health       []string

	// Smaller hint sets scanned against metadata values when no label
	// keyword matches.
	MetadataSocial       []string
	MetadataProfessional []string
}

// DefaultKeywords returns the production dictionaries. The professional set
// deliberately avoids the bare substring "work" so that labels like
// "workout" stay out of PROFESSIONAL.
func DefaultKeywords() Keywords {
	return Keywords{
		Social: []string{
			"family", "friend", "aunt", "uncle", "cousin", "dinner", "party",
			"wedding", "birthday", "visit", "social", "brunch", "reunion",
		},
		Professional: []string{
			"meeting", "deadline", "presentation", "client", "workplace",
			"office", "interview", "standup", "sprint", "report", "review",
			"conference", "career",
		},
		Health: []string{
			"gym", "workout", "exercise", "doctor", "dentist", "therapy",
			"yoga", "medical", "wellness", "checkup", "physio", "sleep",
		},
		MetadataSocial:       []string{"family", "friend", "relationship", "social"},
		MetadataProfessional: []string{"work", "office", "colleague", "manager"},
	}
}

// ClassifyDomain maps a node's label and metadata to a life domain. The
// label is tested against the social, professional and health sets in that
// fixed priority order; the first set containing a matching keyword wins.
// When no label keyword matches, metadata values are scanned against the
// social then professional hint sets. Everything else is UNKNOWN.
func ClassifyDomain(label string, metadata map[string]string, kw Keywords) Domain {
	lower := strings.ToLower(label)

	if containsAny(lower, kw.Social) {
		return DomainSocial
	}
	if containsAny(lower, kw.Professional) {
		return DomainProfessional
	}
	if containsAny(lower, kw.Health) {
		return DomainHealth
	}

	var values strings.Builder
	for _, v := range metadata {
		values.WriteString(strings.ToLower(v))
		values.WriteByte(' ')
	}
	meta := values.String()
	if containsAny(meta, kw.MetadataSocial) {
		return DomainSocial
	}
	if containsAny(meta, kw.MetadataProfessional) {
		return DomainProfessional
	}

	return DomainUnknown
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
