package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyDomainLabelPriority(t *testing.T) {
	kw := DefaultKeywords()

	assert.Equal(t, DomainSocial, ClassifyDomain("Dinner with Aunt Susan", nil, kw))
	assert.Equal(t, DomainProfessional, ClassifyDomain("Q3 client meeting", nil, kw))
	assert.Equal(t, DomainHealth, ClassifyDomain("Morning workout", nil, kw))
	assert.Equal(t, DomainUnknown, ClassifyDomain("Deep focus", nil, kw))

	// Social beats professional when a label matches both sets.
	assert.Equal(t, DomainSocial, ClassifyDomain("Birthday party at the office", nil, kw))
}

func TestClassifyDomainMetadataFallback(t *testing.T) {
	kw := DefaultKeywords()

	assert.Equal(t, DomainSocial,
		ClassifyDomain("Susan", map[string]string{"relation": "family"}, kw))
	assert.Equal(t, DomainProfessional,
		ClassifyDomain("Bob", map[string]string{"role": "manager"}, kw))

	// Label keywords win over metadata hints.
	assert.Equal(t, DomainHealth,
		ClassifyDomain("Gym with Bob", map[string]string{"role": "colleague"}, kw))

	// Metadata has no health hint set.
	assert.Equal(t, DomainUnknown,
		ClassifyDomain("Susan", map[string]string{"note": "gym"}, kw))
}

func TestClassifyDomainCaseInsensitive(t *testing.T) {
	kw := DefaultKeywords()
	assert.Equal(t, DomainSocial, ClassifyDomain("FAMILY REUNION", nil, kw))
	assert.Equal(t, DomainSocial,
		ClassifyDomain("Susan", map[string]string{"relation": "FRIEND"}, kw))
}

func TestDomainString(t *testing.T) {
	assert.Equal(t, "SOCIAL", DomainSocial.String())
	assert.Equal(t, "PROFESSIONAL", DomainProfessional.String())
	assert.Equal(t, "HEALTH", DomainHealth.String())
	assert.Equal(t, "UNKNOWN", DomainUnknown.String())
	assert.Equal(t, "UNKNOWN", Domain(42).String())
}
