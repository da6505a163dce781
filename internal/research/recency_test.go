package research

import (
	"testing"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestIsRecencySensitiveDetectsRecentYearInInput(t *testing.T) {
	assert.True(t, IsRecencySensitive("the policy passed in 2025", nil, nil, 2026, 0.6))
}

func TestIsRecencySensitiveIgnoresOldYear(t *testing.T) {
	assert.False(t, IsRecencySensitive("the policy passed in 1998", nil, nil, 2026, 0.6))
}

func TestIsRecencySensitiveUsesLLMTemporalContextAboveThreshold(t *testing.T) {
	tc := &domain.TemporalContext{IsRecencySensitive: true, Confidence: 0.9}
	assert.True(t, IsRecencySensitive("no date mentioned", nil, tc, 2026, 0.6))
}

func TestIsRecencySensitiveRejectsLLMBelowThreshold(t *testing.T) {
	tc := &domain.TemporalContext{IsRecencySensitive: true, Confidence: 0.3}
	assert.False(t, IsRecencySensitive("no date mentioned", nil, tc, 2026, 0.6))
}

func TestDateRestrictForBuckets(t *testing.T) {
	assert.Equal(t, "w", DateRestrictFor(1))
	assert.Equal(t, "m", DateRestrictFor(6))
	assert.Equal(t, "y", DateRestrictFor(12))
}
