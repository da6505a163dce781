package evidenceengine

import (
	"testing"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
	"github.com/stretchr/testify/assert"
)

func ptr(f float64) *float64 { return &f }

func TestHighImpactSafeguardUnknownScoreNeverDrops(t *testing.T) {
	item := domain.EvidenceItem{Statement: "He was sentenced to 10 years in prison."}
	assert.True(t, HighImpactSafeguard(item, nil))
}

func TestHighImpactSafeguardDropsWithLowScore(t *testing.T) {
	item := domain.EvidenceItem{Statement: "She was convicted of fraud last year."}
	assert.False(t, HighImpactSafeguard(item, ptr(0.3)))
}

func TestHighImpactSafeguardKeepsWithHighScore(t *testing.T) {
	item := domain.EvidenceItem{Statement: "She was convicted of fraud last year."}
	assert.True(t, HighImpactSafeguard(item, ptr(0.9)))
}

func TestHighImpactSafeguardKeepsBenignStatement(t *testing.T) {
	item := domain.EvidenceItem{Statement: "The company reported quarterly earnings growth."}
	assert.True(t, HighImpactSafeguard(item, ptr(0.2)))
}
