package evidenceengine

import (
	"testing"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCaptureScopeNilIsFalse(t *testing.T) {
	assert.False(t, CaptureScope(nil))
}

func TestCaptureScopeDetectsAnyDimension(t *testing.T) {
	assert.True(t, CaptureScope(&domain.EvidenceScope{Geographic: "EU"}))
	assert.False(t, CaptureScope(&domain.EvidenceScope{}))
}

func TestDistinctScopesRequiresBothPopulated(t *testing.T) {
	a := &domain.EvidenceScope{Methodology: "RCT"}
	b := &domain.EvidenceScope{Methodology: "observational"}
	assert.True(t, DistinctScopes(a, b))

	c := &domain.EvidenceScope{}
	assert.False(t, DistinctScopes(a, c))
	assert.False(t, DistinctScopes(nil, b))
}
