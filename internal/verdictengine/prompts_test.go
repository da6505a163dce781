package verdictengine

import (
	"testing"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestLabelEvidenceTagsSupportingAndCounter(t *testing.T) {
	items := []domain.EvidenceItem{
		{Statement: "supports the claim", ClaimDirection: domain.DirectionSupports, ContextID: "CTX_1"},
		{Statement: "contradicts the claim", ClaimDirection: domain.DirectionContradicts, ContextID: "CTX_1"},
	}
	labeled := labelEvidence(items)
	require := assert.New(t)
	require.Len(labeled, 2)
	require.Equal("SUPPORTING", labeled[0].Label)
	require.Equal("COUNTER-EVIDENCE", labeled[1].Label)
}
