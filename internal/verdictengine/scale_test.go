package verdictengine

import (
	"testing"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestVerdictLabelBuckets(t *testing.T) {
	assert.Equal(t, "TRUE", VerdictLabel(90, 80, 60, true))
	assert.Equal(t, "MOSTLY-TRUE", VerdictLabel(80, 80, 60, true))
	assert.Equal(t, "LEANING-TRUE", VerdictLabel(60, 80, 60, true))
	assert.Equal(t, "LEANING-FALSE", VerdictLabel(35, 80, 60, true))
	assert.Equal(t, "MOSTLY-FALSE", VerdictLabel(20, 80, 60, true))
	assert.Equal(t, "FALSE", VerdictLabel(5, 80, 60, true))
}

func TestVerdictLabelMixedVsUnverified(t *testing.T) {
	assert.Equal(t, "MIXED", VerdictLabel(50, 65, 60, true))
	assert.Equal(t, "UNVERIFIED", VerdictLabel(50, 40, 60, true))
}

func TestVerdictLabelQuestionWording(t *testing.T) {
	assert.Equal(t, "YES", VerdictLabel(90, 80, 60, false))
	assert.Equal(t, "NO", VerdictLabel(5, 80, 60, false))
}

func TestHighlightColorForBuckets(t *testing.T) {
	assert.Equal(t, domain.HighlightGreen, HighlightColorFor(80))
	assert.Equal(t, domain.HighlightYellow, HighlightColorFor(50))
	assert.Equal(t, domain.HighlightRed, HighlightColorFor(10))
}
