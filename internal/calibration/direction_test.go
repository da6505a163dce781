package calibration

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
)

func TestApplyRatingDirectionCheckInvertsRefutedHighTruth(t *testing.T) {
	v := &domain.ClaimVerdict{RatingConfirmation: domain.RatingRefuted, TruthPercentage: 80}
	fired := ApplyRatingDirectionCheck(v)
	assert.True(t, fired)
	assert.Equal(t, 20, v.TruthPercentage)
	assert.Equal(t, 20, v.Verdict)
}

func TestApplyRatingDirectionCheckInvertsSupportedLowTruth(t *testing.T) {
	v := &domain.ClaimVerdict{RatingConfirmation: domain.RatingSupported, TruthPercentage: 15}
	fired := ApplyRatingDirectionCheck(v)
	assert.True(t, fired)
	assert.Equal(t, 85, v.TruthPercentage)
}

func TestApplyRatingDirectionCheckDoesNotFireWhenConsistent(t *testing.T) {
	v := &domain.ClaimVerdict{RatingConfirmation: domain.RatingSupported, TruthPercentage: 90}
	fired := ApplyRatingDirectionCheck(v)
	assert.False(t, fired)
	assert.Equal(t, 90, v.TruthPercentage)
}

func TestApplyRatingDirectionCheckIgnoresMixedConfirmation(t *testing.T) {
	v := &domain.ClaimVerdict{RatingConfirmation: domain.RatingMixed, TruthPercentage: 90}
	fired := ApplyRatingDirectionCheck(v)
	assert.False(t, fired)
}

func TestApplyRegexInversionFallbackInvertsWhenReasoningNegatesHighTruth(t *testing.T) {
	v := &domain.ClaimVerdict{
		TruthPercentage: 80,
		ClaimText:       "the vaccine is effective",
		Reasoning:       "Studies show the vaccine failed to prevent transmission.",
	}
	fired := ApplyRegexInversionFallback(v)
	assert.True(t, fired)
	assert.Equal(t, 20, v.TruthPercentage)
}

func TestApplyRegexInversionFallbackSkipsWhenPolarityMatches(t *testing.T) {
	v := &domain.ClaimVerdict{
		TruthPercentage: 80,
		ClaimText:       "the vaccine is not effective",
		Reasoning:       "The data confirms the vaccine failed to work as intended.",
	}
	fired := ApplyRegexInversionFallback(v)
	assert.False(t, fired)
	assert.Equal(t, 80, v.TruthPercentage)
}

func TestApplyRegexInversionFallbackNoOpWhenNoNegationCues(t *testing.T) {
	v := &domain.ClaimVerdict{
		TruthPercentage: 70,
		ClaimText:       "the bridge was completed on schedule",
		Reasoning:       "Records confirm the project finished on time.",
	}
	fired := ApplyRegexInversionFallback(v)
	assert.False(t, fired)
	assert.Equal(t, 70, v.TruthPercentage)
}
