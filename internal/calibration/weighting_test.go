package calibration

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
)

func trackScore(v float64) *float64 { return &v }

func TestApplyEvidenceWeightingWithNoEvidenceUsesDefaultUnknownScore(t *testing.T) {
	v := &domain.ClaimVerdict{TruthPercentage: 90, SupportingEvidenceIDs: nil}
	ApplyEvidenceWeighting(v, map[string]domain.EvidenceItem{}, map[string]domain.FetchedSource{})
	assert.Equal(t, DefaultUnknownSourceScore, v.EvidenceWeight)
	assert.Equal(t, int(50+(90.0-50)*DefaultUnknownSourceScore), v.TruthPercentage)
}

func TestApplyEvidenceWeightingIdentityAtDefaultUnknownSourceScore(t *testing.T) {
	// P7: trackRecordScore == DefaultUnknownSourceScore with zero (unreported)
	// confidence in that score must leave the weight at 1.0 — identity on
	// TruthPercentage — regardless of probative value being left at its zero
	// value (defaults to medium, itself neutral).
	evidence := map[string]domain.EvidenceItem{
		"e1": {ID: "e1", SourceID: "s1", ClaimDirection: domain.DirectionSupports},
	}
	sources := map[string]domain.FetchedSource{
		"s1": {ID: "s1", TrackRecordScore: trackScore(DefaultUnknownSourceScore), TrackRecordConfidence: 0},
	}
	v := &domain.ClaimVerdict{TruthPercentage: 90, SupportingEvidenceIDs: []string{"e1"}}

	ApplyEvidenceWeighting(v, evidence, sources)

	assert.InDelta(t, 1.0, v.EvidenceWeight, 1e-9)
	assert.Equal(t, 90, v.TruthPercentage)
}

func TestApplyEvidenceWeightingConfidentHighQualitySourceAmplifiesTruth(t *testing.T) {
	evidence := map[string]domain.EvidenceItem{
		"e1": {ID: "e1", SourceID: "s1", ClaimDirection: domain.DirectionSupports, ProbativeValue: domain.ProbativeMedium},
		"e2": {ID: "e2", SourceID: "s1", ClaimDirection: domain.DirectionSupports, ProbativeValue: domain.ProbativeMedium},
	}
	sources := map[string]domain.FetchedSource{
		"s1": {ID: "s1", TrackRecordScore: trackScore(1.0), TrackRecordConfidence: 1.0},
	}
	v := &domain.ClaimVerdict{TruthPercentage: 90, SupportingEvidenceIDs: []string{"e1", "e2"}}

	ApplyEvidenceWeighting(v, evidence, sources)

	assert.InDelta(t, 2.0, v.EvidenceWeight, 1e-9)
	assert.Equal(t, 130, v.TruthPercentage)
}

func TestApplyEvidenceWeightingSplitConsensusPullsTowardFifty(t *testing.T) {
	evidence := map[string]domain.EvidenceItem{
		"e1": {ID: "e1", SourceID: "s1", ClaimDirection: domain.DirectionSupports, ProbativeValue: domain.ProbativeMedium},
		"e2": {ID: "e2", SourceID: "s1", ClaimDirection: domain.DirectionContradicts, ProbativeValue: domain.ProbativeMedium},
	}
	v := &domain.ClaimVerdict{TruthPercentage: 90, SupportingEvidenceIDs: []string{"e1", "e2"}}

	ApplyEvidenceWeighting(v, evidence, map[string]domain.FetchedSource{})

	assert.InDelta(t, 0.5, v.EvidenceWeight, 1e-9)
	assert.Equal(t, 70, v.TruthPercentage)
}

func TestApplyEvidenceWeightingUsesDefaultScoreForUnknownSource(t *testing.T) {
	evidence := map[string]domain.EvidenceItem{
		"e1": {ID: "e1", SourceID: "missing-source", ClaimDirection: domain.DirectionSupports, ProbativeValue: domain.ProbativeMedium},
	}
	v := &domain.ClaimVerdict{TruthPercentage: 80, SupportingEvidenceIDs: []string{"e1"}}

	ApplyEvidenceWeighting(v, evidence, map[string]domain.FetchedSource{})

	assert.InDelta(t, 1.0, v.EvidenceWeight, 1e-9)
	assert.Equal(t, 80, v.TruthPercentage)
}

func TestApplyEvidenceWeightingIgnoresIDsNotInEvidenceMap(t *testing.T) {
	v := &domain.ClaimVerdict{TruthPercentage: 60, SupportingEvidenceIDs: []string{"ghost"}}
	ApplyEvidenceWeighting(v, map[string]domain.EvidenceItem{}, map[string]domain.FetchedSource{})
	assert.Equal(t, DefaultUnknownSourceScore, v.EvidenceWeight)
}
