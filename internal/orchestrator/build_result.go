package orchestrator

import (
	"github.com/robertschaub/FactHarbor-sub001/internal/calibration"
	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
	"github.com/robertschaub/FactHarbor-sub001/internal/verdictengine"
)

// buildResult assembles the stable result schema (§6 "Result JSON") from
// the finished ResearchState and calibrated verdicts. Field order mirrors
// ResultJSON's declaration.
func (d *Dependencies) buildResult(state *domain.ResearchState, verdicts []domain.ClaimVerdict, articleAnalysis *domain.ArticleAnalysis, mode verdictengine.Mode) *ResultJSON {
	sourceByID := make(map[string]domain.FetchedSource, len(state.Sources))
	for _, s := range state.Sources {
		sourceByID[s.ID] = s
	}
	evidenceByID := make(map[string]domain.EvidenceItem, len(state.EvidenceItems))
	for _, e := range state.EvidenceItems {
		evidenceByID[e.ID] = e
	}

	gates := make([]QualityGateEntry, 0, len(verdicts))
	for i := range verdicts {
		calibration.ClassifyGate4(&verdicts[i], evidenceByID, sourceByID)
		gates = append(gates, QualityGateEntry{
			ClaimID:     verdicts[i].ClaimID,
			Tier:        string(verdicts[i].ConfidenceTier),
			Publishable: verdicts[i].Publishable,
		})
	}

	var contexts []domain.AnalysisContext
	var understanding *domain.ClaimUnderstanding
	if state.Understanding != nil {
		contexts = state.Understanding.AnalysisContexts
		understanding = state.Understanding
	}

	vs := verdictSummaryFor(verdicts, articleAnalysis, mode)

	gapIterations := 0
	if state.Budget.GapIterationsUsed > 0 {
		gapIterations = state.Budget.GapIterationsUsed
	}

	return &ResultJSON{
		Meta: Meta{
			JobID:         state.JobID,
			SchemaVersion: "2.7",
			AnalysisMode:  string(d.Config.AnalysisMode),
			Deterministic: d.Config.Deterministic,
			InputType:     string(state.InputType),
		},
		VerdictSummary:   vs,
		AnalysisContexts: contexts,
		TwoPanelSummary: TwoPanelSummary{
			WeightedAverageTruth:        calibration.CalculateWeightedVerdictAverage(verdicts),
			DedupedWeightedAverageTruth: calibration.DedupeWeightedAverageTruth(verdicts),
		},
		ArticleAnalysis:         articleAnalysis,
		ClaimVerdicts:           verdicts,
		Understanding:           understanding,
		EvidenceItems:           state.EvidenceItems,
		Sources:                 state.Sources,
		SearchQueries:           state.SearchQueries,
		Iterations:              state.Iterations,
		ClassificationFallbacks: state.FallbackRecords,
		AnalysisWarnings:        state.AnalysisWarnings,
		QualityGates:            gates,
		ResearchStats: ResearchStats{
			TotalIterations:    state.Budget.TotalIterations,
			GapIterations:      gapIterations,
			SourcesFetched:     len(state.Sources),
			EvidenceItemCount:  len(state.EvidenceItems),
			SearchQueryCount:   len(state.SearchQueries),
			LLMCalls:           state.Budget.LLMCalls,
			TokensUsed:         state.Budget.TokensUsed,
			BudgetExceeded:     state.Budget.BudgetExceeded,
			BudgetExceedReason: state.Budget.ExceedReason,
		},
		ResearchMetrics: ResearchMetrics{
			GapQueriesUsed:   state.Budget.GapQueriesUsed,
			ContextsDetected: len(contexts),
		},
	}
}

// verdictSummaryFor picks the top-line narrative: the article verdict in
// article mode, otherwise the (deduped) weighted claim average.
func verdictSummaryFor(verdicts []domain.ClaimVerdict, articleAnalysis *domain.ArticleAnalysis, mode verdictengine.Mode) *VerdictSummary {
	if len(verdicts) == 0 && articleAnalysis == nil {
		return nil
	}
	if mode == verdictengine.ModeArticle && articleAnalysis != nil {
		return &VerdictSummary{
			Summary:    articleThesisSummary(articleAnalysis),
			Verdict:    articleAnalysis.ArticleVerdict,
			Confidence: averageConfidence(verdicts),
		}
	}
	return &VerdictSummary{
		Summary:    "",
		Verdict:    int(calibration.DedupeWeightedAverageTruth(verdicts)),
		Confidence: averageConfidence(verdicts),
	}
}

func articleThesisSummary(a *domain.ArticleAnalysis) string {
	if a.ThesisSupported {
		return "The article's thesis is supported by the evidence."
	}
	return "The article's thesis is not fully supported by the evidence."
}

func averageConfidence(verdicts []domain.ClaimVerdict) int {
	if len(verdicts) == 0 {
		return 0
	}
	total := 0
	for _, v := range verdicts {
		total += v.Confidence
	}
	return total / len(verdicts)
}
