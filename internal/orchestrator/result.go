package orchestrator

import (
	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
)

// Input is RunAnalysis's single argument (§6 "Main entry point").
type Input struct {
	InputType InputType
	Value     string
	JobID     string
}

type InputType string

const (
	InputText InputType = "text"
	InputURL  InputType = "url"
)

// Meta carries run identity and mode flags, the first field of the stable
// result schema.
type Meta struct {
	JobID         string `json:"jobId"`
	SchemaVersion string `json:"schemaVersion"`
	AnalysisMode  string `json:"analysisMode"`
	Deterministic bool   `json:"deterministic"`
	InputType     string `json:"inputType"`
}

// VerdictSummary is the top-line verdict that verdictSummaryFor builds from
// the article analysis (article mode) or the calibrated claim verdicts,
// alongside the per-claim/per-context detail.
type VerdictSummary struct {
	Summary    string `json:"summary"`
	Verdict    int    `json:"verdict"`
	Confidence int    `json:"confidence"`
}

// TwoPanelSummary pairs the raw claim-weighted average against the
// duplicate-resistant average (P6), so a reader can see whether repeated
// near-identical claims are inflating the naive number.
type TwoPanelSummary struct {
	WeightedAverageTruth        float64 `json:"weightedAverageTruth"`
	DedupedWeightedAverageTruth float64 `json:"dedupedWeightedAverageTruth"`
}

// ResearchStats summarizes the research loop's activity for the report's
// Technical Notes section and for test assertions like P8/scenario 5.
type ResearchStats struct {
	TotalIterations   int `json:"totalIterations"`
	GapIterations     int `json:"gapIterations"`
	SourcesFetched    int `json:"sourcesFetched"`
	EvidenceItemCount int `json:"evidenceItemCount"`
	SearchQueryCount  int `json:"searchQueryCount"`
	LLMCalls          int `json:"llmCalls"`
	TokensUsed        int `json:"tokensUsed"`
	BudgetExceeded    bool `json:"budgetExceeded"`
	BudgetExceedReason string `json:"budgetExceedReason,omitempty"`
}

// QualityGateEntry is one claim's gate-4 publishability classification
// (calibration.ClassifyGate4), surfaced per claim ID so consumers can filter
// low-confidence verdicts without recomputing the tiering themselves.
type QualityGateEntry struct {
	ClaimID       string `json:"claimId"`
	Tier          string `json:"tier"`
	Publishable   bool   `json:"publishable"`
}

// ResearchMetrics exposes gap-research and context activity that doesn't
// belong in the per-iteration ResearchStats. buildResult fills
// GapQueriesUsed and ContextsDetected; RelevanceFilterLLMCalls and
// ContextsMerged are not filled in and are always 0.
type ResearchMetrics struct {
	RelevanceFilterLLMCalls int `json:"relevanceFilterLlmCalls"`
	GapQueriesUsed          int `json:"gapQueriesUsed"`
	ContextsDetected        int `json:"contextsDetected"`
	ContextsMerged          int `json:"contextsMerged"`
}

// ResultJSON is the stable result schema (§6 "Result JSON (stable schema
// v2.7+)"). Field order mirrors the spec's literal top-level list.
type ResultJSON struct {
	Meta                 Meta                      `json:"meta"`
	VerdictSummary       *VerdictSummary           `json:"verdictSummary"`
	AnalysisContexts     []domain.AnalysisContext  `json:"analysisContexts"`
	TwoPanelSummary      TwoPanelSummary           `json:"twoPanelSummary"`
	ArticleAnalysis      *domain.ArticleAnalysis   `json:"articleAnalysis"`
	ClaimVerdicts        []domain.ClaimVerdict     `json:"claimVerdicts"`
	Understanding        *domain.ClaimUnderstanding `json:"understanding"`
	EvidenceItems        []domain.EvidenceItem     `json:"evidenceItems"`
	Sources              []domain.FetchedSource    `json:"sources"`
	SearchQueries        []domain.SearchQueryLog   `json:"searchQueries"`
	Iterations           []domain.ResearchIteration `json:"iterations"`
	ResearchStats        ResearchStats             `json:"researchStats"`
	ClassificationFallbacks []domain.FallbackRecord `json:"classificationFallbacks,omitempty"`
	AnalysisWarnings     []domain.AnalysisWarning  `json:"analysisWarnings,omitempty"`
	QualityGates         []QualityGateEntry        `json:"qualityGates"`
	ResearchMetrics      ResearchMetrics           `json:"researchMetrics"`
}
