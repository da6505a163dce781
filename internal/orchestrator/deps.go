package orchestrator

import (
	"github.com/robertschaub/FactHarbor-sub001/internal/budget"
	"github.com/robertschaub/FactHarbor-sub001/internal/claimengine"
	"github.com/robertschaub/FactHarbor-sub001/internal/config"
	"github.com/robertschaub/FactHarbor-sub001/internal/contextengine"
	"github.com/robertschaub/FactHarbor-sub001/internal/evidenceengine"
	"github.com/robertschaub/FactHarbor-sub001/internal/fetchadapter"
	"github.com/robertschaub/FactHarbor-sub001/internal/llmgateway"
	"github.com/robertschaub/FactHarbor-sub001/internal/research"
	"github.com/robertschaub/FactHarbor-sub001/internal/searchadapter"
	"github.com/robertschaub/FactHarbor-sub001/internal/snapshot"
	"github.com/robertschaub/FactHarbor-sub001/internal/srservice"
)

// Dependencies bundles every external collaborator RunAnalysis needs. All
// fields except Config are swappable per-call so tests can wire fakes; Config
// drives the per-package threshold translations below (§6's configuration
// surface fans out into the narrower per-package types each component
// already expects, keeping those packages free of a direct *config.Config
// import).
type Dependencies struct {
	Gateway        *llmgateway.Gateway
	SearchProvider searchadapter.Provider
	Fetcher        fetchadapter.Fetcher
	SRService      *srservice.Service
	SnapshotStore  *snapshot.Store
	OnEvent        func(message string, progress int)
	Config         *config.Config
}

// emit calls OnEvent if set, never letting a nil callback crash a run.
func (d *Dependencies) emit(message string, progress int) {
	if d.OnEvent != nil {
		d.OnEvent(message, progress)
	}
}

// researchThresholds translates Config into research.Thresholds, resolving
// the quick/deep analysis-mode split via the Config helper methods rather
// than duplicating that arithmetic here.
func (d *Dependencies) researchThresholds(currentYear int) research.Thresholds {
	cfg := d.Config
	return research.Thresholds{
		MinEvidenceItemsRequired:    cfg.MinEvidenceItemsRequired(),
		MinCategories:               cfg.MinCategories(),
		Deterministic:               cfg.Deterministic,
		CurrentYear:                 currentYear,
		TemporalConfidenceThreshold: cfg.TemporalConfidenceThreshold,
	}
}

func (d *Dependencies) refinementConfig() contextengine.RefinementConfig {
	cfg := d.Config
	return contextengine.RefinementConfig{
		MinEvidenceItemsRequired: cfg.MinEvidenceItemsRequired(),
		DedupThreshold:           cfg.ContextDedupThreshold,
		PromptMaxEvidenceItems:   cfg.ContextPromptMaxEvidenceItems,
	}
}

func (d *Dependencies) budgetLimits() budget.Limits {
	cfg := d.Config
	return budget.Limits{
		MaxTotalIterations:       cfg.MaxTotalIterations,
		MaxIterationsPerContext:  cfg.MaxIterationsPerContext,
		MaxTotalTokens:           cfg.MaxTotalTokens,
		GapResearchMaxIterations: cfg.GapResearchMaxIterations,
		GapResearchMaxQueries:    cfg.GapResearchMaxQueries,
	}
}

func (d *Dependencies) gapResearchLimits() research.GapResearchLimits {
	limits := research.GapResearchLimits{}
	if d.Config.GapResearchMaxIterations > 0 {
		limits.MaxIterations = d.Config.GapResearchMaxIterations
	}
	if d.Config.GapResearchMaxQueries > 0 {
		limits.MaxQueries = d.Config.GapResearchMaxQueries
	}
	return limits
}

func (d *Dependencies) thesisRelevanceConfig() claimengine.ThesisRelevanceConfig {
	cfg := d.Config
	out := claimengine.DefaultThesisRelevanceConfig()
	if cfg.ThesisRelevanceLowConfidenceThreshold > 0 {
		out.LowConfidenceThreshold = cfg.ThesisRelevanceLowConfidenceThreshold
	}
	if cfg.ThesisRelevanceAutoDowngradeThreshold > 0 {
		out.AutoDowngradeThreshold = cfg.ThesisRelevanceAutoDowngradeThreshold
	}
	return out
}

func (d *Dependencies) extractionWorkerLimit() int {
	if d.Config.ParallelExtractionLimit > 0 {
		return d.Config.ParallelExtractionLimit
	}
	return evidenceengine.DefaultParallelExtractionLimit
}

func (d *Dependencies) relevanceFilter() *research.RelevanceFilter {
	return &research.RelevanceFilter{
		Gateway:     d.Gateway,
		LLMEnabled:  d.Config.LLMFeatureEvidence,
		MaxLLMCalls: 20,
	}
}

// configSnapshot captures the run's effective configuration for the
// snapshot store (§6 "Persisted state"), keyed by jobID.
func (d *Dependencies) configSnapshot(jobID string) snapshot.Snapshot {
	cfg := d.Config
	return snapshot.Snapshot{
		JobID: jobID,
		PipelineConfig: map[string]any{
			"analysisMode":  string(cfg.AnalysisMode),
			"deterministic": cfg.Deterministic,
			"llmProvider":   cfg.LLMProvider,
		},
		SearchConfig: map[string]any{
			"searchEnabled":    cfg.SearchEnabled,
			"searchMode":       string(cfg.SearchMode),
			"searchProvider":   cfg.SearchProvider,
			"maxResults":       cfg.SearchMaxResults,
			"domainWhitelist":  cfg.DomainWhitelist,
			"domainBlacklist":  cfg.DomainBlacklist,
		},
		SRSummary: map[string]any{
			"gapResearchEnabled": cfg.GapResearchEnabled,
		},
	}
}
