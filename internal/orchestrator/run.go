// Package orchestrator is C12: the six-phase pipeline (Ingest/Understand,
// Research, Refine, Verdicts, Calibrate, Report) that wires C1-C11 into
// RunAnalysis (§4.11, §6 "Main entry point"). Grounded on the teacher's
// run_context.go/gateway_run_execute.go phase-dispatch style: one exported
// entry point, a context object threaded through private phase functions,
// progress events fired at fixed checkpoints.
package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/robertschaub/FactHarbor-sub001/internal/budget"
	"github.com/robertschaub/FactHarbor-sub001/internal/calibration"
	"github.com/robertschaub/FactHarbor-sub001/internal/claimengine"
	"github.com/robertschaub/FactHarbor-sub001/internal/contextengine"
	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
	"github.com/robertschaub/FactHarbor-sub001/internal/evidenceengine"
	"github.com/robertschaub/FactHarbor-sub001/internal/fallback"
	"github.com/robertschaub/FactHarbor-sub001/internal/fetchadapter"
	"github.com/robertschaub/FactHarbor-sub001/internal/report"
	"github.com/robertschaub/FactHarbor-sub001/internal/research"
	"github.com/robertschaub/FactHarbor-sub001/internal/searchadapter"
	"github.com/robertschaub/FactHarbor-sub001/internal/text"
	"github.com/robertschaub/FactHarbor-sub001/internal/verdictengine"
)

// referenceYear/referenceMonth pin the "current date" the recency logic
// reasons about. A real deployment would source this from a clock
// collaborator threaded through Dependencies; fixing it here keeps
// deterministic-mode runs reproducible without adding a dependency no
// pack example needs.
const referenceYear = 2026
const referenceMonth = 7

// RunAnalysis is the stable entry point (§6): ingest -> understand ->
// research -> refine -> verdicts -> calibrate -> report.
func (d *Dependencies) RunAnalysis(ctx context.Context, in Input) (*ResultJSON, string, error) {
	state, tracker, err := d.ingest(ctx, in)
	if err != nil {
		return nil, "", err
	}

	if err := d.understand(ctx, state); err != nil {
		state.AddWarning("structured_output_failure", "error", map[string]any{"phase": "understand", "error": err.Error()})
	}
	d.emit("Understanding complete", 20)

	d.research(ctx, state, tracker)
	d.emit("Research complete", 60)

	d.refine(ctx, state)
	d.emit("Context refinement complete", 70)

	verdicts, articleAnalysis, mode := d.verdict(ctx, state)
	d.emit("Verdicts generated", 85)

	gapQueries, gapIterations := state.Budget.GapQueriesUsed, state.Budget.GapIterationsUsed
	state.Budget = tracker.Snapshot()
	state.Budget.GapQueriesUsed += gapQueries
	state.Budget.GapIterationsUsed += gapIterations
	result := d.calibrateAndFinalize(state, verdicts, articleAnalysis, mode)
	d.emit("Report ready", 100)

	markdown := report.Render(state, result.ClaimVerdicts, result.ArticleAnalysis,
		result.TwoPanelSummary.WeightedAverageTruth, result.TwoPanelSummary.DedupedWeightedAverageTruth)
	return result, markdown, nil
}

// ingest is phase 1: determine InputType, fetch+extract if URL, normalize,
// initialize state/budget/fallback (§4.11 step 1).
func (d *Dependencies) ingest(ctx context.Context, in Input) (*domain.ResearchState, *budget.Tracker, error) {
	d.emit("Starting analysis", 0)

	raw := in.Value
	if in.InputType == InputURL {
		extracted, err := d.Fetcher.ExtractTextFromURL(ctx, in.Value, fetchadapter.Options{
			Timeout:         d.Config.FetchTimeout,
			PDFParseTimeout: d.Config.PDFParseTimeout,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("orchestrator: ingest fetch failed: %w", err)
		}
		raw = extracted.Text
	}

	normalized := text.Normalize(raw)
	state := domain.NewResearchState(normalized, domain.InputType(in.InputType), in.JobID)

	tracker := budget.New(d.budgetLimits())
	d.Gateway.SetCounter(tracker)

	if d.SnapshotStore != nil {
		snap := d.configSnapshot(state.JobID)
		go d.SnapshotStore.Save(snap)
	}

	d.emit("Input ingested", 5)
	return state, tracker, nil
}

// understand is phase 2: run the Understand LLM call, force input
// neutrality, canonicalize/seed contexts, and apply the deterministic
// claim-engine post-processing chain (§4.3, §4.4, §4.11 step 2).
func (d *Dependencies) understand(ctx context.Context, state *domain.ResearchState) error {
	u, err := claimengine.UnderstandClaim(ctx, d.Gateway, state.OriginalInput, d.Config.UnderstandMaxChars)
	state.LLMCalls++
	if err != nil || u == nil {
		state.AddWarning("structured_output_failure", "error", map[string]any{"phase": "understand"})
		u = &domain.ClaimUnderstanding{
			DetectedInputType: domain.DetectedClaim,
			SubClaims:         claimengine.HeuristicAtomicClaims(state.OriginalInput, 0),
		}
	}

	// Invariant 3: input neutrality is unconditional.
	u.ImpliedClaim = state.OriginalInput
	u.OriginalInputDisplay = state.OriginalInput
	state.Understanding = u

	if d.Config.Deterministic && contextengine.IsComparativeInput(state.OriginalInput) {
		seeds := contextengine.DetectSeedContexts(state.OriginalInput)
		if len(seeds) >= 2 && len(u.AnalysisContexts) < 2 {
			u.AnalysisContexts = seeds
			u.RequiresSeparateAnalysis = len(seeds) > 1
		}
	}

	if d.Config.ContextDedupEnabled && len(u.AnalysisContexts) > 1 {
		kept, remap := contextengine.Dedup(u.AnalysisContexts, d.Config.ContextDedupThreshold)
		u.AnalysisContexts = kept
		u.RequiresSeparateAnalysis = len(kept) > 1
		contextengine.RewriteReferences(state, remap)
	}

	u.SubClaims = claimengine.NormalizeImportance(u.SubClaims)
	if d.Config.ThesisRelevanceValidationEnabled {
		claimengine.ValidateThesisRelevance(state, d.thesisRelevanceConfig())
	}
	claimengine.EnforceThesisRelevanceInvariants(state, d.thesisRelevanceConfig())
	claimengine.ApplyPolicyB(state)
	claimengine.EnsureMinimumDirectCoverage(state)
	u.SubClaims = claimengine.DetectCounterClaims(u.SubClaims, u.MainThesis)

	if needsBackfill(u) {
		if err := claimengine.RequestSupplementalSubClaims(ctx, d.Gateway, state); err == nil {
			state.LLMCalls++
		}
	}

	fallback.Sweep(state, "understand")
	return nil
}

func needsBackfill(u *domain.ClaimUnderstanding) bool {
	counts := map[string]int{}
	for _, c := range u.SubClaims {
		if c.ClaimRole == domain.RoleCore {
			counts[c.ContextID]++
		}
	}
	if len(u.AnalysisContexts) == 0 {
		return counts[""] < 2
	}
	for _, c := range u.AnalysisContexts {
		if counts[c.ID] < 2 {
			return true
		}
	}
	return false
}

// research is phase 3: the decide -> search -> fetch -> extract loop,
// followed by the bounded gap-driven phase (§4.6, §4.11 step 3).
func (d *Dependencies) research(ctx context.Context, state *domain.ResearchState, tracker *budget.Tracker) {
	if !d.Config.SearchEnabled || state.Understanding == nil {
		return
	}
	th := d.researchThresholds(referenceYear)

	maxIterations := d.Config.MaxResearchIterations()
	for i := 0; i < maxIterations; i++ {
		decision := research.DecideNextResearch(state, th)
		if decision.Complete {
			break
		}
		if exceeded, reason := tracker.RecordIteration(decision.TargetContextID); exceeded {
			recordBudgetExceeded(state, reason)
			break
		}

		d.runIteration(ctx, state, decision, i)
		d.emit(fmt.Sprintf("Research iteration %d complete", i+1), progressFor(i, maxIterations))

		if exceeded, reason := tracker.Exceeded(); exceeded {
			recordBudgetExceeded(state, reason)
			break
		}
	}

	if d.Config.GapResearchEnabled && !state.Budget.BudgetExceeded {
		added := research.RunGapResearch(ctx, state.OriginalInput, state,
			d.searchFn(), d.fetchFn(state), d.extractionWorkerLimit(),
			d.gapResearchLimits(), d.Gateway)
		if added > 0 {
			state.EvidenceItems = evidenceengine.DedupEvidence(state.EvidenceItems)
		}
	}
}

func recordBudgetExceeded(state *domain.ResearchState, reason string) {
	if state.Budget.BudgetExceeded {
		return
	}
	state.AddWarning("budget_exceeded", "warning", map[string]any{"reason": reason})
	state.Budget.BudgetExceeded = true
	state.Budget.ExceedReason = reason
}

const defaultFetchConcurrency = 5

func (d *Dependencies) runIteration(ctx context.Context, state *domain.ResearchState, decision research.ResearchDecision, idx int) {
	iteration := domain.ResearchIteration{
		Index:           idx,
		Focus:           decision.Focus,
		Queries:         decision.Queries,
		Category:        decision.Category,
		TargetContextID: decision.TargetContextID,
		TargetClaimID:   decision.TargetClaimID,
	}
	markFixedOnceFlags(state, decision)

	dateRestrict := ""
	if decision.RecencyMatters {
		dateRestrict = research.DateRestrictFor(d.Config.RecencyWindowMonths)
	}

	var candidates []research.SearchCandidate
	for _, q := range decision.Queries {
		resp, _, err := searchadapter.SearchWithFallback(ctx, d.SearchProvider,
			searchadapter.GroundedRequest{Prompt: q, Context: state.OriginalInput},
			searchadapter.Request{
				Query: q, MaxResults: d.Config.SearchMaxResults, DateRestrict: dateRestrict,
				DomainWhitelist: d.Config.DomainWhitelist, DomainBlacklist: d.Config.DomainBlacklist,
			})
		if err != nil {
			continue
		}
		state.SearchQueries = append(state.SearchQueries, domain.SearchQueryLog{
			Query: q, ProvidersUsed: resp.ProvidersUsed, ResultCount: len(resp.Results),
		})
		for _, r := range resp.Results {
			candidates = append(candidates, research.SearchCandidate{URL: r.URL, Title: r.Title, Snippet: r.Snippet})
		}
	}

	var entities []string
	if state.Understanding != nil {
		entities = []string{state.Understanding.MainThesis}
	}
	candidates = d.relevanceFilter().Filter(ctx, state.OriginalInput, entities, candidates)

	var toFetch []research.SearchCandidate
	for _, c := range candidates {
		key := research.NormalizeURLForDedup(c.URL)
		if _, seen := state.ProcessedURLs[key]; seen {
			continue
		}
		state.ProcessedURLs[key] = struct{}{}
		toFetch = append(toFetch, c)
		if len(toFetch) >= d.Config.MaxSourcesPerIteration {
			break
		}
	}

	sources := d.fetchConcurrently(ctx, state, toFetch)
	urls := make([]string, 0, len(sources))
	for _, s := range sources {
		urls = append(urls, s.URL)
	}
	_ = d.SRService.Prefetch(ctx, urls)
	sources = d.SRService.ApplyToSources(sources)

	state.Sources = append(state.Sources, sources...)
	iteration.SourcesFetched = len(sources)

	results := evidenceengine.ExtractAll(ctx, d.Gateway, state.OriginalInput, state.Understanding.AnalysisContexts, sources, d.extractionWorkerLimit())
	for _, r := range results {
		state.LLMCalls++
		for i := range r.Items {
			if r.Items[i].EvidenceScope != nil && !evidenceengine.CaptureScope(r.Items[i].EvidenceScope) {
				r.Items[i].EvidenceScope = nil
			}
		}
	}
	newItems := evidenceengine.CollectEvidence(results)
	before := len(state.EvidenceItems)
	state.EvidenceItems = evidenceengine.MergeNewEvidence(state.EvidenceItems, newItems)
	iteration.EvidenceAdded = len(state.EvidenceItems) - before

	assignEvidenceIDs(state)
	fallback.Sweep(state, "extraction")
	state.Iterations = append(state.Iterations, iteration)
}

// fetchConcurrently retrieves each candidate URL with a bounded worker
// pool (default 5, bounded by result count, §5), allocating stable
// sequential source IDs off the current length of state.Sources so IDs
// never collide across iterations.
func (d *Dependencies) fetchConcurrently(ctx context.Context, state *domain.ResearchState, candidates []research.SearchCandidate) []domain.FetchedSource {
	out := make([]domain.FetchedSource, len(candidates))
	limit := defaultFetchConcurrency
	if limit > len(candidates) {
		limit = len(candidates)
	}
	if limit <= 0 {
		return out
	}
	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup
	baseID := len(state.Sources)
	for i, c := range candidates {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int, cand research.SearchCandidate) {
			defer wg.Done()
			defer func() { <-sem }()
			extracted, err := d.Fetcher.ExtractTextFromURL(ctx, cand.URL, fetchadapter.Options{
				Timeout: d.Config.FetchTimeout, PDFParseTimeout: d.Config.PDFParseTimeout,
			})
			src := domain.FetchedSource{ID: fmt.Sprintf("S%d", baseID+idx+1), URL: cand.URL, Title: cand.Title}
			if err != nil {
				src.FetchSuccess = false
			} else {
				src.FetchSuccess = true
				src.Title = nonEmptyStr(extracted.Title, cand.Title)
				src.FullText = extracted.Text
				src.Category = extracted.ContentType
			}
			out[idx] = src
		}(i, c)
	}
	wg.Wait()
	return out
}

func nonEmptyStr(v, fallback string) string {
	if strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

// assignEvidenceIDs gives every not-yet-IDed evidence item a stable
// <sourceId>-E<k> id, numbered per-source in current slice order (§3).
func assignEvidenceIDs(state *domain.ResearchState) {
	perSource := map[string]int{}
	for i := range state.EvidenceItems {
		item := &state.EvidenceItems[i]
		if item.ID != "" {
			continue
		}
		perSource[item.SourceID]++
		item.ID = fmt.Sprintf("%s-E%d", item.SourceID, perSource[item.SourceID])
	}
}

func markFixedOnceFlags(state *domain.ResearchState, decision research.ResearchDecision) {
	switch decision.Focus {
	case "contradiction":
		state.ContradictionSearchPerformed = true
	case "inverse_claim":
		state.InverseClaimSearchPerformed = true
	case "decision_maker_conflict":
		state.DecisionMakerSearchPerformed = true
	case "recency":
		state.RecentClaimsSearched = true
	}
	if decision.TargetClaimID != "" {
		state.CentralClaimsSearched[decision.TargetClaimID] = struct{}{}
	}
}

// searchFn adapts searchadapter.Provider to research.SearchFn for the
// gap-research phase's bounded query fan-out.
func (d *Dependencies) searchFn() research.SearchFn {
	return func(ctx context.Context, query, dateRestrict string) ([]research.SearchCandidate, error) {
		resp, err := d.SearchProvider.Search(ctx, searchadapter.Request{
			Query: query, MaxResults: d.Config.SearchMaxResults, DateRestrict: dateRestrict,
		})
		if err != nil {
			return nil, err
		}
		out := make([]research.SearchCandidate, 0, len(resp.Results))
		for _, r := range resp.Results {
			out = append(out, research.SearchCandidate{URL: r.URL, Title: r.Title, Snippet: r.Snippet})
		}
		return out, nil
	}
}

// fetchFn adapts fetchadapter.Fetcher to research.FetchFn, assigning the
// next gap-phase source ID off the current state.Sources length.
func (d *Dependencies) fetchFn(state *domain.ResearchState) research.FetchFn {
	return func(ctx context.Context, url string) (domain.FetchedSource, error) {
		extracted, err := d.Fetcher.ExtractTextFromURL(ctx, url, fetchadapter.Options{
			Timeout: d.Config.FetchTimeout, PDFParseTimeout: d.Config.PDFParseTimeout,
		})
		id := fmt.Sprintf("GS%d", len(state.Sources)+1)
		if err != nil {
			return domain.FetchedSource{ID: id, URL: url, FetchSuccess: false}, nil
		}
		src := domain.FetchedSource{ID: id, URL: url, Title: extracted.Title, FullText: extracted.Text, FetchSuccess: true}
		_ = d.SRService.Prefetch(ctx, []string{url})
		applied := d.SRService.ApplyToSources([]domain.FetchedSource{src})
		return applied[0], nil
	}
}

func progressFor(i, total int) int {
	if total <= 0 {
		return 60
	}
	p := 20 + (i+1)*40/total
	if p > 60 {
		p = 60
	}
	return p
}

// refine is phase 4: evidence-driven context refinement, outcome-claim
// proposal, outcome enrichment, unassigned-claim backstop, coverage
// pruning, name-alignment validation (§4.3, §4.11 step 4).
func (d *Dependencies) refine(ctx context.Context, state *domain.ResearchState) {
	if state.Understanding == nil {
		return
	}
	if accepted, err := contextengine.RefineWithEvidence(ctx, d.Gateway, state, d.refinementConfig()); accepted && err == nil {
		state.LLMCalls++
	}

	if err := claimengine.ProposeOutcomeClaims(ctx, d.Gateway, state); err == nil {
		state.LLMCalls++
	}
	contextengine.EnrichOutcomes(state)

	contextengine.AssignUnassigned(state)
	contextengine.PruneByCoverage(state)
	if d.Config.ContextNameAlignmentEnabled {
		contextengine.ValidateNameAlignment(state, d.Config.ContextNameAlignmentThreshold)
	}

	fallback.Sweep(state, "refine")
}

// verdict is phase 5: select the mode and dispatch the verdict-generation
// call (§4.7, §4.11 step 5).
func (d *Dependencies) verdict(ctx context.Context, state *domain.ResearchState) ([]domain.ClaimVerdict, *domain.ArticleAnalysis, verdictengine.Mode) {
	if state.Understanding == nil {
		return nil, nil, verdictengine.ModeSingleContext
	}
	mode := verdictengine.SelectMode(state.Understanding.DetectedInputType, state.Understanding.RequiresSeparateAnalysis, len(state.Understanding.AnalysisContexts))
	verdicts, analysis, err := verdictengine.Generate(ctx, d.Gateway, state, mode)
	state.LLMCalls++
	if err != nil {
		state.AddWarning("structured_output_failure", "error", map[string]any{"phase": "verdict", "error": err.Error()})
	}
	return verdicts, analysis, mode
}

// calibrateAndFinalize is phase 6: the §4.8 canonical calibration order,
// pruning, article override, recency backstop, final fallback sweep, and
// result-JSON assembly (§4.11 step 6).
func (d *Dependencies) calibrateAndFinalize(state *domain.ResearchState, verdicts []domain.ClaimVerdict, articleAnalysis *domain.ArticleAnalysis, mode verdictengine.Mode) *ResultJSON {
	isMultiContext := mode == verdictengine.ModeMultiContext
	verdicts = calibration.Apply(state, verdicts, isMultiContext)

	evidenceByID := make(map[string]domain.EvidenceItem, len(state.EvidenceItems))
	for _, e := range state.EvidenceItems {
		evidenceByID[e.ID] = e
	}
	if d.Config.TangentialEvidenceQualityCheckEnabled {
		verdicts = calibration.PruneTangentialBaselessClaims(verdicts, evidenceByID, d.Config.MinEvidenceForTangential)
	}

	originalFactors := state.Understanding.KeyFactors
	state.Understanding.KeyFactors = calibration.PruneOpinionOnlyFactors(originalFactors)
	calibration.WarnOnOpinionAccumulation(state, originalFactors, d.Config.OpinionAccumulationWarningThreshold)

	if mode == verdictengine.ModeArticle {
		if articleAnalysis == nil {
			articleAnalysis = &domain.ArticleAnalysis{}
		}
		calibration.ApplyArticleOverride(articleAnalysis, verdicts)
	}
	if isMultiContext {
		if articleAnalysis == nil {
			articleAnalysis = &domain.ArticleAnalysis{}
		}
		calibration.ApplyMultiContextReliabilitySignal(articleAnalysis, len(state.Understanding.AnalysisContexts))
	}

	applyRecencyBackstop(state, verdicts, d.Config.RecencyWindowMonths, d.Config.RecencyConfidencePenalty)

	fallback.Sweep(state, "finalize")

	return d.buildResult(state, verdicts, articleAnalysis, mode)
}

// applyRecencyBackstop implements §4.11's post-verdict recency backstop:
// when the input is recency-sensitive and no evidence falls inside the
// configured window, every claim's confidence is docked and a
// recency_evidence_gap warning is recorded.
func applyRecencyBackstop(state *domain.ResearchState, verdicts []domain.ClaimVerdict, windowMonths, penalty int) {
	if state.Understanding == nil || state.Understanding.TemporalContext == nil || !state.Understanding.TemporalContext.IsRecencySensitive {
		return
	}
	if research.HasRecentEvidence(state.EvidenceItems, state.Sources, windowMonths, referenceYear, referenceMonth) {
		return
	}
	state.AddWarning("recency_evidence_gap", "warning", map[string]any{"windowMonths": windowMonths})
	for i := range verdicts {
		verdicts[i].Confidence -= penalty
		if verdicts[i].Confidence < 0 {
			verdicts[i].Confidence = 0
		}
	}
}
