package verdictengine

import (
	"context"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
	"github.com/robertschaub/FactHarbor-sub001/internal/llmadapter"
	"github.com/robertschaub/FactHarbor-sub001/internal/llmgateway"
	"github.com/robertschaub/FactHarbor-sub001/internal/llmtool"
	"github.com/robertschaub/FactHarbor-sub001/internal/schema"
)

// Mode selects the verdict call shape from (detectedInputType,
// requiresSeparateAnalysis) per §4.7.
type Mode string

const (
	ModeSingleContext Mode = "single_context"
	ModeMultiContext  Mode = "multi_context"
	ModeArticle       Mode = "article"
)

// SelectMode implements §4.7's mode table.
func SelectMode(detectedInputType domain.DetectedInputType, requiresSeparateAnalysis bool, contextCount int) Mode {
	if detectedInputType == domain.DetectedArticle {
		return ModeArticle
	}
	if requiresSeparateAnalysis && contextCount > 1 {
		return ModeMultiContext
	}
	return ModeSingleContext
}

// Generate dispatches to the mode-appropriate structured call and returns
// calibration-ready ClaimVerdicts plus, for Article mode, the
// ArticleAnalysis supplement. Missing verdicts are filled per §4.7's
// robustness rule before returning; complete failure synthesizes 50%
// verdicts for every claim and records a structured_output_failure warning.
func Generate(ctx context.Context, gw *llmgateway.Gateway, state *domain.ResearchState, mode Mode) ([]domain.ClaimVerdict, *domain.ArticleAnalysis, error) {
	if state.Understanding == nil {
		return nil, nil, nil
	}
	input := buildVerdictInput(state, mode)

	switch mode {
	case ModeMultiContext:
		raw, err := gw.Structured(ctx, llmadapter.TaskVerdict, sharedSystemPrompt, mustPrompt(multiContextPromptBuilder, ctx, input), schema.MultiContextVerdictSchema{}, llmgateway.Opts{})
		if err != nil {
			return synthesizeFailure(state), nil, nil
		}
		parsed, ok := raw.(schema.MultiContextVerdict)
		if !ok {
			return synthesizeFailure(state), nil, nil
		}
		contextFallback := contextAnswerFallback(parsed.AnalysisContextAnswers)
		verdicts := fillMissingVerdicts(state, toClaimVerdicts(parsed.ClaimVerdicts), contextFallback)
		return verdicts, nil, nil

	case ModeArticle:
		raw, err := gw.Structured(ctx, llmadapter.TaskVerdict, sharedSystemPrompt, mustPrompt(articlePromptBuilder, ctx, input), schema.ArticleVerdictSchema{}, llmgateway.Opts{})
		if err != nil {
			return synthesizeFailure(state), nil, nil
		}
		parsed, ok := raw.(schema.ArticleVerdict)
		if !ok {
			return synthesizeFailure(state), nil, nil
		}
		verdicts := fillMissingVerdicts(state, toClaimVerdicts(parsed.ClaimVerdicts), nil)
		analysis := &domain.ArticleAnalysis{
			ThesisSupported:                parsed.ArticleAnalysis.ThesisSupported,
			LogicalFallacies:               parsed.ArticleAnalysis.LogicalFallacies,
			ArticleVerdict:                 coerceAnswer(parsed.ArticleAnalysis.ArticleVerdict.String()),
			VerdictDiffersFromClaimAverage: parsed.ArticleAnalysis.VerdictDiffersFromClaimAverage,
			VerdictDifferenceReason:        parsed.ArticleAnalysis.VerdictDifferenceReason,
		}
		return verdicts, analysis, nil

	default: // ModeSingleContext
		raw, err := gw.Structured(ctx, llmadapter.TaskVerdict, sharedSystemPrompt, mustPrompt(singleContextPromptBuilder, ctx, input), schema.SingleContextVerdictSchema{}, llmgateway.Opts{})
		if err != nil {
			return synthesizeFailure(state), nil, nil
		}
		parsed, ok := raw.(schema.SingleContextVerdict)
		if !ok {
			return synthesizeFailure(state), nil, nil
		}
		verdicts := fillMissingVerdicts(state, toClaimVerdicts(parsed.ClaimVerdicts), nil)
		return verdicts, nil, nil
	}
}

func mustPrompt(builder llmtool.PromptBuilder, ctx context.Context, input verdictInput) string {
	text, err := builder(ctx, input)
	if err != nil {
		return "Produce the verdict JSON described in the system prompt."
	}
	return text
}

func buildVerdictInput(state *domain.ResearchState, mode Mode) verdictInput {
	u := state.Understanding
	subClaims := make([]string, 0, len(u.SubClaims))
	for _, c := range u.SubClaims {
		subClaims = append(subClaims, c.Text)
	}
	var contexts []contextInput
	for _, c := range u.AnalysisContexts {
		contexts = append(contexts, contextInput{ID: c.ID, Name: c.Name, AssessedStatement: c.AssessedStatement})
	}
	return verdictInput{
		Claim:         state.OriginalInput,
		SubClaims:     subClaims,
		Contexts:      contexts,
		Evidence:      labelEvidence(state.EvidenceItems),
		IsArticle:     mode == ModeArticle,
		ArticleThesis: u.ArticleThesis,
	}
}

func toClaimVerdicts(items []schema.ClaimVerdictOut) []domain.ClaimVerdict {
	out := make([]domain.ClaimVerdict, 0, len(items))
	for _, v := range items {
		truth := v.IntVerdict()
		out = append(out, domain.ClaimVerdict{
			ClaimID:               v.ClaimID,
			Verdict:               truth,
			TruthPercentage:       truth,
			Confidence:            v.IntConfidence(),
			Reasoning:             v.Reasoning,
			RatingConfirmation:    domain.RatingConfirmation(v.RatingConfirmation),
			SupportingEvidenceIDs: v.SupportingEvidenceIDs,
		})
	}
	return out
}

func contextAnswerFallback(answers []schema.ContextAnswerOut) map[string]int {
	m := map[string]int{}
	for _, a := range answers {
		m[a.ContextID] = coerceAnswer(a.Answer.String())
	}
	return m
}

func coerceAnswer(s string) int {
	n := 50
	if v, ok := parseIntLoose(s); ok {
		n = v
	}
	if n < 0 {
		n = 0
	}
	if n > 100 {
		n = 100
	}
	return n
}

// fillMissingVerdicts implements §4.7's "fill missing claim verdicts" rule:
// any sub-claim with no LLM-returned verdict gets the context-level answer
// if available, otherwise 50%/50% with a fixed reasoning string.
func fillMissingVerdicts(state *domain.ResearchState, returned []domain.ClaimVerdict, contextFallback map[string]int) []domain.ClaimVerdict {
	byID := map[string]domain.ClaimVerdict{}
	for _, v := range returned {
		byID[v.ClaimID] = v
	}
	out := make([]domain.ClaimVerdict, 0, len(state.Understanding.SubClaims))
	for _, claim := range state.Understanding.SubClaims {
		if v, ok := byID[claim.ID]; ok {
			v.ClaimText = claim.Text
			v.ContextID = claim.ContextID
			v.IsCentral = claim.IsCentral
			v.Centrality = claim.Centrality
			v.ThesisRelevance = claim.ThesisRelevance
			v.IsCounterClaim = claim.IsCounterClaim
			out = append(out, v)
			continue
		}
		truth := 50
		if contextFallback != nil {
			if fallback, ok := contextFallback[claim.ContextID]; ok {
				truth = fallback
			}
		}
		out = append(out, domain.ClaimVerdict{
			ClaimID:         claim.ID,
			ClaimText:       claim.Text,
			Verdict:         truth,
			TruthPercentage: truth,
			Confidence:      50,
			Reasoning:       "No verdict returned by LLM",
			ContextID:       claim.ContextID,
			IsCentral:       claim.IsCentral,
			Centrality:      claim.Centrality,
			ThesisRelevance: claim.ThesisRelevance,
			IsCounterClaim:  claim.IsCounterClaim,
		})
	}
	return out
}

// synthesizeFailure is the complete-failure path: it records a
// structured_output_failure warning and returns 50% verdicts for every claim.
func synthesizeFailure(state *domain.ResearchState) []domain.ClaimVerdict {
	state.AddWarning("structured_output_failure", "error", map[string]any{"phase": "verdict"})
	return fillMissingVerdicts(state, nil, nil)
}

func parseIntLoose(s string) (int, bool) {
	n := 0
	neg := false
	started := false
	for _, r := range s {
		if r == '-' && !started {
			neg = true
			started = true
			continue
		}
		if r < '0' || r > '9' {
			if !started {
				continue
			}
			break
		}
		started = true
		n = n*10 + int(r-'0')
	}
	if !started {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}
