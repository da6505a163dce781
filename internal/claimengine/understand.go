package claimengine

import (
	"context"
	"fmt"

	"github.com/robertschaub/FactHarbor-sub001/internal/contextengine"
	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
	"github.com/robertschaub/FactHarbor-sub001/internal/llmadapter"
	"github.com/robertschaub/FactHarbor-sub001/internal/llmgateway"
	"github.com/robertschaub/FactHarbor-sub001/internal/llmtool"
	"github.com/robertschaub/FactHarbor-sub001/internal/schema"
)

var understandPromptSpec = llmtool.StructuredPromptSpec{
	Purpose: "Understand a claim or article well enough to decompose it into atomic, independently verifiable sub-claims and the distinct analytical frames (contexts) it requires.",
	Background: "The input may be a bare claim, a comparative statement, or a full article. A context is a bounded analytical frame that needs its own verdict (two different court cases, two different studies); never invent a vague 'general' context when one frame covers everything.",
	OutputFields: llmtool.MustFieldsFromStruct(schema.Understanding{}),
	Constraints: []string{
		"subClaims must contain 3-8 atomic, independently verifiable claims",
		"requiresSeparateAnalysis must be true iff len(analysisContexts) > 1",
		"every subClaim's and keyFactor's contextName, if set, must name one of analysisContexts",
	},
	Rules: []string{
		"Prefer fewer, well-scoped contexts over many narrow ones.",
		"Flag a subClaim as a counter-claim when it argues against the main thesis rather than for it.",
		"Set centrality=high only for claims whose falsity would change the overall verdict.",
	},
	OutputFormat: "A single JSON object matching the schema above. No markdown fences.",
}

var understandPromptBuilder = llmtool.StructuredPromptBuilder(understandPromptSpec)

const understandSystemPrompt = "You are a claim-verification analyst. Read the input and produce the structured understanding JSON described below. Do not invent facts; restrict yourself to what the input itself asserts."

// UnderstandClaim issues the Understand-phase LLM call (§4.2 capability 1,
// §3), converts the wire payload to the domain model, and assigns the
// stable per-run IDs (SC%d for sub-claims, KF%d for key factors) that
// schema.Understanding.ToDomain deliberately leaves unset, since ID
// assignment is a pipeline concern, not a wire-format one. Context names
// are resolved against the newly canonicalized context ID space in the
// same pass; any further context merge (dedup, refinement) rewrites these
// references later via contextengine.RewriteReferences.
func UnderstandClaim(ctx context.Context, gw *llmgateway.Gateway, input string, maxChars int) (*domain.ClaimUnderstanding, error) {
	text := input
	if maxChars > 0 && len(text) > maxChars {
		text = text[:maxChars]
	}

	prompt, err := understandPromptBuilder(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("claimengine: build understand prompt: %w", err)
	}

	raw, err := gw.Structured(ctx, llmadapter.TaskUnderstand, understandSystemPrompt, prompt, schema.UnderstandingSchema{}, llmgateway.Opts{})
	if err != nil {
		return nil, err
	}
	parsed, ok := raw.(schema.Understanding)
	if !ok {
		return nil, fmt.Errorf("claimengine: unexpected understand payload type")
	}

	u := parsed.ToDomain()

	canonContexts, _ := contextengine.Canonicalize(u.AnalysisContexts, false)
	nameToID := make(map[string]string, len(canonContexts))
	for i, c := range parsed.AnalysisContexts {
		if i < len(canonContexts) {
			nameToID[normalizeContextName(c.Name)] = canonContexts[i].ID
		}
	}
	u.AnalysisContexts = canonContexts
	u.RequiresSeparateAnalysis = len(canonContexts) > 1

	for i := range u.SubClaims {
		u.SubClaims[i].ID = fmt.Sprintf("SC%d", i+1)
		if i < len(parsed.SubClaims) {
			if id, ok := nameToID[normalizeContextName(parsed.SubClaims[i].ContextName)]; ok {
				u.SubClaims[i].ContextID = id
			}
		}
	}
	for i := range u.KeyFactors {
		u.KeyFactors[i].ID = fmt.Sprintf("KF%d", i+1)
		if i < len(parsed.KeyFactors) {
			if id, ok := nameToID[normalizeContextName(parsed.KeyFactors[i].ContextName)]; ok {
				u.KeyFactors[i].ContextID = id
			}
		}
	}

	if len(u.SubClaims) == 0 {
		u.SubClaims = HeuristicAtomicClaims(input, 0)
	}

	return &u, nil
}
