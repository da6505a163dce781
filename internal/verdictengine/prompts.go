package verdictengine

import (
	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
	"github.com/robertschaub/FactHarbor-sub001/internal/llmtool"
	"github.com/robertschaub/FactHarbor-sub001/internal/schema"
)

const sharedSystemPrompt = `Rate the original user claim as stated, preserving its direction. Evaluate
the substance of the claim, not whether an attributing source exists.
Evidence items are labeled [SUPPORTING] or [COUNTER-EVIDENCE]; your
aggregation must lean accordingly. Causal claims require causal evidence:
temporal sequence alone caps the verdict at LEANING-FALSE or lower.
ratingConfirmation must be self-consistent with the numeric verdict.`

type verdictInput struct {
	Claim          string             `json:"claim"`
	SubClaims      []string           `json:"subClaims"`
	Contexts       []contextInput     `json:"analysisContexts,omitempty"`
	Evidence       []labeledEvidence  `json:"evidence"`
	IsArticle      bool               `json:"isArticle"`
	ArticleThesis  string             `json:"articleThesis,omitempty"`
}

type contextInput struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	AssessedStatement string `json:"assessedStatement,omitempty"`
}

type labeledEvidence struct {
	Label     string `json:"label"` // SUPPORTING | COUNTER-EVIDENCE
	Statement string `json:"statement"`
	ContextID string `json:"contextId,omitempty"`
}

func labelEvidence(items []domain.EvidenceItem) []labeledEvidence {
	out := make([]labeledEvidence, 0, len(items))
	for _, item := range items {
		label := "SUPPORTING"
		if item.ClaimDirection == domain.DirectionContradicts {
			label = "COUNTER-EVIDENCE"
		}
		out = append(out, labeledEvidence{Label: label, Statement: item.Statement, ContextID: item.ContextID})
	}
	return out
}

var verdictPresets = []llmtool.PromptPreset{llmtool.PresetStrictJSON(), llmtool.PresetCautious()}

var singleContextPromptBuilder = llmtool.StructuredPromptBuilder(llmtool.ApplyPresets(llmtool.StructuredPromptSpec{
	Purpose:      "Produce a verdict for the claim and each of its sub-claims, with no separate analytical contexts.",
	Background:   sharedSystemPrompt,
	OutputFields: llmtool.MustFieldsFromStruct(schema.SingleContextVerdict{}),
	OutputFormat: "A single JSON object matching the schema above. No markdown fences.",
}, verdictPresets...))

var multiContextPromptBuilder = llmtool.StructuredPromptBuilder(llmtool.ApplyPresets(llmtool.StructuredPromptSpec{
	Purpose:      "Produce a verdict for the claim within each distinct analytical context, plus per-claim verdicts.",
	Background:   sharedSystemPrompt,
	OutputFields: llmtool.MustFieldsFromStruct(schema.MultiContextVerdict{}),
	OutputFormat: "A single JSON object matching the schema above. No markdown fences.",
}, verdictPresets...))

var articlePromptBuilder = llmtool.StructuredPromptBuilder(llmtool.ApplyPresets(llmtool.StructuredPromptSpec{
	Purpose:      "Produce per-claim verdicts for an article's sub-claims plus an overall article analysis.",
	Background:   sharedSystemPrompt,
	OutputFields: llmtool.MustFieldsFromStruct(schema.ArticleVerdict{}),
	OutputFormat: "A single JSON object matching the schema above. No markdown fences.",
}, verdictPresets...))
