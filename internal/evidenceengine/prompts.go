// Package evidenceengine implements C6: per-source evidence extraction,
// the high-impact-outcome safeguard, probative/provenance filtering,
// dedup, EvidenceScope capture, and bounded-concurrency parallel
// extraction (§4.5). Grounded on insightify/internal/llmtool's structured-
// prompt builder, reused here for the one recurring per-source prompt
// shape instead of per-tool-call prompts.
package evidenceengine

import (
	"github.com/robertschaub/FactHarbor-sub001/internal/llmtool"
	"github.com/robertschaub/FactHarbor-sub001/internal/schema"
)

var extractionPromptSpec = llmtool.ApplyPresets(llmtool.StructuredPromptSpec{
	Purpose:      "Extract evidence items from one fetched source relevant to the claims under evaluation.",
	Background:   "Evidence items must be directly supported by the source text; never invent facts not present in the excerpt.",
	OutputFields: llmtool.MustFieldsFromStruct(schema.EvidenceExtraction{}),
	Constraints: []string{
		"specificity must never be 'low'",
		"sourceExcerpt must be a verbatim quote of at least 20 characters",
		"claimDirection must be assigned relative to the user's original claim, not the source's own framing",
	},
	Rules: []string{
		"Prefer fewer, well-supported items over many vague ones.",
		"Capture evidenceScope when the source defines methodology, boundaries, geography, or a time period.",
	},
	OutputFormat: "A single JSON object matching the schema above. No markdown fences.",
}, llmtool.PresetStrictJSON(), llmtool.PresetNoInvent())

var extractionPromptBuilder = llmtool.StructuredPromptBuilder(extractionPromptSpec)
