package evidenceengine

import (
	"context"
	"fmt"
	"strings"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
	"github.com/robertschaub/FactHarbor-sub001/internal/llmadapter"
	"github.com/robertschaub/FactHarbor-sub001/internal/llmgateway"
	"github.com/robertschaub/FactHarbor-sub001/internal/schema"
)

const minExcerptLength = 20

// extractionInput is the per-call payload rendered into the shared
// extraction prompt (§4.5).
type extractionInput struct {
	Claim            string   `json:"claim"`
	AnalysisContexts []string `json:"analysisContexts,omitempty"`
	SourceTitle      string   `json:"sourceTitle"`
	SourceURL        string   `json:"sourceUrl"`
	SourceText       string   `json:"sourceText"`
}

// ExtractFromSource issues one structured LLM call against a single fetched
// source and returns the evidence items it yields after the specificity and
// excerpt-length rejection rules are applied. Items failing ProbativeFilter
// or ProvenanceValidate are dropped here too, so callers always get a
// ready-to-merge slice (§4.5). When contexts has exactly one entry every
// returned item is assigned to it outright; with more than one, each item's
// self-reported contextName (schema.EvidenceOut.ContextName) is resolved
// against contexts by case-insensitive name match, the same name-index
// approach claimengine.UnderstandClaim uses for sub-claims. An item whose
// name doesn't resolve is left unassigned for the Refine phase's bulk
// evidence-to-context reassignment to pick up later.
func ExtractFromSource(ctx context.Context, gw *llmgateway.Gateway, claim string, contexts []domain.AnalysisContext, source domain.FetchedSource) ([]domain.EvidenceItem, error) {
	if !source.FetchSuccess || source.FullText == "" {
		return nil, nil
	}

	contextNames := make([]string, 0, len(contexts))
	nameToID := map[string]string{}
	for _, c := range contexts {
		contextNames = append(contextNames, c.Name)
		nameToID[strings.ToLower(strings.TrimSpace(c.Name))] = c.ID
	}

	input := extractionInput{
		Claim:            claim,
		AnalysisContexts: contextNames,
		SourceTitle:      source.Title,
		SourceURL:        source.URL,
		SourceText:       truncateSourceText(source.FullText),
	}
	prompt, err := extractionPromptBuilder(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("evidenceengine: build prompt: %w", err)
	}

	system := "Extract evidence strictly supported by the given source text. Never fabricate content absent from it."
	raw, err := gw.Structured(ctx, llmadapter.TaskExtractEvidence, system, prompt, schema.EvidenceExtractionSchema{}, llmgateway.Opts{})
	if err != nil {
		return nil, err
	}
	extraction, ok := raw.(schema.EvidenceExtraction)
	if !ok {
		return nil, nil
	}

	items := make([]domain.EvidenceItem, 0, len(extraction.Items))
	for _, out := range extraction.Items {
		if !passesRejectionRules(out) {
			continue
		}
		item := out.ToDomain()
		item.SourceID = source.ID
		item.SourceURL = source.URL
		item.SourceTitle = source.Title
		if len(contexts) == 1 {
			item.ContextID = contexts[0].ID
		} else if id, ok := nameToID[strings.ToLower(strings.TrimSpace(out.ContextName))]; ok {
			item.ContextID = id
		}
		item = ProvenanceValidate(item, source)
		if !ValidProvenance(item) {
			continue
		}
		if !HighImpactSafeguard(item, source.TrackRecordScore) {
			continue
		}
		if !ProbativeFilter(item) {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// passesRejectionRules implements §4.5's hard rejection gate: specificity
// low, or an excerpt shorter than minExcerptLength, disqualifies an item
// before it ever reaches the domain model.
func passesRejectionRules(out schema.EvidenceOut) bool {
	if out.Specificity == string(domain.SpecificityLow) {
		return false
	}
	if len(out.SourceExcerpt) < minExcerptLength {
		return false
	}
	return true
}

const maxSourceTextChars = 12000

func truncateSourceText(text string) string {
	if len(text) <= maxSourceTextChars {
		return text
	}
	return text[:maxSourceTextChars]
}
