package contextengine

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
	"github.com/robertschaub/FactHarbor-sub001/internal/llmadapter"
	"github.com/robertschaub/FactHarbor-sub001/internal/llmgateway"
	"github.com/robertschaub/FactHarbor-sub001/internal/schema"
	"github.com/robertschaub/FactHarbor-sub001/internal/text"
)

// RefinementConfig bundles the thresholds §4.3 names for the evidence-
// driven refinement step.
type RefinementConfig struct {
	MinEvidenceItemsRequired int
	DedupThreshold           float64
	PromptMaxEvidenceItems   int
}

// RefineWithEvidence issues ONE LLM call proposing a refined context set
// plus evidence/claim assignments once enough evidence has accumulated,
// applies canonicalize -> dedup -> remap, and validates acceptance criteria
// (§4.3). It is a no-op (returns false, nil) until the threshold is met.
func RefineWithEvidence(ctx context.Context, gw *llmgateway.Gateway, state *domain.ResearchState, cfg RefinementConfig) (accepted bool, err error) {
	threshold := cfg.MinEvidenceItemsRequired
	if threshold > 8 {
		threshold = 8
	}
	if len(state.EvidenceItems) < threshold {
		return false, nil
	}
	if state.Understanding == nil {
		return false, nil
	}

	evidenceSample := state.EvidenceItems
	if cfg.PromptMaxEvidenceItems > 0 && len(evidenceSample) > cfg.PromptMaxEvidenceItems {
		evidenceSample = evidenceSample[:cfg.PromptMaxEvidenceItems]
	}

	systemPrompt := "Propose a refined set of analysis contexts for this claim verification given the collected evidence. " +
		"Assign every evidence item and claim to exactly one context by name."
	userPrompt := buildRefinementInput(state, evidenceSample)

	raw, callErr := gw.Structured(ctx, llmadapter.TaskRefinement, systemPrompt, userPrompt, schema.RefinementSchema{}, llmgateway.Opts{})
	if callErr != nil {
		return false, callErr
	}
	proposal, ok := raw.(schema.RefinementProposal)
	if !ok {
		return false, fmt.Errorf("contextengine: unexpected refinement payload type")
	}

	priorByID := indexByID(state.Understanding.AnalysisContexts)

	var proposedContexts []domain.AnalysisContext
	for _, c := range proposal.AnalysisContexts {
		proposedContexts = append(proposedContexts, domain.AnalysisContext{
			Name:              c.Name,
			ShortName:         c.ShortName,
			Subject:           c.Subject,
			AssessedStatement: c.AssessedStatement,
			Status:            domain.ContextStatus(nonEmpty(c.Status, string(domain.ContextUnknown))),
			Outcome:           c.Outcome,
			Metadata:          c.Metadata,
		})
	}
	canon, _ := Canonicalize(proposedContexts, false)
	kept, mergeRemap := Dedup(canon, cfg.DedupThreshold)

	nameToID := map[string]string{}
	for _, c := range kept {
		nameToID[normalizeContextName(c.Name)] = c.ID
	}
	resolveName := func(name string) (string, bool) {
		id, ok := nameToID[normalizeContextName(name)]
		return id, ok
	}

	evidenceByID := map[string]string{}
	for _, a := range proposal.EvidenceAssignments {
		if id, ok := resolveName(a.ContextName); ok {
			evidenceByID[a.ID] = id
		}
	}
	claimByID := map[string]string{}
	for _, a := range proposal.ClaimAssignments {
		if id, ok := resolveName(a.ContextName); ok {
			claimByID[a.ID] = id
		}
	}

	assignedCount := 0
	for _, e := range evidenceSample {
		if _, ok := evidenceByID[e.ID]; ok {
			assignedCount++
		}
	}
	if len(evidenceSample) > 0 && float64(assignedCount)/float64(len(evidenceSample)) < 0.70 {
		return false, nil
	}

	evidenceCountByContext := map[string]int{}
	for _, cid := range evidenceByID {
		evidenceCountByContext[cid]++
	}
	for _, c := range kept {
		if evidenceCountByContext[c.ID] == 0 {
			return false, nil
		}
	}

	if len(kept) > 1 && !hasFrameSignal(kept, evidenceSample) {
		return false, nil
	}

	state.Understanding.AnalysisContexts = kept
	state.Understanding.RequiresSeparateAnalysis = len(kept) > 1
	for i := range state.EvidenceItems {
		if id, ok := evidenceByID[state.EvidenceItems[i].ID]; ok {
			state.EvidenceItems[i].ContextID = id
		}
	}
	for i := range state.Understanding.SubClaims {
		if id, ok := claimByID[state.Understanding.SubClaims[i].ID]; ok {
			state.Understanding.SubClaims[i].ContextID = id
		}
	}

	RewriteReferences(state, mergeRemap)
	Reconcile(state, priorByID)
	ValidateNameAlignment(state, 0.3)
	return true, nil
}

// hasFrameSignal implements the §4.3 "strong frame signal" gate: at least 2
// distinct frame keys across contexts from metadata, OR at least 2 distinct
// per-evidence EvidenceScopes across at least 2 contexts.
func hasFrameSignal(contexts []domain.AnalysisContext, evidence []domain.EvidenceItem) bool {
	frameKeys := map[string]struct{}{}
	for _, c := range contexts {
		for _, k := range append(append([]string{}, primaryMetadataKeys...), secondaryMetadataKeys...) {
			if v, ok := c.Metadata[k]; ok && v != "" {
				frameKeys[k+"="+v] = struct{}{}
			}
		}
	}
	if len(frameKeys) >= 2 {
		return true
	}

	scopesByContext := map[string]map[string]struct{}{}
	for _, e := range evidence {
		if e.EvidenceScope == nil || e.ContextID == "" {
			continue
		}
		key := e.EvidenceScope.Methodology + "|" + e.EvidenceScope.Boundaries + "|" + e.EvidenceScope.Geographic + "|" + e.EvidenceScope.Temporal
		if key == "|||" {
			continue
		}
		if scopesByContext[e.ContextID] == nil {
			scopesByContext[e.ContextID] = map[string]struct{}{}
		}
		scopesByContext[e.ContextID][key] = struct{}{}
	}
	distinctScopes := map[string]struct{}{}
	contextsWithScope := 0
	for _, scopes := range scopesByContext {
		if len(scopes) > 0 {
			contextsWithScope++
		}
		for k := range scopes {
			distinctScopes[k] = struct{}{}
		}
	}
	return len(distinctScopes) >= 2 && contextsWithScope >= 2
}

// ValidateNameAlignment renames a context to "<primary> (<extras>) context"
// when its name diverges from the dominant per-evidence EvidenceScope it
// has accumulated (§4.3 "validate name alignment").
func ValidateNameAlignment(state *domain.ResearchState, threshold float64) {
	if state.Understanding == nil {
		return
	}
	scopeNamesByContext := map[string][]string{}
	for _, e := range state.EvidenceItems {
		if e.ContextID == "" || e.EvidenceScope == nil || e.EvidenceScope.Name == "" {
			continue
		}
		scopeNamesByContext[e.ContextID] = append(scopeNamesByContext[e.ContextID], e.EvidenceScope.Name)
	}
	for i := range state.Understanding.AnalysisContexts {
		c := &state.Understanding.AnalysisContexts[i]
		names := scopeNamesByContext[c.ID]
		if len(names) == 0 {
			continue
		}
		dominant := mostFrequent(names)
		if text.Jaccard(c.Name, dominant) >= (1 - threshold) {
			continue
		}
		extras := distinctOthers(names, dominant)
		if len(extras) > 0 {
			c.Name = fmt.Sprintf("%s (%s) context", dominant, strings.Join(extras, ", "))
		} else {
			c.Name = fmt.Sprintf("%s context", dominant)
		}
	}
}

func mostFrequent(vals []string) string {
	counts := map[string]int{}
	for _, v := range vals {
		counts[v]++
	}
	best, bestCount := vals[0], 0
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if counts[k] > bestCount {
			best, bestCount = k, counts[k]
		}
	}
	return best
}

func distinctOthers(vals []string, exclude string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, v := range vals {
		if v == exclude {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func normalizeContextName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func nonEmpty(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func buildRefinementInput(state *domain.ResearchState, evidence []domain.EvidenceItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Current claim: %s\n\n", state.OriginalInput)
	fmt.Fprintf(&b, "Existing contexts (%d):\n", len(state.Understanding.AnalysisContexts))
	for _, c := range state.Understanding.AnalysisContexts {
		fmt.Fprintf(&b, "- %s: %s\n", c.ID, c.Name)
	}
	fmt.Fprintf(&b, "\nEvidence items (%d):\n", len(evidence))
	for _, e := range evidence {
		fmt.Fprintf(&b, "- %s [%s]: %s\n", e.ID, e.ClaimDirection, e.Statement)
	}
	return b.String()
}
