package claimengine

import (
	"context"
	"fmt"
	"strings"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
	"github.com/robertschaub/FactHarbor-sub001/internal/llmadapter"
	"github.com/robertschaub/FactHarbor-sub001/internal/llmgateway"
	"github.com/robertschaub/FactHarbor-sub001/internal/schema"
)

const maxOutcomeClaimsPerContext = 2

// ProposeOutcomeClaims implements the Refine-phase "post-research
// outcome-claim extraction" step (§4.11 step 4): now that evidence has
// been collected, ask the LLM whether it surfaced a quantified
// penalty/result (sentence length, fine amount, damages awarded, ruling)
// worth evaluating as its own claim, and append any such claims. A no-op
// when no context has accumulated evidence yet. Shares the bounded,
// reject-duplicates shape of RequestSupplementalSubClaims, but is driven by
// evidence rather than a core-claim-count gate.
func ProposeOutcomeClaims(ctx context.Context, gw *llmgateway.Gateway, state *domain.ResearchState) error {
	if state.Understanding == nil || len(state.EvidenceItems) == 0 {
		return nil
	}

	contexts := state.Understanding.AnalysisContexts
	if len(contexts) == 0 {
		contexts = []domain.AnalysisContext{{}}
	}

	nextIdx := len(state.Understanding.SubClaims) + 1
	for _, c := range contexts {
		evidence := state.EvidenceForContext(c.ID)
		if len(evidence) == 0 {
			continue
		}

		statements := make([]string, 0, len(evidence))
		for _, e := range evidence {
			statements = append(statements, e.Statement)
		}
		systemPrompt := "Given this evidence, propose at most " + fmt.Sprint(maxOutcomeClaimsPerContext) +
			" new atomic claims that evaluate a quantified outcome the evidence reports (a sentence, fine, damages award, or ruling). Return none if the evidence reports no such outcome."
		userPrompt := fmt.Sprintf("Context: %s\n\nEvidence:\n- %s", c.Name, strings.Join(statements, "\n- "))

		raw, err := gw.Structured(ctx, llmadapter.TaskUnderstand, systemPrompt, userPrompt, schema.SupplementalClaimsSchema{}, llmgateway.Opts{})
		if err != nil {
			continue
		}
		proposal, ok := raw.(schema.SupplementalClaims)
		if !ok {
			continue
		}

		added := 0
		for _, newClaim := range proposal.NewClaims {
			if added >= maxOutcomeClaimsPerContext {
				break
			}
			if isDuplicate(newClaim.Text, state.Understanding.SubClaims) {
				continue
			}
			claim := newClaim.ToDomain()
			claim.ID = fmt.Sprintf("SC%d", nextIdx)
			nextIdx++
			claim.ContextID = c.ID
			claim.ClaimRole = domain.RoleCore
			claim.ThesisRelevance = domain.RelevanceDirect
			state.Understanding.SubClaims = append(state.Understanding.SubClaims, claim)
			added++
		}
	}
	return nil
}
