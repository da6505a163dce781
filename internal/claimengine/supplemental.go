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

const minCoreClaimsPerProceeding = 2
const maxSupplementalCalls = 2

// RequestSupplementalSubClaims issues at most maxSupplementalCalls bounded
// LLM calls requesting ONLY new claims for any context with fewer than
// MIN_CORE_CLAIMS_PER_PROCEEDING core claims, rejecting duplicates and
// out-of-allow-list contexts. Falls back to heuristic atomic claims derived
// from the input when LLM backfill yields nothing (§4.4).
func RequestSupplementalSubClaims(ctx context.Context, gw *llmgateway.Gateway, state *domain.ResearchState) error {
	if state.Understanding == nil {
		return nil
	}
	needsByContext := contextsNeedingCoreClaims(state.Understanding)
	if len(needsByContext) == 0 {
		return nil
	}

	singleContext := len(state.Understanding.AnalysisContexts) <= 1
	allowList := allowedContextIDs(state.Understanding)

	callsMade := 0
	anyAdded := false
	for contextID := range needsByContext {
		if callsMade >= maxSupplementalCalls {
			break
		}
		callsMade++

		existing := existingClaimTexts(state.Understanding.SubClaims)
		userPrompt := fmt.Sprintf("Claim: %s\n\nExisting claims (do not repeat these):\n- %s",
			state.OriginalInput, strings.Join(existing, "\n- "))
		systemPrompt := "Propose additional atomic, independently verifiable claims that are NOT already covered."

		raw, err := gw.Structured(ctx, llmadapter.TaskUnderstand, systemPrompt, userPrompt, schema.SupplementalClaimsSchema{}, llmgateway.Opts{})
		if err != nil {
			continue
		}
		proposal, ok := raw.(schema.SupplementalClaims)
		if !ok {
			continue
		}

		nextIdx := len(state.Understanding.SubClaims) + 1
		for _, newClaim := range proposal.NewClaims {
			if isDuplicate(newClaim.Text, state.Understanding.SubClaims) {
				continue
			}
			targetContext := contextID
			if !singleContext {
				if newClaim.ContextName == "" {
					continue
				}
				resolved, ok := allowList[normalizeContextName(newClaim.ContextName)]
				if !ok {
					continue
				}
				targetContext = resolved
			}
			claim := newClaim.ToDomain()
			claim.ID = fmt.Sprintf("SC%d", nextIdx)
			nextIdx++
			claim.ContextID = targetContext
			claim.ClaimRole = domain.RoleCore
			state.Understanding.SubClaims = append(state.Understanding.SubClaims, claim)
			anyAdded = true
		}
	}

	if !anyAdded {
		heuristic := HeuristicAtomicClaims(state.OriginalInput, len(state.Understanding.SubClaims))
		for i := range heuristic {
			heuristic[i].ClaimRole = domain.RoleCore
			heuristic[i].ThesisRelevance = domain.RelevanceDirect
			heuristic[i].Centrality = domain.LevelMedium
		}
		state.Understanding.SubClaims = append(state.Understanding.SubClaims, heuristic...)
	}
	return nil
}

func contextsNeedingCoreClaims(u *domain.ClaimUnderstanding) map[string]int {
	coreCount := map[string]int{}
	for _, c := range u.SubClaims {
		if c.ClaimRole == domain.RoleCore {
			coreCount[c.ContextID]++
		}
	}
	needs := map[string]int{}
	if len(u.AnalysisContexts) == 0 {
		if coreCount[""] < minCoreClaimsPerProceeding {
			needs[""] = minCoreClaimsPerProceeding - coreCount[""]
		}
		return needs
	}
	for _, ctx := range u.AnalysisContexts {
		if coreCount[ctx.ID] < minCoreClaimsPerProceeding {
			needs[ctx.ID] = minCoreClaimsPerProceeding - coreCount[ctx.ID]
		}
	}
	return needs
}

func allowedContextIDs(u *domain.ClaimUnderstanding) map[string]string {
	m := map[string]string{}
	for _, c := range u.AnalysisContexts {
		m[normalizeContextName(c.Name)] = c.ID
	}
	return m
}

func existingClaimTexts(claims []domain.SubClaim) []string {
	out := make([]string, 0, len(claims))
	for _, c := range claims {
		out = append(out, c.Text)
	}
	return out
}

func isDuplicate(text string, claims []domain.SubClaim) bool {
	for _, c := range claims {
		if NormalizedEqual(text, c.Text) {
			return true
		}
	}
	return false
}

func normalizeContextName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
