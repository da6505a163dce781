package schema

import (
	"encoding/json"

	"github.com/robertschaub/FactHarbor-sub001/internal/util/jsonutil"
)

// RefinementProposal is the evidence-driven context-refinement output
// contract (§4.3 "Evidence-driven refinement").
type RefinementProposal struct {
	AnalysisContexts []ContextOut           `json:"analysisContexts" prompt_type:"[]AnalysisContext" prompt_desc:"Refined set of analytical frames given the evidence collected so far."`
	EvidenceAssignments []AssignmentOut     `json:"evidenceAssignments" prompt_type:"[]Assignment" prompt_desc:"Maps each evidenceId to the contextName it belongs to."`
	ClaimAssignments []AssignmentOut        `json:"claimAssignments,omitempty" prompt_type:"[]Assignment" prompt_desc:"Maps each claimId to the contextName it belongs to, where applicable."`
}

type AssignmentOut struct {
	ID          string `json:"id"`
	ContextName string `json:"contextName"`
}

type RefinementSchema struct{}

func (RefinementSchema) ParseStrict(data []byte) (any, error) {
	var r RefinementProposal
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	if len(r.AnalysisContexts) == 0 {
		return nil, errEmptyRequired
	}
	return r, nil
}

func (RefinementSchema) ParseLenient(data []byte) (any, error) {
	var r RefinementProposal
	if err := jsonutil.UnmarshalFlex(data, &r); err != nil {
		return nil, err
	}
	return r, nil
}
