package domain

// BudgetState is the subset of internal/budget.Tracker fields that the
// result JSON and report need to see; the tracker itself lives in
// internal/budget to keep the limit-checking logic out of the domain model.
type BudgetState struct {
	TokensUsed         int            `json:"tokensUsed"`
	TotalIterations    int            `json:"totalIterations"`
	PerContextIterations map[string]int `json:"perContextIterations"`
	LLMCalls           int            `json:"llmCalls"`
	BudgetExceeded     bool           `json:"budgetExceeded"`
	ExceedReason       string         `json:"exceedReason,omitempty"`
	GapQueriesUsed     int            `json:"gapQueriesUsed"`
	GapIterationsUsed  int            `json:"gapIterationsUsed"`
}

// ResearchState is the single mutable struct threaded through every phase
// (§3). Exactly one writer touches it at a time; components receive it by
// pointer and append to its append-only slices.
type ResearchState struct {
	OriginalInput string
	InputType     InputType

	Understanding *ClaimUnderstanding

	Iterations []ResearchIteration
	Sources    []FetchedSource
	EvidenceItems []EvidenceItem
	SearchQueries []SearchQueryLog

	ProcessedURLs map[string]struct{}

	ContradictionSearchPerformed bool
	DecisionMakerSearchPerformed bool
	RecentClaimsSearched         bool
	InverseClaimSearchPerformed  bool
	CentralClaimsSearched        map[string]struct{}

	Budget BudgetState

	FallbackRecords  []FallbackRecord
	AnalysisWarnings []AnalysisWarning

	LLMCalls int

	// JobID, when set, is forwarded to the config-snapshot store and event
	// stream so clients can correlate async side channels with this run.
	JobID string
}

// NewResearchState initializes all append-only collections so components
// never have to nil-check before appending (§9 "global mutable state").
func NewResearchState(input string, inputType InputType, jobID string) *ResearchState {
	return &ResearchState{
		OriginalInput:          input,
		InputType:              inputType,
		Iterations:             []ResearchIteration{},
		Sources:                []FetchedSource{},
		EvidenceItems:          []EvidenceItem{},
		SearchQueries:          []SearchQueryLog{},
		ProcessedURLs:          map[string]struct{}{},
		CentralClaimsSearched:  map[string]struct{}{},
		FallbackRecords:        []FallbackRecord{},
		AnalysisWarnings:       []AnalysisWarning{},
		JobID:                  jobID,
	}
}

// AddWarning appends a structured warning, preserving occurrence order (§5).
func (s *ResearchState) AddWarning(kind, severity string, details map[string]any) {
	s.AnalysisWarnings = append(s.AnalysisWarnings, AnalysisWarning{
		Type:     kind,
		Severity: severity,
		Details:  details,
	})
}

// AddFallback appends a classification-fallback audit record (§4.10).
func (s *ResearchState) AddFallback(field, location, text, defaultUsed, reason string) {
	if len(text) > 100 {
		text = text[:100]
	}
	s.FallbackRecords = append(s.FallbackRecords, FallbackRecord{
		Field:       field,
		Location:    location,
		Text:        text,
		DefaultUsed: defaultUsed,
		Reason:      reason,
	})
}

// ContextByID returns the context with the given id, or false if absent.
func (s *ResearchState) ContextByID(id string) (AnalysisContext, bool) {
	if s.Understanding == nil || id == "" {
		return AnalysisContext{}, false
	}
	for _, c := range s.Understanding.AnalysisContexts {
		if c.ID == id {
			return c, true
		}
	}
	return AnalysisContext{}, false
}

// ClaimByID returns the sub-claim with the given id, or false if absent.
func (s *ResearchState) ClaimByID(id string) (SubClaim, bool) {
	if s.Understanding == nil || id == "" {
		return SubClaim{}, false
	}
	for _, c := range s.Understanding.SubClaims {
		if c.ID == id {
			return c, true
		}
	}
	return SubClaim{}, false
}

// EvidenceForContext returns evidence items assigned to the given context id.
func (s *ResearchState) EvidenceForContext(contextID string) []EvidenceItem {
	var out []EvidenceItem
	for _, e := range s.EvidenceItems {
		if e.ContextID == contextID {
			out = append(out, e)
		}
	}
	return out
}
