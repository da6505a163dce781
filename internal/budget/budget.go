// Package budget implements the C10 tracker: iteration, token, and
// gap-query limits with early termination, grounded on the small
// counter-struct style of insightify/internal/common/utils.
package budget

import (
	"sync"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
)

// Limits are the configurable ceilings (§4.9).
type Limits struct {
	MaxTotalIterations      int
	MaxIterationsPerContext int
	MaxTotalTokens          int
	GapResearchMaxIterations int
	GapResearchMaxQueries    int
}

// Tracker is the single mutable budget ledger for one analysis run.
type Tracker struct {
	limits Limits

	mu sync.Mutex

	TokensUsed            int
	TotalIterations        int
	PerContextIterations   map[string]int
	LLMCalls               int
	BudgetExceeded         bool
	ExceedReason           string
	GapIterationsUsed      int
	GapQueriesUsed         int
}

func New(limits Limits) *Tracker {
	return &Tracker{
		limits:               limits,
		PerContextIterations: map[string]int{},
	}
}

// RecordLLMCall implements llmgateway.CallCounter.
func (t *Tracker) RecordLLMCall(tokensUsed int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.LLMCalls++
	t.TokensUsed += tokensUsed
	if t.limits.MaxTotalTokens > 0 && t.TokensUsed > t.limits.MaxTotalTokens && !t.BudgetExceeded {
		t.BudgetExceeded = true
		t.ExceedReason = "maxTotalTokens exceeded"
	}
}

// RecordIteration increments the main research-iteration counters and
// reports whether the caller should stop adding further iterations.
func (t *Tracker) RecordIteration(contextID string) (exceeded bool, reason string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.TotalIterations++
	if contextID != "" {
		t.PerContextIterations[contextID]++
	}
	if t.limits.MaxTotalIterations > 0 && t.TotalIterations > t.limits.MaxTotalIterations {
		t.BudgetExceeded = true
		t.ExceedReason = "maxTotalIterations exceeded"
	}
	if contextID != "" && t.limits.MaxIterationsPerContext > 0 && t.PerContextIterations[contextID] > t.limits.MaxIterationsPerContext {
		t.BudgetExceeded = true
		t.ExceedReason = "maxIterationsPerContext exceeded for " + contextID
	}
	return t.BudgetExceeded, t.ExceedReason
}

// Exceeded reports the current budget-exceeded state without mutating it.
func (t *Tracker) Exceeded() (bool, string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.BudgetExceeded, t.ExceedReason
}

// GapBudgetExceeded reports whether the separate, smaller gap-research
// budget is spent (§4.9: "does NOT share iteration counts with main
// research").
func (t *Tracker) GapBudgetExceeded() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.GapIterationsUsed >= t.limits.GapResearchMaxIterations || t.GapQueriesUsed >= t.limits.GapResearchMaxQueries
}

func (t *Tracker) RecordGapIteration(queries int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.GapIterationsUsed++
	t.GapQueriesUsed += queries
}

// Snapshot renders the tracker's current counters into the domain.BudgetState
// the result JSON and report expose (§3 ResearchState.budget).
func (t *Tracker) Snapshot() domain.BudgetState {
	t.mu.Lock()
	defer t.mu.Unlock()
	perContext := make(map[string]int, len(t.PerContextIterations))
	for k, v := range t.PerContextIterations {
		perContext[k] = v
	}
	return domain.BudgetState{
		TokensUsed:           t.TokensUsed,
		TotalIterations:      t.TotalIterations,
		PerContextIterations: perContext,
		LLMCalls:             t.LLMCalls,
		BudgetExceeded:       t.BudgetExceeded,
		ExceedReason:         t.ExceedReason,
		GapQueriesUsed:       t.GapQueriesUsed,
		GapIterationsUsed:    t.GapIterationsUsed,
	}
}
