package budget

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordLLMCallAccumulatesTokens(t *testing.T) {
	tr := New(Limits{MaxTotalTokens: 1000})
	tr.RecordLLMCall(100)
	tr.RecordLLMCall(50)
	assert.Equal(t, 150, tr.TokensUsed)
	assert.Equal(t, 2, tr.LLMCalls)
	exceeded, _ := tr.Exceeded()
	assert.False(t, exceeded)
}

func TestRecordLLMCallFlagsExceededOnce(t *testing.T) {
	tr := New(Limits{MaxTotalTokens: 100})
	tr.RecordLLMCall(150)
	exceeded, reason := tr.Exceeded()
	assert.True(t, exceeded)
	assert.Equal(t, "maxTotalTokens exceeded", reason)
}

func TestRecordLLMCallIgnoresZeroLimit(t *testing.T) {
	tr := New(Limits{})
	tr.RecordLLMCall(1_000_000)
	exceeded, _ := tr.Exceeded()
	assert.False(t, exceeded)
}

func TestRecordIterationTracksTotalAndPerContext(t *testing.T) {
	tr := New(Limits{MaxTotalIterations: 10, MaxIterationsPerContext: 10})
	tr.RecordIteration("ctx-1")
	tr.RecordIteration("ctx-1")
	tr.RecordIteration("ctx-2")
	assert.Equal(t, 3, tr.TotalIterations)
	assert.Equal(t, 2, tr.PerContextIterations["ctx-1"])
	assert.Equal(t, 1, tr.PerContextIterations["ctx-2"])
}

func TestRecordIterationExceedsTotalLimit(t *testing.T) {
	tr := New(Limits{MaxTotalIterations: 2})
	tr.RecordIteration("a")
	tr.RecordIteration("b")
	exceeded, reason := tr.RecordIteration("c")
	assert.True(t, exceeded)
	assert.Equal(t, "maxTotalIterations exceeded", reason)
}

func TestRecordIterationExceedsPerContextLimit(t *testing.T) {
	tr := New(Limits{MaxTotalIterations: 100, MaxIterationsPerContext: 1})
	tr.RecordIteration("ctx-1")
	exceeded, reason := tr.RecordIteration("ctx-1")
	assert.True(t, exceeded)
	assert.Contains(t, reason, "ctx-1")
}

func TestRecordIterationWithEmptyContextIDSkipsPerContextTracking(t *testing.T) {
	tr := New(Limits{MaxIterationsPerContext: 1})
	tr.RecordIteration("")
	tr.RecordIteration("")
	assert.Empty(t, tr.PerContextIterations)
	exceeded, _ := tr.Exceeded()
	assert.False(t, exceeded)
}

func TestGapBudgetExceededOnIterations(t *testing.T) {
	tr := New(Limits{GapResearchMaxIterations: 2, GapResearchMaxQueries: 100})
	assert.False(t, tr.GapBudgetExceeded())
	tr.RecordGapIteration(1)
	assert.False(t, tr.GapBudgetExceeded())
	tr.RecordGapIteration(1)
	assert.True(t, tr.GapBudgetExceeded())
}

func TestGapBudgetExceededOnQueries(t *testing.T) {
	tr := New(Limits{GapResearchMaxIterations: 100, GapResearchMaxQueries: 3})
	tr.RecordGapIteration(3)
	assert.True(t, tr.GapBudgetExceeded())
}

func TestSnapshotReturnsIndependentCopyOfPerContextMap(t *testing.T) {
	tr := New(Limits{})
	tr.RecordIteration("ctx-1")
	snap := tr.Snapshot()
	assert.Equal(t, 1, snap.PerContextIterations["ctx-1"])

	snap.PerContextIterations["ctx-1"] = 99
	assert.Equal(t, 1, tr.PerContextIterations["ctx-1"])
}

func TestSnapshotReflectsBudgetExceededState(t *testing.T) {
	tr := New(Limits{MaxTotalTokens: 10})
	tr.RecordLLMCall(20)
	snap := tr.Snapshot()
	assert.True(t, snap.BudgetExceeded)
	assert.Equal(t, "maxTotalTokens exceeded", snap.ExceedReason)
	assert.Equal(t, 20, snap.TokensUsed)
}
