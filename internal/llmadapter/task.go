package llmadapter

import "context"

// Task identifies which gateway call site is in flight, for model tiering
// and for the fake client's canned-response lookup. Grounded on
// insightify/internal/llm's ModelRole/context-key pattern (model_select.go).
type Task string

const (
	TaskUnderstand       Task = "understand"
	TaskExtractEvidence  Task = "extract_evidence"
	TaskVerdict          Task = "verdict"
	TaskRelevance        Task = "relevance"
	TaskRefinement       Task = "refinement"
	TaskSimilarity       Task = "similarity"
	TaskEvidenceQuality  Task = "evidence_quality"
	TaskVerdictValidation Task = "verdict_validation"
	TaskSearchRelevance  Task = "search_relevance"
)

type ctxKeyTask struct{}

// WithTask attaches the current task to the context so every layer of the
// middleware chain (and the fake client) can see which call is in flight.
func WithTask(ctx context.Context, task Task) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKeyTask{}, task)
}

// TaskFrom extracts the current task, defaulting to the empty task.
func TaskFrom(ctx context.Context) Task {
	if ctx == nil {
		return ""
	}
	if v := ctx.Value(ctxKeyTask{}); v != nil {
		if t, ok := v.(Task); ok {
			return t
		}
	}
	return ""
}
