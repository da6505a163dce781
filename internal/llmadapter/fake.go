package llmadapter

import (
	"context"
)

// FakeClient returns a deterministic canned response, for offline tests and
// the demo CLI path. Grounded on insightify/internal/llm.FakeClient, but
// keyed by a caller-supplied response map instead of a phase string since
// this domain's tasks are named, not numbered mainline steps.
type FakeClient struct {
	tokenCap  int
	Responses map[string]string // task name (from context) -> raw JSON text
	Default   string
}

func NewFakeClient(tokenCap int) *FakeClient {
	if tokenCap <= 0 {
		tokenCap = 8192
	}
	return &FakeClient{tokenCap: tokenCap, Responses: map[string]string{}, Default: "{}"}
}

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }
func (f *FakeClient) CountTokens(text string) int {
	if len(text) == 0 {
		return 0
	}
	return len(text) / 4
}
func (f *FakeClient) TokenCapacity() int { return f.tokenCap }

func (f *FakeClient) Generate(ctx context.Context, messages []Message, opts GenerateOptions) (Result, error) {
	task := TaskFrom(ctx)
	text := f.Default
	if r, ok := f.Responses[string(task)]; ok {
		text = r
	}
	return Result{Text: text, Usage: Usage{TotalTokens: estimateTokens(messages) + f.CountTokens(text)}}, nil
}

func estimateTokens(messages []Message) int {
	total := 0
	for _, m := range messages {
		total += len(m.Content) / 4
	}
	return total
}
