package llmgateway

import (
	"context"
	"errors"
	"time"

	"github.com/robertschaub/FactHarbor-sub001/internal/llmadapter"
)

// Middleware wraps an llmadapter.LLMClient with cross-cutting behavior,
// mirroring insightify/internal/llm.Middleware's decorator chain.
type Middleware func(next llmadapter.LLMClient) llmadapter.LLMClient

// Chain applies middlewares outermost-last, so Chain(base, A, B) behaves
// like A(B(base)): A sees the call first.
func Chain(base llmadapter.LLMClient, mws ...Middleware) llmadapter.LLMClient {
	client := base
	for i := len(mws) - 1; i >= 0; i-- {
		client = mws[i](client)
	}
	return client
}

// Retry retries Generate up to maxAttempts with exponential backoff
// starting at baseDelay, stopping immediately on a PermanentError or a
// canceled context. Grounded on insightify/internal/llm.Retry.
func Retry(maxAttempts int, baseDelay time.Duration) Middleware {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if baseDelay <= 0 {
		baseDelay = 300 * time.Millisecond
	}
	return func(next llmadapter.LLMClient) llmadapter.LLMClient {
		return &retryingClient{next: next, max: maxAttempts, base: baseDelay}
	}
}

type retryingClient struct {
	next llmadapter.LLMClient
	max  int
	base time.Duration
}

func (r *retryingClient) Name() string          { return r.next.Name() }
func (r *retryingClient) Close() error          { return r.next.Close() }
func (r *retryingClient) CountTokens(t string) int { return r.next.CountTokens(t) }
func (r *retryingClient) TokenCapacity() int    { return r.next.TokenCapacity() }

func (r *retryingClient) Generate(ctx context.Context, messages []llmadapter.Message, opts llmadapter.GenerateOptions) (llmadapter.Result, error) {
	var last error
	for i := 0; i < r.max; i++ {
		res, err := r.next.Generate(ctx, messages, opts)
		if err == nil {
			return res, nil
		}
		var perm *llmadapter.PermanentError
		if errors.As(err, &perm) {
			return llmadapter.Result{}, err
		}
		last = err
		select {
		case <-ctx.Done():
			return llmadapter.Result{}, ctx.Err()
		default:
		}
		time.Sleep(r.base * time.Duration(1<<i))
	}
	return llmadapter.Result{}, last
}
