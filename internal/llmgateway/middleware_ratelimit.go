package llmgateway

import (
	"context"

	"github.com/robertschaub/FactHarbor-sub001/internal/llmadapter"
	"golang.org/x/time/rate"
)

// RateLimit throttles outgoing calls to a fixed requests-per-second budget,
// replacing the teacher's ad-hoc ticker (cmd/archflow/main.go) with the
// pack's token-bucket library (grounded on the entropia crawler's use of
// golang.org/x/time/rate for per-host pacing).
func RateLimit(limiter *rate.Limiter) Middleware {
	return func(next llmadapter.LLMClient) llmadapter.LLMClient {
		return &rateLimitedClient{next: next, limiter: limiter}
	}
}

type rateLimitedClient struct {
	next    llmadapter.LLMClient
	limiter *rate.Limiter
}

func (r *rateLimitedClient) Name() string          { return r.next.Name() }
func (r *rateLimitedClient) Close() error          { return r.next.Close() }
func (r *rateLimitedClient) CountTokens(t string) int { return r.next.CountTokens(t) }
func (r *rateLimitedClient) TokenCapacity() int    { return r.next.TokenCapacity() }

func (r *rateLimitedClient) Generate(ctx context.Context, messages []llmadapter.Message, opts llmadapter.GenerateOptions) (llmadapter.Result, error) {
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return llmadapter.Result{}, err
		}
	}
	return r.next.Generate(ctx, messages, opts)
}
