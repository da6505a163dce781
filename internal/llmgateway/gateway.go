// Package llmgateway is the single entry point for structured and free-text
// generation (§4.2 C2): timeout handling, output resilience (container
// unwrap, error-payload salvage, compact retry, free-text JSON-only
// fallback), per-task model tiering, and budget/call-count bookkeeping.
// Grounded on insightify/internal/llm's middleware-over-LLMClient design
// (middleware_retry.go, model_select.go) adapted to this domain's three-
// capability contract instead of GenerateJSON.
package llmgateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robertschaub/FactHarbor-sub001/internal/llmadapter"
)

// Validator lets the gateway remain schema-agnostic: internal/schema types
// implement this to give the gateway a strict parse and a lenient (safe-
// default) parse, per §9 "dynamic LLM JSON shapes".
type Validator interface {
	ParseStrict(data []byte) (any, error)
	ParseLenient(data []byte) (any, error)
}

// CallCounter is the subset of budget.Tracker the gateway needs; kept as an
// interface so llmgateway does not import internal/budget (budget imports
// nothing from llmgateway, but keeping the dependency one-directional and
// explicit mirrors the teacher's small-interface style).
type CallCounter interface {
	RecordLLMCall(tokensUsed int)
}

// Opts controls one Structured/Freeform call.
type Opts struct {
	Temperature     float32
	MaxOutputTokens int
	Timeout         time.Duration
	Deterministic   bool
}

// Gateway is the C2 facade. Besides the wrapped client chain it holds the
// CallCounter, which SetCounter rebinds for each analysis run.
type Gateway struct {
	client   llmadapter.LLMClient
	tiering  ModelTiering
	counter  CallCounter
	deterministic bool
}

func New(client llmadapter.LLMClient, tiering ModelTiering, counter CallCounter, deterministic bool) *Gateway {
	return &Gateway{client: client, tiering: tiering, counter: counter, deterministic: deterministic}
}

// SetCounter swaps the call counter a running analysis bills LLM calls to,
// so the orchestrator can bind a fresh per-run budget.Tracker (§4.9) to an
// otherwise long-lived Gateway without reconstructing the client chain.
func (g *Gateway) SetCounter(counter CallCounter) {
	g.counter = counter
}

func (g *Gateway) resolvedTemperature(requested float32) float32 {
	if g.deterministic {
		return 0
	}
	return requested
}

// Structured implements §4.2's four-step resilience chain.
func (g *Gateway) Structured(ctx context.Context, task llmadapter.Task, systemPrompt, userPrompt string, schema Validator, opts Opts) (any, error) {
	ctx = llmadapter.WithTask(ctx, task)
	ctx, cancel := g.withTimeout(ctx, opts)
	defer cancel()

	genOpts := llmadapter.GenerateOptions{
		Schema:          schema,
		Temperature:     g.resolvedTemperature(opts.Temperature),
		MaxOutputTokens: opts.MaxOutputTokens,
	}

	// Step 1: direct attempt, then unwrap any known container shape.
	res, err := g.generate(ctx, systemPrompt, userPrompt, genOpts)
	if err == nil {
		if v, perr := schema.ParseStrict(unwrapContainer(res.Text)); perr == nil {
			return v, nil
		}
	}

	// Step 2: salvage a JSON object from the error payload (or the raw
	// response text) and re-validate against the lenient schema.
	candidate := extractCandidate(err, res.Text)
	if candidate != "" {
		if salvaged := salvageJSONObject(candidate); salvaged != "" {
			if v, perr := schema.ParseLenient([]byte(salvaged)); perr == nil {
				return v, nil
			}
		}
	}

	// Step 3: retry once with a compact/strict system prompt.
	compactPrompt := systemPrompt + "\n\nRespond with ONLY a single minified JSON object matching the schema. No markdown fences, no commentary."
	res2, err2 := g.generate(ctx, compactPrompt, userPrompt, genOpts)
	if err2 == nil {
		body := unwrapContainer(res2.Text)
		if v, perr := schema.ParseStrict(body); perr == nil {
			return v, nil
		}
		if salvaged := salvageJSONObject(res2.Text); salvaged != "" {
			if v, perr := schema.ParseLenient([]byte(salvaged)); perr == nil {
				return v, nil
			}
		}
	}

	// Step 4: last resort, a free-text JSON-only call.
	freeformPrompt := "Return ONLY valid JSON matching this request, nothing else:\n\n" + compactPrompt
	res3, err3 := g.generate(ctx, freeformPrompt, userPrompt, genOpts)
	if err3 == nil {
		if salvaged := salvageJSONObject(res3.Text); salvaged != "" {
			if v, perr := schema.ParseLenient([]byte(salvaged)); perr == nil {
				return v, nil
			}
		}
	}

	if err != nil {
		return nil, fmt.Errorf("llmgateway: structured call failed after all resilience steps: %w", err)
	}
	return nil, fmt.Errorf("llmgateway: structured call failed after all resilience steps")
}

// Freeform returns raw text with no schema resilience applied.
func (g *Gateway) Freeform(ctx context.Context, task llmadapter.Task, systemPrompt, userPrompt string, opts Opts) (string, error) {
	ctx = llmadapter.WithTask(ctx, task)
	ctx, cancel := g.withTimeout(ctx, opts)
	defer cancel()
	res, err := g.generate(ctx, systemPrompt, userPrompt, llmadapter.GenerateOptions{
		Temperature:     g.resolvedTemperature(opts.Temperature),
		MaxOutputTokens: opts.MaxOutputTokens,
	})
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// SelectModel reports the tiering level chosen for a task (§4.2 capability 3).
func (g *Gateway) SelectModel(task llmadapter.Task) ModelLevel {
	return g.tiering.LevelFor(task)
}

func (g *Gateway) withTimeout(ctx context.Context, opts Opts) (context.Context, context.CancelFunc) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 8 * time.Minute
	}
	return context.WithTimeout(ctx, timeout)
}

func (g *Gateway) generate(ctx context.Context, systemPrompt, userPrompt string, opts llmadapter.GenerateOptions) (llmadapter.Result, error) {
	messages := []llmadapter.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt},
	}
	res, err := g.client.Generate(ctx, messages, opts)
	if g.counter != nil {
		g.counter.RecordLLMCall(res.Usage.TotalTokens)
	}
	if err != nil {
		log.Printf("llmgateway: generate failed (task=%s): %v", llmadapter.TaskFrom(ctx), err)
	}
	return res, err
}

// unwrapContainer peels known provider wrapper keys ($PARAMETER_NAME, data,
// result, output, response) before handing the body to strict parsing
// (§4.7 Robustness / §9 design notes).
func unwrapContainer(text string) []byte {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return []byte(trimmed)
	}
	var generic map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &generic); err != nil {
		return []byte(trimmed)
	}
	for _, key := range []string{"$PARAMETER_NAME", "data", "result", "output", "response"} {
		if inner, ok := generic[key]; ok {
			return inner
		}
	}
	return []byte(trimmed)
}

func extractCandidate(err error, fallbackText string) string {
	if err != nil {
		var noObj *llmadapter.NoObjectGeneratedError
		if asNoObjectGenerated(err, &noObj) && noObj.Candidate != "" {
			return noObj.Candidate
		}
		return err.Error()
	}
	return fallbackText
}

func asNoObjectGenerated(err error, target **llmadapter.NoObjectGeneratedError) bool {
	for err != nil {
		if v, ok := err.(*llmadapter.NoObjectGeneratedError); ok {
			*target = v
			return true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = unwrapper.Unwrap()
	}
	return false
}
