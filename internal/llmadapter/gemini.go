package llmadapter

import (
	"context"
	"strings"

	genai "google.golang.org/genai"
)

// GeminiClient is a thin wrapper around the official genai client. Grounded
// on insightify/internal/llmClient.GeminiClient; cross-cutting concerns
// (retries, model selection, rate limiting) live in internal/llmgateway.
type GeminiClient struct {
	cli      *genai.Client
	model    string
	tokenCap int
}

func NewGeminiClient(ctx context.Context, model string, tokenCap int) (*GeminiClient, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, err
	}
	if tokenCap <= 0 {
		tokenCap = 32000
	}
	return &GeminiClient{cli: cli, model: model, tokenCap: tokenCap}, nil
}

func (g *GeminiClient) Name() string { return "Gemini:" + g.model }
func (g *GeminiClient) Close() error { return nil }

func (g *GeminiClient) CountTokens(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	return len(text) / 4
}

func (g *GeminiClient) TokenCapacity() int { return g.tokenCap }

func (g *GeminiClient) Generate(ctx context.Context, messages []Message, opts GenerateOptions) (Result, error) {
	var system strings.Builder
	var user strings.Builder
	for _, m := range messages {
		switch m.Role {
		case "system":
			system.WriteString(m.Content)
			system.WriteString("\n")
		default:
			user.WriteString(m.Content)
			user.WriteString("\n")
		}
	}

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(opts.Temperature),
	}
	if system.Len() > 0 {
		cfg.SystemInstruction = genai.NewContentFromText(system.String(), genai.RoleUser)
	}
	if opts.MaxOutputTokens > 0 {
		cfg.MaxOutputTokens = int32(opts.MaxOutputTokens)
	}

	resp, err := g.cli.Models.GenerateContent(ctx, g.model, genai.Text(user.String()), cfg)
	if err != nil {
		return Result{}, err
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return Result{}, &NoObjectGeneratedError{Err: ErrEmptyResponse, Candidate: text}
	}

	usage := Usage{}
	if resp.UsageMetadata != nil {
		usage.TotalTokens = int(resp.UsageMetadata.TotalTokenCount)
	}
	return Result{Text: text, Usage: usage}, nil
}
