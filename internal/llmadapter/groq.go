package llmadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// GroqClient calls the Groq Chat Completions API (OpenAI-compatible).
// Grounded verbatim on insightify/internal/llmClient.GroqClient's raw-HTTP
// shape; only the request/response unwrapping changes (free text, not a
// pre-decoded json.RawMessage, since schema resilience moved up a layer).
type GroqClient struct {
	http     *http.Client
	apiKey   string
	model    string
	baseURL  string
	tokenCap int
}

func NewGroqClient(apiKey, model string, tokenCap int) *GroqClient {
	if apiKey == "" {
		apiKey = os.Getenv("GROQ_API_KEY")
	}
	if tokenCap <= 0 {
		tokenCap = 6000
	}
	return &GroqClient{
		http:     &http.Client{Timeout: 60 * time.Second},
		apiKey:   apiKey,
		model:    model,
		baseURL:  "https://api.groq.com/openai/v1/chat/completions",
		tokenCap: tokenCap,
	}
}

func (g *GroqClient) Name() string { return "Groq:" + g.model }
func (g *GroqClient) Close() error { return nil }
func (g *GroqClient) CountTokens(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	return len(text) / 4
}
func (g *GroqClient) TokenCapacity() int { return g.tokenCap }

type groqChatReq struct {
	Model          string            `json:"model"`
	Messages       []groqMessage     `json:"messages"`
	Temperature    float32           `json:"temperature,omitempty"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}
type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
type groqChatResp struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

func (g *GroqClient) Generate(ctx context.Context, messages []Message, opts GenerateOptions) (Result, error) {
	var gmsgs []groqMessage
	for _, m := range messages {
		gmsgs = append(gmsgs, groqMessage{Role: m.Role, Content: m.Content})
	}

	reqBody := groqChatReq{
		Model:       g.model,
		Messages:    gmsgs,
		Temperature: opts.Temperature,
	}
	if opts.Schema != nil {
		reqBody.ResponseFormat = map[string]string{"type": "json_object"}
	}

	raw, err := json.Marshal(reqBody)
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL, bytes.NewReader(raw))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.http.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, err
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusPaymentRequired {
		return Result{}, NewPermanentError(fmt.Errorf("groq: %s: %s", resp.Status, string(body)))
	}
	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("groq: %s: %s", resp.Status, string(body))
	}

	var parsed groqChatResp
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Result{}, fmt.Errorf("groq: decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return Result{}, &NoObjectGeneratedError{Err: ErrEmptyResponse, Candidate: string(body)}
	}
	return Result{
		Text:  parsed.Choices[0].Message.Content,
		Usage: Usage{TotalTokens: parsed.Usage.TotalTokens},
	}, nil
}
