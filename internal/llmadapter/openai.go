package llmadapter

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient is the third tiering backend, wired via the pack's
// github.com/sashabaranov/go-openai SDK (not present in the teacher, pulled
// in from the retrieval pack to exercise llmProvider/llmTiering against a
// third real provider alongside Gemini and Groq).
type OpenAIClient struct {
	cli      *openai.Client
	model    string
	tokenCap int
}

func NewOpenAIClient(apiKey, model string, tokenCap int) *OpenAIClient {
	if tokenCap <= 0 {
		tokenCap = 16000
	}
	return &OpenAIClient{
		cli:      openai.NewClient(apiKey),
		model:    model,
		tokenCap: tokenCap,
	}
}

func (o *OpenAIClient) Name() string { return "OpenAI:" + o.model }
func (o *OpenAIClient) Close() error { return nil }
func (o *OpenAIClient) CountTokens(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	return len(text) / 4
}
func (o *OpenAIClient) TokenCapacity() int { return o.tokenCap }

func (o *OpenAIClient) Generate(ctx context.Context, messages []Message, opts GenerateOptions) (Result, error) {
	var chatMsgs []openai.ChatCompletionMessage
	for _, m := range messages {
		role := openai.ChatMessageRoleUser
		if m.Role == "system" {
			role = openai.ChatMessageRoleSystem
		}
		chatMsgs = append(chatMsgs, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	req := openai.ChatCompletionRequest{
		Model:       o.model,
		Messages:    chatMsgs,
		Temperature: opts.Temperature,
	}
	if opts.MaxOutputTokens > 0 {
		req.MaxTokens = opts.MaxOutputTokens
	}
	if opts.Schema != nil {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject}
	}

	resp, err := o.cli.CreateChatCompletion(ctx, req)
	if err != nil {
		return Result{}, classifyOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return Result{}, &NoObjectGeneratedError{Err: ErrEmptyResponse}
	}

	return Result{
		Text: resp.Choices[0].Message.Content,
		Usage: Usage{TotalTokens: resp.Usage.TotalTokens},
	}, nil
}

func classifyOpenAIError(err error) error {
	var apiErr *openai.APIError
	if ok := asOpenAIAPIError(err, &apiErr); ok {
		if apiErr.HTTPStatusCode == 401 || apiErr.HTTPStatusCode == 402 {
			return NewPermanentError(err)
		}
	}
	return err
}

func asOpenAIAPIError(err error, target **openai.APIError) bool {
	if apiErr, ok := err.(*openai.APIError); ok {
		*target = apiErr
		return true
	}
	return false
}
