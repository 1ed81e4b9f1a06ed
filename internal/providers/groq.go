package providers

import (
	"context"
	"fmt"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// GroqProvider talks to Groq's OpenAI-compatible endpoint through the same
// client, pointed at Groq's base URL.
type GroqProvider struct {
	model string
}

func NewGroqProvider() *GroqProvider {
	model := os.Getenv("MINUTEFLOW_GROQ_MODEL")
	if strings.TrimSpace(model) == "" {
		model = "llama-3.1-8b-instant"
	}
	return &GroqProvider{model: model}
}

func (g *GroqProvider) Extract(ctx context.Context, req ExtractRequest) (ExtractResponse, ProviderInfo, error) {
	key := req.APIKey
	if key == "" {
		key = os.Getenv("GROQ_API_KEY")
	}
	model := req.ModelName
	if strings.TrimSpace(model) == "" {
		model = g.model
	}
	info := ProviderInfo{Name: "groq", Model: model}
	if key == "" {
		return ExtractResponse{}, info, fmt.Errorf("groq api key missing")
	}

	cfg := openai.DefaultConfig(key)
	cfg.BaseURL = groqBaseURL
	client := openai.NewClientWithConfig(cfg)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return ExtractResponse{}, info, fmt.Errorf("groq extract request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return ExtractResponse{}, info, fmt.Errorf("groq returned empty choices")
	}
	return ExtractResponse{Payload: strings.TrimSpace(resp.Choices[0].Message.Content)}, info, nil
}
