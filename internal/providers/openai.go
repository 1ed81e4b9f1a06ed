package providers

import (
	"context"
	"fmt"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider extracts partial summaries through the OpenAI chat API,
// forcing JSON-object responses.
type OpenAIProvider struct{}

func NewOpenAIProvider() *OpenAIProvider {
	return &OpenAIProvider{}
}

func (o *OpenAIProvider) Extract(ctx context.Context, req ExtractRequest) (ExtractResponse, ProviderInfo, error) {
	key := req.APIKey
	if key == "" {
		key = os.Getenv("OPENAI_API_KEY")
	}
	model := req.ModelName
	if strings.TrimSpace(model) == "" {
		model = "gpt-4o-mini"
	}
	info := ProviderInfo{Name: "openai", Model: model}
	if key == "" {
		return ExtractResponse{}, info, fmt.Errorf("openai api key missing")
	}

	client := openai.NewClient(key)
	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		Temperature: 0.2,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return ExtractResponse{}, info, fmt.Errorf("openai extract request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return ExtractResponse{}, info, fmt.Errorf("openai returned empty choices")
	}
	return ExtractResponse{Payload: strings.TrimSpace(resp.Choices[0].Message.Content)}, info, nil
}
