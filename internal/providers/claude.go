package providers

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

const anthropicVersion = "2023-06-01"

// ClaudeProvider uses Anthropic's Messages REST API.
type ClaudeProvider struct {
	client *http.Client
}

func NewClaudeProvider() *ClaudeProvider {
	return &ClaudeProvider{client: &http.Client{Timeout: 120 * time.Second}}
}

func (c *ClaudeProvider) Extract(ctx context.Context, req ExtractRequest) (ExtractResponse, ProviderInfo, error) {
	key := req.APIKey
	if key == "" {
		key = os.Getenv("ANTHROPIC_API_KEY")
	}
	model := req.ModelName
	if strings.TrimSpace(model) == "" {
		model = "claude-3-5-haiku-latest"
	}
	info := ProviderInfo{Name: "claude", Model: model}
	if key == "" {
		return ExtractResponse{}, info, fmt.Errorf("anthropic api key missing")
	}

	payload, _ := json.Marshal(map[string]any{
		"model":      model,
		"max_tokens": 4096,
		"system":     req.System,
		"messages": []map[string]string{
			{"role": "user", "content": req.Prompt},
		},
	})
	httpReq, _ := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.anthropic.com/v1/messages", bytes.NewReader(payload))
	httpReq.Header.Set("x-api-key", key)
	httpReq.Header.Set("anthropic-version", anthropicVersion)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return ExtractResponse{}, info, fmt.Errorf("anthropic extract request failed: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return ExtractResponse{}, info, fmt.Errorf("anthropic extract error %d: %s", resp.StatusCode, string(body))
	}
	var parsed struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ExtractResponse{}, info, fmt.Errorf("decode anthropic response: %w", err)
	}
	for _, block := range parsed.Content {
		if block.Type == "text" && strings.TrimSpace(block.Text) != "" {
			return ExtractResponse{Payload: strings.TrimSpace(block.Text)}, info, nil
		}
	}
	return ExtractResponse{}, info, fmt.Errorf("anthropic returned no text content")
}
