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

// OllamaProvider runs extraction against a local Ollama instance. No API key
// is required.
type OllamaProvider struct {
	baseURL string
	client  *http.Client
}

func NewOllamaProvider() *OllamaProvider {
	base := os.Getenv("MINUTEFLOW_OLLAMA_BASE")
	if strings.TrimSpace(base) == "" {
		base = "http://localhost:11434"
	}
	return &OllamaProvider{
		baseURL: strings.TrimRight(base, "/"),
		client:  &http.Client{Timeout: 300 * time.Second},
	}
}

func (o *OllamaProvider) Extract(ctx context.Context, req ExtractRequest) (ExtractResponse, ProviderInfo, error) {
	model := req.ModelName
	if strings.TrimSpace(model) == "" {
		model = "llama3.1"
	}
	info := ProviderInfo{Name: "ollama", Model: model}

	payload, _ := json.Marshal(map[string]any{
		"model":  model,
		"stream": false,
		"format": "json",
		"messages": []map[string]string{
			{"role": "system", "content": req.System},
			{"role": "user", "content": req.Prompt},
		},
	})
	httpReq, _ := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/chat", bytes.NewReader(payload))
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return ExtractResponse{}, info, fmt.Errorf("ollama extract request failed: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return ExtractResponse{}, info, fmt.Errorf("ollama extract error %d: %s", resp.StatusCode, string(body))
	}
	var parsed struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ExtractResponse{}, info, fmt.Errorf("decode ollama response: %w", err)
	}
	if strings.TrimSpace(parsed.Message.Content) == "" {
		return ExtractResponse{}, info, fmt.Errorf("ollama returned empty content")
	}
	return ExtractResponse{Payload: strings.TrimSpace(parsed.Message.Content)}, info, nil
}
