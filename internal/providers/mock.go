package providers

import (
	"context"
	"encoding/json"
	"strings"
)

// MockProvider returns a deterministic partial summary derived from the
// segment text, for local development and tests.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) Extract(ctx context.Context, req ExtractRequest) (ExtractResponse, ProviderInfo, error) {
	_ = ctx
	snippet := segmentSnippet(req.Prompt, 120)
	payload, _ := json.Marshal(map[string]any{
		"MeetingName": "",
		"SessionSummary": map[string]any{
			"title":  "Session Summary",
			"blocks": []string{"Deterministic summary: " + snippet},
		},
		"MeetingNotes": map[string]any{
			"meeting_name": "",
			"sections": []map[string]any{
				{"title": "Session Summary", "blocks": []string{"Deterministic note: " + snippet}},
			},
		},
	})
	return ExtractResponse{Payload: string(payload)}, ProviderInfo{Name: "mock", Model: "mock-summarizer-v1"}, nil
}

// segmentSnippet pulls the tail of the prompt, which carries the transcript
// segment, and truncates it to a stable preview.
func segmentSnippet(prompt string, n int) string {
	marker := "Transcript segment:\n"
	if i := strings.LastIndex(prompt, marker); i >= 0 {
		prompt = prompt[i+len(marker):]
	}
	prompt = strings.TrimSpace(prompt)
	runes := []rune(prompt)
	if len(runes) > n {
		return string(runes[:n])
	}
	return prompt
}
