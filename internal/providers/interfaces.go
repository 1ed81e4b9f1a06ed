package providers

import "context"

type ProviderInfo struct {
	Name  string `json:"name"`
	Model string `json:"model"`
}

// ExtractRequest carries one transcript segment to a provider. Prompt is the
// fully assembled user prompt; System is the role instruction. APIKey, when
// set, overrides the provider's environment credential.
type ExtractRequest struct {
	Operation string `json:"operation"`
	ModelName string `json:"model_name"`
	System    string `json:"system"`
	Prompt    string `json:"prompt"`
	APIKey    string `json:"-"`
}

// ExtractResponse holds the raw structured-summary payload as returned by the
// provider. Parsing happens at the merge boundary, not here.
type ExtractResponse struct {
	Payload string `json:"payload"`
}

// SummaryProvider converts one segment into a partial structured summary.
// Every call is independently failable; callers decide what a failure means.
type SummaryProvider interface {
	Extract(ctx context.Context, req ExtractRequest) (ExtractResponse, ProviderInfo, error)
}
