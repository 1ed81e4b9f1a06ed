package providers

import (
	"fmt"
	"strings"
)

// displayNames maps provider identifiers to the names shown in user-facing
// credential errors.
var displayNames = map[string]string{
	"openai": "OpenAI",
	"groq":   "Groq",
	"claude": "Anthropic",
	"ollama": "Ollama",
	"mock":   "Mock",
}

// keyedProviders are the providers that cannot run without an API key.
var keyedProviders = map[string]bool{
	"openai": true,
	"groq":   true,
	"claude": true,
}

type Manager struct {
	byName map[string]SummaryProvider
}

func NewManager() *Manager {
	return &Manager{
		byName: map[string]SummaryProvider{
			"openai": NewOpenAIProvider(),
			"groq":   NewGroqProvider(),
			"claude": NewClaudeProvider(),
			"ollama": NewOllamaProvider(),
			"mock":   NewMockProvider(),
		},
	}
}

func (m *Manager) FindByName(name string) (SummaryProvider, error) {
	p, ok := m.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unsupported provider: %s", name)
	}
	return p, nil
}

// RequiresAPIKey reports whether a provider needs a stored or environment
// credential before any segment work can start.
func RequiresAPIKey(name string) bool {
	return keyedProviders[strings.ToLower(strings.TrimSpace(name))]
}

// DisplayName returns the human name used in credential error messages.
func DisplayName(name string) string {
	if d, ok := displayNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return d
	}
	return name
}
