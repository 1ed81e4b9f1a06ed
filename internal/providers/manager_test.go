package providers

import "testing"

func TestFindByName(t *testing.T) {
	m := NewManager()
	for _, name := range []string{"openai", "Groq", " claude ", "OLLAMA", "mock"} {
		if _, err := m.FindByName(name); err != nil {
			t.Fatalf("expected provider for %q: %v", name, err)
		}
	}
	if _, err := m.FindByName("gemini"); err == nil {
		t.Fatal("expected error for unsupported provider")
	}
}

func TestRequiresAPIKey(t *testing.T) {
	for _, name := range []string{"openai", "groq", "claude"} {
		if !RequiresAPIKey(name) {
			t.Fatalf("%s must require an api key", name)
		}
	}
	for _, name := range []string{"ollama", "mock"} {
		if RequiresAPIKey(name) {
			t.Fatalf("%s must not require an api key", name)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("claude"); got != "Anthropic" {
		t.Fatalf("claude display name: got %q", got)
	}
	if got := DisplayName("something-else"); got != "something-else" {
		t.Fatalf("unknown providers keep their raw name, got %q", got)
	}
}
