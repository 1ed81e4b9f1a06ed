package providers

import (
	"context"
	"encoding/json"
	"testing"
)

func TestMockProviderReturnsParseableJSON(t *testing.T) {
	p := NewMockProvider()
	resp, info, err := p.Extract(context.Background(), ExtractRequest{
		Prompt: "Summarize.\n\nTranscript segment:\nwe agreed to ship on friday",
	})
	if err != nil {
		t.Fatal(err)
	}
	if info.Name != "mock" {
		t.Fatalf("provider name: got %q", info.Name)
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(resp.Payload), &payload); err != nil {
		t.Fatalf("payload must be valid json: %v", err)
	}
	if _, ok := payload["SessionSummary"]; !ok {
		t.Fatal("payload missing SessionSummary")
	}
	if _, ok := payload["MeetingNotes"]; !ok {
		t.Fatal("payload missing MeetingNotes")
	}
}

func TestSegmentSnippet(t *testing.T) {
	got := segmentSnippet("instructions\n\nTranscript segment:\nhello world", 120)
	if got != "hello world" {
		t.Fatalf("snippet: got %q", got)
	}
	long := segmentSnippet("Transcript segment:\nabcdefghij", 4)
	if long != "abcd" {
		t.Fatalf("truncation: got %q", long)
	}
}
