package api

import (
	"encoding/json"
	"strings"
	"testing"

	"minuteflow/internal/config"
)

func testConfig() config.Config {
	return config.Config{
		ChunkSize:     5000,
		ChunkOverlap:  1000,
		DefaultPrompt: "Generate a summary of the meeting transcript.",
	}
}

func decodeProcessRequest(t *testing.T, body string) processTranscriptRequest {
	t.Helper()
	var req processTranscriptRequest
	if err := json.NewDecoder(strings.NewReader(body)).Decode(&req); err != nil {
		t.Fatal(err)
	}
	return req
}

func TestProcessRequestOmittedChunkParamsUseDefaults(t *testing.T) {
	req := decodeProcessRequest(t, `{"text":"hello","meeting_id":"m1"}`)
	chunkSize, overlap := req.chunkParams(testConfig())
	if chunkSize != 5000 {
		t.Fatalf("chunk size: got %d want 5000", chunkSize)
	}
	if overlap != 1000 {
		t.Fatalf("overlap: got %d want 1000", overlap)
	}
}

func TestProcessRequestExplicitZeroOverlapKept(t *testing.T) {
	req := decodeProcessRequest(t, `{"text":"hello","overlap":0}`)
	_, overlap := req.chunkParams(testConfig())
	if overlap != 0 {
		t.Fatalf("explicit zero overlap must stay 0, got %d", overlap)
	}
}

func TestProcessRequestExplicitChunkParamsHonored(t *testing.T) {
	req := decodeProcessRequest(t, `{"text":"hello","chunk_size":200,"overlap":50}`)
	chunkSize, overlap := req.chunkParams(testConfig())
	if chunkSize != 200 || overlap != 50 {
		t.Fatalf("got %d/%d want 200/50", chunkSize, overlap)
	}
}

func TestProcessRequestInvalidChunkParamsFallBack(t *testing.T) {
	req := decodeProcessRequest(t, `{"text":"hello","chunk_size":0,"overlap":-5}`)
	chunkSize, overlap := req.chunkParams(testConfig())
	if chunkSize != 5000 || overlap != 1000 {
		t.Fatalf("got %d/%d want defaults 5000/1000", chunkSize, overlap)
	}
}

func TestProcessRequestPromptDefault(t *testing.T) {
	req := decodeProcessRequest(t, `{"text":"hello"}`)
	if got := req.instructions(testConfig()); got != "Generate a summary of the meeting transcript." {
		t.Fatalf("got %q", got)
	}
	req = decodeProcessRequest(t, `{"text":"hello","custom_prompt":"Focus on risks."}`)
	if got := req.instructions(testConfig()); got != "Focus on risks." {
		t.Fatalf("got %q", got)
	}
}
