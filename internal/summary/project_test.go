package summary

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"minuteflow/internal/models"
)

func TestProjectNoRecord(t *testing.T) {
	view, code := Project("m1", nil)
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, "error", view.Status)
	require.Equal(t, "Meeting ID not found", view.Error)
	require.Equal(t, "m1", view.MeetingID)
	require.Nil(t, view.Data)
}

func TestProjectInFlight(t *testing.T) {
	start := time.Now()
	for _, status := range []string{"PENDING", "pending", "Processing", "STARTED"} {
		view, code := Project("m1", &models.SummaryJob{MeetingID: "m1", Status: status, StartTime: &start})
		require.Equal(t, http.StatusAccepted, code, status)
		require.Equal(t, "processing", view.Status, status)
		require.Empty(t, view.Error)
		require.Nil(t, view.Data)
		require.Equal(t, &start, view.Start)
	}
}

func TestProjectFailed(t *testing.T) {
	view, code := Project("m1", &models.SummaryJob{MeetingID: "m1", Status: "FAILED", Error: "boom"})
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "error", view.Status)
	require.Equal(t, "boom", view.Error)

	view, _ = Project("m1", &models.SummaryJob{MeetingID: "m1", Status: "FAILED"})
	require.Equal(t, "Unknown processing error", view.Error)
}

func TestProjectCompleted(t *testing.T) {
	doc := NewDocument()
	doc.MeetingName = "Planning Sync"
	doc.MeetingNotes.Sections = []Section{
		{Title: "Key Items & Decisions", Blocks: []any{"d1"}},
		{Title: "Next Steps", Blocks: []any{"n1"}},
	}
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	result := string(raw)

	view, code := Project("m1", &models.SummaryJob{MeetingID: "m1", Status: "COMPLETED", Result: &result})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "success", view.Status)
	require.NotNil(t, view.MeetingName)
	require.Equal(t, "Planning Sync", *view.MeetingName)
	require.Equal(t, []string{"key_items_decisions", "next_steps"}, view.Data["_section_order"])
	require.Contains(t, view.Data, "key_items_decisions")
	require.Contains(t, view.Data, "next_steps")
}

func TestProjectCompletedDoubleEncodedResult(t *testing.T) {
	doc := NewDocument()
	doc.MeetingName = "Retro"
	inner, err := json.Marshal(doc)
	require.NoError(t, err)
	outer, err := json.Marshal(string(inner))
	require.NoError(t, err)
	result := string(outer)

	view, code := Project("m1", &models.SummaryJob{MeetingID: "m1", Status: "COMPLETED", Result: &result})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "success", view.Status)
}

func TestProjectCompletedBadResult(t *testing.T) {
	for _, result := range []*string{nil, ptr(""), ptr("   "), ptr("{not json")} {
		view, code := Project("m1", &models.SummaryJob{MeetingID: "m1", Status: "COMPLETED", Result: result})
		require.Equal(t, http.StatusInternalServerError, code)
		require.Equal(t, "error", view.Status)
		require.Equal(t, "Completed but summary data is missing or invalid", view.Error)
	}
}

func TestProjectUnknownStatus(t *testing.T) {
	view, code := Project("m1", &models.SummaryJob{MeetingID: "m1", Status: "ARCHIVED"})
	require.Equal(t, http.StatusInternalServerError, code)
	require.Equal(t, "error", view.Status)
	require.Contains(t, view.Error, "archived")
}

func TestNormalizeSectionKey(t *testing.T) {
	require.Equal(t, "key_items_decisions", NormalizeSectionKey("Key Items & Decisions"))
	// The "and" spelling keeps its word, so the two titles stay distinct keys.
	require.Equal(t, "key_items_and_decisions", NormalizeSectionKey("Key Items and Decisions"))
	require.Equal(t, "session_summary", NormalizeSectionKey("Session Summary"))
	require.Equal(t, "people", NormalizeSectionKey("People"))
}

func TestFlattenDocumentCollisionSuffix(t *testing.T) {
	doc := NewDocument()
	// "A B" and "A & B" both normalize to "a_b"; the later one gets a suffix.
	doc.MeetingNotes.Sections = []Section{
		{Title: "A B", Blocks: []any{"x"}},
		{Title: "A & B", Blocks: []any{"y"}},
	}
	data := flattenDocument(doc)
	order := data["_section_order"].([]string)
	require.Equal(t, []string{"a_b", "a_b_1"}, order)
	require.Contains(t, data, "a_b")
	require.Contains(t, data, "a_b_1")
}

func TestFlattenDocumentAmpersandAndWordKeysDistinct(t *testing.T) {
	doc := NewDocument()
	doc.MeetingNotes.Sections = []Section{
		{Title: "Key Items & Decisions", Blocks: []any{"x"}},
		{Title: "Key Items and Decisions", Blocks: []any{"y"}},
	}
	data := flattenDocument(doc)
	order := data["_section_order"].([]string)
	require.Equal(t, []string{"key_items_decisions", "key_items_and_decisions"}, order)
	require.Contains(t, data, "key_items_decisions")
	require.Contains(t, data, "key_items_and_decisions")
}

func ptr(s string) *string { return &s }
