package summary

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"minuteflow/internal/models"
)

// ClientView is the polling response contract. Data is only populated for a
// successfully completed job; everywhere else it is null.
type ClientView struct {
	Status      string         `json:"status"`
	MeetingName *string        `json:"meetingName"`
	MeetingID   string         `json:"meeting_id"`
	Start       *time.Time     `json:"start"`
	End         *time.Time     `json:"end"`
	Error       string         `json:"error,omitempty"`
	Data        map[string]any `json:"data"`
}

// inFlightStatuses is the closed set of stored statuses a client sees as
// "processing".
var inFlightStatuses = map[string]bool{
	"pending":    true,
	"processing": true,
	"started":    true,
}

// Project turns a raw job record into the client-facing view and its HTTP
// status code. A nil job means no record exists for the meeting.
func Project(meetingID string, job *models.SummaryJob) (ClientView, int) {
	view := ClientView{MeetingID: meetingID}

	if job == nil {
		view.Status = "error"
		view.Error = "Meeting ID not found"
		return view, http.StatusNotFound
	}

	view.Start = job.StartTime
	view.End = job.EndTime

	status := strings.ToLower(strings.TrimSpace(job.Status))
	switch {
	case inFlightStatuses[status]:
		view.Status = "processing"
		return view, http.StatusAccepted

	case status == "failed":
		view.Status = "error"
		view.Error = job.Error
		if view.Error == "" {
			view.Error = "Unknown processing error"
		}
		return view, http.StatusBadRequest

	case status == "completed":
		doc, ok := decodeResult(job.Result)
		if !ok {
			// A completed job without a readable result is an internal
			// inconsistency, not a normal failure.
			view.Status = "error"
			view.Error = "Completed but summary data is missing or invalid"
			return view, http.StatusInternalServerError
		}
		view.Status = "success"
		if doc.MeetingName != "" {
			name := doc.MeetingName
			view.MeetingName = &name
		}
		view.Data = flattenDocument(doc)
		return view, http.StatusOK

	default:
		view.Status = "error"
		view.Error = fmt.Sprintf("Unknown or unexpected status: %s", status)
		return view, http.StatusInternalServerError
	}
}

// decodeResult parses a stored result, unwrapping one level of double
// encoding left behind by older writers that serialized the document twice.
func decodeResult(result *string) (Document, bool) {
	if result == nil || strings.TrimSpace(*result) == "" {
		return Document{}, false
	}
	raw := []byte(*result)

	var nested string
	if err := json.Unmarshal(raw, &nested); err == nil {
		raw = []byte(nested)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Document{}, false
	}
	return doc, true
}

// flattenDocument exposes the notes sections under normalized keys plus an
// explicit order list so a renderer can reproduce section order.
func flattenDocument(doc Document) map[string]any {
	data := map[string]any{
		"MeetingName":    doc.MeetingName,
		"_section_order": []string{},
	}

	order := make([]string, 0, len(doc.MeetingNotes.Sections))
	used := map[string]bool{}
	for idx, sec := range doc.MeetingNotes.Sections {
		if sec.Blocks == nil {
			sec.Blocks = []any{}
		}
		key := NormalizeSectionKey(sec.Title)
		if used[key] {
			key = fmt.Sprintf("%s_%d", key, idx)
		}
		used[key] = true
		data[key] = sec
		order = append(order, key)
	}
	data["_section_order"] = order
	return data
}

// NormalizeSectionKey derives a display key from a section title: lowercase,
// " & " collapsed to a single underscore, remaining spaces to underscores.
func NormalizeSectionKey(title string) string {
	key := strings.ToLower(title)
	key = strings.ReplaceAll(key, " & ", "_")
	key = strings.ReplaceAll(key, " ", "_")
	return key
}
