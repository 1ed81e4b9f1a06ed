package summary

import "strings"

const systemPrompt = "You are a meeting summarization assistant. You read one segment of a longer transcript and return structured JSON. Return ONLY valid JSON, no markdown fences and no commentary."

const payloadShape = `{
  "MeetingName": "",
  "People": {"title": "People", "blocks": []},
  "SessionSummary": {"title": "Session Summary", "blocks": []},
  "CriticalDeadlines": {"title": "Critical Deadlines", "blocks": []},
  "KeyItemsDecisions": {"title": "Key Items & Decisions", "blocks": []},
  "ImmediateActionItems": {"title": "Immediate Action Items", "blocks": []},
  "NextSteps": {"title": "Next Steps", "blocks": []},
  "MeetingNotes": {"meeting_name": "", "sections": []}
}`

// SystemPrompt is the fixed role instruction for extraction calls.
func SystemPrompt() string {
	return systemPrompt
}

// BuildSegmentPrompt assembles the per-segment user prompt: the caller's
// instructions, the required payload shape, and the segment text.
func BuildSegmentPrompt(instructions, segmentText string) string {
	if strings.TrimSpace(instructions) == "" {
		instructions = "Generate a summary of the meeting transcript."
	}
	b := strings.Builder{}
	b.WriteString(instructions)
	b.WriteString("\n\nThis is one segment of a longer transcript; segments overlap, so some content may repeat.\n")
	b.WriteString("Fill the JSON structure below. Leave MeetingName empty unless the meeting's name is stated in this segment. Each block is a short plain-text point.\n\n")
	b.WriteString(payloadShape)
	b.WriteString("\n\nTranscript segment:\n")
	b.WriteString(segmentText)
	return b.String()
}
