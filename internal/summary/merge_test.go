package summary

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMergeEmptySequence(t *testing.T) {
	doc, merged, dropped := Merge(nil)
	require.Zero(t, merged)
	require.Zero(t, dropped)
	require.Empty(t, doc.MeetingName)
	require.Empty(t, doc.SessionSummary.Blocks)
	require.Empty(t, doc.MeetingNotes.Sections)
}

func TestMergeConcatenatesSameSection(t *testing.T) {
	p1 := `{"SessionSummary":{"title":"Session Summary","blocks":["a"]}}`
	p2 := `{"SessionSummary":{"title":"Session Summary","blocks":["b"]}}`
	p3 := `{"SessionSummary":{"title":"Session Summary","blocks":["c"]}}`

	doc, merged, dropped := Merge([]string{p1, p2, p3})
	require.Equal(t, 3, merged)
	require.Zero(t, dropped)
	require.Equal(t, []any{"a", "b", "c"}, doc.SessionSummary.Blocks)

	// The notes mirror holds one deduplicated section with all blocks.
	require.Len(t, doc.MeetingNotes.Sections, 1)
	require.Equal(t, "Session Summary", doc.MeetingNotes.Sections[0].Title)
	require.Equal(t, []any{"a", "b", "c"}, doc.MeetingNotes.Sections[0].Blocks)
}

func TestMergeUnparsablePayloadDropped(t *testing.T) {
	good := `{"People":{"title":"People","blocks":["alice"]}}`
	bad := `this is not json`
	alsoBad := `[1,2,3]`

	doc, merged, dropped := Merge([]string{good, bad, alsoBad})
	require.Equal(t, 1, merged)
	require.Equal(t, 2, dropped)
	require.Equal(t, []any{"alice"}, doc.People.Blocks)
}

func TestMergeBadSectionSkippedPayloadKept(t *testing.T) {
	payload := `{
		"People": "not a section",
		"NextSteps": {"title":"Next Steps","blocks":["ship it"]}
	}`
	doc, merged, dropped := Merge([]string{payload})
	require.Equal(t, 1, merged)
	require.Zero(t, dropped)
	require.Empty(t, doc.People.Blocks)
	require.Equal(t, []any{"ship it"}, doc.NextSteps.Blocks)
}

func TestMergeTitleLastNonEmptyWins(t *testing.T) {
	p1 := `{"MeetingName":"A","MeetingNotes":{"meeting_name":"A","sections":[]}}`
	p2 := `{"MeetingName":"","MeetingNotes":{"meeting_name":"","sections":[]}}`

	doc, merged, _ := Merge([]string{p1, p2})
	require.Equal(t, 2, merged)
	require.Equal(t, "A", doc.MeetingName)
	require.Equal(t, "A", doc.MeetingNotes.MeetingName)

	p3 := `{"MeetingName":"B"}`
	doc, _, _ = Merge([]string{p1, p2, p3})
	require.Equal(t, "B", doc.MeetingName)
	require.Equal(t, "A", doc.MeetingNotes.MeetingName)
}

func TestMergeNotesSectionsDedupByTitle(t *testing.T) {
	p1 := `{"MeetingNotes":{"meeting_name":"","sections":[
		{"title":"Risks","blocks":["r1"]},
		{"title":"Ideas","blocks":["i1"]}
	]}}`
	p2 := `{"MeetingNotes":{"meeting_name":"","sections":[
		{"title":"Risks","blocks":["r2"]}
	]}}`

	doc, merged, _ := Merge([]string{p1, p2})
	require.Equal(t, 2, merged)
	require.Len(t, doc.MeetingNotes.Sections, 2)
	require.Equal(t, "Risks", doc.MeetingNotes.Sections[0].Title)
	require.Equal(t, []any{"r1", "r2"}, doc.MeetingNotes.Sections[0].Blocks)
	require.Equal(t, "Ideas", doc.MeetingNotes.Sections[1].Title)
}

func TestMergeMissingNotesOK(t *testing.T) {
	payload := `{"CriticalDeadlines":{"title":"Critical Deadlines","blocks":["friday"]}}`
	doc, merged, dropped := Merge([]string{payload})
	require.Equal(t, 1, merged)
	require.Zero(t, dropped)
	require.Equal(t, []any{"friday"}, doc.CriticalDeadlines.Blocks)
	// Fixed sections are still mirrored into the notes.
	require.Len(t, doc.MeetingNotes.Sections, 1)
}

func TestMergeNotesSectionWithoutBlocks(t *testing.T) {
	payload := `{"MeetingNotes":{"meeting_name":"","sections":[{"title":"Open"}]}}`
	doc, merged, _ := Merge([]string{payload})
	require.Equal(t, 1, merged)
	require.Len(t, doc.MeetingNotes.Sections, 1)
	require.NotNil(t, doc.MeetingNotes.Sections[0].Blocks)
	require.Empty(t, doc.MeetingNotes.Sections[0].Blocks)
}
