package summary

// Merge folds raw extraction payloads, in arrival order, into one canonical
// document. It returns the document, the number of payloads merged, and the
// number dropped because they could not be parsed.
//
// The title fields are last-non-empty-wins: later segments tend to carry more
// complete context, so a meeting name recovered late overrides an earlier one.
// Everything else is append-only, with notes sections deduplicated by title so
// overlapping segments that emit the same header extend one slot instead of
// creating duplicates.
func Merge(payloads []string) (Document, int, int) {
	doc := NewDocument()
	merged := 0
	dropped := 0

	for _, raw := range payloads {
		partial, ok := parsePartial(raw)
		if !ok {
			dropped++
			continue
		}
		merged++

		if partial.meetingName != "" {
			doc.MeetingName = partial.meetingName
		}
		if partial.notesName != "" {
			doc.MeetingNotes.MeetingName = partial.notesName
		}

		for _, key := range fixedSectionKeys {
			sec, ok := partial.fixedSections[key]
			if !ok || len(sec.Blocks) == 0 {
				continue
			}
			target := doc.section(key)
			target.Blocks = append(target.Blocks, sec.Blocks...)
			appendNotesSection(&doc.MeetingNotes, sec.Title, sec.Blocks)
		}

		for _, sec := range partial.notesSections {
			appendNotesSection(&doc.MeetingNotes, sec.Title, sec.Blocks)
		}
	}

	return doc, merged, dropped
}

// appendNotesSection extends an existing notes section with the same title, or
// appends a new one at the end, preserving first-seen order.
func appendNotesSection(notes *Notes, title string, blocks []any) {
	for i := range notes.Sections {
		if notes.Sections[i].Title == title {
			notes.Sections[i].Blocks = append(notes.Sections[i].Blocks, blocks...)
			return
		}
	}
	copied := make([]any, len(blocks))
	copy(copied, blocks)
	notes.Sections = append(notes.Sections, Section{Title: title, Blocks: copied})
}
