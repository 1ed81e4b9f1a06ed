package summary

import "encoding/json"

// Section is one titled block list inside the canonical summary document.
type Section struct {
	Title  string `json:"title"`
	Blocks []any  `json:"blocks"`
}

// Notes is the secondary ordered section list of the document. Sections in it
// are unique by title.
type Notes struct {
	MeetingName string    `json:"meeting_name"`
	Sections    []Section `json:"sections"`
}

// Document is the canonical merged summary stored as a job's result.
type Document struct {
	MeetingName          string  `json:"MeetingName"`
	People               Section `json:"People"`
	SessionSummary       Section `json:"SessionSummary"`
	CriticalDeadlines    Section `json:"CriticalDeadlines"`
	KeyItemsDecisions    Section `json:"KeyItemsDecisions"`
	ImmediateActionItems Section `json:"ImmediateActionItems"`
	NextSteps            Section `json:"NextSteps"`
	MeetingNotes         Notes   `json:"MeetingNotes"`
}

// fixedSectionKeys is the canonical processing order for the fixed sections.
var fixedSectionKeys = []string{
	"People",
	"SessionSummary",
	"CriticalDeadlines",
	"KeyItemsDecisions",
	"ImmediateActionItems",
	"NextSteps",
}

var fixedSectionTitles = map[string]string{
	"People":               "People",
	"SessionSummary":       "Session Summary",
	"CriticalDeadlines":    "Critical Deadlines",
	"KeyItemsDecisions":    "Key Items & Decisions",
	"ImmediateActionItems": "Immediate Action Items",
	"NextSteps":            "Next Steps",
}

// NewDocument returns an empty canonical document with every fixed section
// initialized, ready to be folded into.
func NewDocument() Document {
	doc := Document{MeetingNotes: Notes{Sections: []Section{}}}
	for _, key := range fixedSectionKeys {
		doc.setSection(key, Section{Title: fixedSectionTitles[key], Blocks: []any{}})
	}
	return doc
}

func (d *Document) section(key string) *Section {
	switch key {
	case "People":
		return &d.People
	case "SessionSummary":
		return &d.SessionSummary
	case "CriticalDeadlines":
		return &d.CriticalDeadlines
	case "KeyItemsDecisions":
		return &d.KeyItemsDecisions
	case "ImmediateActionItems":
		return &d.ImmediateActionItems
	case "NextSteps":
		return &d.NextSteps
	}
	return nil
}

func (d *Document) setSection(key string, s Section) {
	if p := d.section(key); p != nil {
		*p = s
	}
}

// partialPayload is the parsed form of one segment's extraction output.
// Only the parts that decoded cleanly are carried; everything else is skipped
// at the parse boundary so the merge never touches untyped data.
type partialPayload struct {
	meetingName   string
	notesName     string
	fixedSections map[string]Section
	notesSections []Section
}

// parsePartial is the single tolerant decode boundary for raw extraction
// output. The payload must be a JSON object; within it, a fixed section that
// is not shaped like {title, blocks[]} is skipped without failing the payload,
// and a notes section missing its block list is treated as empty.
func parsePartial(raw string) (partialPayload, bool) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &top); err != nil {
		return partialPayload{}, false
	}

	out := partialPayload{fixedSections: map[string]Section{}}

	if v, ok := top["MeetingName"]; ok {
		var name string
		if err := json.Unmarshal(v, &name); err == nil {
			out.meetingName = name
		}
	}

	for _, key := range fixedSectionKeys {
		v, ok := top[key]
		if !ok {
			continue
		}
		var sec Section
		if err := json.Unmarshal(v, &sec); err != nil {
			continue
		}
		if sec.Blocks == nil {
			continue
		}
		out.fixedSections[key] = sec
	}

	if v, ok := top["MeetingNotes"]; ok {
		var notes Notes
		if err := json.Unmarshal(v, &notes); err == nil {
			out.notesName = notes.MeetingName
			for _, sec := range notes.Sections {
				if sec.Blocks == nil {
					sec.Blocks = []any{}
				}
				out.notesSections = append(out.notesSections, sec)
			}
		}
	}

	return out, true
}
