package summary

import "fmt"

// Segment is one planned slice of the transcript, in rune offsets.
// Segments overlap by the requested overlap and are consumed immediately by
// extraction; they are never persisted.
type Segment struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// NormalizeChunkParams validates and adjusts the requested window so that the
// resulting step size is always >= 1. Overlap can never consume the whole
// window: if overlap >= chunkSize it is clamped to chunkSize-1, and if the
// step still collapses the window is widened to overlap+1.
func NormalizeChunkParams(chunkSize, overlap int) (int, int, error) {
	if chunkSize <= 0 {
		return 0, 0, fmt.Errorf("chunk_size must be positive, got %d", chunkSize)
	}
	if overlap < 0 {
		return 0, 0, fmt.Errorf("overlap must be non-negative, got %d", overlap)
	}
	if overlap >= chunkSize {
		overlap = chunkSize - 1
	}
	if chunkSize-overlap <= 0 {
		chunkSize = overlap + 1
	}
	return chunkSize, overlap, nil
}

// PlanSegments computes the ordered segment boundaries covering textLength
// runes. The plan is finite, strictly increasing by start, and its last
// segment ends at textLength.
func PlanSegments(textLength, chunkSize, overlap int) ([]Segment, error) {
	chunkSize, overlap, err := NormalizeChunkParams(chunkSize, overlap)
	if err != nil {
		return nil, err
	}
	if textLength <= 0 {
		return nil, nil
	}
	step := chunkSize - overlap

	out := make([]Segment, 0, textLength/step+1)
	for start := 0; start < textLength; start += step {
		end := start + chunkSize
		if end > textLength {
			end = textLength
		}
		out = append(out, Segment{Start: start, End: end})
		if end == textLength {
			break
		}
	}
	return out, nil
}

// SliceSegment extracts a planned segment's text. Boundaries are rune offsets
// so multi-byte transcripts chunk the same way they were planned.
func SliceSegment(text string, seg Segment) string {
	runes := []rune(text)
	start := seg.Start
	end := seg.End
	if start < 0 {
		start = 0
	}
	if end > len(runes) {
		end = len(runes)
	}
	if start >= end {
		return ""
	}
	return string(runes[start:end])
}
