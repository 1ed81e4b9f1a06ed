package summary

import "testing"

func TestPlanSegmentsCanonicalWindows(t *testing.T) {
	segs, err := PlanSegments(12000, 5000, 1000)
	if err != nil {
		t.Fatal(err)
	}
	want := []Segment{{0, 5000}, {4000, 9000}, {8000, 12000}}
	if len(segs) != len(want) {
		t.Fatalf("got %d segments, want %d: %#v", len(segs), len(want), segs)
	}
	for i := range want {
		if segs[i] != want[i] {
			t.Fatalf("segment %d: got %+v want %+v", i, segs[i], want[i])
		}
	}
}

func TestPlanSegmentsOverlapClamped(t *testing.T) {
	// overlap >= chunkSize must clamp so the step stays positive.
	segs, err := PlanSegments(20, 5, 6)
	if err != nil {
		t.Fatal(err)
	}
	if len(segs) == 0 {
		t.Fatal("expected segments")
	}
	prev := -1
	for _, s := range segs {
		if s.Start <= prev {
			t.Fatalf("starts not strictly increasing: %#v", segs)
		}
		prev = s.Start
	}
	if segs[len(segs)-1].End != 20 {
		t.Fatalf("last segment must end at text length, got %+v", segs[len(segs)-1])
	}
}

func TestPlanSegmentsValidation(t *testing.T) {
	if _, err := PlanSegments(100, 0, 0); err == nil {
		t.Fatal("expected error for zero chunk size")
	}
	if _, err := PlanSegments(100, -5, 0); err == nil {
		t.Fatal("expected error for negative chunk size")
	}
	if _, err := PlanSegments(100, 10, -1); err == nil {
		t.Fatal("expected error for negative overlap")
	}
}

func TestPlanSegmentsEmptyText(t *testing.T) {
	segs, err := PlanSegments(0, 5000, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if len(segs) != 0 {
		t.Fatalf("expected no segments for empty text, got %#v", segs)
	}
}

func TestPlanSegmentsCoverage(t *testing.T) {
	for _, tc := range []struct{ n, size, overlap int }{
		{1, 5000, 1000},
		{4999, 5000, 1000},
		{5000, 5000, 1000},
		{5001, 5000, 1000},
		{100, 7, 3},
		{100, 1, 0},
	} {
		segs, err := PlanSegments(tc.n, tc.size, tc.overlap)
		if err != nil {
			t.Fatal(err)
		}
		covered := make([]bool, tc.n)
		for _, s := range segs {
			for i := s.Start; i < s.End; i++ {
				covered[i] = true
			}
		}
		for i, ok := range covered {
			if !ok {
				t.Fatalf("n=%d size=%d overlap=%d: rune %d not covered", tc.n, tc.size, tc.overlap, i)
			}
		}
		if segs[len(segs)-1].End != tc.n {
			t.Fatalf("n=%d: last segment ends at %d", tc.n, segs[len(segs)-1].End)
		}
	}
}

func TestSliceSegmentRuneBoundaries(t *testing.T) {
	text := "héllo wörld"
	segs, err := PlanSegments(len([]rune(text)), 4, 1)
	if err != nil {
		t.Fatal(err)
	}
	var rebuilt []rune
	for i, s := range segs {
		part := []rune(SliceSegment(text, s))
		if i == 0 {
			rebuilt = append(rebuilt, part...)
		} else {
			// Drop the overlapping prefix when reassembling.
			rebuilt = append(rebuilt, part[segs[i-1].End-s.Start:]...)
		}
	}
	if string(rebuilt) != text {
		t.Fatalf("reassembled %q, want %q", string(rebuilt), text)
	}
}
