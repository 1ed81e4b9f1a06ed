package storage

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestMatchContextCaseInsensitive(t *testing.T) {
	got := matchContext("We agreed to SHIP on Friday.", "ship")
	if !strings.Contains(got, "SHIP") {
		t.Fatalf("snippet missing match: %q", got)
	}
}

func TestMatchContextWindowsOnRunes(t *testing.T) {
	// Multi-byte padding on both sides; a byte-offset window would split a rune.
	pad := strings.Repeat("ü", 150)
	text := pad + "budget" + pad
	got := matchContext(text, "budget")
	if !utf8.ValidString(got) {
		t.Fatalf("snippet is not valid utf-8: %q", got)
	}
	if !strings.Contains(got, "budget") {
		t.Fatalf("snippet missing match: %q", got)
	}
	// 100 runes either side plus the match itself.
	if n := utf8.RuneCountInString(got); n != 206 {
		t.Fatalf("snippet rune count: got %d want 206", n)
	}
}

func TestMatchContextNoMatchTruncates(t *testing.T) {
	text := strings.Repeat("é", 300)
	got := matchContext(text, "zzz")
	if !utf8.ValidString(got) {
		t.Fatalf("snippet is not valid utf-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != 200 {
		t.Fatalf("snippet rune count: got %d want 200", n)
	}
}

func TestMatchContextShortText(t *testing.T) {
	if got := matchContext("short note", "zzz"); got != "short note" {
		t.Fatalf("got %q", got)
	}
}
