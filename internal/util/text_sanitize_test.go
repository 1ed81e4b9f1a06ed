package util

import (
	"strings"
	"testing"
)

func TestSanitizeTextStripsNULAndControls(t *testing.T) {
	got := SanitizeText("a\x00b\x01c\td\ne")
	if got != "abc\td\ne" {
		t.Fatalf("got %q", got)
	}
}

func TestSanitizeErrorMessageFlattensNewlines(t *testing.T) {
	got := SanitizeErrorMessage("line one\nline two\r\nline three")
	if strings.ContainsAny(got, "\r\n") {
		t.Fatalf("newlines survived: %q", got)
	}
	if got != "line one line two  line three" {
		t.Fatalf("got %q", got)
	}
}

func TestSanitizeErrorMessageCapsLength(t *testing.T) {
	got := SanitizeErrorMessage(strings.Repeat("x", 5000))
	if len([]rune(got)) != 1000 {
		t.Fatalf("got length %d", len([]rune(got)))
	}
}
