package models

import "testing"

func TestIsTerminal(t *testing.T) {
	for _, status := range []string{"COMPLETED", "FAILED", "completed", " failed "} {
		if !IsTerminal(status) {
			t.Fatalf("%q must be terminal", status)
		}
	}
	for _, status := range []string{"PENDING", "processing", "started", ""} {
		if IsTerminal(status) {
			t.Fatalf("%q must not be terminal", status)
		}
	}
}
