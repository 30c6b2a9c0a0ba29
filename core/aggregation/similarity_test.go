// Package aggregation - Text similarity tests
package aggregation

import (
	"testing"
)

// TestTextSimilarityExactAndEmpty covers the trivial cases
func TestTextSimilarityExactAndEmpty(t *testing.T) {
	if got := TextSimilarity("team task tracking", "Team Task Tracking"); got != 1.0 {
		t.Errorf("Expected case-insensitive exact match 1.0, got %v", got)
	}
	if got := TextSimilarity("", "anything"); got != 0.0 {
		t.Errorf("Expected 0.0 for empty input, got %v", got)
	}
	if got := TextSimilarity("   ", "anything"); got != 0.0 {
		t.Errorf("Expected 0.0 for blank input, got %v", got)
	}
}

// TestTextSimilaritySubstring proves containment scores the length ratio
func TestTextSimilaritySubstring(t *testing.T) {
	// "task" (4) inside "task tracking" (13)
	got := TextSimilarity("task", "task tracking")
	want := 4.0 / 13.0
	if got != want {
		t.Errorf("Expected length ratio %v, got %v", want, got)
	}
}

// TestTextSimilarityBlend proves distinct phrases land strictly between 0 and 1
func TestTextSimilarityBlend(t *testing.T) {
	got := TextSimilarity("manage projects for teams", "project management for small teams")
	if got <= 0.0 || got >= 1.0 {
		t.Errorf("Expected blended score in (0,1), got %v", got)
	}

	// Sharing words must beat sharing nothing
	related := TextSimilarity("team collaboration software", "software for team collaboration")
	unrelated := TextSimilarity("team collaboration software", "industrial pump lubricants")
	if related <= unrelated {
		t.Errorf("Expected related %v > unrelated %v", related, unrelated)
	}
}

// TestTextSimilaritySymmetry proves argument order does not matter
func TestTextSimilaritySymmetry(t *testing.T) {
	a, b := "email marketing automation", "marketing email tools"
	if TextSimilarity(a, b) != TextSimilarity(b, a) {
		t.Error("Expected symmetric similarity")
	}
}
