package extract

import (
	"strings"
	"testing"
)

func TestTextQuality_Empty(t *testing.T) {
	for _, s := range []string{"", "   ", "\n\t"} {
		if got := TextQuality(s); got != 0 {
			t.Errorf("TextQuality(%q) = %v, want 0", s, got)
		}
	}
}

func TestTextQuality_Monotonic(t *testing.T) {
	// Each satisfied condition must never lower the score.
	steps := []string{
		"short",
		strings.Repeat("a", 150),
		strings.Repeat("a", 150) + " INVOICE",
		strings.Repeat("a", 150) + " INVOICE 012345678901",
		strings.Repeat("a", 150) + " INVOICE 012345678901" + strings.Repeat("\nline", 6),
	}
	prev := 0.0
	for _, s := range steps {
		got := TextQuality(s)
		if got < prev {
			t.Errorf("TextQuality decreased: %v -> %v for %q...", prev, got, s[:20])
		}
		if got < 0 || got > 1 {
			t.Errorf("TextQuality(%q...) = %v, outside [0,1]", s[:20], got)
		}
		prev = got
	}
	if prev != 1.0 {
		t.Errorf("fully satisfied quality = %v, want 1.0", prev)
	}
}

func TestTextQuality_KeywordIsCaseSensitive(t *testing.T) {
	with := TextQuality("xx INVOICE xx")
	without := TextQuality("xx invoice xx")
	if with <= without {
		t.Errorf("case-sensitive keyword bonus missing: with=%v without=%v", with, without)
	}
}

func TestConfidence_Empty(t *testing.T) {
	if got := Confidence(""); got != 0 {
		t.Errorf("Confidence(\"\") = %v, want 0", got)
	}
}

func TestConfidence_Monotonic(t *testing.T) {
	steps := []string{
		"hello",
		strings.Repeat("x", 150),
		strings.Repeat("x", 150) + " invoice",
		strings.Repeat("x", 150) + " invoice 42",
		strings.Repeat("x", 220) + " invoice 42\nmore",
	}
	prev := 0.0
	for _, s := range steps {
		got := Confidence(s)
		if got < prev {
			t.Errorf("Confidence decreased: %v -> %v", prev, got)
		}
		if got < 0 || got > 1 {
			t.Errorf("Confidence = %v, outside [0,1]", got)
		}
		prev = got
	}
	if prev != 1.0 {
		t.Errorf("fully satisfied confidence = %v, want 1.0", prev)
	}
}

func TestConfidence_DistinctFromQuality(t *testing.T) {
	// Same text, different heuristics: the two scorers are intentionally
	// separate and must not collapse into each other.
	text := "INVOICE 42"
	if TextQuality(text) == Confidence(text) {
		t.Errorf("TextQuality and Confidence agree on %q; expected different weights", text)
	}
}
