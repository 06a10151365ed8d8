package extract

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

var (
	reResultKeywords = regexp.MustCompile(`(?i)INVOICE|TOTAL|DATE|CUSTOMER`)
	reDigitRun       = regexp.MustCompile(`\d+\.?\d*`)
)

// TextQuality ranks competing recognition passes. It is used only to pick the
// best configuration output and is deliberately a different heuristic from
// Confidence.
func TextQuality(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	score := 0.4
	if len(text) > 100 {
		score += 0.2
	}
	if strings.Contains(text, "INVOICE") || strings.Contains(text, "TOTAL") {
		score += 0.2
	}
	if countDigits(text) > 10 {
		score += 0.1
	}
	if len(strings.Split(text, "\n")) > 5 {
		score += 0.1
	}
	return math.Min(score, 1.0)
}

// Confidence is the overall confidence attached to the final extraction
// result.
func Confidence(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	confidence := 0.5
	if len(text) > 100 {
		confidence += 0.1
	}
	if reResultKeywords.MatchString(text) {
		confidence += 0.2
	}
	if reDigitRun.MatchString(text) {
		confidence += 0.1
	}
	if strings.Contains(text, "\n") && len(text) > 200 {
		confidence += 0.1
	}
	return math.Min(confidence, 1.0)
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
