package hocr

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Word is a single recognized token and its bounding box in image pixel
// coordinates. Recognizer output is untrusted: the box is stored exactly as
// given and need not satisfy X1 <= X2 or Y1 <= Y2.
type Word struct {
	Text string
	X1   int
	Y1   int
	X2   int
	Y2   int
}

var reBBox = regexp.MustCompile(`bbox\s+(\d+)\s+(\d+)\s+(\d+)\s+(\d+)`)

// Parse extracts the ocrx_word spans from hOCR markup into an ordered word
// list. Layout is an optional signal: malformed or unparseable markup yields
// an empty slice and a log line, never an error.
func Parse(markup string, logger *slog.Logger) []Word {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(markup) == "" {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		logger.Warn("failed to parse hOCR markup", "error", err)
		return nil
	}

	var words []Word
	doc.Find("span.ocrx_word").Each(func(_ int, s *goquery.Selection) {
		title, ok := s.Attr("title")
		if !ok || title == "" {
			return
		}
		m := reBBox.FindStringSubmatch(title)
		if m == nil {
			return
		}
		x1, _ := strconv.Atoi(m[1])
		y1, _ := strconv.Atoi(m[2])
		x2, _ := strconv.Atoi(m[3])
		y2, _ := strconv.Atoi(m[4])
		words = append(words, Word{Text: s.Text(), X1: x1, Y1: y1, X2: x2, Y2: y2})
	})
	return words
}

// IsNear reports whether b sits to the right of, and vertically aligned with,
// the end of a, within the given tolerances. The relation is directional:
// IsNear(a, b) does not imply IsNear(b, a).
func IsNear(a, b Word, xTolerance, yTolerance int) bool {
	return abs(a.X2-b.X1) <= xTolerance && abs(a.Y1-b.Y1) <= yTolerance
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
