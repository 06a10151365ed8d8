package extract

import (
	"strings"
	"time"
	"unicode"
)

// dateLayouts lists the accepted date shapes in priority order:
// day-first, then month-first, then ISO, for each separator, plus
// month-name forms.
var dateLayouts = []string{
	"02/01/2006", "2/1/2006", "01/02/2006", "1/2/2006", "2006/01/02",
	"02-01-2006", "2-1-2006", "01-02-2006", "1-2-2006", "2006-01-02",
	"02.01.2006", "2.1.2006", "01.02.2006", "1.2.2006", "2006.01.02",
	"02/01/06", "2/1/06", "01/02/06", "1/2/06",
	"02 Jan 2006", "2 Jan 2006", "Jan 02, 2006", "Jan 2, 2006",
	"02 January 2006", "2 January 2006",
}

// parseDate tries each supported layout in order. OCR output is often fully
// upper-cased, so month names are also tried title-cased.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, candidate := range []string{s, titleWords(s)} {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, candidate); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

func titleWords(s string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) && !prevLetter {
			r = unicode.ToUpper(r)
		}
		prevLetter = unicode.IsLetter(r)
		b.WriteRune(r)
	}
	return b.String()
}
