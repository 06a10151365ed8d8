package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/alisaeed1999/InvoiceOCRExtraction/internal/hocr"
)

var (
	// A table header needs description, quantity, price and amount vocabulary
	// to all appear, in that order.
	reTableHeader = regexp.MustCompile(`(?i)(?:DESCRIPTION|ITEM|PRODUCT).*(?:QTY|QUANTITY|QT).*(?:PRICE|RATE|UNIT|COST).*(?:AMOUNT|TOTAL|SUM)`)
	reHeaderLead  = regexp.MustCompile(`(?i)\b(?:DESCRIPTION|ITEM|PRODUCT)\b`)
	reTableEnd    = regexp.MustCompile(`(?i)^\s*(?:SUB\s*TOTAL|TOTAL|VAT|TAX|GRAND\s*TOTAL)`)
	reSeparator   = regexp.MustCompile(`^[\s\-=_]{3,}$`)
)

// headerWindow bounds the look-ahead when the header vocabulary is spread
// across consecutive words instead of a single recognized token.
const headerWindow = 6

// ExtractLineItems segments the line-item table out of the word stream.
//
// The scanner seeks a header, skips exactly the header tokens, then consumes
// rows of four consecutive words (description, integer quantity, unit price,
// line total) until a terminal keyword. A row whose tokens do not all parse
// is skipped by advancing one word, so the scanner always makes progress.
// The terminal word is excluded from the table.
func ExtractLineItems(words []hocr.Word) []LineItem {
	items := []LineItem{}

	i, headerLen := seekHeader(words)
	if i < 0 {
		return items
	}
	i += headerLen

	for i < len(words) {
		w := words[i]
		if reTableEnd.MatchString(w.Text) {
			break
		}
		if strings.TrimSpace(w.Text) == "" || reSeparator.MatchString(w.Text) {
			i++
			continue
		}
		if item, ok := parseRow(words[i:]); ok {
			items = append(items, item)
			i += 4 // exactly the consumed tokens
			continue
		}
		i++
	}
	return items
}

// seekHeader returns the index of the first header token and the number of
// tokens the header spans, or (-1, 0) when no header exists. The combined
// header vocabulary may sit in one recognized word or be spread over a short
// run of words.
func seekHeader(words []hocr.Word) (int, int) {
	for i := range words {
		if reTableHeader.MatchString(words[i].Text) {
			return i, 1
		}
		if !reHeaderLead.MatchString(words[i].Text) {
			continue
		}
		end := i + headerWindow
		if end > len(words) {
			end = len(words)
		}
		joined := words[i].Text
		for j := i + 1; j < end; j++ {
			joined += " " + words[j].Text
			if reTableHeader.MatchString(joined) {
				return i, j - i + 1
			}
		}
	}
	return -1, 0
}

// parseRow reads one table row from the head of the remaining words. All four
// tokens must parse or the row is rejected.
func parseRow(words []hocr.Word) (LineItem, bool) {
	if len(words) < 4 {
		return LineItem{}, false
	}
	quantity, err := strconv.Atoi(strings.TrimSpace(words[1].Text))
	if err != nil {
		return LineItem{}, false
	}
	unitPrice, ok := parseAmount(words[2].Text)
	if !ok {
		return LineItem{}, false
	}
	lineTotal, ok := parseAmount(words[3].Text)
	if !ok {
		return LineItem{}, false
	}
	return LineItem{
		Description: strings.TrimSpace(words[0].Text),
		Quantity:    quantity,
		UnitPrice:   Amount{unitPrice},
		LineTotal:   Amount{lineTotal},
	}, true
}
