package extract

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/alisaeed1999/InvoiceOCRExtraction/internal/hocr"
)

// Every field resolver is a chain of strategies tried in order: keyword
// proximity over the layout words first, regex over the raw text second.
// A tier that cannot produce a valid value hands over to the next; an
// exhausted chain leaves the field absent.

// layoutQuery is the generic shape of the layout tier: words matching a
// keyword set, then words near any keyword under field-specific tolerances,
// then a content filter and a horizontal ordering.
type layoutQuery struct {
	keywords   []string
	xTolerance int
	yTolerance int
	filter     func(string) bool
	descending bool
}

// candidates evaluates the query against the word list. An empty result means
// the layout tier has nothing to offer for this field.
func (q layoutQuery) candidates(words []hocr.Word) []hocr.Word {
	var keywordWords []hocr.Word
	for _, w := range words {
		for _, k := range q.keywords {
			if containsFold(w.Text, k) {
				keywordWords = append(keywordWords, w)
				break
			}
		}
	}
	if len(keywordWords) == 0 {
		return nil
	}

	var nearby []hocr.Word
	for _, w := range words {
		if q.filter != nil && !q.filter(w.Text) {
			continue
		}
		for _, kw := range keywordWords {
			if hocr.IsNear(kw, w, q.xTolerance, q.yTolerance) {
				nearby = append(nearby, w)
				break
			}
		}
	}

	sort.SliceStable(nearby, func(i, j int) bool {
		if q.descending {
			return nearby[i].X1 > nearby[j].X1
		}
		return nearby[i].X1 < nearby[j].X1
	})
	return nearby
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToUpper(s), strings.ToUpper(substr))
}

var (
	reDateLike   = regexp.MustCompile(`[\d/\-.]+`)
	reAmountLike = regexp.MustCompile(`[\d,.]+`)
	reHasDigit   = regexp.MustCompile(`[0-9]`)
)

// --- invoice number ---

var invoiceNumberLayout = layoutQuery{
	keywords:   []string{"INVOICE", "INV", "NO", "#"},
	xTolerance: 100,
	yTolerance: 50,
}

var invoiceNumberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)INVOICE\s*(?:NUMBER|NO|#)?\s*:?\s*([A-Z0-9\-]{3,20})`),
	regexp.MustCompile(`(?i)\b(INV\d{4,10})\b`),
	regexp.MustCompile(`\b(\d{4,8}-\d{2,6})\b`),
	regexp.MustCompile(`(?i)\b([A-Z]{2,3}-?\d{3,10})\b`),
	regexp.MustCompile(`\b(\d{6,12})\b`),
}

func validInvoiceNumber(v string) bool {
	return strings.TrimSpace(v) != "" && len(v) >= 3
}

func extractInvoiceNumber(words []hocr.Word, rawText string) *string {
	if cands := invoiceNumberLayout.candidates(words); len(cands) > 0 {
		v := cands[0].Text
		return &v
	}
	for _, p := range invoiceNumberPatterns {
		m := p.FindStringSubmatch(rawText)
		if m == nil {
			continue
		}
		v := strings.TrimSpace(m[1])
		if validInvoiceNumber(v) {
			return &v
		}
	}
	return nil
}

// --- invoice date ---

var invoiceDateLayout = layoutQuery{
	keywords:   []string{"DATE", "ISSUED", "CREATED"},
	xTolerance: 150,
	yTolerance: 50,
	filter:     reDateLike.MatchString,
}

var invoiceDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:INVOICE\s*DATE|DATE|ISSUED|CREATED)\s*:?\s*(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})`),
	regexp.MustCompile(`(?i)(?:DATE|DATED)\s*:?\s*(\d{1,2}\s+(?:JAN|FEB|MAR|APR|MAY|JUN|JUL|AUG|SEP|OCT|NOV|DEC)\w*\s+\d{2,4})`),
	regexp.MustCompile(`\b(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{4})\b`),
	regexp.MustCompile(`\b(\d{4}[/\-.]\d{1,2}[/\-.]\d{1,2})\b`),
}

// extractInvoiceDate has a third tier beyond layout and regex: the external
// date-phrase recognizer over the full raw text. The external call is
// best-effort and its failure leaves the field absent.
func extractInvoiceDate(ctx context.Context, words []hocr.Word, rawText string, recognizer DateRecognizer) *Date {
	if cands := invoiceDateLayout.candidates(words); len(cands) > 0 {
		parts := make([]string, len(cands))
		for i, w := range cands {
			parts[i] = w.Text
		}
		if t, ok := parseDate(strings.Join(parts, " ")); ok {
			d := DateOf(t)
			return &d
		}
	}

	for _, p := range invoiceDatePatterns {
		m := p.FindStringSubmatch(rawText)
		if m == nil {
			continue
		}
		if t, ok := parseDate(m[1]); ok {
			d := DateOf(t)
			return &d
		}
	}

	if recognizer != nil {
		values, err := recognizer.Candidates(ctx, rawText)
		if err == nil && len(values) > 0 {
			d := DateOf(values[0])
			return &d
		}
	}
	return nil
}

// --- customer name ---

var customerNameLayout = layoutQuery{
	keywords:   []string{"BILL TO", "CUSTOMER", "CLIENT"},
	xTolerance: 200,
	yTolerance: 60,
	filter:     func(s string) bool { return !reHasDigit.MatchString(s) },
}

var customerNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:BILL\s*TO|CUSTOMER|CLIENT)\s*:?\s*([^\n\r]{3,100})`),
	regexp.MustCompile(`(?im)TO\s*:\s*([A-Z\s&.,-]+)$`),
}

var (
	reMultiSpace    = regexp.MustCompile(`\s{2,}`)
	reNameJunkChars = regexp.MustCompile(`[^A-Za-z0-9\s&.,-]`)
)

func cleanCustomerName(name string) string {
	name = strings.NewReplacer("\n", " ", "\r", " ").Replace(strings.TrimSpace(name))
	name = reMultiSpace.ReplaceAllString(name, " ")
	name = reNameJunkChars.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

func validCustomerName(name string) bool {
	if strings.TrimSpace(name) == "" || len(name) < 3 {
		return false
	}
	return strings.IndexFunc(name, func(r rune) bool {
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	}) >= 0
}

func extractCustomerName(words []hocr.Word, rawText string) *string {
	if cands := customerNameLayout.candidates(words); len(cands) > 0 {
		parts := make([]string, len(cands))
		for i, w := range cands {
			parts[i] = w.Text
		}
		if name := cleanCustomerName(strings.Join(parts, " ")); validCustomerName(name) {
			return &name
		}
	}
	for _, p := range customerNamePatterns {
		m := p.FindStringSubmatch(rawText)
		if m == nil {
			continue
		}
		if name := cleanCustomerName(m[1]); validCustomerName(name) {
			return &name
		}
	}
	return nil
}

// --- amounts ---

// Amount queries scan right-to-left: currency values typically sit to the
// right of their label.
var (
	totalAmountLayout = layoutQuery{
		keywords:   []string{"TOTAL", "GRAND TOTAL", "AMOUNT DUE"},
		xTolerance: 150,
		yTolerance: 50,
		filter:     reAmountLike.MatchString,
		descending: true,
	}
	vatLayout = layoutQuery{
		keywords:   []string{"VAT", "TAX", "GST"},
		xTolerance: 150,
		yTolerance: 50,
		filter:     reAmountLike.MatchString,
		descending: true,
	}
	subtotalLayout = layoutQuery{
		keywords:   []string{"SUBTOTAL", "SUB TOTAL", "NET AMOUNT"},
		xTolerance: 150,
		yTolerance: 50,
		filter:     reAmountLike.MatchString,
		descending: true,
	}
)

var (
	totalAmountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:TOTAL\s*(?:AMOUNT|DUE)?|GRAND\s*TOTAL|AMOUNT\s*DUE)\s*:?\s*[£$€]?\s*([\d,]+\.?\d{0,2})`),
		regexp.MustCompile(`(?i)TOTAL\s*[£$€]?\s*([\d,]+\.?\d{0,2})`),
	}
	vatPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:VAT|TAX|GST)\s*(?:AMOUNT|RATE)?\s*:?\s*[£$€]?\s*([\d,]+\.?\d{0,2})`),
		regexp.MustCompile(`(?i)(?:VAT|TAX|GST)\s*@\s*\d+%\s*[£$€]?\s*([\d,]+\.?\d{0,2})`),
	}
	subtotalPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:SUB\s*TOTAL|SUBTOTAL|NET\s*AMOUNT)\s*:?\s*[£$€]?\s*([\d,]+\.?\d{0,2})`),
	}
)

func extractAmount(words []hocr.Word, rawText string, q layoutQuery, patterns []*regexp.Regexp) *Amount {
	if cands := q.candidates(words); len(cands) > 0 {
		if d, ok := parseAmount(cands[0].Text); ok {
			return &Amount{d}
		}
	}
	for _, p := range patterns {
		m := p.FindStringSubmatch(rawText)
		if m == nil {
			continue
		}
		if d, ok := parseAmount(m[1]); ok {
			return &Amount{d}
		}
	}
	return nil
}

func extractTotalAmount(words []hocr.Word, rawText string) *Amount {
	return extractAmount(words, rawText, totalAmountLayout, totalAmountPatterns)
}

func extractVAT(words []hocr.Word, rawText string) *Amount {
	return extractAmount(words, rawText, vatLayout, vatPatterns)
}

func extractSubtotal(words []hocr.Word, rawText string) *Amount {
	return extractAmount(words, rawText, subtotalLayout, subtotalPatterns)
}
