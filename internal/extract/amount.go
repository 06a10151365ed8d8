package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	reEuroGrouped = regexp.MustCompile(`\d+\.\d{3},\d{2}$`)
	reNonAmount   = regexp.MustCompile(`[^\d.]`)
)

// NormalizeAmount resolves a numeric-looking substring into a canonical
// decimal string: period as decimal separator, no thousands separators.
// No locale signal is available, so separator ambiguity is resolved by a
// fixed precedence (a documented limitation, not locale detection):
//
//  1. "1.234,56" style (dot-grouped, comma decimals at the end) wins outright.
//  2. With multiple commas, the last comma is the decimal separator when at
//     most two digits follow it; otherwise every comma is a thousands separator.
//  3. With a single comma, same trailing-digit rule decides.
//
// Blank input normalizes to "0".
func NormalizeAmount(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "0"
	}

	switch {
	case reEuroGrouped.MatchString(value):
		value = strings.ReplaceAll(value, ".", "")
		value = strings.ReplaceAll(value, ",", ".")

	case strings.Count(value, ",") > 1:
		last := strings.LastIndex(value, ",")
		if last > 0 && len(value)-last <= 3 {
			value = strings.ReplaceAll(value[:last], ",", "") + "." + value[last+1:]
		} else {
			value = strings.ReplaceAll(value, ",", "")
		}

	default:
		idx := strings.Index(value, ",")
		if idx > 0 && len(value)-idx <= 3 {
			value = strings.Replace(value, ",", ".", 1)
		} else {
			value = strings.ReplaceAll(value, ",", "")
		}
	}

	return reNonAmount.ReplaceAllString(value, "")
}

// parseAmount normalizes and parses a candidate amount. The bool result is
// the field validity predicate for amounts.
func parseAmount(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(NormalizeAmount(s))
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
