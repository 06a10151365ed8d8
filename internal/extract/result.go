package extract

import (
	"time"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value. It marshals as a fixed two-decimal JSON number.
type Amount struct {
	decimal.Decimal
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.StringFixed(2)), nil
}

// Date is a calendar date without a time component. It marshals as YYYY-MM-DD.
type Date struct {
	time.Time
}

// DateOf truncates t to its calendar date in UTC.
func DateOf(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}

func (d Date) String() string {
	return d.Format("2006-01-02")
}

// LineItem is one row of the invoice table.
type LineItem struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   Amount `json:"unit_price"`
	LineTotal   Amount `json:"line_total"`
}

// Result is the assembled outcome of one extraction call. Every scalar field
// is independently optional: nil means no strategy produced a valid value,
// which is an expected outcome rather than an error.
type Result struct {
	InvoiceNumber *string    `json:"invoice_number,omitempty"`
	InvoiceDate   *Date      `json:"invoice_date,omitempty"`
	CustomerName  *string    `json:"customer_name,omitempty"`
	TotalAmount   *Amount    `json:"total_amount,omitempty"`
	VAT           *Amount    `json:"vat,omitempty"`
	Subtotal      *Amount    `json:"subtotal,omitempty"`
	Items         []LineItem `json:"items"`
	RawText       string     `json:"raw_text"`
	OCRConfidence float64    `json:"ocr_confidence"`
}
