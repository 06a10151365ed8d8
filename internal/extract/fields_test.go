package extract

import (
	"context"
	"testing"
	"time"

	"github.com/alisaeed1999/InvoiceOCRExtraction/internal/hocr"
)

func TestExtractInvoiceNumber_Layout(t *testing.T) {
	words := []hocr.Word{
		{Text: "INVOICE NO", X1: 40, Y1: 40, X2: 180, Y2: 80},
		{Text: "INV-12345", X1: 200, Y1: 42, X2: 340, Y2: 78},
	}

	got := extractInvoiceNumber(words, "")
	if got == nil {
		t.Fatal("extractInvoiceNumber = nil, want INV-12345")
	}
	if *got != "INV-12345" {
		t.Errorf("extractInvoiceNumber = %q, want INV-12345", *got)
	}
}

func TestExtractInvoiceNumber_RegexFallback(t *testing.T) {
	got := extractInvoiceNumber(nil, "Some noise\nINVOICE NO: INV-2024-001\nmore noise")
	if got == nil || *got != "INV-2024-001" {
		t.Fatalf("extractInvoiceNumber = %v, want INV-2024-001", got)
	}
}

func TestExtractInvoiceNumber_Absent(t *testing.T) {
	if got := extractInvoiceNumber(nil, "nothing useful here"); got != nil {
		t.Errorf("extractInvoiceNumber = %q, want nil", *got)
	}
}

func TestExtractInvoiceDate_Layout(t *testing.T) {
	words := []hocr.Word{
		{Text: "DATE:", X1: 0, Y1: 100, X2: 200, Y2: 140},
		{Text: "15/03/2024", X1: 220, Y1: 102, X2: 380, Y2: 138},
	}

	got := extractInvoiceDate(context.Background(), words, "", nil)
	if got == nil {
		t.Fatal("extractInvoiceDate = nil")
	}
	if got.String() != "2024-03-15" {
		t.Errorf("extractInvoiceDate = %s, want 2024-03-15", got)
	}
}

func TestExtractInvoiceDate_RegexFallback(t *testing.T) {
	got := extractInvoiceDate(context.Background(), nil, "DATE: 01/02/2023", nil)
	if got == nil {
		t.Fatal("extractInvoiceDate = nil")
	}
	// Day-first formats take priority.
	if got.String() != "2023-02-01" {
		t.Errorf("extractInvoiceDate = %s, want 2023-02-01", got)
	}
}

type stubRecognizer struct {
	values []time.Time
	err    error
	called bool
}

func (s *stubRecognizer) Candidates(_ context.Context, _ string) ([]time.Time, error) {
	s.called = true
	return s.values, s.err
}

func TestExtractInvoiceDate_RecognizerTier(t *testing.T) {
	rec := &stubRecognizer{values: []time.Time{time.Date(2023, 6, 10, 14, 0, 0, 0, time.UTC)}}

	got := extractInvoiceDate(context.Background(), nil, "payment is due next month", rec)
	if !rec.called {
		t.Fatal("recognizer was not consulted")
	}
	if got == nil || got.String() != "2023-06-10" {
		t.Fatalf("extractInvoiceDate = %v, want 2023-06-10", got)
	}
}

func TestExtractInvoiceDate_RecognizerFailureDegrades(t *testing.T) {
	rec := &stubRecognizer{err: context.DeadlineExceeded}
	if got := extractInvoiceDate(context.Background(), nil, "no date here", rec); got != nil {
		t.Errorf("extractInvoiceDate = %v, want nil on recognizer failure", got)
	}
}

func TestExtractCustomerName_Layout(t *testing.T) {
	words := []hocr.Word{
		{Text: "CUSTOMER", X1: 0, Y1: 200, X2: 300, Y2: 240},
		{Text: "Acme", X1: 310, Y1: 202, X2: 400, Y2: 238},
		{Text: "Corp.", X1: 410, Y1: 203, X2: 500, Y2: 239},
		{Text: "12345", X1: 510, Y1: 204, X2: 560, Y2: 240}, // digits excluded
	}

	got := extractCustomerName(words, "")
	if got == nil || *got != "Acme Corp." {
		t.Fatalf("extractCustomerName = %v, want %q", got, "Acme Corp.")
	}
}

func TestExtractCustomerName_RegexFallbackAndCleanup(t *testing.T) {
	got := extractCustomerName(nil, "BILL TO: Acme* & Sons   Ltd\nAddress line")
	if got == nil {
		t.Fatal("extractCustomerName = nil")
	}
	if *got != "Acme & Sons Ltd" {
		t.Errorf("extractCustomerName = %q, want %q", *got, "Acme & Sons Ltd")
	}
}

func TestExtractCustomerName_RejectsTooShort(t *testing.T) {
	if got := extractCustomerName(nil, "CUSTOMER: ab"); got != nil {
		t.Errorf("extractCustomerName = %q, want nil for short name", *got)
	}
}

func TestExtractTotalAmount_LayoutScansRightToLeft(t *testing.T) {
	words := []hocr.Word{
		{Text: "TOTAL", X1: 0, Y1: 300, X2: 250, Y2: 340},
		{Text: "100.00", X1: 300, Y1: 302, X2: 360, Y2: 338},
		{Text: "150.00", X1: 380, Y1: 303, X2: 440, Y2: 339},
	}

	got := extractTotalAmount(words, "")
	if got == nil {
		t.Fatal("extractTotalAmount = nil")
	}
	if s := got.StringFixed(2); s != "150.00" {
		t.Errorf("extractTotalAmount = %s, want the rightmost candidate 150.00", s)
	}
}

func TestExtractTotalAmount_RegexFallback(t *testing.T) {
	got := extractTotalAmount(nil, "GRAND TOTAL: $1,250.75")
	if got == nil {
		t.Fatal("extractTotalAmount = nil")
	}
	if s := got.StringFixed(2); s != "1250.75" {
		t.Errorf("extractTotalAmount = %s, want 1250.75", s)
	}
}

func TestExtractVATAndSubtotal_Regex(t *testing.T) {
	text := "SUBTOTAL: 100.00\nVAT @ 20% 20.00\nTOTAL 120.00"

	vat := extractVAT(nil, text)
	if vat == nil || vat.StringFixed(2) != "20.00" {
		t.Fatalf("extractVAT = %v, want 20.00", vat)
	}
	sub := extractSubtotal(nil, text)
	if sub == nil || sub.StringFixed(2) != "100.00" {
		t.Fatalf("extractSubtotal = %v, want 100.00", sub)
	}
}
