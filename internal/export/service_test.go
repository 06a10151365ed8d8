package export

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/alisaeed1999/InvoiceOCRExtraction/internal/extract"
)

func TestResultsXLSX(t *testing.T) {
	num := "INV-2024-001"
	date := extract.DateOf(time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC))
	total := extract.Amount{Decimal: decimal.RequireFromString("150")}

	rows := []Row{
		{
			Path: "/in/a.png",
			Result: &extract.Result{
				InvoiceNumber: &num,
				InvoiceDate:   &date,
				TotalAmount:   &total,
				Items:         []extract.LineItem{{Description: "Widget", Quantity: 2}},
				OCRConfidence: 0.8,
			},
		},
		{Path: "/in/b.png", Err: errors.New("recognition failed")},
	}

	svc := NewService(slog.New(slog.NewTextHandler(io.Discard, nil)))
	data, err := svc.ResultsXLSX(rows)
	if err != nil {
		t.Fatalf("ResultsXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	const sheet = "Invoices"
	cases := []struct {
		cell string
		want string
	}{
		{"A1", "File"},
		{"A2", "/in/a.png"},
		{"B2", "INV-2024-001"},
		{"C2", "2023-02-01"},
		{"G2", "150.00"},
		{"H2", "1"},
		{"I2", "0.80"},
		{"A3", "/in/b.png"},
		{"J3", "recognition failed"},
	}
	for _, tc := range cases {
		got, err := f.GetCellValue(sheet, tc.cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", tc.cell, err)
		}
		if got != tc.want {
			t.Errorf("cell %s = %q, want %q", tc.cell, got, tc.want)
		}
	}

	// The failed row carries no extracted values.
	if got, _ := f.GetCellValue(sheet, "B3"); got != "" {
		t.Errorf("B3 = %q, want empty for failed row", got)
	}
}
