// Package export renders batch extraction results as an XLSX summary.
package export

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/alisaeed1999/InvoiceOCRExtraction/internal/extract"
)

// Row pairs a source file with its extraction outcome. Err is the terminal
// extraction error, if any; failed rows still appear in the summary.
type Row struct {
	Path   string
	Result *extract.Result
	Err    error
}

// Service produces XLSX bytes from extraction results.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// ResultsXLSX returns an XLSX workbook (as bytes) summarizing the given rows.
func (s *Service) ResultsXLSX(rows []Row) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Invoices"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"File",
		"Invoice Number",
		"Invoice Date",
		"Customer",
		"Subtotal",
		"VAT",
		"Total",
		"Line Items",
		"Confidence",
		"Error",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for rowIdx, r := range rows {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, rowIdx+2)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, r.Path)
		if r.Err != nil {
			write(10, r.Err.Error())
			continue
		}
		res := r.Result
		if res == nil {
			continue
		}
		if res.InvoiceNumber != nil {
			write(2, *res.InvoiceNumber)
		}
		if res.InvoiceDate != nil {
			write(3, res.InvoiceDate.String())
		}
		if res.CustomerName != nil {
			write(4, *res.CustomerName)
		}
		if res.Subtotal != nil {
			write(5, res.Subtotal.StringFixed(2))
		}
		if res.VAT != nil {
			write(6, res.VAT.StringFixed(2))
		}
		if res.TotalAmount != nil {
			write(7, res.TotalAmount.StringFixed(2))
		}
		write(8, len(res.Items))
		write(9, fmt.Sprintf("%.2f", res.OCRConfidence))
	}

	_ = f.SetColWidth(sheet, "A", "A", 40)
	_ = f.SetColWidth(sheet, "B", "D", 22)
	_ = f.SetColWidth(sheet, "E", "I", 12)
	_ = f.SetColWidth(sheet, "J", "J", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	s.logger.Info("exported extraction summary", "rows", len(rows), "bytes", buf.Len())
	return buf.Bytes(), nil
}
