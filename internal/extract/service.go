// Package extract converts noisy OCR output into a structured invoice record
// with a confidence estimate. It reconciles two unreliable signals, the flat
// recognized text and the per-word layout geometry, and degrades gracefully
// when either is missing or malformed.
package extract

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/alisaeed1999/InvoiceOCRExtraction/constants"
	"github.com/alisaeed1999/InvoiceOCRExtraction/internal/engine"
	"github.com/alisaeed1999/InvoiceOCRExtraction/internal/hocr"
)

// Config holds extraction service settings.
type Config struct {
	// Configs is the recognition configuration ladder; defaults to
	// engine.DefaultRecognizeConfigs.
	Configs []engine.RecognizeConfig
	// ArtifactDir is where ExtractReader places scoped temp input files;
	// defaults to os.TempDir().
	ArtifactDir string
}

// Service runs one full extraction: best recognition pass, layout words,
// field extraction, line items, confidence.
type Service struct {
	engine     Engine
	recognizer DateRecognizer
	selector   *Selector
	cfg        Config
	logger     *slog.Logger
}

func NewService(cfg Config, eng Engine, recognizer DateRecognizer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ArtifactDir == "" {
		cfg.ArtifactDir = os.TempDir()
	}
	return &Service{
		engine:     eng,
		recognizer: recognizer,
		selector:   NewSelector(eng, cfg.Configs, logger),
		cfg:        cfg,
		logger:     logger,
	}
}

// ExtractInvoice extracts a structured invoice record from one image.
//
// Layout recognition failure is non-fatal: every field extractor falls
// through to its regex tier when the word list is empty. Field extractors are
// independent and run concurrently. On cancellation the call reports the
// context error rather than a partial result.
func (s *Service) ExtractInvoice(ctx context.Context, imagePath string) (*Result, error) {
	rawText, err := s.selector.SelectText(ctx, imagePath)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	markup, err := s.engine.RecognizeLayout(ctx, imagePath)
	if err != nil {
		s.logger.Warn("layout recognition failed; continuing without layout", "error", err)
		markup = ""
	}
	words := hocr.Parse(markup, s.logger)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{RawText: rawText, Items: []LineItem{}}

	var wg sync.WaitGroup
	run := func(f func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f()
		}()
	}
	run(func() { res.InvoiceNumber = extractInvoiceNumber(words, rawText) })
	run(func() { res.InvoiceDate = extractInvoiceDate(ctx, words, rawText, s.recognizer) })
	run(func() { res.CustomerName = extractCustomerName(words, rawText) })
	run(func() { res.TotalAmount = extractTotalAmount(words, rawText) })
	run(func() { res.VAT = extractVAT(words, rawText) })
	run(func() { res.Subtotal = extractSubtotal(words, rawText) })
	run(func() { res.Items = ExtractLineItems(words) })
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res.OCRConfidence = Confidence(rawText)
	s.logger.Info("extraction complete",
		"words", len(words),
		"text_bytes", len(rawText),
		"items", len(res.Items),
		"confidence", res.OCRConfidence,
	)
	return res, nil
}

// ExtractReader copies an incoming stream into a temp file scoped to this
// call and extracts from it. The file is deleted on every exit path.
func (s *Service) ExtractReader(ctx context.Context, r io.Reader, ext string) (*Result, error) {
	ext = constants.NormalizeExt(ext)
	if !constants.IsAllowedExt(ext) {
		return nil, fmt.Errorf("unsupported extension: %q", ext)
	}

	path := filepath.Join(s.cfg.ArtifactDir, uuid.NewString()+"."+ext)
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create temp input: %w", err)
	}
	defer func() {
		if rerr := os.Remove(path); rerr != nil && !os.IsNotExist(rerr) {
			s.logger.Warn("could not delete temp input", "path", path, "error", rerr)
		}
	}()

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write temp input: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close temp input: %w", err)
	}

	return s.ExtractInvoice(ctx, path)
}
