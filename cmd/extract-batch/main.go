package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/alisaeed1999/InvoiceOCRExtraction/internal/async"
	"github.com/alisaeed1999/InvoiceOCRExtraction/internal/common"
	"github.com/alisaeed1999/InvoiceOCRExtraction/internal/dates"
	"github.com/alisaeed1999/InvoiceOCRExtraction/internal/engine"
	"github.com/alisaeed1999/InvoiceOCRExtraction/internal/export"
	"github.com/alisaeed1999/InvoiceOCRExtraction/internal/extract"
	"github.com/alisaeed1999/InvoiceOCRExtraction/internal/ingest"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		dir     = flag.String("dir", "", "directory of invoice images to process (required)")
		out     = flag.String("out", "", "output XLSX summary path (optional, defaults to parent directory)")
		exts    = flag.String("exts", "", "comma-separated extensions to include (defaults to common image types)")
		workers = flag.Int("workers", 0, "worker count override")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	if *out == "" {
		*out = filepath.Join(filepath.Dir(*dir), "invoices.xlsx")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if *workers > 0 {
		cfg.Batch.Workers = *workers
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	var includeExts []string
	if *exts != "" {
		includeExts = strings.Split(*exts, ",")
	}
	paths, stats, err := ingest.ScanDirectory(*dir, includeExts, true)
	if err != nil {
		logger.Error("scan directory", "dir", *dir, "error", err)
		os.Exit(1)
	}
	logger.Info("scanned directory", "dir", *dir, "scanned", stats.Scanned, "matched", stats.Matched)
	if len(paths) == 0 {
		logger.Warn("no invoice images found", "dir", *dir)
		return
	}

	tess := engine.New(engine.Config{
		Tesseract:   cfg.OCR.Tesseract,
		Language:    cfg.OCR.Language,
		TessdataDir: cfg.OCR.TessdataDir,
		ArtifactDir: cfg.OCR.ArtifactDir,
	}, logger)
	svc := extract.NewService(extract.Config{
		ArtifactDir: cfg.OCR.ArtifactDir,
	}, tess, dates.NewRecognizer(), logger)

	var mu sync.Mutex
	var rows []export.Row
	sink := func(path string, res *extract.Result, err error) {
		mu.Lock()
		defer mu.Unlock()
		rows = append(rows, export.Row{Path: path, Result: res, Err: err})
	}

	queue := async.NewExtractorQueue(svc, sink, logger,
		async.WithWorkers(cfg.Batch.Workers),
		async.WithQueueSize(cfg.Batch.QueueSize),
		async.WithJobTimeout(cfg.OCR.Timeout),
	)

	ctx := context.Background()
	start := time.Now()
	for _, p := range paths {
		_ = queue.Enqueue(ctx, async.Job{Path: p, SubmittedAt: time.Now()})
	}
	queue.Shutdown(ctx)

	sort.Slice(rows, func(i, j int) bool { return rows[i].Path < rows[j].Path })

	failed := 0
	for _, r := range rows {
		if r.Err != nil {
			failed++
		}
	}
	logger.Info("batch complete",
		"files", len(rows),
		"failed", failed,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	data, err := export.NewService(logger).ResultsXLSX(rows)
	if err != nil {
		logger.Error("export summary", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		logger.Error("write summary", "path", *out, "error", err)
		os.Exit(1)
	}
	logger.Info("wrote summary", "path", *out)
}
