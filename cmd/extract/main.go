package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/alisaeed1999/InvoiceOCRExtraction/internal/common"
	"github.com/alisaeed1999/InvoiceOCRExtraction/internal/dates"
	"github.com/alisaeed1999/InvoiceOCRExtraction/internal/engine"
	"github.com/alisaeed1999/InvoiceOCRExtraction/internal/extract"
)

func main() {
	var (
		image = flag.String("image", "", "invoice image to extract (required)")
		debug = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	if *image == "" {
		logger.Error("usage", "cmd", "extract -image <invoice image>")
		os.Exit(2)
	}

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.OCR.Timeout)
	defer cancel()

	tess := engine.New(engine.Config{
		Tesseract:   cfg.OCR.Tesseract,
		Language:    cfg.OCR.Language,
		TessdataDir: cfg.OCR.TessdataDir,
		ArtifactDir: cfg.OCR.ArtifactDir,
	}, logger)

	svc := extract.NewService(extract.Config{
		ArtifactDir: cfg.OCR.ArtifactDir,
	}, tess, dates.NewRecognizer(), logger)

	res, err := svc.ExtractInvoice(ctx, *image)
	if err != nil {
		logger.Error("extraction failed", "image", *image, "error", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		logger.Error("encode result", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
