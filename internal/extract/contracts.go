package extract

import (
	"context"
	"time"

	"github.com/alisaeed1999/InvoiceOCRExtraction/internal/engine"
)

// Engine is the external recognition capability: one image in, candidate text
// (or layout markup) out. Implementations may fail per invocation; callers
// absorb those failures.
type Engine interface {
	Recognize(ctx context.Context, imagePath string, cfg engine.RecognizeConfig) (string, error)
	RecognizeLayout(ctx context.Context, imagePath string) (string, error)
}

// DateRecognizer is the external date-phrase recognition capability used as
// the last resort for the invoice date. It is best-effort: errors degrade the
// field to absent.
type DateRecognizer interface {
	Candidates(ctx context.Context, text string) ([]time.Time, error)
}
