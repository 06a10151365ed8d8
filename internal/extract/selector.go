package extract

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/alisaeed1999/InvoiceOCRExtraction/internal/engine"
)

// Selector runs several recognition configurations over one image and keeps
// the output ranked best by TextQuality.
type Selector struct {
	engine  Engine
	configs []engine.RecognizeConfig
	logger  *slog.Logger
}

func NewSelector(eng Engine, configs []engine.RecognizeConfig, logger *slog.Logger) *Selector {
	if logger == nil {
		logger = slog.Default()
	}
	if len(configs) == 0 {
		configs = engine.DefaultRecognizeConfigs()
	}
	return &Selector{engine: eng, configs: configs, logger: logger}
}

type candidate struct {
	config engine.RecognizeConfig
	text   string
	score  float64
}

// SelectText fans out one recognition per configuration, joins the results
// and returns the highest-scoring text. An individual configuration failure
// is logged and scored 0; it never cancels its siblings. When every
// configuration fails or comes back empty, the first configuration is
// forcibly re-run and its output returned as-is; only a failure of that last
// resort escalates.
func (s *Selector) SelectText(ctx context.Context, imagePath string) (string, error) {
	results := make([]candidate, len(s.configs))

	var wg sync.WaitGroup
	for i, cfg := range s.configs {
		wg.Add(1)
		go func(i int, cfg engine.RecognizeConfig) {
			defer wg.Done()
			text, err := s.engine.Recognize(ctx, imagePath, cfg)
			if err != nil {
				s.logger.Warn("recognition configuration failed", "config", cfg.Name, "error", err)
				results[i] = candidate{config: cfg}
				return
			}
			results[i] = candidate{config: cfg, text: text, score: TextQuality(text)}
		}(i, cfg)
	}
	wg.Wait()

	var best candidate
	for _, c := range results {
		if c.score > best.score {
			best = c
		}
	}
	if best.text != "" {
		s.logger.Debug("selected recognition pass", "config", best.config.Name, "score", best.score)
		return best.text, nil
	}

	s.logger.Warn("no recognition configuration produced usable text; forcing first configuration")
	text, err := s.engine.Recognize(ctx, imagePath, s.configs[0])
	if err != nil {
		return "", fmt.Errorf("all recognition configurations failed: %w", err)
	}
	return text, nil
}
