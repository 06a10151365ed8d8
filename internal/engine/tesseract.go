// Package engine invokes the external tesseract recognition capability.
// The recognizer itself is opaque: this package only builds invocations,
// collects their output files, and filters known-harmless diagnostic noise
// out of stderr before deciding whether an invocation actually failed.
package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"log/slog"
)

// Config holds the engine binary and environment settings.
type Config struct {
	Tesseract   string // binary name or absolute path; if empty -> "tesseract"
	Language    string // default "eng"
	TessdataDir string
	ArtifactDir string // per-invocation output files live here; default os.TempDir()
}

// RecognizeConfig is one recognition parameter set. Several of these are run
// over the same image and the best output is kept by the selector.
type RecognizeConfig struct {
	Name           string
	PSM            int
	CharWhitelist  string
	PreserveSpaces bool
}

const defaultWhitelist = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz.,:-#/$%@()"

// DefaultRecognizeConfigs returns the configuration ladder tried for every
// image: differing page-segmentation modes with and without a character
// whitelist.
func DefaultRecognizeConfigs() []RecognizeConfig {
	return []RecognizeConfig{
		{Name: "psm1-whitelist", PSM: 1, CharWhitelist: defaultWhitelist},
		{Name: "psm3-spaces", PSM: 3, PreserveSpaces: true},
		{Name: "psm6-whitelist", PSM: 6, CharWhitelist: defaultWhitelist},
		{Name: "psm4", PSM: 4},
	}
}

// Tesseract runs the tesseract CLI through a Runner so tests can stub it.
type Tesseract struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Tesseract {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	if cfg.ArtifactDir == "" {
		cfg.ArtifactDir = os.TempDir()
	}
	return &Tesseract{cfg: cfg, runner: execRunner{logger: logger}, logger: logger}
}

// Recognize runs one recognition configuration over the image and returns the
// plain text output. The output file is scoped to this call and removed on
// every exit path.
func (t *Tesseract) Recognize(ctx context.Context, imagePath string, rc RecognizeConfig) (string, error) {
	base := filepath.Join(t.cfg.ArtifactDir, uuid.NewString())
	outFile := base + ".txt"
	defer t.remove(outFile)

	args := t.baseArgs(imagePath, base)
	if rc.PSM > 0 {
		args = append(args, "--psm", strconv.Itoa(rc.PSM))
	}
	if rc.CharWhitelist != "" {
		args = append(args, "-c", "tessedit_char_whitelist="+rc.CharWhitelist)
	}
	if rc.PreserveSpaces {
		args = append(args, "-c", "preserve_interword_spaces=1")
	}

	return t.runAndRead(ctx, args, outFile)
}

// RecognizeLayout runs tesseract in hOCR mode and returns the raw markup.
func (t *Tesseract) RecognizeLayout(ctx context.Context, imagePath string) (string, error) {
	base := filepath.Join(t.cfg.ArtifactDir, uuid.NewString())
	outFile := base + ".hocr"
	defer t.remove(outFile)

	args := append(t.baseArgs(imagePath, base), "hocr")
	return t.runAndRead(ctx, args, outFile)
}

func (t *Tesseract) baseArgs(imagePath, outputBase string) []string {
	args := []string{imagePath, outputBase, "-l", t.cfg.Language}
	if t.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", t.cfg.TessdataDir)
	}
	return args
}

func (t *Tesseract) runAndRead(ctx context.Context, args []string, outFile string) (string, error) {
	_, stderr, err := t.runner.Run(ctx, t.cfg.Tesseract, args...)

	critical := filterStderr(string(stderr), t.logger)
	if err != nil && len(critical) > 0 {
		return "", fmt.Errorf("tesseract: %w: %s", err, strings.Join(critical, "\n"))
	}

	data, rerr := os.ReadFile(outFile)
	if rerr != nil {
		if err != nil {
			return "", fmt.Errorf("tesseract: %w", err)
		}
		return "", fmt.Errorf("tesseract produced no output: %w", rerr)
	}
	return string(data), nil
}

// filterStderr drops parameter-file warnings, which tesseract emits for
// missing optional config files, and returns only the lines that indicate a
// real failure.
func filterStderr(stderr string, logger *slog.Logger) []string {
	if stderr == "" {
		return nil
	}
	var critical []string
	for _, line := range strings.Split(stderr, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.Contains(line, "read_params_file: Can't open") {
			logger.Debug("tesseract parameter file warning (non-critical)", "line", line)
			continue
		}
		critical = append(critical, line)
	}
	return critical
}

func (t *Tesseract) remove(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		t.logger.Warn("could not delete engine artifact", "path", path, "error", err)
	}
}
