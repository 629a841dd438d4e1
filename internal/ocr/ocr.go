package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Config for a tesseract-backed extractor.
type Config struct {
	Tesseract string   // binary name or absolute path; if empty -> "tesseract"
	Languages []string // tesseract language codes; if empty -> ["eng"]

	TessdataDir string

	PSM int // e.g., 6 is good for a uniform block of text
	OEM int // 1 = LSTM; leave 0 to use default

	Runner Runner // stub point for tests; nil -> run the real binary
}

// Result is one OCR run over an uploaded image.
type Result struct {
	Text     string
	Language string
	Duration time.Duration
	Warnings []string
}

// StageError marks failures before recognition ran (temp-file I/O). The
// adapter maps these to file-read errors instead of the OCR sentinel.
type StageError struct {
	Err error
}

func (e *StageError) Error() string { return "stage image: " + e.Err.Error() }
func (e *StageError) Unwrap() error { return e.Err }

// Extractor runs tesseract over image bytes. Handles are immutable after
// construction and safe to share across requests.
type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if len(cfg.Languages) == 0 {
		cfg.Languages = []string{"eng"}
	}
	runner := cfg.Runner
	if runner == nil {
		runner = commandRunner{}
	}
	return &Extractor{cfg: cfg, runner: runner, logger: logger}
}

// Language returns the tesseract -l argument for this extractor.
func (e *Extractor) Language() string {
	return strings.Join(e.cfg.Languages, "+")
}

// ExtractImage stages the image bytes in a temp file and OCRs it.
func (e *Extractor) ExtractImage(ctx context.Context, image []byte) (Result, error) {
	start := time.Now()

	path, cleanup, err := stageImage(image)
	if err != nil {
		return Result{}, &StageError{Err: err}
	}
	defer cleanup()

	txt, warns, err := e.tesseractOCR(ctx, path)
	if err != nil {
		return Result{Warnings: warns}, err
	}
	txt = Normalize(txt)

	e.logger.Debug("ocr.extract.ok",
		"lang", e.Language(),
		"text_bytes", len(txt),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return Result{
		Text:     txt,
		Language: e.Language(),
		Duration: time.Since(start),
		Warnings: warns,
	}, nil
}

func (e *Extractor) tesseractOCR(ctx context.Context, path string) (string, []string, error) {
	args := []string{path, "stdout", "-l", e.Language()}
	if e.cfg.PSM > 0 {
		args = append(args, "--psm", fmt.Sprintf("%d", e.cfg.PSM))
	}
	if e.cfg.OEM > 0 {
		args = append(args, "--oem", fmt.Sprintf("%d", e.cfg.OEM))
	}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}

	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return "", []string{string(errb)}, fmt.Errorf("tesseract: %w", err)
	}

	// drop ruled-line noise tesseract emits for boxed layouts
	txt := reBoxNoise.ReplaceAllString(string(out), "")
	return txt, nil, nil
}

// stageImage writes the upload to a temp file for the external binary.
func stageImage(image []byte) (string, func(), error) {
	f, err := os.CreateTemp("", "docagent-*.img")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = os.Remove(f.Name()) }
	if _, err := f.Write(image); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, err
	}
	return f.Name(), cleanup, nil
}
