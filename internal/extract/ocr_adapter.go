package extract

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/joseph-ayodele/document-agent/constants"
	"github.com/joseph-ayodele/document-agent/internal/ocr"
)

// OCRAdapter implements TextExtractor on top of the tesseract reader cache,
// translating engine failures into the sentinel contract.
type OCRAdapter struct {
	readers   *ocr.Cache
	languages []string
	logger    *slog.Logger
}

func NewOCRAdapter(readers *ocr.Cache, languages []string, logger *slog.Logger) *OCRAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &OCRAdapter{readers: readers, languages: languages, logger: logger}
}

func (a *OCRAdapter) Extract(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", errors.New("uploaded file is empty")
	}

	reader := a.readers.Get(a.languages)
	res, err := reader.ExtractImage(ctx, image)
	if err != nil {
		var stageErr *ocr.StageError
		if errors.As(err, &stageErr) {
			return "", err
		}
		a.logger.Error("ocr.extract.failed", "error", err)
		return constants.OCRFailurePrefix + ": " + err.Error(), nil
	}
	if strings.TrimSpace(res.Text) == "" {
		return constants.NoReadableTextSentinel, nil
	}
	return res.Text, nil
}
