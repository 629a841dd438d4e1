package pipeline

import (
	"context"
	"strings"

	"github.com/joseph-ayodele/document-agent/constants"
	"github.com/joseph-ayodele/document-agent/internal/common"
)

// resolve turns the (optional text, optional image) pair into the canonical
// document text, or fails with a typed input error. No model call happens
// here.
func (p *Pipeline) resolve(ctx context.Context, in Input) (string, error) {
	var text string
	switch {
	case len(in.Image) > 0:
		extracted, err := p.extractor.Extract(ctx, in.Image)
		if err != nil {
			p.logger.Error("pipeline.resolve.read_failed", "error", err)
			return "", common.FileReadError(err)
		}
		if strings.HasPrefix(extracted, constants.OCRFailurePrefix) {
			return "", common.OCRFailedError(extracted)
		}
		text = extracted
	case in.Text != "":
		text = in.Text
	default:
		return "", common.MissingInputError()
	}

	if strings.TrimSpace(text) == "" || strings.EqualFold(text, constants.NoReadableTextSentinel) {
		return "", common.EmptyContentError()
	}
	return text, nil
}
