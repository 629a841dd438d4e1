// Package pipeline sequences the document-processing stages: input
// resolution, guardrail validation, summarization. Stages are strictly
// sequential and short-circuit on failure; every entity is request-scoped.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joseph-ayodele/document-agent/internal/common"
	"github.com/joseph-ayodele/document-agent/internal/extract"
	"github.com/joseph-ayodele/document-agent/internal/llm"
)

// Input is one process-document request. When both fields are set, the image
// wins and the text is ignored.
type Input struct {
	Text  string
	Image []byte
}

// Result is the external business outcome for a processed document.
// SummaryPoints is nil (serialized as null) unless IsValid is true and
// summarization succeeded.
type Result struct {
	IsValid       bool     `json:"is_valid"`
	StatusMessage string   `json:"status_message"`
	ExtractedText string   `json:"extracted_text"`
	SummaryPoints []string `json:"summary_points"`
}

// ContentValidator is the guardrail stage contract.
type ContentValidator interface {
	Validate(ctx context.Context, text string) (llm.ValidationOutcome, error)
}

// Summarizer is the summarization stage contract.
type Summarizer interface {
	Summarize(ctx context.Context, text string) ([]string, error)
}

// Pipeline coordinates resolve → validate → summarize.
type Pipeline struct {
	extractor  extract.TextExtractor
	validator  ContentValidator
	summarizer Summarizer
	logger     *slog.Logger
}

func New(extractor extract.TextExtractor, validator ContentValidator, summarizer Summarizer, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		extractor:  extractor,
		validator:  validator,
		summarizer: summarizer,
		logger:     logger,
	}
}

// Process runs one document end to end. It returns a Result for both the
// success and the blocked outcome; errors are always *common.AppError values
// from the closed taxonomy.
func (p *Pipeline) Process(ctx context.Context, in Input) (Result, error) {
	text, err := p.resolve(ctx, in)
	if err != nil {
		return Result{}, err
	}

	outcome, err := p.validator.Validate(ctx, text)
	if err != nil {
		p.logger.Error("pipeline.validate.failed", "error", err)
		return Result{}, common.LLMExecutionError("content validation failed", err)
	}
	if !outcome.IsValid {
		p.logger.Warn("pipeline.validate.blocked", "reason", outcome.Reason)
		return Result{
			IsValid:       false,
			StatusMessage: fmt.Sprintf("Guardrail failed. Content blocked because: %s.", outcome.Reason),
			ExtractedText: text,
		}, nil
	}

	points, err := p.summarizer.Summarize(ctx, text)
	if err != nil {
		p.logger.Error("pipeline.summarize.failed", "error", err)
		return Result{}, common.LLMExecutionError("LLM summarization failed", err)
	}

	p.logger.Info("pipeline.ok", "text_bytes", len(text), "points", len(points))
	return Result{
		IsValid:       true,
		StatusMessage: "Processing successful. Content validated and summarized.",
		ExtractedText: text,
		SummaryPoints: points,
	}, nil
}
