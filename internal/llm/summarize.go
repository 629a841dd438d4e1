package llm

import (
	"context"
	"log/slog"
	"strings"
)

const summaryPrompt = "You are an expert summarization bot. Summarize the following document content " +
	"in 3 concise, professional bullet points. The content has already been vetted for safety."

// Summarizer produces the bullet-point summary for validated content. Unlike
// the validator it never downgrades failures: a broken summarization call is
// an execution error the pipeline must surface.
type Summarizer struct {
	caller *Caller
	logger *slog.Logger
}

func NewSummarizer(caller *Caller, logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{caller: caller, logger: logger}
}

// Summarize sends the full, untruncated text and parses the model output
// into ordered bullet points.
func (s *Summarizer) Summarize(ctx context.Context, text string) ([]string, error) {
	raw, err := s.caller.Call(ctx, summaryPrompt, text)
	if err != nil {
		return nil, err
	}
	points := ParseBulletPoints(raw)
	s.logger.Info("llm.summarize.ok", "points", len(points), "raw_bytes", len(raw))
	return points, nil
}

// ParseBulletPoints splits raw model output on line breaks, drops blanks, and
// strips leading/trailing bullet markers and whitespace from each line.
func ParseBulletPoints(raw string) []string {
	var points []string
	for _, line := range strings.Split(raw, "\n") {
		p := strings.TrimSpace(line)
		if p == "" {
			continue
		}
		p = strings.Trim(p, "* ")
		p = strings.Trim(p, "- ")
		if p != "" {
			points = append(points, p)
		}
	}
	return points
}
