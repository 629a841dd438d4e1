package pipeline

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/joseph-ayodele/document-agent/constants"
	"github.com/joseph-ayodele/document-agent/internal/common"
	"github.com/joseph-ayodele/document-agent/internal/llm"
)

type stubExtractor struct {
	mu    sync.Mutex
	calls int
	text  string
	err   error
}

func (s *stubExtractor) Extract(_ context.Context, _ []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.text, s.err
}

type stubValidator struct {
	mu      sync.Mutex
	calls   int
	seen    string
	outcome llm.ValidationOutcome
	err     error
}

func (s *stubValidator) Validate(_ context.Context, text string) (llm.ValidationOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.seen = text
	return s.outcome, s.err
}

type stubSummarizer struct {
	mu     sync.Mutex
	calls  int
	seen   string
	points []string
	err    error
}

func (s *stubSummarizer) Summarize(_ context.Context, text string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.seen = text
	return s.points, s.err
}

func passing() *stubValidator {
	return &stubValidator{outcome: llm.ValidationOutcome{IsValid: true, Reason: "PASS"}}
}

func appErrorType(t *testing.T, err error) constants.ErrorType {
	t.Helper()
	var appErr *common.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *common.AppError, got %T: %v", err, err)
	}
	return appErr.Type
}

func TestProcessMissingInput(t *testing.T) {
	ext, val, sum := &stubExtractor{}, passing(), &stubSummarizer{}
	p := New(ext, val, sum, nil)

	_, err := p.Process(context.Background(), Input{})
	if got := appErrorType(t, err); got != constants.ErrorTypeMissingInput {
		t.Fatalf("expected MISSING_INPUT, got %s", got)
	}
	if ext.calls != 0 || val.calls != 0 || sum.calls != 0 {
		t.Fatalf("expected no collaborator calls, got ocr=%d validate=%d summarize=%d",
			ext.calls, val.calls, sum.calls)
	}
}

func TestProcessEmptyContent(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		ext  *stubExtractor
	}{
		{"whitespace text", Input{Text: "   \n"}, &stubExtractor{}},
		{"ocr sentinel", Input{Image: []byte{1}}, &stubExtractor{text: "no readable text FOUND."}},
		{"ocr empty text", Input{Image: []byte{1}}, &stubExtractor{text: ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val := passing()
			p := New(tt.ext, val, &stubSummarizer{}, nil)

			_, err := p.Process(context.Background(), tt.in)
			if got := appErrorType(t, err); got != constants.ErrorTypeEmptyContent {
				t.Fatalf("expected EMPTY_CONTENT, got %s", got)
			}
			if val.calls != 0 {
				t.Fatalf("validator must not run on empty content")
			}
		})
	}
}

func TestProcessOCRFailureSentinel(t *testing.T) {
	ext := &stubExtractor{text: constants.OCRFailurePrefix + ": cannot decode image"}
	p := New(ext, passing(), &stubSummarizer{}, nil)

	_, err := p.Process(context.Background(), Input{Image: []byte{1, 2}})
	if got := appErrorType(t, err); got != constants.ErrorTypeOCRFailed {
		t.Fatalf("expected OCR_FAILED, got %s", got)
	}
	var appErr *common.AppError
	errors.As(err, &appErr)
	if !strings.Contains(appErr.Detail(), "cannot decode image") {
		t.Fatalf("expected adapter message in detail, got %q", appErr.Detail())
	}
}

func TestProcessFileReadError(t *testing.T) {
	ext := &stubExtractor{err: errors.New("disk full")}
	p := New(ext, passing(), &stubSummarizer{}, nil)

	_, err := p.Process(context.Background(), Input{Image: []byte{1}})
	if got := appErrorType(t, err); got != constants.ErrorTypeFileRead {
		t.Fatalf("expected FILE_READ_ERROR, got %s", got)
	}
	var appErr *common.AppError
	errors.As(err, &appErr)
	if appErr.HTTPStatus() != http.StatusBadRequest {
		t.Fatalf("input errors must map to 400, got %d", appErr.HTTPStatus())
	}
}

func TestProcessBlockedContent(t *testing.T) {
	val := &stubValidator{outcome: llm.ValidationOutcome{IsValid: false, Reason: "IRRELEVANT"}}
	sum := &stubSummarizer{points: []string{"never used"}}
	p := New(&stubExtractor{}, val, sum, nil)

	res, err := p.Process(context.Background(), Input{Text: "cat memes"})
	if err != nil {
		t.Fatalf("blocked content is a business outcome, not an error: %v", err)
	}
	if res.IsValid {
		t.Fatalf("expected blocked result")
	}
	if res.SummaryPoints != nil {
		t.Fatalf("blocked result must carry no summary, got %v", res.SummaryPoints)
	}
	if !strings.Contains(res.StatusMessage, "IRRELEVANT") {
		t.Fatalf("expected reason in status message, got %q", res.StatusMessage)
	}
	if res.ExtractedText != "cat memes" {
		t.Fatalf("blocked result must still echo the text, got %q", res.ExtractedText)
	}
	if sum.calls != 0 {
		t.Fatalf("summarizer must never run on blocked content")
	}
}

func TestProcessSuccess(t *testing.T) {
	val := passing()
	sum := &stubSummarizer{points: []string{"one", "two", "three"}}
	p := New(&stubExtractor{}, val, sum, nil)

	res, err := p.Process(context.Background(), Input{Text: "the quarterly report"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsValid {
		t.Fatalf("expected valid result")
	}
	if len(res.SummaryPoints) != 3 {
		t.Fatalf("expected 3 summary points, got %v", res.SummaryPoints)
	}
	if sum.calls != 1 {
		t.Fatalf("expected exactly one summarizer call, got %d", sum.calls)
	}
	if sum.seen != "the quarterly report" {
		t.Fatalf("summarizer must see the full text, got %q", sum.seen)
	}
}

func TestProcessImageTakesPrecedenceOverText(t *testing.T) {
	ext := &stubExtractor{text: "scanned contract text"}
	val := passing()
	p := New(ext, val, &stubSummarizer{points: []string{"p"}}, nil)

	res, err := p.Process(context.Background(), Input{Text: "ignored", Image: []byte{0xFF}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ext.calls != 1 {
		t.Fatalf("expected OCR to run, got %d calls", ext.calls)
	}
	if val.seen != "scanned contract text" || res.ExtractedText != "scanned contract text" {
		t.Fatalf("expected OCR text to flow through, validator saw %q", val.seen)
	}
}

func TestProcessValidatorErrorIsExecutionError(t *testing.T) {
	val := &stubValidator{err: errors.New("client is not initialized")}
	p := New(&stubExtractor{}, val, &stubSummarizer{}, nil)

	_, err := p.Process(context.Background(), Input{Text: "doc"})
	if got := appErrorType(t, err); got != constants.ErrorTypeLLMExecution {
		t.Fatalf("expected LLM_EXECUTION_ERROR, got %s", got)
	}
}

func TestProcessSummarizerErrorIsExecutionError(t *testing.T) {
	sum := &stubSummarizer{err: &llm.APIError{Kind: llm.KindAuth, StatusCode: 401, Message: "bad key"}}
	p := New(&stubExtractor{}, passing(), sum, nil)

	_, err := p.Process(context.Background(), Input{Text: "doc"})
	var appErr *common.AppError
	if !errors.As(err, &appErr) || appErr.Type != constants.ErrorTypeLLMExecution {
		t.Fatalf("expected LLM_EXECUTION_ERROR, got %v", err)
	}
	if appErr.HTTPStatus() != http.StatusInternalServerError {
		t.Fatalf("execution errors must map to 500, got %d", appErr.HTTPStatus())
	}
	var apiErr *llm.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected wrapped APIError to remain reachable")
	}
}
