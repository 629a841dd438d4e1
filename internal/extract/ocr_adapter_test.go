package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/joseph-ayodele/document-agent/constants"
	"github.com/joseph-ayodele/document-agent/internal/ocr"
)

type fakeRunner struct {
	stdout string
	err    error
}

func (r fakeRunner) Run(_ context.Context, _ string, _ ...string) ([]byte, []byte, error) {
	if r.err != nil {
		return nil, []byte("boom"), r.err
	}
	return []byte(r.stdout), nil, nil
}

func newAdapter(r ocr.Runner) *OCRAdapter {
	cache := ocr.NewCache(ocr.Config{Runner: r}, nil)
	return NewOCRAdapter(cache, []string{"eng"}, nil)
}

func TestAdapterReturnsRecognizedText(t *testing.T) {
	a := newAdapter(fakeRunner{stdout: "Contract between parties"})

	text, err := a.Extract(context.Background(), []byte{0x1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Contract between parties" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestAdapterMapsEngineFailureToSentinel(t *testing.T) {
	a := newAdapter(fakeRunner{err: errors.New("exit status 1")})

	text, err := a.Extract(context.Background(), []byte{0x1})
	if err != nil {
		t.Fatalf("engine failures surface as sentinel text, not errors: %v", err)
	}
	if !strings.HasPrefix(text, constants.OCRFailurePrefix) {
		t.Fatalf("expected %q prefix, got %q", constants.OCRFailurePrefix, text)
	}
}

func TestAdapterMapsBlankOutputToNoReadableText(t *testing.T) {
	a := newAdapter(fakeRunner{stdout: "   \n\t "})

	text, err := a.Extract(context.Background(), []byte{0x1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != constants.NoReadableTextSentinel {
		t.Fatalf("expected sentinel, got %q", text)
	}
}

func TestAdapterRejectsEmptyUpload(t *testing.T) {
	a := newAdapter(fakeRunner{})

	if _, err := a.Extract(context.Background(), nil); err == nil {
		t.Fatalf("expected an error for an empty upload")
	}
}
