package llm

import (
	"context"
	"fmt"
)

// Generator is the raw model invocation: one prompt in, one completion out.
// Implementations must be safe for concurrent use; the same handle is shared
// by every request for the lifetime of the process.
type Generator interface {
	Generate(ctx context.Context, prompt string, temperature float32) (string, error)
}

// ErrorKind classifies a failed model call.
type ErrorKind string

const (
	KindUnavailable ErrorKind = "UNAVAILABLE"  // 503-equivalent, the only retryable kind
	KindRateLimited ErrorKind = "RATE_LIMITED" // 429
	KindAuth        ErrorKind = "AUTH"         // 401/403
	KindBadRequest  ErrorKind = "BAD_REQUEST"  // 4xx other than auth/rate-limit
	KindOther       ErrorKind = "OTHER"        // remaining non-2xx statuses
)

// APIError is a model-call failure that produced a provider status code.
// Transport-level failures (no status) are deliberately NOT APIErrors: they
// never qualify for retry or for the validator's fail-closed downgrade.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("llm api error (%s, status %d): %s", e.Kind, e.StatusCode, e.Message)
}

// Retryable reports whether the retrying caller may attempt the call again.
func (e *APIError) Retryable() bool {
	return e.Kind == KindUnavailable
}

// ClassifyStatus maps a provider HTTP status onto the tagged error kind.
func ClassifyStatus(status int, message string) *APIError {
	kind := KindOther
	switch {
	case status == 503:
		kind = KindUnavailable
	case status == 429:
		kind = KindRateLimited
	case status == 401 || status == 403:
		kind = KindAuth
	case status >= 400 && status < 500:
		kind = KindBadRequest
	}
	return &APIError{Kind: kind, StatusCode: status, Message: message}
}
