package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// maxValidationBytes bounds the guardrail input; summarization still sees the
// full text.
const maxValidationBytes = 4000

const validationPrompt = "You are a document content classifier. Your task is to check if the following text " +
	"is a professional, academic, or work-related document (e.g., contract, report, academic paper). " +
	"You must also check if the content contains any explicit, harmful, or inappropriate language. " +
	"Respond ONLY with 'PASS' if the content is professional AND safe. " +
	"Otherwise, respond ONLY with a single word reason like 'HARMFUL', 'IRRELEVANT', or 'EMPTY'."

// ValidationOutcome is the guardrail verdict. When IsValid is true, Reason
// carries no diagnostic meaning.
type ValidationOutcome struct {
	IsValid bool
	Reason  string
}

// Validator is the guardrail stage: it blocks non-professional or unsafe
// content before any summarization happens.
type Validator struct {
	caller *Caller
	logger *slog.Logger
}

func NewValidator(caller *Caller, logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{caller: caller, logger: logger}
}

// Validate classifies the document text. Classified API errors are downgraded
// to a blocked outcome so a service outage never waves content through
// (fail-closed); any other failure propagates to the caller.
func (v *Validator) Validate(ctx context.Context, text string) (ValidationOutcome, error) {
	input := truncateUTF8(text, maxValidationBytes)

	out, err := v.caller.Call(ctx, validationPrompt, input)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			reason := fmt.Sprintf("API_ERROR: %d - %s", apiErr.StatusCode, apiErr.Message)
			v.logger.Error("llm.validate.api_error",
				"kind", apiErr.Kind,
				"status", apiErr.StatusCode,
			)
			return ValidationOutcome{IsValid: false, Reason: reason}, nil
		}
		return ValidationOutcome{}, err
	}

	verdict := strings.ToUpper(strings.TrimSpace(out))
	if verdict != "PASS" {
		v.logger.Warn("llm.validate.blocked", "reason", verdict)
		return ValidationOutcome{IsValid: false, Reason: verdict}, nil
	}
	return ValidationOutcome{IsValid: true, Reason: verdict}, nil
}

// truncateUTF8 cuts s to at most max bytes without tearing a rune.
func truncateUTF8(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
