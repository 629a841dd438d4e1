package common

import (
	"fmt"
	"net/http"

	"github.com/joseph-ayodele/document-agent/constants"
)

// AppError is a pipeline failure carrying the wire-level error code.
type AppError struct {
	Type    constants.ErrorType
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Detail is the human-readable message for the error envelope. Unlike
// Error() it never includes the error type prefix.
func (e *AppError) Detail() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// HTTPStatus maps the error type onto the response status.
func (e *AppError) HTTPStatus() int {
	if e.Type.ClientFault() {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// NewAppError builds an AppError for the given wire code.
func NewAppError(t constants.ErrorType, message string, cause error) *AppError {
	return &AppError{Type: t, Message: message, Cause: cause}
}

// Error constructors for the closed taxonomy.

func MissingInputError() *AppError {
	return NewAppError(constants.ErrorTypeMissingInput,
		"must provide either 'text_input' (form field) or 'file' (upload)", nil)
}

func EmptyContentError() *AppError {
	return NewAppError(constants.ErrorTypeEmptyContent,
		"the provided document/image contains no readable text", nil)
}

func OCRFailedError(detail string) *AppError {
	return NewAppError(constants.ErrorTypeOCRFailed, detail, nil)
}

func FileReadError(cause error) *AppError {
	return NewAppError(constants.ErrorTypeFileRead, "error reading uploaded file", cause)
}

func LLMExecutionError(message string, cause error) *AppError {
	return NewAppError(constants.ErrorTypeLLMExecution, message, cause)
}
