package constants

// ErrorType is the canonical error code for failed requests.
type ErrorType string

// Stable values (these exact strings go over the wire in error_type).
const (
	ErrorTypeOCRFailed    ErrorType = "OCR_FAILED"          // OCR ran but could not recognize the image
	ErrorTypeFileRead     ErrorType = "FILE_READ_ERROR"     // uploaded file could not be read/staged
	ErrorTypeMissingInput ErrorType = "MISSING_INPUT"       // neither text_input nor file supplied
	ErrorTypeEmptyContent ErrorType = "EMPTY_CONTENT"       // resolved document carries no readable text
	ErrorTypeLLMExecution ErrorType = "LLM_EXECUTION_ERROR" // model call failed past the validation gate
)

// ClientFault reports whether the error type is the caller's fault (4xx)
// as opposed to an execution failure on our side (5xx).
func (t ErrorType) ClientFault() bool {
	switch t {
	case ErrorTypeOCRFailed, ErrorTypeFileRead, ErrorTypeMissingInput, ErrorTypeEmptyContent:
		return true
	}
	return false
}
