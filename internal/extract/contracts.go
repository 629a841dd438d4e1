package extract

import "context"

// TextExtractor turns uploaded image bytes into document text.
//
// Recognition problems surface through the sentinel contract rather than an
// error: the returned text starts with constants.OCRFailurePrefix when
// recognition itself broke, and equals constants.NoReadableTextSentinel when
// the image contained no text. Errors are reserved for I/O-level faults
// (staging the upload for the OCR engine).
type TextExtractor interface {
	Extract(ctx context.Context, image []byte) (string, error)
}
