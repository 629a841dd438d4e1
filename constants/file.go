package constants

import "strings"

// OCR adapter sentinels. These are part of the adapter contract: recognition
// failures and empty images surface as text, not as errors.
const (
	NoReadableTextSentinel = "No readable text found."
	OCRFailurePrefix       = "OCR processing failed"
)

// AllowedImageExtensions holds the upload extensions the OCR path accepts.
var AllowedImageExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"bmp":  {},
	"gif":  {},
	"tif":  {},
	"tiff": {},
	"webp": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsImageExt reports whether the extension maps to a supported image upload.
func IsImageExt(ext string) bool {
	_, ok := AllowedImageExtensions[NormalizeExt(ext)]
	return ok
}
