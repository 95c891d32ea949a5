package errors

import (
	"math"
	"strings"
	"unicode"
)

// MaxIDLength is the longest node or hyperedge identifier accepted from
// external input.
const MaxIDLength = 256

// ValidateCanvasSize checks that a drawing surface size is usable.
// Both dimensions must be finite and strictly positive.
func ValidateCanvasSize(width, height float64) error {
	if math.IsNaN(width) || math.IsInf(width, 0) || width <= 0 {
		return New(ErrCodeInvalidCanvas, "canvas width must be a positive number, got %v", width)
	}
	if math.IsNaN(height) || math.IsInf(height, 0) || height <= 0 {
		return New(ErrCodeInvalidCanvas, "canvas height must be a positive number, got %v", height)
	}
	return nil
}

// ValidateID validates an identifier read from a graph document.
// kind is used in the message only ("node", "edge").
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters
//   - Maximum length of MaxIDLength characters
func ValidateID(kind, id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "%s id cannot be empty", kind)
	}
	if len(id) > MaxIDLength {
		return New(ErrCodeInvalidInput, "%s id too long (max %d characters)", kind, MaxIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s id %q contains control characters", kind, id)
		}
	}
	return nil
}

// ValidateOutputPath validates a file path the CLI is about to write.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") {
		return New(ErrCodeInvalidInput, "path %q names a directory", path)
	}

	return nil
}
