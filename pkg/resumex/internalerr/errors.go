package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrInvalidConfig    = errors.New("invalid configuration")
)

// Extraction errors. Per-document errors (unsupported format, recognition
// failure, invalid input) are contained by the batch loop; the others are
// raised during initialization and are fatal.
var (
	ErrUnsupportedFormat  = errors.New("unsupported input format")
	ErrModelUnavailable   = errors.New("model unavailable")
	ErrRecognitionFailure = errors.New("recognition failure")
	ErrMalformedLexicon   = errors.New("malformed lexicon")
)
