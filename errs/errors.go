// Package errs defines the sentinel errors shared across bytescan packages.
//
// All errors are plain sentinel values suitable for errors.Is checks.
// Call sites wrap them with fmt.Errorf("%w: ...") to attach context,
// so callers can both match the category and read the detail.
package errs

import "errors"

// Configuration errors, reported at construction time.
var (
	// ErrEmptyPattern indicates a search pattern of length zero.
	ErrEmptyPattern = errors.New("pattern is empty")

	// ErrPatternTooLong indicates a search pattern longer than the
	// maximum the one-byte-per-slot shift table can encode.
	ErrPatternTooLong = errors.New("pattern exceeds maximum length")

	// ErrInvalidCapacity indicates invalid buffer capacity bounds,
	// such as a zero initial capacity or a maximum below the initial.
	ErrInvalidCapacity = errors.New("invalid capacity bounds")

	// ErrInvalidEscapeMode indicates an unknown quote escape mode.
	ErrInvalidEscapeMode = errors.New("invalid escape mode")
)

// Stream errors, reported while advancing through a stream.
var (
	// ErrCapacityExceeded indicates a record or span grew beyond the
	// configured maximum capacity. The error is fatal to the stream;
	// no truncated data is returned in its place.
	ErrCapacityExceeded = errors.New("maximum capacity exceeded")

	// ErrUnterminatedQuote indicates the stream ended inside a quoted
	// span with no closing quote.
	ErrUnterminatedQuote = errors.New("unterminated quoted span")
)
