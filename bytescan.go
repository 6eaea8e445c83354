// Package bytescan provides high-throughput, pattern-bounded extraction of
// records and matches from streaming byte sources.
//
// Bytescan is optimized for scenarios where large byte streams (log files,
// archive feeds, network captures) must be cut into delimiter-bounded records
// or pattern-bounded spans without copying: results are slice views into an
// internal buffer, valid until the next extraction call.
//
// # Core Features
//
//   - Boyer-Moore-Horspool multi-byte pattern search with precomputed shift tables
//   - Delimiter-bounded record extraction with quote-aware delimiter handling
//   - Pattern-bounded span extraction with zero-copy views and pooled spillover
//   - Bounded memory: buffers grow geometrically up to a configurable ceiling
//   - String interning (64-bit xxHash64 buckets) for repeated field values
//   - Optional decompressing sources (Zstd, S2, LZ4)
//
// # Basic Usage
//
// Extracting newline-delimited records:
//
//	import "github.com/arloliu/bytescan"
//
//	rb, _ := bytescan.NewRecordBuffer(file)
//	defer rb.Close()
//	for {
//	    rec, err := rb.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    process(rec) // view into internal buffer, copy to retain
//	}
//
// Extracting spans bounded by a multi-byte pattern:
//
//	sep, _ := bytescan.NewMatcher([]byte("\r\n\r\n"))
//	sc, _ := bytescan.NewScanner(conn)
//	defer sc.Close()
//	for {
//	    span, err := sc.ReadTo(sep)
//	    if err != nil && err != io.EOF {
//	        return err
//	    }
//	    handle(span)
//	    if err == io.EOF {
//	        break
//	    }
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the pattern and
// stream packages, simplifying the most common use cases. For fine-grained
// control, use those packages directly:
//
//   - pattern: Boyer-Moore-Horspool matcher (search, prefix-boundary queries)
//   - stream: RecordBuffer and Scanner extraction engines
//   - compress: streaming decompressing readers and compressing writers
//   - intern: hash-bucketed string interning for repeated byte values
package bytescan

import (
	"io"

	"github.com/arloliu/bytescan/compress"
	"github.com/arloliu/bytescan/pattern"
	"github.com/arloliu/bytescan/stream"
)

// NewMatcher creates a Boyer-Moore-Horspool matcher for the given pattern.
//
// The matcher precomputes a 256-entry shift table at construction, so it
// should be built once and reused across searches. Matchers are immutable
// and safe for concurrent use.
//
// Parameters:
//   - pat: The pattern bytes. Must be non-empty and at most pattern.MaxLength
//     (127) bytes. The bytes are copied; the caller's slice is not retained.
//
// Returns:
//   - *pattern.Matcher: The constructed matcher.
//   - error: errs.ErrEmptyPattern or errs.ErrPatternTooLong on invalid input.
//
// Example:
//
//	sep, err := bytescan.NewMatcher([]byte("\r\n\r\n"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	idx := sep.Search(data, 0, len(data))
func NewMatcher(pat []byte) (*pattern.Matcher, error) {
	return pattern.NewMatcher(pat)
}

// NewRecordBuffer creates a record extractor reading from src.
//
// Records are bounded by a single-byte delimiter (newline by default) and
// returned as slice views into the internal buffer, valid until the next
// Next or Close call. Delimiters inside quoted spans are treated as record
// content when a quote byte is configured.
//
// Parameters:
//   - src: The byte source. If it implements io.Closer, Close closes it.
//   - opts: Optional configuration (see stream.RecordOption):
//     stream.WithDelimiter, stream.WithQuote, stream.WithEscapeMode,
//     stream.WithInitialCapacity, stream.WithMaxCapacity,
//     stream.WithSkipEmptyRecords.
//
// Returns:
//   - *stream.RecordBuffer: The created record buffer.
//   - error: An error if the configuration is invalid.
//
// Example:
//
//	rb, err := bytescan.NewRecordBuffer(file,
//	    stream.WithDelimiter(','),
//	    stream.WithQuote('"'),
//	)
func NewRecordBuffer(src io.Reader, opts ...stream.RecordOption) (*stream.RecordBuffer, error) {
	return stream.NewRecordBuffer(src, opts...)
}

// NewScanner creates a span extractor reading from src.
//
// Spans are bounded by multi-byte patterns supplied per call (ReadTo,
// SkipTo), so a single scanner can alternate between different boundary
// patterns on the same stream. Spans that fit the internal buffer are
// returned as zero-copy views; spans that outgrow it are accumulated in a
// pooled carry buffer.
//
// Parameters:
//   - src: The byte source. If it implements io.Closer, Close closes it.
//   - opts: Optional configuration (see stream.ScannerOption):
//     stream.WithScannerInitialCapacity, stream.WithScannerMaxCapacity.
//
// Returns:
//   - *stream.Scanner: The created scanner.
//   - error: An error if the configuration is invalid.
//
// Example:
//
//	sc, err := bytescan.NewScanner(conn,
//	    stream.WithScannerMaxCapacity(1<<20),
//	)
func NewScanner(src io.Reader, opts ...stream.ScannerOption) (*stream.Scanner, error) {
	return stream.NewScanner(src, opts...)
}

// NewCompressedRecordBuffer creates a record extractor over a compressed
// source.
//
// The source bytes are decompressed with the given algorithm before record
// extraction; record semantics are otherwise identical to NewRecordBuffer.
// Closing the returned buffer releases the decoder and closes src if it
// implements io.Closer.
//
// Parameters:
//   - kind: The compression algorithm (compress.None, Zstd, S2, LZ4).
//   - src: The compressed byte source.
//   - opts: Optional configuration (see stream.RecordOption).
//
// Returns:
//   - *stream.RecordBuffer: The created record buffer.
//   - error: An error if the kind or configuration is invalid.
//
// Example:
//
//	rb, err := bytescan.NewCompressedRecordBuffer(compress.Zstd, file)
func NewCompressedRecordBuffer(kind compress.Kind, src io.Reader, opts ...stream.RecordOption) (*stream.RecordBuffer, error) {
	dec, err := compress.NewReader(kind, src)
	if err != nil {
		return nil, err
	}

	return stream.NewRecordBuffer(&decodedSource{dec: dec, src: src}, opts...)
}

// NewCompressedScanner creates a span extractor over a compressed source.
//
// The source bytes are decompressed with the given algorithm before span
// extraction; scanning semantics are otherwise identical to NewScanner.
// Closing the returned scanner releases the decoder and closes src if it
// implements io.Closer.
//
// Parameters:
//   - kind: The compression algorithm (compress.None, Zstd, S2, LZ4).
//   - src: The compressed byte source.
//   - opts: Optional configuration (see stream.ScannerOption).
//
// Returns:
//   - *stream.Scanner: The created scanner.
//   - error: An error if the kind or configuration is invalid.
//
// Example:
//
//	sc, err := bytescan.NewCompressedScanner(compress.LZ4, file)
func NewCompressedScanner(kind compress.Kind, src io.Reader, opts ...stream.ScannerOption) (*stream.Scanner, error) {
	dec, err := compress.NewReader(kind, src)
	if err != nil {
		return nil, err
	}

	return stream.NewScanner(&decodedSource{dec: dec, src: src}, opts...)
}

// decodedSource chains decoder teardown with source teardown so the
// extraction engines' single Close call releases both.
type decodedSource struct {
	dec io.ReadCloser
	src io.Reader
}

func (d *decodedSource) Read(p []byte) (int, error) {
	return d.dec.Read(p)
}

func (d *decodedSource) Close() error {
	err := d.dec.Close()
	if c, ok := d.src.(io.Closer); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}

	return err
}
