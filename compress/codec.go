package compress

import (
	"fmt"
	"io"
)

// Kind identifies a compression algorithm.
type Kind uint8

const (
	// None passes bytes through unchanged.
	None Kind = iota
	// Zstd is Zstandard stream compression.
	Zstd
	// S2 is the Snappy-compatible S2 stream format.
	S2
	// LZ4 is the LZ4 frame format.
	LZ4
)

// String returns a human-readable name for the compression kind.
func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Zstd:
		return "zstd"
	case S2:
		return "s2"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// NewReader wraps r so that reads return the decompressed stream.
//
// The returned reader owns algorithm state but not r itself: Close
// releases decoder resources and must be called, but closing the
// underlying source remains the caller's responsibility.
func NewReader(kind Kind, r io.Reader) (io.ReadCloser, error) {
	switch kind {
	case None:
		return nopReadCloser{r}, nil
	case Zstd:
		return newZstdReader(r)
	case S2:
		return newS2Reader(r), nil
	case LZ4:
		return newLZ4Reader(r), nil
	default:
		return nil, fmt.Errorf("invalid compression kind: %s", kind)
	}
}

// NewWriter wraps w so that written bytes are compressed into it.
//
// Close flushes any buffered frame data and releases encoder
// resources; it does not close w.
func NewWriter(kind Kind, w io.Writer) (io.WriteCloser, error) {
	switch kind {
	case None:
		return nopWriteCloser{w}, nil
	case Zstd:
		return newZstdWriter(w)
	case S2:
		return newS2Writer(w), nil
	case LZ4:
		return newLZ4Writer(w), nil
	default:
		return nil, fmt.Errorf("invalid compression kind: %s", kind)
	}
}
