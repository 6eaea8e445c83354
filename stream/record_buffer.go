package stream

import (
	"fmt"
	"io"

	"github.com/arloliu/bytescan/errs"
	"github.com/arloliu/bytescan/internal/options"
)

// RecordBuffer presents a byte source as a sequence of variable-length
// records separated by a single delimiter byte, reading the source in
// bounded chunks instead of buffering the whole stream.
//
// When a quote byte is configured, delimiter bytes inside a quoted span
// do not terminate a record; the escape convention inside quoted spans
// is selected by WithEscapeMode.
//
// A RecordBuffer is owned by one logical task: every Next call mutates
// the backing array and cursors in place, and the instance is not safe
// for concurrent use. Create one RecordBuffer per stream.
type RecordBuffer struct {
	cfg RecordConfig
	src io.Reader

	buf   []byte // backing array, reused and grown in place
	limit int    // buf[:limit] holds valid bytes
	pos   int    // start of the record being assembled
	scan  int    // resume point of the delimiter scan, pos <= scan <= limit

	quoted  bool // scan is inside a quoted span
	srcDone bool // source reported end of stream
	done    bool // no further records remain
	closed  bool
	err     error // sticky fatal error
}

// NewRecordBuffer creates a RecordBuffer reading from src.
//
// By default records are separated by '\n', quoting is disabled, and
// the backing array starts at DefaultInitialCapacity with a
// DefaultMaxCapacity ceiling. Invalid option combinations return a
// configuration error wrapping errs.ErrInvalidCapacity or
// errs.ErrInvalidEscapeMode.
func NewRecordBuffer(src io.Reader, opts ...RecordOption) (*RecordBuffer, error) {
	cfg := newRecordConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &RecordBuffer{
		cfg: *cfg,
		src: src,
		buf: make([]byte, cfg.initCap),
	}, nil
}

// Next advances to the next record and returns it.
//
// The returned slice is a non-owning view into the backing array: it is
// valid only until the next call on this RecordBuffer, which may shift,
// grow, or refill the array. Callers that need the bytes afterwards
// must copy them first (see the intern package).
//
// Records are delivered in source order. A record's trailing delimiter
// is consumed but not included. Bytes after the last delimiter form a
// final record; a trailing delimiter produces no extra empty record.
// Zero-length records between adjacent delimiters are returned unless
// WithSkipEmptyRecords is set.
//
// Next returns io.EOF once the stream is exhausted or the buffer is
// closed. Fatal errors (errs.ErrCapacityExceeded,
// errs.ErrUnterminatedQuote, or a source read error propagated
// verbatim) are sticky: every later call returns the same error.
func (rb *RecordBuffer) Next() ([]byte, error) {
	if rb.err != nil {
		return nil, rb.err
	}
	if rb.closed || rb.done {
		return nil, io.EOF
	}

	for {
		rec, ok, err := rb.nextRecord()
		if err != nil {
			rb.err = err
			return nil, err
		}
		if !ok {
			rb.done = true
			return nil, io.EOF
		}
		if rb.cfg.skipEmpty && len(rec) == 0 {
			continue
		}

		return rec, nil
	}
}

// Close marks the buffer exhausted and releases the backing array and
// the source. It is idempotent; if the source implements io.Closer its
// Close error is returned. Next returns io.EOF after Close.
func (rb *RecordBuffer) Close() error {
	if rb.closed {
		return nil
	}
	rb.closed = true
	rb.done = true
	rb.buf = nil

	src := rb.src
	rb.src = nil
	if c, ok := src.(io.Closer); ok {
		return c.Close()
	}

	return nil
}

// nextRecord scans for the next delimiter, refilling the buffer until a
// record boundary is confirmed or the source ends. It returns ok=false
// when no record remains.
func (rb *RecordBuffer) nextRecord() ([]byte, bool, error) {
	for {
		i := rb.scan
		for i < rb.limit {
			c := rb.buf[i]

			if rb.quoted {
				if rb.cfg.escape == EscapeBackslash && c == '\\' {
					if i+1 >= rb.limit && !rb.srcDone {
						break // escape target not buffered yet
					}
					i += 2
					if i > rb.limit {
						i = rb.limit
					}

					continue
				}

				if c == rb.cfg.quote {
					if rb.cfg.escape == EscapeDoubledQuote {
						if i+1 >= rb.limit && !rb.srcDone {
							break // cannot yet tell a closing quote from a doubled pair
						}
						if i+1 < rb.limit && rb.buf[i+1] == rb.cfg.quote {
							i += 2 // escaped literal quote, span stays open
							continue
						}
					}
					rb.quoted = false
				}
				i++

				continue
			}

			if c == rb.cfg.delim {
				rec := rb.buf[rb.pos:i]
				rb.pos = i + 1
				rb.scan = rb.pos

				return rec, true, nil
			}

			if rb.cfg.hasQuote && c == rb.cfg.quote {
				rb.quoted = true
			}
			i++
		}
		rb.scan = i

		if rb.srcDone {
			if rb.quoted {
				return nil, false, fmt.Errorf("%w: stream ended inside a quoted span", errs.ErrUnterminatedQuote)
			}
			if rb.pos < rb.limit {
				if rb.limit-rb.pos > rb.cfg.maxCap {
					return nil, false, rb.capacityError(rb.limit - rb.pos)
				}
				rec := rb.buf[rb.pos:rb.limit]
				rb.pos = rb.limit
				rb.scan = rb.limit

				return rec, true, nil
			}

			return nil, false, nil
		}

		if err := rb.fill(); err != nil {
			return nil, false, err
		}
	}
}

// fill makes the backing array ready for one blocking read and performs
// it: consumed bytes are shifted out, the array grows geometrically if
// it is still full, and source end is latched in srcDone.
func (rb *RecordBuffer) fill() error {
	if rb.pos > 0 {
		copy(rb.buf, rb.buf[rb.pos:rb.limit])
		rb.limit -= rb.pos
		rb.scan -= rb.pos
		rb.pos = 0
	}

	if rb.limit == len(rb.buf) {
		if err := rb.grow(); err != nil {
			return err
		}
	}

	n, err := rb.src.Read(rb.buf[rb.limit:])
	rb.limit += n
	if err == io.EOF {
		rb.srcDone = true
		return nil
	}

	return err
}

// grow replaces the backing array with a larger one, invalidating all
// previously returned views. Capacity doubles up to maxCap plus one
// byte of slack, so the trailing delimiter of a record of exactly
// maxCap bytes is still observable.
func (rb *RecordBuffer) grow() error {
	hardCap := rb.cfg.maxCap + 1
	if len(rb.buf) >= hardCap {
		return rb.capacityError(rb.limit - rb.pos)
	}

	newCap := len(rb.buf) * 2
	if newCap > hardCap {
		newCap = hardCap
	}

	newBuf := make([]byte, newCap)
	copy(newBuf, rb.buf[:rb.limit])
	rb.buf = newBuf

	return nil
}

func (rb *RecordBuffer) capacityError(n int) error {
	return fmt.Errorf("%w: record of %d bytes exceeds limit %d", errs.ErrCapacityExceeded, n, rb.cfg.maxCap)
}
