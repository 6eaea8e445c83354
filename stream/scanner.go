package stream

import (
	"fmt"
	"io"

	"github.com/arloliu/bytescan/errs"
	"github.com/arloliu/bytescan/internal/options"
	"github.com/arloliu/bytescan/internal/pool"
	"github.com/arloliu/bytescan/pattern"
)

// Scanner extracts spans bounded by arbitrary multi-byte patterns from
// a byte source, guaranteeing that a pattern occurrence straddling a
// buffer refill is neither missed nor duplicated.
//
// The guarantee comes from the read barrier: whenever the backing array
// is full and no occurrence has been found, the scanner asks the
// matcher for the start of the longest buffered suffix that could still
// be the unfinished head of an occurrence (pattern.Matcher.
// LastPrefixStart). Bytes before that point are final and may be
// shifted out; bytes after it are retained across the refill.
//
// Span bytes shifted out before the span's end is found accumulate in a
// pooled carry buffer; this is the only path that copies. Spans that
// complete inside the backing array are returned as zero-copy views.
//
// Like RecordBuffer, a Scanner is owned by one logical task and is not
// safe for concurrent use.
type Scanner struct {
	cfg ScannerConfig
	src io.Reader

	buf    []byte // backing array, reused and grown in place
	limit  int    // buf[:limit] holds valid bytes
	cursor int    // start of the span being assembled

	carry *pool.ByteBuffer // spillover for spans crossing multiple fills

	srcDone bool
	done    bool
	closed  bool
	err     error // sticky fatal error
}

// NewScanner creates a Scanner reading from src.
func NewScanner(src io.Reader, opts ...ScannerOption) (*Scanner, error) {
	cfg := newScannerConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Scanner{
		cfg:   *cfg,
		src:   src,
		buf:   make([]byte, cfg.initCap),
		carry: pool.GetCarryBuffer(),
	}, nil
}

// ReadTo returns the span from the current cursor up to, but not
// including, the next occurrence of m's pattern, and positions the
// cursor immediately after that occurrence.
//
// The returned slice is a non-owning view valid only until the next
// call on this Scanner. When the span completed inside the backing
// array it aliases the array directly (zero-copy); when it crossed a
// full-buffer refill it aliases the carry buffer instead.
//
// If the source ends before another occurrence, the remaining buffered
// bytes are returned together with io.EOF and the scanner becomes
// permanently exhausted; if nothing is buffered the result is
// (nil, io.EOF). Calls after Close also return io.EOF rather than an
// error, so callers can unwind without extra handling.
func (s *Scanner) ReadTo(m *pattern.Matcher) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.closed || s.done {
		return nil, io.EOF
	}

	s.carry.Reset()
	carried := false

	for {
		idx := m.Search(s.buf, s.cursor, s.limit-s.cursor)
		if idx >= 0 {
			span := s.buf[s.cursor:idx]
			s.cursor = idx + m.Len()

			return s.assemble(span, carried, nil)
		}

		if s.srcDone {
			span := s.buf[s.cursor:s.limit]
			s.cursor = s.limit
			s.done = true
			if !carried && len(span) == 0 {
				return nil, io.EOF
			}

			return s.assemble(span, carried, io.EOF)
		}

		spilled, err := s.fill(m, s.carry)
		if err != nil {
			s.err = err
			return nil, err
		}
		if spilled {
			carried = true
		}
	}
}

// SkipTo advances the cursor past the next occurrence of m's pattern
// without materializing the skipped span. It never writes to the carry
// buffer and allocates only if the backing array must grow to hold the
// pattern.
//
// SkipTo returns io.EOF when the source ends with no further
// occurrence; the scanner is then permanently exhausted.
func (s *Scanner) SkipTo(m *pattern.Matcher) error {
	if s.err != nil {
		return s.err
	}
	if s.closed || s.done {
		return io.EOF
	}

	for {
		idx := m.Search(s.buf, s.cursor, s.limit-s.cursor)
		if idx >= 0 {
			s.cursor = idx + m.Len()
			return nil
		}

		if s.srcDone {
			s.cursor = s.limit
			s.done = true

			return io.EOF
		}

		if _, err := s.fill(m, nil); err != nil {
			s.err = err
			return err
		}
	}
}

// Skip consumes and discards exactly n bytes, reading from the source
// as needed. It returns the number of bytes actually skipped, which is
// less than n only when the source ends first; in that case the error
// is io.EOF and the scanner is permanently exhausted.
func (s *Scanner) Skip(n int) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	if s.closed || s.done {
		return 0, io.EOF
	}

	skipped := 0
	for skipped < n {
		if avail := s.limit - s.cursor; avail > 0 {
			take := min(avail, n-skipped)
			s.cursor += take
			skipped += take

			continue
		}

		if s.srcDone {
			s.done = true
			return skipped, io.EOF
		}

		// Buffer fully consumed; reuse it from the start.
		s.cursor = 0
		read, err := s.src.Read(s.buf)
		s.limit = read
		if err == io.EOF {
			s.srcDone = true
		} else if err != nil {
			s.err = err
			return skipped, err
		}
	}

	return skipped, nil
}

// Read drains raw bytes from the current cursor position, making the
// Scanner usable as a plain io.Reader once pattern-bounded extraction
// is finished (the body bytes after a header block, for example).
// Buffered bytes are served first; further reads go straight to the
// source.
func (s *Scanner) Read(p []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	if s.closed || s.done {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}

	if avail := s.limit - s.cursor; avail > 0 {
		n := copy(p, s.buf[s.cursor:s.limit])
		s.cursor += n

		return n, nil
	}

	if s.srcDone {
		s.done = true
		return 0, io.EOF
	}

	n, err := s.src.Read(p)
	if err == io.EOF {
		s.srcDone = true
		if n > 0 {
			return n, nil
		}
		s.done = true

		return 0, io.EOF
	}
	if err != nil {
		s.err = err
	}

	return n, err
}

// Close marks the scanner exhausted, returns the carry buffer to the
// pool, and releases the backing array and the source. It is
// idempotent; if the source implements io.Closer its Close error is
// returned. Subsequent operations report io.EOF.
func (s *Scanner) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.done = true
	s.buf = nil

	if s.carry != nil {
		pool.PutCarryBuffer(s.carry)
		s.carry = nil
	}

	src := s.src
	s.src = nil
	if c, ok := src.(io.Closer); ok {
		return c.Close()
	}

	return nil
}

// assemble produces the final span view, appending the tail segment to
// the carry buffer when the span crossed a refill. sentinel is passed
// through on success (nil, or io.EOF for a final partial span).
func (s *Scanner) assemble(span []byte, carried bool, sentinel error) ([]byte, error) {
	if !carried {
		if len(span) > s.cfg.maxCap {
			s.err = s.capacityError(len(span))
			return nil, s.err
		}

		return span, sentinel
	}

	if s.carry.Len()+len(span) > s.cfg.maxCap {
		s.err = s.capacityError(s.carry.Len() + len(span))
		return nil, s.err
	}
	s.carry.MustWrite(span)

	return s.carry.Bytes(), sentinel
}

// fill performs one blocking read, first making room when the backing
// array is full: the read barrier splits the buffered window into a
// final part, which is spilled to spillTo (or discarded when spillTo is
// nil), and a retained part that could still complete an occurrence.
// It reports whether any bytes were spilled.
func (s *Scanner) fill(m *pattern.Matcher, spillTo *pool.ByteBuffer) (bool, error) {
	spilled := false

	if s.limit == len(s.buf) {
		barrier := m.LastPrefixStart(s.buf, s.cursor, s.limit-s.cursor)
		if barrier < 0 {
			barrier = s.limit
		}

		if barrier > s.cursor && spillTo != nil {
			if spillTo.Len()+(barrier-s.cursor) > s.cfg.maxCap {
				return false, s.capacityError(spillTo.Len() + (barrier - s.cursor))
			}
			spillTo.MustWrite(s.buf[s.cursor:barrier])
			spilled = true
		}

		if barrier > 0 {
			copy(s.buf, s.buf[barrier:s.limit])
			s.limit -= barrier
			s.cursor = 0
		}

		if s.limit == len(s.buf) {
			if err := s.grow(); err != nil {
				return spilled, err
			}
		}
	}

	n, err := s.src.Read(s.buf[s.limit:])
	s.limit += n
	if err == io.EOF {
		s.srcDone = true
		return spilled, nil
	}

	return spilled, err
}

// grow replaces the backing array with a larger one. Growth is only
// needed when the retained region fills the whole array, which happens
// when the array is smaller than the pattern; span size is bounded by
// the carry checks, so the array ceiling leaves headroom for a pattern
// on top of maxCap.
func (s *Scanner) grow() error {
	hardCap := s.cfg.maxCap + pattern.MaxLength + 1
	if len(s.buf) >= hardCap {
		return s.capacityError(s.limit - s.cursor)
	}

	newCap := len(s.buf) * 2
	if newCap > hardCap {
		newCap = hardCap
	}

	newBuf := make([]byte, newCap)
	copy(newBuf, s.buf[:s.limit])
	s.buf = newBuf

	return nil
}

func (s *Scanner) capacityError(n int) error {
	return fmt.Errorf("%w: span of %d bytes exceeds limit %d", errs.ErrCapacityExceeded, n, s.cfg.maxCap)
}
