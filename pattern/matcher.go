package pattern

import (
	"bytes"
	"fmt"

	"github.com/arloliu/bytescan/errs"
)

// MaxLength is the maximum supported pattern length.
//
// The shift table stores one byte per alphabet value, so every skip
// distance must fit in a uint8. Distances range up to the pattern
// length, which bounds patterns at 127 bytes; the limit is a checked
// precondition rather than a silent wraparound.
const MaxLength = 127

// Matcher is a precompiled byte-pattern searcher using the
// Boyer-Moore-Horspool bad-character rule.
//
// A Matcher is immutable after construction: Search and LastPrefixStart
// are pure functions of their inputs and the precomputed table, perform
// no allocation, and may be reused across any number of scans. Sharing
// one Matcher between goroutines is safe.
type Matcher struct {
	pattern []byte
	shift   [256]uint8
}

// NewMatcher compiles pattern into a Matcher.
//
// The pattern length must be in [1, MaxLength]; violations return
// errs.ErrEmptyPattern or errs.ErrPatternTooLong. The pattern bytes are
// copied, so the caller may reuse its slice.
func NewMatcher(pattern []byte) (*Matcher, error) {
	if len(pattern) == 0 {
		return nil, errs.ErrEmptyPattern
	}
	if len(pattern) > MaxLength {
		return nil, fmt.Errorf("%w: %d bytes, maximum is %d", errs.ErrPatternTooLong, len(pattern), MaxLength)
	}

	m := &Matcher{pattern: append([]byte(nil), pattern...)}

	n := len(m.pattern)
	for i := range m.shift {
		m.shift[i] = uint8(n)
	}
	// Bad-character rule: bytes occurring in the pattern shift by their
	// distance to the last pattern position. Last write wins for bytes
	// that repeat.
	for i := 0; i < n-1; i++ {
		m.shift[m.pattern[i]] = uint8(n - 1 - i)
	}

	return m, nil
}

// Len returns the pattern length in bytes.
func (m *Matcher) Len() int {
	return len(m.pattern)
}

// Pattern returns the compiled pattern bytes.
//
// The returned slice is the matcher's own copy; callers must not
// modify it.
func (m *Matcher) Pattern() []byte {
	return m.pattern
}

// Search returns the smallest index i within [offset, offset+length)
// such that data[i:i+Len()] equals the pattern, or -1 if the window
// contains no complete occurrence.
//
// The scan aligns the pattern's last byte, compares back to front, and
// advances by the shift-table distance of the aligned window byte on a
// mismatch. No byte outside [offset, offset+length) is examined.
func (m *Matcher) Search(data []byte, offset, length int) int {
	n := len(m.pattern)
	end := offset + length

	i := offset
	for i+n <= end {
		j := n - 1
		for data[i+j] == m.pattern[j] {
			if j == 0 {
				return i
			}
			j--
		}
		i += int(m.shift[data[i+n-1]])
	}

	return -1
}

// LastPrefixStart returns the start index of the longest suffix of
// data[offset:offset+length] that is a strict prefix of the pattern,
// or -1 if the window tail cannot begin an occurrence.
//
// This is the read-barrier query: when a search over a partially
// buffered stream finds no complete occurrence, bytes from the returned
// index onward could still be the unfinished head of one and must be
// retained across the next fill. A result of -1 proves the entire
// window safe to discard or shift.
func (m *Matcher) LastPrefixStart(data []byte, offset, length int) int {
	end := offset + length

	maxLen := len(m.pattern) - 1
	if maxLen > length {
		maxLen = length
	}

	for s := maxLen; s > 0; s-- {
		if bytes.Equal(data[end-s:end], m.pattern[:s]) {
			return end - s
		}
	}

	return -1
}
