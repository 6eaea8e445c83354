package stream

import (
	"fmt"

	"github.com/arloliu/bytescan/errs"
	"github.com/arloliu/bytescan/internal/options"
)

// Default capacities shared by RecordBuffer and Scanner backing arrays.
const (
	// DefaultInitialCapacity is the starting size of a backing array.
	DefaultInitialCapacity = 4 * 1024 // 4KiB

	// DefaultMaxCapacity is the hard ceiling a record or span may grow
	// to before the stream fails with errs.ErrCapacityExceeded.
	DefaultMaxCapacity = 16 * 1024 * 1024 // 16MiB

	// DefaultDelimiter is the record boundary byte.
	DefaultDelimiter = '\n'
)

// EscapeMode selects how a quote byte inside a quoted span is escaped.
//
// The two conventions both occur in the wild (CSV-style doubling vs.
// backslash introducers), so the choice is explicit configuration
// rather than a baked-in default behavior.
type EscapeMode uint8

const (
	// EscapeDoubledQuote treats two adjacent quote bytes inside a
	// quoted span as one literal quote; the span stays open. This is
	// the default.
	EscapeDoubledQuote EscapeMode = iota

	// EscapeBackslash treats a backslash inside a quoted span as an
	// escape introducer: the following byte is literal, whatever it is.
	EscapeBackslash
)

// String returns a human-readable name for the escape mode.
func (m EscapeMode) String() string {
	switch m {
	case EscapeDoubledQuote:
		return "doubled-quote"
	case EscapeBackslash:
		return "backslash"
	default:
		return fmt.Sprintf("escape-mode(%d)", uint8(m))
	}
}

// RecordConfig holds the validated configuration of a RecordBuffer.
type RecordConfig struct {
	delim     byte
	quote     byte
	hasQuote  bool
	escape    EscapeMode
	initCap   int
	maxCap    int
	skipEmpty bool
}

func newRecordConfig() *RecordConfig {
	return &RecordConfig{
		delim:   DefaultDelimiter,
		escape:  EscapeDoubledQuote,
		initCap: DefaultInitialCapacity,
		maxCap:  DefaultMaxCapacity,
	}
}

func (c *RecordConfig) validate() error {
	if c.maxCap < c.initCap {
		return fmt.Errorf("%w: max capacity %d below initial capacity %d",
			errs.ErrInvalidCapacity, c.maxCap, c.initCap)
	}

	return nil
}

// RecordOption represents a functional option for configuring a RecordBuffer.
type RecordOption = options.Option[*RecordConfig]

// WithDelimiter sets the record boundary byte. The default is '\n'.
func WithDelimiter(delim byte) RecordOption {
	return options.NoError(func(c *RecordConfig) {
		c.delim = delim
	})
}

// WithQuote enables quoted-span handling with the given quote byte.
// Delimiter bytes inside a quoted span do not terminate a record.
// Quoting is disabled unless this option is given.
func WithQuote(quote byte) RecordOption {
	return options.NoError(func(c *RecordConfig) {
		c.quote = quote
		c.hasQuote = true
	})
}

// WithEscapeMode selects the quote escape convention used inside quoted
// spans. The default is EscapeDoubledQuote. The mode has no effect
// unless WithQuote is also given.
func WithEscapeMode(mode EscapeMode) RecordOption {
	return options.New(func(c *RecordConfig) error {
		switch mode {
		case EscapeDoubledQuote, EscapeBackslash:
			c.escape = mode
			return nil
		default:
			return fmt.Errorf("%w: %s", errs.ErrInvalidEscapeMode, mode)
		}
	})
}

// WithInitialCapacity sets the starting size of the backing array.
func WithInitialCapacity(n int) RecordOption {
	return options.New(func(c *RecordConfig) error {
		if n <= 0 {
			return fmt.Errorf("%w: initial capacity %d must be positive", errs.ErrInvalidCapacity, n)
		}
		c.initCap = n

		return nil
	})
}

// WithMaxCapacity sets the largest size a single record may reach.
// A record longer than n bytes fails the stream with
// errs.ErrCapacityExceeded; a record of exactly n bytes succeeds.
func WithMaxCapacity(n int) RecordOption {
	return options.New(func(c *RecordConfig) error {
		if n <= 0 {
			return fmt.Errorf("%w: max capacity %d must be positive", errs.ErrInvalidCapacity, n)
		}
		c.maxCap = n

		return nil
	})
}

// WithSkipEmptyRecords suppresses zero-length records produced by
// adjacent delimiters.
func WithSkipEmptyRecords(skip bool) RecordOption {
	return options.NoError(func(c *RecordConfig) {
		c.skipEmpty = skip
	})
}
