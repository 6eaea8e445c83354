package stream

import (
	"fmt"

	"github.com/arloliu/bytescan/errs"
	"github.com/arloliu/bytescan/internal/options"
)

// ScannerConfig holds the validated configuration of a Scanner.
type ScannerConfig struct {
	initCap int
	maxCap  int
}

func newScannerConfig() *ScannerConfig {
	return &ScannerConfig{
		initCap: DefaultInitialCapacity,
		maxCap:  DefaultMaxCapacity,
	}
}

func (c *ScannerConfig) validate() error {
	if c.maxCap < c.initCap {
		return fmt.Errorf("%w: max capacity %d below initial capacity %d",
			errs.ErrInvalidCapacity, c.maxCap, c.initCap)
	}

	return nil
}

// ScannerOption represents a functional option for configuring a Scanner.
type ScannerOption = options.Option[*ScannerConfig]

// WithScannerInitialCapacity sets the starting size of the backing array.
func WithScannerInitialCapacity(n int) ScannerOption {
	return options.New(func(c *ScannerConfig) error {
		if n <= 0 {
			return fmt.Errorf("%w: initial capacity %d must be positive", errs.ErrInvalidCapacity, n)
		}
		c.initCap = n

		return nil
	})
}

// WithScannerMaxCapacity sets the largest size a single span may reach,
// counting both carried and buffered bytes. A span longer than n bytes
// fails the stream with errs.ErrCapacityExceeded; a span of exactly n
// bytes succeeds.
func WithScannerMaxCapacity(n int) ScannerOption {
	return options.New(func(c *ScannerConfig) error {
		if n <= 0 {
			return fmt.Errorf("%w: max capacity %d must be positive", errs.ErrInvalidCapacity, n)
		}
		c.maxCap = n

		return nil
	})
}
