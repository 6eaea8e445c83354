package compress

import (
	"io"

	"github.com/pierrec/lz4/v4"
)

// lz4Reader adapts the Close-less lz4.Reader to io.ReadCloser.
type lz4Reader struct {
	r *lz4.Reader
}

func newLZ4Reader(r io.Reader) io.ReadCloser {
	return &lz4Reader{r: lz4.NewReader(r)}
}

func (l *lz4Reader) Read(p []byte) (int, error) {
	return l.r.Read(p)
}

func (l *lz4Reader) Close() error {
	return nil
}

func newLZ4Writer(w io.Writer) io.WriteCloser {
	return lz4.NewWriter(w)
}
