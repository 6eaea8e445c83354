package compress

import (
	"io"

	"github.com/klauspost/compress/s2"
)

// s2Reader adapts the Close-less s2.Reader to io.ReadCloser.
type s2Reader struct {
	r *s2.Reader
}

func newS2Reader(r io.Reader) io.ReadCloser {
	return &s2Reader{r: s2.NewReader(r)}
}

func (s *s2Reader) Read(p []byte) (int, error) {
	return s.r.Read(p)
}

func (s *s2Reader) Close() error {
	return nil
}

func newS2Writer(w io.Writer) io.WriteCloser {
	return s2.NewWriter(w)
}
