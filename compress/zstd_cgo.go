//go:build cgo

package compress

import (
	"io"

	"github.com/valyala/gozstd"
)

// zstdReader wraps the libzstd streaming decoder. Release returns the
// underlying ZSTD_DStream to the C allocator, so Close must run
// exactly once.
type zstdReader struct {
	r      *gozstd.Reader
	closed bool
}

func newZstdReader(r io.Reader) (io.ReadCloser, error) {
	return &zstdReader{r: gozstd.NewReader(r)}, nil
}

func (z *zstdReader) Read(p []byte) (int, error) {
	return z.r.Read(p)
}

func (z *zstdReader) Close() error {
	if z.closed {
		return nil
	}
	z.closed = true
	z.r.Release()

	return nil
}

// zstdWriter wraps the libzstd streaming encoder.
type zstdWriter struct {
	w      *gozstd.Writer
	closed bool
}

func newZstdWriter(w io.Writer) (io.WriteCloser, error) {
	return &zstdWriter{w: gozstd.NewWriter(w)}, nil
}

func (z *zstdWriter) Write(p []byte) (int, error) {
	return z.w.Write(p)
}

func (z *zstdWriter) Close() error {
	if z.closed {
		return nil
	}
	z.closed = true
	err := z.w.Close()
	z.w.Release()

	return err
}
