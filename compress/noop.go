package compress

import "io"

// nopReadCloser passes reads through unchanged.
type nopReadCloser struct {
	r io.Reader
}

func (n nopReadCloser) Read(p []byte) (int, error) {
	return n.r.Read(p)
}

func (n nopReadCloser) Close() error {
	return nil
}

// nopWriteCloser passes writes through unchanged.
type nopWriteCloser struct {
	w io.Writer
}

func (n nopWriteCloser) Write(p []byte) (int, error) {
	return n.w.Write(p)
}

func (n nopWriteCloser) Close() error {
	return nil
}
