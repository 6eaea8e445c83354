package stream

import (
	"bytes"
	"errors"
	"io"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/bytescan/errs"
)

// chunkReader delivers data in small chunks, cycling through sizes, to
// exercise fill-boundary behavior.
type chunkReader struct {
	data  []byte
	sizes []int
	off   int
	call  int
}

func newChunkReader(data string, sizes ...int) *chunkReader {
	if len(sizes) == 0 {
		sizes = []int{1}
	}

	return &chunkReader{data: []byte(data), sizes: sizes}
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if r.off >= len(r.data) {
		return 0, io.EOF
	}

	n := r.sizes[r.call%len(r.sizes)]
	r.call++
	if n < 1 {
		n = 1
	}
	if n > len(p) {
		n = len(p)
	}
	if n > len(r.data)-r.off {
		n = len(r.data) - r.off
	}

	copy(p, r.data[r.off:r.off+n])
	r.off += n

	return n, nil
}

// errReader fails with err after serving its data.
type errReader struct {
	data []byte
	err  error
}

func (r *errReader) Read(p []byte) (int, error) {
	if len(r.data) > 0 {
		n := copy(p, r.data)
		r.data = r.data[n:]

		return n, nil
	}

	return 0, r.err
}

// closeTracker records whether Close was called on the source.
type closeTracker struct {
	io.Reader
	closed int
}

func (c *closeTracker) Close() error {
	c.closed++
	return nil
}

// collectRecords drains rb and returns all records as owned strings.
func collectRecords(t *testing.T, rb *RecordBuffer) []string {
	t.Helper()

	var out []string
	for {
		rec, err := rb.Next()
		if err == io.EOF {
			return out
		}
		require.NoError(t, err)
		out = append(out, string(rec))
	}
}

func TestRecordBuffer_SimpleLines(t *testing.T) {
	rb, err := NewRecordBuffer(strings.NewReader("one\ntwo\nthree\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"one", "two", "three"}, collectRecords(t, rb))
}

func TestRecordBuffer_FinalRecordWithoutDelimiter(t *testing.T) {
	rb, err := NewRecordBuffer(strings.NewReader("one\ntwo"))
	require.NoError(t, err)

	assert.Equal(t, []string{"one", "two"}, collectRecords(t, rb))
}

func TestRecordBuffer_EmptyInput(t *testing.T) {
	rb, err := NewRecordBuffer(strings.NewReader(""))
	require.NoError(t, err)

	rec, err := rb.Next()
	require.ErrorIs(t, err, io.EOF)
	assert.Nil(t, rec)

	// Exhaustion is stable.
	_, err = rb.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestRecordBuffer_EmptyRecords(t *testing.T) {
	rb, err := NewRecordBuffer(strings.NewReader("a\n\n\nb\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "", "", "b"}, collectRecords(t, rb))
}

func TestRecordBuffer_SkipEmptyRecords(t *testing.T) {
	rb, err := NewRecordBuffer(strings.NewReader("a\n\n\nb\n\n"),
		WithSkipEmptyRecords(true))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, collectRecords(t, rb))
}

func TestRecordBuffer_CustomDelimiter(t *testing.T) {
	rb, err := NewRecordBuffer(strings.NewReader("a,b,c"), WithDelimiter(','))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, collectRecords(t, rb))
}

func TestRecordBuffer_QuotedSpanPreserved(t *testing.T) {
	// Delimiter is '\n'; the comma is ordinary data and the quoted span
	// is preserved verbatim, quotes included.
	rb, err := NewRecordBuffer(strings.NewReader("a,b\n\"c,d\"\n"), WithQuote('"'))
	require.NoError(t, err)

	assert.Equal(t, []string{"a,b", `"c,d"`}, collectRecords(t, rb))
}

func TestRecordBuffer_DelimiterInsideQuote(t *testing.T) {
	rb, err := NewRecordBuffer(strings.NewReader("x\"a\nb\"y\nz\n"), WithQuote('"'))
	require.NoError(t, err)

	assert.Equal(t, []string{"x\"a\nb\"y", "z"}, collectRecords(t, rb))
}

func TestRecordBuffer_DoubledQuoteEscape(t *testing.T) {
	// The doubled quote is an escaped literal and does not close the
	// span, so the delimiter after it is still quoted.
	input := "\"a\"\"\nb\"\nend\n"
	rb, err := NewRecordBuffer(strings.NewReader(input), WithQuote('"'))
	require.NoError(t, err)

	assert.Equal(t, []string{"\"a\"\"\nb\"", "end"}, collectRecords(t, rb))
}

func TestRecordBuffer_BackslashEscape(t *testing.T) {
	// In backslash mode a doubled quote closes and reopens a span, but
	// a backslash-escaped quote stays literal inside the span.
	input := "\"a\\\"\nb\"\nend\n"
	rb, err := NewRecordBuffer(strings.NewReader(input),
		WithQuote('"'), WithEscapeMode(EscapeBackslash))
	require.NoError(t, err)

	assert.Equal(t, []string{"\"a\\\"\nb\"", "end"}, collectRecords(t, rb))
}

func TestRecordBuffer_UnterminatedQuote(t *testing.T) {
	rb, err := NewRecordBuffer(strings.NewReader("a\n\"unclosed"), WithQuote('"'))
	require.NoError(t, err)

	rec, err := rb.Next()
	require.NoError(t, err)
	assert.Equal(t, "a", string(rec))

	_, err = rb.Next()
	require.ErrorIs(t, err, errs.ErrUnterminatedQuote)

	// The error is sticky.
	_, err = rb.Next()
	require.ErrorIs(t, err, errs.ErrUnterminatedQuote)
}

func TestRecordBuffer_DanglingEscapeAtEndOfStream(t *testing.T) {
	rb, err := NewRecordBuffer(strings.NewReader("\"abc\\"),
		WithQuote('"'), WithEscapeMode(EscapeBackslash))
	require.NoError(t, err)

	_, err = rb.Next()
	require.ErrorIs(t, err, errs.ErrUnterminatedQuote)
}

func TestRecordBuffer_QuoteLookaheadAcrossFills(t *testing.T) {
	// One-byte reads force the closing-vs-doubled decision to wait for
	// the next fill at every quote byte.
	input := "\"a\"\"b\"\nrest\n"
	rb, err := NewRecordBuffer(newChunkReader(input, 1), WithQuote('"'))
	require.NoError(t, err)

	assert.Equal(t, []string{"\"a\"\"b\"", "rest"}, collectRecords(t, rb))
}

// drainRecords consumes rb until exhaustion or error. The terminal
// error is nil for clean exhaustion.
func drainRecords(rb *RecordBuffer) ([]string, error) {
	var out []string
	for {
		rec, err := rb.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, string(rec))
	}
}

func TestRecordBuffer_ChunkedDeliveryInvariance(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	alphabet := []byte{'a', 'b', '\n', '"', ','}
	for iter := 0; iter < 200; iter++ {
		n := rng.Intn(200)
		input := make([]byte, n)
		for i := range input {
			input[i] = alphabet[rng.Intn(len(alphabet))]
		}

		oneShot, err := NewRecordBuffer(bytes.NewReader(input), WithQuote('"'))
		require.NoError(t, err)
		want, wantErr := drainRecords(oneShot)

		for _, sizes := range [][]int{{1}, {2}, {3, 1}, {7, 2, 5}} {
			chunked, err := NewRecordBuffer(newChunkReader(string(input), sizes...),
				WithQuote('"'), WithInitialCapacity(8))
			require.NoError(t, err)
			got, gotErr := drainRecords(chunked)
			require.Equal(t, want, got, "input %q sizes %v", input, sizes)
			if wantErr == nil {
				require.NoError(t, gotErr, "input %q sizes %v", input, sizes)
			} else {
				require.ErrorIs(t, gotErr, errs.ErrUnterminatedQuote, "input %q sizes %v", input, sizes)
			}
		}
	}
}

func TestRecordBuffer_RoundTrip(t *testing.T) {
	inputs := []string{
		"a\nbb\nccc",
		"a\nbb\nccc\n",
		"\na\n\n",
		"single",
	}

	for _, input := range inputs {
		rb, err := NewRecordBuffer(strings.NewReader(input), WithInitialCapacity(4))
		require.NoError(t, err)

		records := collectRecords(t, rb)
		joined := strings.Join(records, "\n")

		// Joining with the delimiter restores the input up to the
		// stripped trailing delimiter.
		want := strings.TrimSuffix(input, "\n")
		assert.Equal(t, want, joined, "input %q", input)
	}
}

func TestRecordBuffer_GrowthPreservesData(t *testing.T) {
	long := strings.Repeat("x", 1000)
	rb, err := NewRecordBuffer(strings.NewReader("short\n"+long+"\ntail\n"),
		WithInitialCapacity(8))
	require.NoError(t, err)

	assert.Equal(t, []string{"short", long, "tail"}, collectRecords(t, rb))
}

func TestRecordBuffer_CapacityExceeded(t *testing.T) {
	rb, err := NewRecordBuffer(strings.NewReader(strings.Repeat("x", 17)+"\n"),
		WithInitialCapacity(8), WithMaxCapacity(16))
	require.NoError(t, err)

	_, err = rb.Next()
	require.ErrorIs(t, err, errs.ErrCapacityExceeded)

	// Fatal to the stream: no truncated record is ever produced.
	_, err = rb.Next()
	require.ErrorIs(t, err, errs.ErrCapacityExceeded)
}

func TestRecordBuffer_RecordExactlyAtMaxCapacity(t *testing.T) {
	exact := strings.Repeat("x", 16)

	// Delimiter-terminated record of exactly maxCapacity bytes.
	rb, err := NewRecordBuffer(strings.NewReader(exact+"\nrest\n"),
		WithInitialCapacity(8), WithMaxCapacity(16))
	require.NoError(t, err)
	assert.Equal(t, []string{exact, "rest"}, collectRecords(t, rb))

	// Final record of exactly maxCapacity bytes at end of stream.
	rb, err = NewRecordBuffer(strings.NewReader(exact),
		WithInitialCapacity(8), WithMaxCapacity(16))
	require.NoError(t, err)
	assert.Equal(t, []string{exact}, collectRecords(t, rb))
}

func TestRecordBuffer_SourceErrorPropagated(t *testing.T) {
	srcErr := errors.New("connection reset")
	rb, err := NewRecordBuffer(&errReader{data: []byte("partial"), err: srcErr})
	require.NoError(t, err)

	_, err = rb.Next()
	require.ErrorIs(t, err, srcErr)

	_, err = rb.Next()
	require.ErrorIs(t, err, srcErr, "source errors are sticky")
}

func TestRecordBuffer_InvalidConfiguration(t *testing.T) {
	_, err := NewRecordBuffer(strings.NewReader(""), WithInitialCapacity(0))
	require.ErrorIs(t, err, errs.ErrInvalidCapacity)

	_, err = NewRecordBuffer(strings.NewReader(""), WithMaxCapacity(-1))
	require.ErrorIs(t, err, errs.ErrInvalidCapacity)

	_, err = NewRecordBuffer(strings.NewReader(""),
		WithInitialCapacity(1024), WithMaxCapacity(512))
	require.ErrorIs(t, err, errs.ErrInvalidCapacity)

	_, err = NewRecordBuffer(strings.NewReader(""), WithEscapeMode(EscapeMode(99)))
	require.ErrorIs(t, err, errs.ErrInvalidEscapeMode)
}

func TestRecordBuffer_Close(t *testing.T) {
	src := &closeTracker{Reader: strings.NewReader("a\nb\n")}
	rb, err := NewRecordBuffer(src)
	require.NoError(t, err)

	rec, err := rb.Next()
	require.NoError(t, err)
	assert.Equal(t, "a", string(rec))

	require.NoError(t, rb.Close())
	assert.Equal(t, 1, src.closed)

	// Idempotent; the source is closed once.
	require.NoError(t, rb.Close())
	assert.Equal(t, 1, src.closed)

	_, err = rb.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestRecordBuffer_ViewValidUntilNextCall(t *testing.T) {
	rb, err := NewRecordBuffer(strings.NewReader("aaaa\nbbbb\n"), WithInitialCapacity(4))
	require.NoError(t, err)

	rec, err := rb.Next()
	require.NoError(t, err)

	owned := string(rec) // explicit copy, the documented contract
	_, err = rb.Next()
	require.NoError(t, err)

	assert.Equal(t, "aaaa", owned)
}

func BenchmarkRecordBuffer_Next(b *testing.B) {
	input := strings.Repeat("some,medium,length,record\n", 1024)

	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rb, err := NewRecordBuffer(strings.NewReader(input))
		if err != nil {
			b.Fatal(err)
		}
		for {
			if _, err := rb.Next(); err == io.EOF {
				break
			} else if err != nil {
				b.Fatal(err)
			}
		}
	}
}
