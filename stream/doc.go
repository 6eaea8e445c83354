// Package stream segments unbounded byte streams into records or
// pattern-delimited spans without buffering the whole stream.
//
// Two types share the same buffering strategy:
//
//   - RecordBuffer yields successive records separated by a single
//     delimiter byte (default '\n'), optionally honoring quoted spans
//     in which the delimiter does not count as a boundary.
//   - Scanner generalizes the strategy to arbitrary multi-byte
//     patterns, using pattern.Matcher's boundary query to compute a
//     read barrier so that an occurrence straddling a buffer refill is
//     neither missed nor duplicated.
//
// Both read their source only in bounded chunks, grow their backing
// array geometrically up to a configured ceiling, and expose results
// as non-owning views into that array.
//
// # View Validity
//
// Every []byte returned by Next, ReadTo, or similar calls aliases
// storage owned by the stream object and is invalidated by the next
// call that can shift, grow, or refill it - which is any advancing
// call. Consumers that need the bytes to outlive the next call must
// copy them, for example through intern.Table.
//
// # Resource Model
//
// Instances are single-task: calls block on the underlying source and
// must not overlap. Cancellation is cooperative - stop calling and
// invoke Close, which is idempotent and releases the source and the
// backing storage. Timeouts and retries belong to the byte source, not
// to this package.
//
// # Errors
//
// Exhaustion is reported as io.EOF, in the manner of bufio: a final
// record or span with no trailing boundary is returned once (ReadTo
// pairs it with io.EOF), after which calls return (nil, io.EOF).
// Fatal conditions - errs.ErrCapacityExceeded, errs.ErrUnterminatedQuote,
// or a source error propagated verbatim - are sticky for the stream.
package stream
