// Package compress provides streaming compression wrappers for byte
// sources and sinks.
//
// The scanning engine consumes any io.Reader; this package supplies the
// "decompressing wrapper" flavor of byte source: NewReader returns a
// reader whose output is the decompressed stream, suitable for feeding
// a stream.RecordBuffer or stream.Scanner directly. NewWriter is the
// matching sink, used to produce compressed fixtures and round-trip
// tests.
//
// # Supported Algorithms
//
//   - None: pass-through (baseline, pre-compressed or incompressible data)
//   - Zstd: best ratio, moderate speed
//   - S2: balanced ratio and speed
//   - LZ4: fastest decompression, moderate ratio
//
// Zstd has two implementations selected at build time: the cgo build
// uses the libzstd binding (valyala/gozstd), pure-Go builds use
// klauspost/compress/zstd. The wire format is identical either way.
//
// # Usage
//
//	f, _ := os.Open("records.log.zst")
//	src, err := compress.NewReader(compress.Zstd, f)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	rb, err := stream.NewRecordBuffer(src)
package compress
