// Package pool provides pooled, growable byte buffers.
//
// The scanner's carry buffer (the spillover accumulator for spans that
// cross more than one fill) is the main consumer: spills are rare and
// short-lived, so the backing storage is recycled through a sync.Pool
// instead of being reallocated per stream.
package pool

import "sync"

const (
	// CarryBufferDefaultSize is the initial capacity of a carry buffer
	// obtained from the pool.
	CarryBufferDefaultSize = 16 * 1024 // 16KiB

	// CarryBufferMaxThreshold is the largest capacity the pool retains.
	// Buffers grown beyond it by a pathological span are dropped on Put
	// so one oversized span cannot pin memory for the process lifetime.
	CarryBufferMaxThreshold = 1024 * 1024 // 1MiB
)

// ByteBuffer is a growable byte buffer with explicit, observable growth.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a ByteBuffer with the given initial capacity.
func NewByteBuffer(capacity int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, capacity),
	}
}

// Bytes returns the accumulated bytes.
//
// The returned slice shares the underlying storage; it is valid until
// the next MustWrite or Reset.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Len returns the number of accumulated bytes.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the underlying storage.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// Reset empties the buffer while keeping the allocated storage.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// MustWrite appends data, growing the buffer if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.Grow(len(data))
	bb.B = append(bb.B, data...)
}

// Grow ensures the buffer can hold requiredBytes more bytes without
// reallocating. Small buffers grow by CarryBufferDefaultSize; larger
// ones by 25% of their capacity.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := CarryBufferDefaultSize
	if cap(bb.B) > 4*CarryBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// ByteBufferPool recycles ByteBuffers through a sync.Pool.
//
// A maxThreshold > 0 caps the capacity of retained buffers; larger
// buffers are discarded on Put.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool handing out buffers of defaultSize
// initial capacity and retaining buffers up to maxThreshold capacity.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves an empty ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var carryDefaultPool = NewByteBufferPool(CarryBufferDefaultSize, CarryBufferMaxThreshold)

// GetCarryBuffer retrieves a carry buffer from the default pool.
func GetCarryBuffer() *ByteBuffer {
	return carryDefaultPool.Get()
}

// PutCarryBuffer returns a carry buffer to the default pool.
func PutCarryBuffer(bb *ByteBuffer) {
	carryDefaultPool.Put(bb)
}
