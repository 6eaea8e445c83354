package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteBuffer_WriteAndReset(t *testing.T) {
	bb := NewByteBuffer(8)
	assert.Zero(t, bb.Len())
	assert.Equal(t, 8, bb.Cap())

	bb.MustWrite([]byte("hello "))
	bb.MustWrite([]byte("world"))
	assert.Equal(t, "hello world", string(bb.Bytes()))
	assert.Equal(t, 11, bb.Len())

	bb.Reset()
	assert.Zero(t, bb.Len())
	assert.GreaterOrEqual(t, bb.Cap(), 11)
}

func TestByteBuffer_GrowPreservesContent(t *testing.T) {
	bb := NewByteBuffer(4)
	payload := bytes.Repeat([]byte("abcd"), 100)

	for i := 0; i < len(payload); i += 4 {
		bb.MustWrite(payload[i : i+4])
	}

	assert.Equal(t, payload, bb.Bytes())
}

func TestByteBuffer_GrowNoopWhenRoomAvailable(t *testing.T) {
	bb := NewByteBuffer(64)
	bb.MustWrite([]byte("x"))

	before := bb.Cap()
	bb.Grow(16)
	assert.Equal(t, before, bb.Cap())
}

func TestByteBuffer_GrowLargeRequest(t *testing.T) {
	bb := NewByteBuffer(4)
	big := make([]byte, 3*CarryBufferDefaultSize)
	bb.MustWrite(big)

	assert.Equal(t, len(big), bb.Len())
	assert.GreaterOrEqual(t, bb.Cap(), len(big))
}

func TestByteBufferPool_Reuse(t *testing.T) {
	p := NewByteBufferPool(16, 1024)

	bb := p.Get()
	require.NotNil(t, bb)
	bb.MustWrite([]byte("residue"))
	p.Put(bb)

	got := p.Get()
	require.NotNil(t, got)
	// Put resets before pooling, so reuse never leaks prior content.
	assert.Zero(t, got.Len())
}

func TestByteBufferPool_DropsOversized(t *testing.T) {
	p := NewByteBufferPool(16, 64)

	bb := p.Get()
	bb.MustWrite(make([]byte, 1024))
	require.Greater(t, bb.Cap(), 64)

	// Must not panic; the oversized buffer is simply not retained.
	p.Put(bb)
	p.Put(nil)
}

func TestCarryBufferPool(t *testing.T) {
	bb := GetCarryBuffer()
	require.NotNil(t, bb)
	assert.Zero(t, bb.Len())
	assert.GreaterOrEqual(t, bb.Cap(), CarryBufferDefaultSize)

	bb.MustWrite([]byte("span tail"))
	PutCarryBuffer(bb)

	again := GetCarryBuffer()
	assert.Zero(t, again.Len())
	PutCarryBuffer(again)
}

func BenchmarkByteBufferPool(b *testing.B) {
	payload := bytes.Repeat([]byte("z"), 4096)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		bb := GetCarryBuffer()
		bb.MustWrite(payload)
		PutCarryBuffer(bb)
	}
}
