// Package bitstream provides the MSB-first bit stream primitives shared by
// the bitplane and PVD engines.
//
// A payload is treated as a flat bit stream: most-significant bit first
// within each byte, bytes in sequence order. Reader hands out fixed-width
// bit groups from such a stream; Writer packs extracted groups back into
// bytes. Both engines need exactly one forward pass, so neither type
// supports seeking.
package bitstream

import (
	"encoding/binary"

	"github.com/stegbit/stegbit/internal/pool"
)

// Reader walks a payload as an MSB-first bit stream, handing out bit groups
// of a caller-chosen width.
type Reader struct {
	data []byte
	pos  int // absolute bit position
}

// NewReader creates a Reader over the given payload bytes.
// The payload is not copied and must not be mutated during reading.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Remaining returns the number of unread payload bits.
func (r *Reader) Remaining() int {
	return len(r.data)*8 - r.pos
}

// Consumed returns the number of payload bits handed out so far.
func (r *Reader) Consumed() int {
	return r.pos
}

// Take reads the next group of up to width bits (width in [1,8]).
//
// The first bit read lands in the most significant position of the group.
// When fewer than width bits remain, the available bits keep their high
// alignment and the missing low bits are zero. The second return value is
// the number of payload bits actually consumed; zero means the stream is
// exhausted and the group is invalid.
func (r *Reader) Take(width int) (byte, int) {
	total := len(r.data) * 8

	taken := 0
	var group byte
	for taken < width && r.pos < total {
		bit := (r.data[r.pos>>3] >> (7 - (r.pos & 7))) & 1
		group = group<<1 | bit
		r.pos++
		taken++
	}

	if taken == 0 {
		return 0, 0
	}

	// Final partial group: high-align the bits, zero-pad the low end.
	group <<= uint(width - taken)

	return group, taken
}

// Writer accumulates bit groups and packs them into bytes, MSB-first.
//
// It buffers up to 64 bits in a register and flushes whole words to a pooled
// byte buffer, the same accumulation scheme used by XOR-style float
// compressors. Call Finish exactly once to obtain the packed bytes and
// release the pooled buffer.
type Writer struct {
	bitBuf   uint64
	bitCount int
	buf      *pool.ByteBuffer
}

// NewWriter creates a Writer backed by a pooled buffer.
func NewWriter() *Writer {
	return &Writer{buf: pool.GetStreamBuffer()}
}

// WriteBits appends the low numBits bits of value to the stream,
// most significant of those bits first. numBits must be in [0,64].
func (w *Writer) WriteBits(value uint64, numBits int) {
	if numBits == 0 {
		return
	}

	// Mask value to only include the specified number of bits
	if numBits < 64 {
		value &= (1 << numBits) - 1
	}

	available := 64 - w.bitCount

	if numBits <= available {
		w.bitBuf = (w.bitBuf << numBits) | value
		w.bitCount += numBits

		if w.bitCount == 64 {
			w.flush()
		}

		return
	}

	// Split across the register boundary: high bits complete the current
	// word, low bits start the next one.
	highBits := numBits - available
	w.bitBuf = (w.bitBuf << available) | (value >> highBits)
	w.bitCount = 64
	w.flush()

	w.bitBuf = value & ((1 << highBits) - 1)
	w.bitCount = highBits
}

// Len returns the total number of bits written so far.
func (w *Writer) Len() int {
	return w.buf.Len()*8 + w.bitCount
}

// Finish pads any pending bits to a byte boundary (zeros on the low end),
// returns the packed bytes, and releases the pooled buffer. The Writer must
// not be used afterwards.
func (w *Writer) Finish() []byte {
	if w.bitCount > 0 {
		pending := w.bitBuf << (64 - w.bitCount)
		for remaining := (w.bitCount + 7) / 8; remaining > 0; remaining-- {
			w.buf.AppendByte(byte(pending >> 56))
			pending <<= 8
		}
		w.bitBuf = 0
		w.bitCount = 0
	}

	out := w.buf.Detach()
	pool.PutStreamBuffer(w.buf)
	w.buf = nil

	return out
}

func (w *Writer) flush() {
	var scratch [8]byte
	binary.BigEndian.PutUint64(scratch[:], w.bitBuf)
	w.buf.MustWrite(scratch[:])
	w.bitBuf = 0
	w.bitCount = 0
}
