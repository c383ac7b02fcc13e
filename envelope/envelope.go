// Package envelope frames a payload before embedding and strips the frame
// after extraction.
//
// The embedding engines deliberately write no marker, header or length into
// the host, so extraction returns the payload followed by junk bits from
// unused host positions. The envelope is the caller-side answer: Seal
// prepends a tiny self-describing header to the (optionally compressed)
// payload, and Open parses that header out of a raw extraction result,
// truncates the junk, verifies integrity and decompresses.
//
// Frame layout, front to back:
//
//	1 byte   flags: low nibble compression type, high nibble checksum type
//	uvarint  body length in bytes
//	8 bytes  xxHash64 of the original payload, little-endian (if checksummed)
//	N bytes  body (compressed or raw payload)
//
// The frame travels inside the host as ordinary payload bytes; the engines
// never interpret it.
package envelope

import (
	"encoding/binary"
	"fmt"

	"github.com/stegbit/stegbit/compress"
	"github.com/stegbit/stegbit/errs"
	"github.com/stegbit/stegbit/format"
	"github.com/stegbit/stegbit/internal/hash"
	"github.com/stegbit/stegbit/internal/pool"
)

const digestSize = 8

// Seal wraps payload in a frame using the given compression and checksum
// settings.
//
// Compression that fails to shrink the payload (or that produces an empty
// block, as LZ4 does for incompressible input) is silently downgraded to
// CompressionNone; the flag byte records what was actually used, so Open
// needs no out-of-band knowledge.
func Seal(payload []byte, comp format.CompressionType, check format.ChecksumType) ([]byte, error) {
	if check != format.ChecksumNone && check != format.ChecksumXXHash64 {
		return nil, fmt.Errorf("%w: unknown checksum type %s", errs.ErrInvalidOptions, check)
	}

	codec, err := compress.CreateCodec(comp)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidOptions, err)
	}

	body, err := codec.Compress(payload)
	if err != nil {
		return nil, fmt.Errorf("compressing payload: %w", err)
	}

	// Downgrade ineffective compression so the frame never grows the
	// payload and empty blocks cannot corrupt the round trip.
	if comp != format.CompressionNone && (len(body) >= len(payload) || (len(body) == 0 && len(payload) > 0)) {
		comp = format.CompressionNone
		body = payload
	}

	buf := pool.GetStreamBuffer()
	defer pool.PutStreamBuffer(buf)

	buf.AppendByte(byte(comp)&0x0F | byte(check)<<4)
	buf.B = binary.AppendUvarint(buf.B, uint64(len(body)))
	if check == format.ChecksumXXHash64 {
		buf.B = binary.LittleEndian.AppendUint64(buf.B, hash.Sum64(payload))
	}
	buf.MustWrite(body)

	return buf.Detach(), nil
}

// Open parses a frame out of data and returns the original payload.
//
// data is typically a raw extraction result: the frame followed by an
// arbitrary amount of junk, all of which is ignored once the declared body
// length is consumed. Fails with errs.ErrInvalidEnvelope on a malformed or
// truncated frame and errs.ErrChecksumMismatch when the recovered payload
// does not match its recorded digest.
func Open(data []byte) ([]byte, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("%w: %d bytes cannot hold a frame header", errs.ErrInvalidEnvelope, len(data))
	}

	comp := format.CompressionType(data[0] & 0x0F)
	check := format.ChecksumType(data[0] >> 4)

	codec, err := compress.CreateCodec(comp)
	if err != nil {
		return nil, fmt.Errorf("%w: flag byte %#02x names no codec", errs.ErrInvalidEnvelope, data[0])
	}
	if check != format.ChecksumNone && check != format.ChecksumXXHash64 {
		return nil, fmt.Errorf("%w: flag byte %#02x names no checksum type", errs.ErrInvalidEnvelope, data[0])
	}

	bodyLen, n := binary.Uvarint(data[1:])
	if n <= 0 {
		return nil, fmt.Errorf("%w: malformed body length", errs.ErrInvalidEnvelope)
	}
	offset := 1 + n

	var digest uint64
	if check == format.ChecksumXXHash64 {
		if len(data) < offset+digestSize {
			return nil, fmt.Errorf("%w: truncated digest", errs.ErrInvalidEnvelope)
		}
		digest = binary.LittleEndian.Uint64(data[offset:])
		offset += digestSize
	}

	if uint64(len(data)-offset) < bodyLen {
		return nil, fmt.Errorf("%w: declared body of %d bytes, only %d available",
			errs.ErrInvalidEnvelope, bodyLen, len(data)-offset)
	}
	body := data[offset : offset+int(bodyLen)]

	payload, err := codec.Decompress(body)
	if err != nil {
		return nil, fmt.Errorf("%w: body does not decompress as %s: %s", errs.ErrInvalidEnvelope, comp, err)
	}

	if check == format.ChecksumXXHash64 && hash.Sum64(payload) != digest {
		return nil, fmt.Errorf("%w: digest %#016x does not match recovered payload", errs.ErrChecksumMismatch, digest)
	}

	return payload, nil
}

// Overhead returns the frame size in bytes for a body of the given length
// under the given checksum setting. Useful for capacity planning: the
// embedded byte count is len(body) + Overhead.
func Overhead(bodyLen int, check format.ChecksumType) int {
	size := 1 + uvarintLen(uint64(bodyLen))
	if check == format.ChecksumXXHash64 {
		size += digestSize
	}

	return size
}

func uvarintLen(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}

	return n
}
