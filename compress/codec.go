package compress

import (
	"fmt"

	"github.com/stegbit/stegbit/format"
)

// Compressor shrinks a payload before it is hidden in a host buffer.
//
// Embedding capacity is the scarce resource in steganography: a host only
// carries a few bits per element (bitplane) or per pair (PVD), so
// compressing the secret first directly increases how much fits. Payloads
// are typically small (bytes to a few KiB), which favors fast block codecs
// over streaming ones.
//
// Memory management:
//   - Returned slice is newly allocated and owned by the caller
//   - Input slice is not modified
//   - Internal buffers may be reused for efficiency
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload recovered from a host buffer.
//
// The input must have been produced by the matching Compressor and already
// trimmed to its exact length — extraction yields trailing junk bits that
// the envelope layer strips before decompression ever sees the data.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
//
// All built-in codecs are stateless values, safe for concurrent use.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec is a factory function that creates a Codec for the specified
// compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, or LZ4)
//
// Returns:
//   - Codec: Codec instance for the specified type
//   - error: Invalid compression type error
func CreateCodec(compressionType format.CompressionType) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid payload compression: %s", compressionType)
	}
}
