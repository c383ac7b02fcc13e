package format

type (
	CompressionType uint8
	ChecksumType    uint8
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.

	ChecksumNone     ChecksumType = 0x1 // ChecksumNone represents no integrity digest.
	ChecksumXXHash64 ChecksumType = 0x2 // ChecksumXXHash64 represents a 64-bit xxHash digest.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

func (c ChecksumType) String() string {
	switch c {
	case ChecksumNone:
		return "None"
	case ChecksumXXHash64:
		return "XXHash64"
	default:
		return "Unknown"
	}
}
