package compress

// ZstdCompressor compresses payloads with Zstandard.
//
// Zstd trades a little speed for the best ratio of the built-in codecs,
// which matters when the payload barely fits the host's capacity. The
// implementation is selected at build time: the cgo-backed gozstd library
// when cgo is available, the pure-Go klauspost implementation otherwise
// (see zstd_cgo.go and zstd_pure.go). Both produce standard zstd frames and
// interoperate freely.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
