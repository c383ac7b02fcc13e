// Package bitplane embeds and extracts payload bits at a fixed number of
// bit positions per host element.
//
// The engine walks a locator-supplied index sequence and rewrites the
// selected bits of each visited host value through a Strategy (LSB, MSB, or
// a custom inverse pair). Embedding mutates the host in place and reports
// the exact number of payload bits written; extraction reads the host
// immutably and returns the packed bit stream of every visited element.
//
// No marker or length is ever written into the host. Extraction therefore
// walks the whole index sequence and returns trailing bytes drawn from
// whatever the unused positions contained; callers needing exact-length
// recovery layer a length prefix on the payload (see the envelope package).
package bitplane

import (
	"fmt"
	"iter"

	"github.com/stegbit/stegbit/errs"
	"github.com/stegbit/stegbit/internal/bitstream"
)

// Options configures the bitplane engine.
type Options struct {
	// BitsPerElement is the number of payload bits carried by each visited
	// host element, in [1,8].
	BitsPerElement int

	// Strategy is the per-element transform pair. Stock variants are LSB and
	// MSB; custom pairs come from NewStrategy.
	Strategy Strategy
}

// DefaultOptions returns single-bit LSB options, the least intrusive
// configuration.
func DefaultOptions() Options {
	return Options{BitsPerElement: 1, Strategy: LSB}
}

func (o Options) validate() error {
	if o.BitsPerElement < 1 || o.BitsPerElement > 8 {
		return fmt.Errorf("%w: bits per element %d outside [1,8]", errs.ErrInvalidOptions, o.BitsPerElement)
	}
	if !o.Strategy.valid() {
		return fmt.Errorf("%w: strategy must provide both embed and extract transforms", errs.ErrInvalidOptions)
	}

	return nil
}

// Embed hides payload inside host at the positions yielded by indices.
//
// Each visited element receives the next BitsPerElement bits of the
// payload's MSB-first bit stream; a final group shorter than the width keeps
// its high alignment with zeroed low bits. The host is mutated in place up
// to the consumed index prefix and untouched beyond it.
//
// Returns the exact number of payload bits written (always len(payload)*8 on
// success). Fails with errs.ErrInsufficientCapacity when indices run out
// before the payload does, errs.ErrIndexOutOfBounds on an invalid position,
// and errs.ErrInvalidOptions on a malformed configuration.
func Embed(host []byte, payload []byte, opts Options, indices iter.Seq[int]) (int, error) {
	if err := opts.validate(); err != nil {
		return 0, err
	}

	reader := bitstream.NewReader(payload)
	written := 0

	for idx := range indices {
		if reader.Remaining() == 0 {
			break
		}
		if idx < 0 || idx >= len(host) {
			return written, fmt.Errorf("%w: index %d outside host of length %d", errs.ErrIndexOutOfBounds, idx, len(host))
		}

		group, taken := reader.Take(opts.BitsPerElement)
		host[idx] = opts.Strategy.embed(host[idx], group, opts.BitsPerElement)
		written += taken
	}

	if remaining := reader.Remaining(); remaining > 0 {
		return written, fmt.Errorf("%w: wrote %d of %d payload bits before the index sequence ended",
			errs.ErrInsufficientCapacity, written, written+remaining)
	}

	return written, nil
}

// Extract recovers the bit stream hidden in host at the positions yielded by
// indices.
//
// The full index sequence is walked — extraction has no notion of payload
// length, mirroring the embed side's lack of an end marker — and each
// element contributes BitsPerElement bits to an MSB-first stream that is
// packed into bytes, the final incomplete byte zero-padded on the low end.
// The result therefore starts with the embedded payload and may carry
// trailing bytes from unused positions.
//
// The host is never mutated. Fails with errs.ErrIndexOutOfBounds or
// errs.ErrInvalidOptions.
func Extract(host []byte, opts Options, indices iter.Seq[int]) ([]byte, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	writer := bitstream.NewWriter()

	for idx := range indices {
		if idx < 0 || idx >= len(host) {
			writer.Finish()
			return nil, fmt.Errorf("%w: index %d outside host of length %d", errs.ErrIndexOutOfBounds, idx, len(host))
		}

		bits := opts.Strategy.extract(host[idx], opts.BitsPerElement)
		writer.WriteBits(uint64(bits), opts.BitsPerElement)
	}

	return writer.Finish(), nil
}

// Capacity returns the number of payload bits the given index count can
// carry under opts. Convenience for sizing payloads up front.
func Capacity(indexCount int, opts Options) (int, error) {
	if err := opts.validate(); err != nil {
		return 0, err
	}

	return indexCount * opts.BitsPerElement, nil
}
