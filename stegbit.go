// Package stegbit hides and recovers byte payloads inside arbitrary byte
// buffers using reversible bit-level transformations.
//
// The host can be any byte sequence — raw pixel data, audio samples, or an
// opaque blob — because nothing here depends on a media format. Two engines
// are provided: fixed-width bitplane substitution (see the bitplane package)
// and adaptive pixel value differencing over element pairs (see the pvd
// package). Both consume an index order produced by a locator (see the
// locator package), which decides which host positions participate and in
// what sequence.
//
// # Basic Usage
//
// Hiding and recovering a payload with the default single-bit LSB channel:
//
//	host := loadCarrierBytes()
//	payload := []byte("the secret")
//
//	_, err := stegbit.HideBitplane(host, payload, locator.Linear{})
//	if err != nil {
//	    return err
//	}
//
//	recovered, err := stegbit.RevealBitplane(host, locator.Linear{})
//	// recovered == payload
//
// The PVD engine adapts its rate to local contrast and skips flat regions:
//
//	_, err := stegbit.HidePVD(host, payload, locator.Linear{},
//	    stegbit.WithCompression(format.CompressionZstd),
//	)
//
// # Envelopes
//
// The engines themselves write no length marker into the host, so raw
// extraction returns the payload followed by junk bits from unused
// positions. These wrappers seal the payload in a small envelope (length
// prefix, optional compression, optional xxHash64 digest) before embedding
// and strip it after extraction, so Reveal returns exactly the bytes that
// were hidden. Callers who need raw, envelope-free embedding use the engine
// packages directly.
//
// # Content-dependent locators
//
// locator.Heatmap ranks positions by host content, which the embedding then
// mutates. Capture the order once and reuse it on both sides:
//
//	snap := locator.Capture(locator.NewHeatmap(), host)
//	stegbit.HideBitplane(host, payload, snap)
//	recovered, err := stegbit.RevealBitplane(host, snap)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the engine
// packages, covering the common embed-and-forget use cases. For raw streams,
// custom strategies, or capacity planning, use bitplane, pvd, locator and
// envelope directly.
package stegbit

import (
	"fmt"

	"github.com/stegbit/stegbit/bitplane"
	"github.com/stegbit/stegbit/envelope"
	"github.com/stegbit/stegbit/errs"
	"github.com/stegbit/stegbit/format"
	"github.com/stegbit/stegbit/internal/options"
	"github.com/stegbit/stegbit/locator"
	"github.com/stegbit/stegbit/pvd"
)

// Config collects the knobs shared by the Hide/Reveal wrappers. Construct it
// implicitly through Option values; the zero value is never used directly.
type Config struct {
	bitsPerElement int
	strategy       bitplane.Strategy
	table          pvd.RangeTable
	compression    format.CompressionType
	checksum       format.ChecksumType
}

// Option configures a single Hide or Reveal call.
type Option = options.Option[*Config]

func newConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		bitsPerElement: 1,
		strategy:       bitplane.LSB,
		table:          pvd.DefaultRangeTable(),
		compression:    format.CompressionNone,
		checksum:       format.ChecksumXXHash64,
	}

	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithBitsPerElement sets how many payload bits each host element carries in
// the bitplane engine, in [1,8]. Higher values raise capacity and
// visibility together. Ignored by the PVD wrappers.
func WithBitsPerElement(bits int) Option {
	return options.New(func(c *Config) error {
		if bits < 1 || bits > 8 {
			return fmt.Errorf("%w: bits per element %d outside [1,8]", errs.ErrInvalidOptions, bits)
		}
		c.bitsPerElement = bits

		return nil
	})
}

// WithStrategy selects the bitplane bit-selection strategy (bitplane.LSB,
// bitplane.MSB, or a custom pair from bitplane.NewStrategy). Ignored by the
// PVD wrappers.
func WithStrategy(s bitplane.Strategy) Option {
	return options.NoError(func(c *Config) {
		c.strategy = s
	})
}

// WithRangeTable replaces the default PVD range table. Ignored by the
// bitplane wrappers.
func WithRangeTable(table pvd.RangeTable) Option {
	return options.NoError(func(c *Config) {
		c.table = table
	})
}

// WithCompression compresses the payload before embedding (and transparently
// decompresses after extraction). Compression that does not shrink the
// payload is downgraded to none inside the envelope.
func WithCompression(comp format.CompressionType) Option {
	return options.NoError(func(c *Config) {
		c.compression = comp
	})
}

// WithChecksum controls the integrity digest recorded in the envelope.
// The default is format.ChecksumXXHash64; format.ChecksumNone saves eight
// bytes of capacity at the cost of silent-corruption detection.
func WithChecksum(check format.ChecksumType) Option {
	return options.NoError(func(c *Config) {
		c.checksum = check
	})
}

// HideBitplane seals payload in an envelope and embeds it in host at the
// positions chosen by loc, using the configured bitplane options.
//
// The host is mutated in place. Returns the number of embedded bits,
// envelope included. Reveal requires the same locator order and the same
// strategy settings.
func HideBitplane(host, payload []byte, loc locator.Locator, opts ...Option) (int, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return 0, err
	}

	sealed, err := envelope.Seal(payload, cfg.compression, cfg.checksum)
	if err != nil {
		return 0, err
	}

	return bitplane.Embed(host, sealed, cfg.bitplaneOptions(), loc.Indices(host))
}

// RevealBitplane extracts the bit stream hidden in host at the positions
// chosen by loc, opens its envelope, and returns the original payload.
func RevealBitplane(host []byte, loc locator.Locator, opts ...Option) ([]byte, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	raw, err := bitplane.Extract(host, cfg.bitplaneOptions(), loc.Indices(host))
	if err != nil {
		return nil, err
	}

	return envelope.Open(raw)
}

// HidePVD seals payload in an envelope and embeds it across the host
// element pairs formed by loc's index order, using the configured range
// table.
//
// The host is mutated in place. Returns the number of embedded bits,
// envelope included.
func HidePVD(host, payload []byte, loc locator.Locator, opts ...Option) (int, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return 0, err
	}

	sealed, err := envelope.Seal(payload, cfg.compression, cfg.checksum)
	if err != nil {
		return 0, err
	}

	return pvd.Embed(host, sealed, pvd.Options{Table: cfg.table}, loc.Indices(host))
}

// RevealPVD extracts the pair-difference bit stream hidden in host, opens
// its envelope, and returns the original payload.
func RevealPVD(host []byte, loc locator.Locator, opts ...Option) ([]byte, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	raw, err := pvd.Extract(host, pvd.Options{Table: cfg.table}, loc.Indices(host))
	if err != nil {
		return nil, err
	}

	return envelope.Open(raw)
}

func (c *Config) bitplaneOptions() bitplane.Options {
	return bitplane.Options{
		BitsPerElement: c.bitsPerElement,
		Strategy:       c.strategy,
	}
}
