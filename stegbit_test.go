package stegbit_test

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stegbit/stegbit"
	"github.com/stegbit/stegbit/bitplane"
	"github.com/stegbit/stegbit/errs"
	"github.com/stegbit/stegbit/format"
	"github.com/stegbit/stegbit/locator"
	"github.com/stegbit/stegbit/pvd"
)

func randomHost(t *testing.T, size int) []byte {
	t.Helper()

	rng := rand.New(rand.NewSource(42))
	host := make([]byte, size)
	for i := range host {
		// Keep values mid-range so PVD adjustments never clamp.
		host[i] = byte(64 + rng.Intn(128))
	}

	return host
}

func TestHideRevealBitplane_Defaults(t *testing.T) {
	host := randomHost(t, 256)
	payload := []byte("attack at dawn")

	bits, err := stegbit.HideBitplane(host, payload, locator.Linear{})
	require.NoError(t, err)
	// Envelope adds a flag byte, a length byte and an 8-byte digest.
	require.Equal(t, (len(payload)+10)*8, bits)

	recovered, err := stegbit.RevealBitplane(host, locator.Linear{})
	require.NoError(t, err)
	require.Equal(t, payload, recovered)
}

func TestHideRevealBitplane_WiderChannel(t *testing.T) {
	host := randomHost(t, 128)
	payload := []byte("wider channel means fewer touched elements")

	_, err := stegbit.HideBitplane(host, payload, locator.Linear{},
		stegbit.WithBitsPerElement(4),
	)
	require.NoError(t, err)

	recovered, err := stegbit.RevealBitplane(host, locator.Linear{},
		stegbit.WithBitsPerElement(4),
	)
	require.NoError(t, err)
	require.Equal(t, payload, recovered)
}

func TestHideRevealBitplane_MSBStrategy(t *testing.T) {
	host := randomHost(t, 256)
	payload := []byte{0xDE, 0xAD, 0xBE, 0xEF}

	_, err := stegbit.HideBitplane(host, payload, locator.Linear{},
		stegbit.WithStrategy(bitplane.MSB),
		stegbit.WithBitsPerElement(2),
	)
	require.NoError(t, err)

	recovered, err := stegbit.RevealBitplane(host, locator.Linear{},
		stegbit.WithStrategy(bitplane.MSB),
		stegbit.WithBitsPerElement(2),
	)
	require.NoError(t, err)
	require.Equal(t, payload, recovered)
}

func TestHideRevealBitplane_MismatchedOptionsFailChecksum(t *testing.T) {
	host := randomHost(t, 256)

	_, err := stegbit.HideBitplane(host, []byte("hello"), locator.Linear{},
		stegbit.WithBitsPerElement(2),
	)
	require.NoError(t, err)

	// Reading back with the wrong width produces garbage, which the digest
	// rejects instead of returning silently corrupted bytes.
	_, err = stegbit.RevealBitplane(host, locator.Linear{})
	require.Error(t, err)
}

func TestHideRevealPVD_Defaults(t *testing.T) {
	host := randomHost(t, 512)
	payload := []byte("pair differences carry the data")

	bits, err := stegbit.HidePVD(host, payload, locator.Linear{})
	require.NoError(t, err)
	require.Positive(t, bits)

	recovered, err := stegbit.RevealPVD(host, locator.Linear{})
	require.NoError(t, err)
	require.Equal(t, payload, recovered)
}

func TestHideRevealPVD_CustomRangeTable(t *testing.T) {
	table, err := pvd.NewRangeTable(
		pvd.Range{Lo: 0, Hi: 15, Capacity: 2},
		pvd.Range{Lo: 16, Hi: 255, Capacity: 4},
	)
	require.NoError(t, err)

	host := randomHost(t, 512)
	payload := []byte("coarse table")

	_, err = stegbit.HidePVD(host, payload, locator.Linear{},
		stegbit.WithRangeTable(table),
	)
	require.NoError(t, err)

	recovered, err := stegbit.RevealPVD(host, locator.Linear{},
		stegbit.WithRangeTable(table),
	)
	require.NoError(t, err)
	require.Equal(t, payload, recovered)
}

func TestHideReveal_HeatmapSnapshot(t *testing.T) {
	host := randomHost(t, 512)
	payload := []byte("busy regions first")

	// Heatmap ranking depends on host content, which embedding mutates, so
	// both sides must share a captured order.
	snap := locator.Capture(locator.NewHeatmap(), host)

	_, err := stegbit.HideBitplane(host, payload, snap)
	require.NoError(t, err)

	recovered, err := stegbit.RevealBitplane(host, snap)
	require.NoError(t, err)
	require.Equal(t, payload, recovered)
}

func TestHideReveal_Compression(t *testing.T) {
	payload := bytes.Repeat([]byte("compressible payload "), 40)

	for _, comp := range []format.CompressionType{
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(comp.String(), func(t *testing.T) {
			host := randomHost(t, 4096)

			bits, err := stegbit.HideBitplane(host, payload, locator.Linear{},
				stegbit.WithCompression(comp),
			)
			require.NoError(t, err)
			require.Less(t, bits, len(payload)*8, "compressed payload should need fewer bits")

			recovered, err := stegbit.RevealBitplane(host, locator.Linear{},
				stegbit.WithCompression(comp),
			)
			require.NoError(t, err)
			require.Equal(t, payload, recovered)
		})
	}
}

func TestHideReveal_ChecksumDetectsTampering(t *testing.T) {
	host := randomHost(t, 256)
	payload := []byte("fragile")

	_, err := stegbit.HideBitplane(host, payload, locator.Linear{})
	require.NoError(t, err)

	// Corrupt a carrying position past the envelope header.
	host[100] ^= 0x01

	_, err = stegbit.RevealBitplane(host, locator.Linear{})
	require.ErrorIs(t, err, errs.ErrChecksumMismatch)
}

func TestHideReveal_NoChecksum(t *testing.T) {
	host := randomHost(t, 256)
	payload := []byte("trusting")

	bits, err := stegbit.HideBitplane(host, payload, locator.Linear{},
		stegbit.WithChecksum(format.ChecksumNone),
	)
	require.NoError(t, err)
	require.Equal(t, (len(payload)+2)*8, bits)

	recovered, err := stegbit.RevealBitplane(host, locator.Linear{},
		stegbit.WithChecksum(format.ChecksumNone),
	)
	require.NoError(t, err)
	require.Equal(t, payload, recovered)
}

func TestHideBitplane_HostTooSmall(t *testing.T) {
	host := randomHost(t, 8)

	_, err := stegbit.HideBitplane(host, []byte("way too much payload"), locator.Linear{})
	require.ErrorIs(t, err, errs.ErrInsufficientCapacity)
}

func TestHide_InvalidOptions(t *testing.T) {
	host := randomHost(t, 64)

	_, err := stegbit.HideBitplane(host, []byte("x"), locator.Linear{},
		stegbit.WithBitsPerElement(9),
	)
	require.ErrorIs(t, err, errs.ErrInvalidOptions)

	_, err = stegbit.HideBitplane(host, []byte("x"), locator.Linear{},
		stegbit.WithBitsPerElement(0),
	)
	require.ErrorIs(t, err, errs.ErrInvalidOptions)
}

func TestHideReveal_PositionListSubset(t *testing.T) {
	host := randomHost(t, 512)
	payload := []byte("sparse")

	positions := make([]int, 0, 256)
	for i := 1; i < 512; i += 2 {
		positions = append(positions, i)
	}
	loc := locator.NewPositionList(positions)

	before := append([]byte(nil), host...)

	_, err := stegbit.HideBitplane(host, payload, loc)
	require.NoError(t, err)

	// Even positions never participate.
	for i := 0; i < 512; i += 2 {
		require.Equal(t, before[i], host[i], "position %d", i)
	}

	recovered, err := stegbit.RevealBitplane(host, loc)
	require.NoError(t, err)
	require.Equal(t, payload, recovered)
}

func TestHideReveal_EmptyPayload(t *testing.T) {
	host := randomHost(t, 128)

	_, err := stegbit.HideBitplane(host, nil, locator.Linear{})
	require.NoError(t, err)

	recovered, err := stegbit.RevealBitplane(host, locator.Linear{})
	require.NoError(t, err)
	require.Empty(t, recovered)
}
