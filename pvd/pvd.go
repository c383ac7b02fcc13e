// Package pvd embeds and extracts payload bits in the value difference of
// host element pairs (pixel value differencing, generalized to arbitrary
// byte buffers).
//
// Indices from the locator are consumed two at a time in sequence order —
// the locator, not numeric adjacency, defines which elements pair up. The
// magnitude of each pair's difference selects a bucket in a range table;
// the bucket's capacity is the number of payload bits substituted into the
// low bits of the difference, and the resulting change is split across the
// pair so total distortion stays minimal. Flat pairs (capacity-0 buckets)
// are skipped without consuming payload, which lets low-variation regions
// pass through untouched.
//
// Like the bitplane engine, PVD writes no marker into the host: extraction
// walks every pair and returns trailing bytes past the embedded payload.
// Round trips require the identical range table and pairing order on both
// sides.
package pvd

import (
	"fmt"
	"iter"

	"github.com/stegbit/stegbit/errs"
	"github.com/stegbit/stegbit/internal/bitstream"
)

// Options configures the PVD engine. The zero value is invalid; use
// DefaultOptions or supply a table from NewRangeTable.
type Options struct {
	// Table partitions the difference domain [0,255] into capacity buckets.
	Table RangeTable
}

// DefaultOptions returns options using the classical widening range table.
func DefaultOptions() Options {
	return Options{Table: DefaultRangeTable()}
}

func (o Options) validate() error {
	if !o.Table.valid() {
		return fmt.Errorf("%w: PVD options require a range table (see DefaultRangeTable)", errs.ErrInvalidOptions)
	}

	return nil
}

// Embed hides payload inside host across the element pairs formed by
// consecutive indices.
//
// For each pair (x, y) with difference d = host[y]-host[x], the bucket of
// |d| grants n bits of capacity. Zero-capacity pairs are skipped. Otherwise
// the next n payload bits b replace the low n bits of the magnitude:
// |d'| = (|d| rounded down to a multiple of 2^n) + b, sign preserved. The
// change m = d'-d is redistributed as host[x] -= ceil(m/2),
// host[y] += floor(m/2), so the new difference is exactly d'. A final
// partial bit group keeps its high alignment with zeroed low bits.
//
// The host is mutated pair by pair; pairs before a failure keep their new
// values, the failing pair and everything after stay untouched. A trailing
// unpaired index is ignored.
//
// Returns the exact number of payload bits written. Fails with
// errs.ErrRangeOverflow when |d'| cannot stay in d's bucket,
// errs.ErrValueOverflow when an adjusted value would leave [0,255],
// errs.ErrInsufficientCapacity when the pairs run out first, and
// errs.ErrIndexOutOfBounds / errs.ErrInvalidOptions as usual.
func Embed(host []byte, payload []byte, opts Options, indices iter.Seq[int]) (int, error) {
	if err := opts.validate(); err != nil {
		return 0, err
	}

	reader := bitstream.NewReader(payload)
	written := 0

	var first int
	havePair := false

	for idx := range indices {
		if reader.Remaining() == 0 {
			break
		}
		if idx < 0 || idx >= len(host) {
			return written, fmt.Errorf("%w: index %d outside host of length %d", errs.ErrIndexOutOfBounds, idx, len(host))
		}

		if !havePair {
			first = idx
			havePair = true
			continue
		}
		havePair = false

		x, y := first, idx
		d := int(host[y]) - int(host[x])
		magnitude := d
		if magnitude < 0 {
			magnitude = -magnitude
		}

		bucket, ok := opts.Table.lookup(magnitude)
		if !ok {
			// Unreachable with a validated table; kept as a guard for the
			// zero-value Options escape hatch.
			return written, fmt.Errorf("%w: difference %d fits no range bucket", errs.ErrInvalidOptions, magnitude)
		}
		if bucket.Capacity == 0 {
			continue
		}

		group, taken := reader.Take(bucket.Capacity)

		mask := 1<<bucket.Capacity - 1
		newMagnitude := magnitude&^mask + int(group)
		if newMagnitude < bucket.Lo || newMagnitude > bucket.Hi {
			return written, fmt.Errorf("%w: pair (%d,%d) difference %d cannot carry bits %#b within bucket [%d,%d]",
				errs.ErrRangeOverflow, x, y, d, group, bucket.Lo, bucket.Hi)
		}

		dNew := newMagnitude
		if d < 0 {
			dNew = -newMagnitude
		}

		// Split the change so the pair moves symmetrically; arithmetic shift
		// keeps the floor/ceil pairing exact for negative changes.
		m := dNew - d
		floorHalf := m >> 1
		ceilHalf := m - floorHalf

		newX := int(host[x]) - ceilHalf
		newY := int(host[y]) + floorHalf
		if newX < 0 || newX > 255 || newY < 0 || newY > 255 {
			return written, fmt.Errorf("%w: pair (%d,%d) would become (%d,%d) carrying difference %d",
				errs.ErrValueOverflow, x, y, newX, newY, dNew)
		}

		host[x] = byte(newX)
		host[y] = byte(newY)
		written += taken
	}

	if remaining := reader.Remaining(); remaining > 0 {
		return written, fmt.Errorf("%w: wrote %d of %d payload bits before the pair sequence ended",
			errs.ErrInsufficientCapacity, written, written+remaining)
	}

	return written, nil
}

// Extract recovers the bit stream hidden across the element pairs formed by
// consecutive indices.
//
// Every pair is visited in the same order as Embed: the bucket of |d| gives
// the bit count n, zero-capacity pairs are skipped, and |d| mod 2^n yields
// the hidden bits. The packed result starts with the embedded payload and
// may carry trailing bytes; see the package comment. The host is never
// mutated.
func Extract(host []byte, opts Options, indices iter.Seq[int]) ([]byte, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	writer := bitstream.NewWriter()

	var first int
	havePair := false

	for idx := range indices {
		if idx < 0 || idx >= len(host) {
			writer.Finish()
			return nil, fmt.Errorf("%w: index %d outside host of length %d", errs.ErrIndexOutOfBounds, idx, len(host))
		}

		if !havePair {
			first = idx
			havePair = true
			continue
		}
		havePair = false

		d := int(host[idx]) - int(host[first])
		if d < 0 {
			d = -d
		}

		bucket, ok := opts.Table.lookup(d)
		if !ok {
			writer.Finish()
			return nil, fmt.Errorf("%w: difference %d fits no range bucket", errs.ErrInvalidOptions, d)
		}
		if bucket.Capacity == 0 {
			continue
		}

		writer.WriteBits(uint64(d&(1<<bucket.Capacity-1)), bucket.Capacity)
	}

	return writer.Finish(), nil
}

// Capacity returns the number of payload bits the given pair sequence can
// carry over host under opts, without mutating anything. Useful for sizing
// payloads before embedding.
func Capacity(host []byte, opts Options, indices iter.Seq[int]) (int, error) {
	if err := opts.validate(); err != nil {
		return 0, err
	}

	total := 0

	var first int
	havePair := false

	for idx := range indices {
		if idx < 0 || idx >= len(host) {
			return 0, fmt.Errorf("%w: index %d outside host of length %d", errs.ErrIndexOutOfBounds, idx, len(host))
		}

		if !havePair {
			first = idx
			havePair = true
			continue
		}
		havePair = false

		d := int(host[idx]) - int(host[first])
		if d < 0 {
			d = -d
		}

		if bucket, ok := opts.Table.lookup(d); ok {
			total += bucket.Capacity
		}
	}

	return total, nil
}
