package pvd

import (
	"fmt"
	"math/bits"

	"github.com/stegbit/stegbit/errs"
)

// Range is one bucket of the difference domain: pair differences whose
// magnitude falls in [Lo, Hi] carry Capacity payload bits.
type Range struct {
	Lo       int
	Hi       int
	Capacity int
}

// Width returns the number of difference magnitudes the range covers.
func (r Range) Width() int {
	return r.Hi - r.Lo + 1
}

// RangeTable is an ordered, contiguous, non-overlapping partition of the
// difference domain [0,255]. It is immutable once constructed and safe to
// share across calls and goroutines.
type RangeTable struct {
	ranges []Range
}

// NewRangeTable validates and constructs a range table.
//
// The ranges must be supplied in ascending order, start at 0, end at 255,
// and be contiguous with no gaps or overlaps. Each capacity must be a
// non-negative integer with 2^capacity <= width, otherwise a substituted
// difference could leave its bucket after quantization. Violations return
// errs.ErrInvalidOptions.
func NewRangeTable(ranges ...Range) (RangeTable, error) {
	if len(ranges) == 0 {
		return RangeTable{}, fmt.Errorf("%w: range table must not be empty", errs.ErrInvalidOptions)
	}

	next := 0
	for i, r := range ranges {
		if r.Lo != next {
			return RangeTable{}, fmt.Errorf("%w: range %d starts at %d, expected %d (ranges must be contiguous from 0)",
				errs.ErrInvalidOptions, i, r.Lo, next)
		}
		if r.Hi < r.Lo {
			return RangeTable{}, fmt.Errorf("%w: range %d is inverted [%d,%d]", errs.ErrInvalidOptions, i, r.Lo, r.Hi)
		}
		if r.Hi > 255 {
			return RangeTable{}, fmt.Errorf("%w: range %d ends at %d, beyond the byte difference domain",
				errs.ErrInvalidOptions, i, r.Hi)
		}
		if r.Capacity < 0 {
			return RangeTable{}, fmt.Errorf("%w: range %d has negative capacity %d", errs.ErrInvalidOptions, i, r.Capacity)
		}
		if r.Capacity > 0 && (r.Capacity > 8 || 1<<r.Capacity > r.Width()) {
			return RangeTable{}, fmt.Errorf("%w: range %d capacity %d exceeds its width %d (need 2^capacity <= width)",
				errs.ErrInvalidOptions, i, r.Capacity, r.Width())
		}
		next = r.Hi + 1
	}

	if next != 256 {
		return RangeTable{}, fmt.Errorf("%w: range table ends at %d, must cover through 255", errs.ErrInvalidOptions, next-1)
	}

	cloned := make([]Range, len(ranges))
	copy(cloned, ranges)

	return RangeTable{ranges: cloned}, nil
}

// DefaultRangeTable returns the classical PVD partition: narrow low-capacity
// buckets near zero difference, exponentially widening buckets toward 255.
// Capacities are floor(log2(width)) per bucket.
func DefaultRangeTable() RangeTable {
	table, err := NewRangeTable(
		Range{Lo: 0, Hi: 1, Capacity: 1},
		Range{Lo: 2, Hi: 3, Capacity: 1},
		Range{Lo: 4, Hi: 7, Capacity: 2},
		Range{Lo: 8, Hi: 15, Capacity: 3},
		Range{Lo: 16, Hi: 31, Capacity: 4},
		Range{Lo: 32, Hi: 63, Capacity: 5},
		Range{Lo: 64, Hi: 127, Capacity: 6},
		Range{Lo: 128, Hi: 255, Capacity: 7},
	)
	if err != nil {
		// The default table is a compile-time constant in all but syntax.
		panic(err)
	}

	return table
}

// CapacityFor returns floor(log2(width)): the largest capacity a range of
// the given width can legally carry. Helper for building custom tables.
func CapacityFor(width int) int {
	if width <= 1 {
		return 0
	}

	return bits.Len(uint(width)) - 1
}

// Ranges returns a copy of the table's buckets in ascending order.
func (t RangeTable) Ranges() []Range {
	out := make([]Range, len(t.ranges))
	copy(out, t.ranges)

	return out
}

// lookup returns the bucket containing the given difference magnitude.
// Magnitudes outside [0,255] cannot occur for byte pairs.
func (t RangeTable) lookup(magnitude int) (Range, bool) {
	for _, r := range t.ranges {
		if magnitude >= r.Lo && magnitude <= r.Hi {
			return r, true
		}
	}

	return Range{}, false
}

func (t RangeTable) valid() bool {
	return len(t.ranges) > 0
}
