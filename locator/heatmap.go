package locator

import (
	"cmp"
	"iter"
	"slices"
)

// DefaultHeatmapRadius is the neighborhood half-width used when no radius is
// configured.
const DefaultHeatmapRadius = 2

// Heatmap ranks host positions by local value variation and yields them in
// descending order of that score, so high-variation ("busy") regions are
// used before flat ones. Busy regions tolerate value changes less
// perceptibly, which also gives PVD pairs larger differences and therefore
// more capacity per pair.
//
// The score of position i is the sum of absolute differences between
// host[i] and its neighbors within the configured radius. Ties are broken by
// ascending index, making the order fully deterministic for fixed content.
//
// The ranking depends on host content, so it must be computed from a host
// state that the embedding it drives will not change. Use Capture to
// materialize the order once and reuse it for both embed and extract; see
// Snapshot.
type Heatmap struct {
	radius int
}

var _ Locator = Heatmap{}

// NewHeatmap creates a Heatmap traversal with the default neighborhood
// radius.
func NewHeatmap() Heatmap {
	return Heatmap{radius: DefaultHeatmapRadius}
}

// WithRadius returns a copy of the Heatmap using the given neighborhood
// half-width. Radii below 1 are clamped to 1.
func (h Heatmap) WithRadius(radius int) Heatmap {
	if radius < 1 {
		radius = 1
	}

	return Heatmap{radius: radius}
}

// Indices returns host positions ordered by descending variation score,
// ties by ascending index. The ranking is recomputed from the host content
// on every call, so two calls over identical content produce identical
// sequences.
func (h Heatmap) Indices(host []byte) iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, idx := range h.rank(host) {
			if !yield(idx) {
				return
			}
		}
	}
}

type scoredPosition struct {
	index int
	score int
}

func (h Heatmap) rank(host []byte) []int {
	radius := h.radius
	if radius < 1 {
		radius = DefaultHeatmapRadius
	}

	scored := make([]scoredPosition, len(host))
	for i := range host {
		scored[i] = scoredPosition{index: i, score: h.score(host, i, radius)}
	}

	slices.SortFunc(scored, func(a, b scoredPosition) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}

		return cmp.Compare(a.index, b.index)
	})

	order := make([]int, len(scored))
	for i, sp := range scored {
		order[i] = sp.index
	}

	return order
}

func (h Heatmap) score(host []byte, i, radius int) int {
	total := 0
	for off := -radius; off <= radius; off++ {
		j := i + off
		if off == 0 || j < 0 || j >= len(host) {
			continue
		}

		d := int(host[i]) - int(host[j])
		if d < 0 {
			d = -d
		}
		total += d
	}

	return total
}
