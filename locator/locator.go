// Package locator decides which host positions participate in embedding,
// and in what order.
//
// A Locator produces a lazy, restartable sequence of indices into a host
// buffer. The embedding engines consume that sequence in one forward pass:
// the bitplane engine one index per element, the PVD engine two at a time to
// form value pairs. The locator's order is part of the embedding contract —
// extraction must replay the exact sequence used at embed time, so every
// implementation is deterministic for a fixed host and configuration.
//
// Three traversals are provided: Linear walks the host front to back,
// PositionList replays a caller-supplied index list verbatim, and Heatmap
// ranks positions by local value variation so busy regions are used first.
// Because Heatmap reads host content, destructive embedding would change its
// ranking; Capture materializes the order once, fingerprints the host, and
// can then drive both embed and extract.
package locator

import "iter"

// Locator produces the ordered index sequence for one host buffer.
//
// Yielded indices are expected to lie in [0, len(host)); violations are not
// checked here and surface as the consuming engine's index error. The
// returned sequence is restartable: ranging over it again replays the same
// order, provided the host content relevant to the locator is unchanged.
type Locator interface {
	// Indices returns the position sequence for the given host. Linear and
	// PositionList only read len(host); Heatmap reads the content.
	Indices(host []byte) iter.Seq[int]
}

// Linear traverses every host position in ascending order: 0, 1, ...,
// len(host)-1.
type Linear struct{}

var _ Locator = Linear{}

// Indices returns the identity traversal over the host.
func (Linear) Indices(host []byte) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := range len(host) {
			if !yield(i) {
				return
			}
		}
	}
}

// PositionList replays a caller-supplied index list in its given order.
//
// Duplicates and gaps are permitted and deliberately uncorrected: embedding
// through a repeated index is last-write-wins, and extraction re-reads
// whatever an earlier write left behind. Out-of-range entries surface as the
// engine's index error at consumption time, since the host length is unknown
// until the sequence is consumed.
type PositionList struct {
	positions []int
}

var _ Locator = PositionList{}

// NewPositionList creates a PositionList over a copy of the given positions.
func NewPositionList(positions []int) PositionList {
	cloned := make([]int, len(positions))
	copy(cloned, positions)

	return PositionList{positions: cloned}
}

// Indices returns the supplied positions in their original order.
// The host is only consulted by the consuming engine, never here.
func (p PositionList) Indices(_ []byte) iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, idx := range p.positions {
			if !yield(idx) {
				return
			}
		}
	}
}
