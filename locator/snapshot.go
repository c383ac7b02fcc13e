package locator

import (
	"iter"
	"slices"

	"github.com/stegbit/stegbit/internal/hash"
)

// Snapshot is a materialized index sequence bound to the host content it was
// computed from.
//
// Content-dependent locators such as Heatmap must not be re-ranked between
// an embed and its matching extract: the embed mutates the host, which would
// reorder the ranking and break the round trip. Capture freezes the order
// once and records an xxHash64 fingerprint of the host at ranking time, so
// misuse (re-capturing after a destructive embed, or extracting from the
// wrong buffer family) is detectable via Matches.
//
// Snapshot itself implements Locator and ignores the host argument, so it
// can be passed anywhere a live locator is accepted.
type Snapshot struct {
	order       []int
	fingerprint uint64
}

var _ Locator = (*Snapshot)(nil)

// Capture materializes loc's index order for the given host and fingerprints
// the host content.
func Capture(loc Locator, host []byte) *Snapshot {
	order := slices.Collect(loc.Indices(host))

	return &Snapshot{
		order:       order,
		fingerprint: hash.Sum64(host),
	}
}

// Indices replays the captured order. The host argument is ignored; the
// order was fixed at capture time.
func (s *Snapshot) Indices(_ []byte) iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, idx := range s.order {
			if !yield(idx) {
				return
			}
		}
	}
}

// Len returns the number of captured positions.
func (s *Snapshot) Len() int {
	return len(s.order)
}

// Fingerprint returns the xxHash64 of the host content at capture time.
func (s *Snapshot) Fingerprint() uint64 {
	return s.fingerprint
}

// Matches reports whether the given host still has the content this snapshot
// was captured from. A mismatch after embedding is expected; a mismatch
// before embedding means the snapshot was taken from a different buffer.
func (s *Snapshot) Matches(host []byte) bool {
	return hash.Sum64(host) == s.fingerprint
}
