// Package errs defines the sentinel errors shared by the stegbit engines.
//
// Every failure surfaced by the bitplane and PVD engines, the locators and
// the envelope layer wraps one of these sentinels with fmt.Errorf("%w: ..."),
// adding diagnostic context such as the offending index or attempted value.
// Callers match on the sentinel with errors.Is.
package errs

import "errors"

var (
	// ErrInvalidOptions indicates a malformed configuration: a bits-per-element
	// count outside [1,8], a missing strategy, or a PVD range table that does
	// not partition the difference domain [0,255].
	ErrInvalidOptions = errors.New("invalid options")

	// ErrIndexOutOfBounds indicates the index sequence yielded a position at
	// or beyond the host buffer length (or a negative position).
	ErrIndexOutOfBounds = errors.New("index out of bounds")

	// ErrInsufficientCapacity indicates the index sequence was exhausted
	// before all payload bits were written. The payload is never silently
	// truncated.
	ErrInsufficientCapacity = errors.New("insufficient embedding capacity")

	// ErrRangeOverflow indicates a PVD pair whose adjusted difference cannot
	// stay inside the range bucket of the original difference.
	ErrRangeOverflow = errors.New("difference leaves range bucket")

	// ErrValueOverflow indicates a PVD adjustment that would push a host
	// value outside the byte domain [0,255].
	ErrValueOverflow = errors.New("adjusted value outside byte range")

	// ErrInvalidEnvelope indicates a malformed or truncated payload envelope.
	ErrInvalidEnvelope = errors.New("invalid payload envelope")

	// ErrChecksumMismatch indicates the recovered payload does not match the
	// digest recorded in its envelope.
	ErrChecksumMismatch = errors.New("payload checksum mismatch")
)
