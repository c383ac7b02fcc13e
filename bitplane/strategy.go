package bitplane

// Strategy is a mutually inverse pair of per-element transforms: embed
// writes a group of payload bits into a host value, extract reads the same
// group back.
//
// Strategies form a small closed set rather than arbitrary function values:
// the stock LSB and MSB variants are guaranteed inverse pairs, and custom
// pairs are constructed explicitly through NewStrategy so the invertibility
// responsibility is visible at the call site. The engine never verifies a
// custom pair; extract(embed(v, b)) == b is the caller's contract.
type Strategy struct {
	name    string
	embed   func(value byte, bits byte, width int) byte
	extract func(value byte, width int) byte
}

// LSB replaces (and reads back) the low width bits of each host value,
// leaving the high bits untouched. This is the classical least-noticeable
// channel for most carriers.
var LSB = Strategy{
	name: "LSB",
	embed: func(value byte, bits byte, width int) byte {
		mask := byte(1<<width - 1)
		return value&^mask | bits&mask
	},
	extract: func(value byte, width int) byte {
		return value & byte(1<<width-1)
	},
}

// MSB replaces (and reads back) the high width bits of each host value,
// leaving the low bits untouched.
var MSB = Strategy{
	name: "MSB",
	embed: func(value byte, bits byte, width int) byte {
		shift := 8 - width
		mask := byte(1<<width-1) << shift

		return value&^mask | bits<<shift&mask
	},
	extract: func(value byte, width int) byte {
		return value >> (8 - width) & byte(1<<width-1)
	},
}

// NewStrategy creates a custom strategy from an explicit forward/inverse
// pair.
//
// embed receives the original host value and a group of payload bits
// right-aligned in a byte (the group width is Options.BitsPerElement) and
// returns the new host value. extract must return exactly the group embed
// stored, right-aligned. The pair must be exact inverses under these rules;
// no verification is performed.
func NewStrategy(name string, embed func(value byte, bits byte, width int) byte, extract func(value byte, width int) byte) Strategy {
	return Strategy{name: name, embed: embed, extract: extract}
}

// Name returns the strategy's display name.
func (s Strategy) Name() string {
	return s.name
}

func (s Strategy) valid() bool {
	return s.embed != nil && s.extract != nil
}
