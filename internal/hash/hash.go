package hash

import "github.com/cespare/xxhash/v2"

// Sum64 computes the xxHash64 of the given bytes.
//
// Used for host-content fingerprints (locator snapshots) and payload
// integrity digests (envelopes). Equality comparison only; the hash is not
// cryptographic.
func Sum64(data []byte) uint64 {
	return xxhash.Sum64(data)
}
