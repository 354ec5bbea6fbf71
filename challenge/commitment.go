package challenge

import (
	"crypto/subtle"
	"encoding/hex"
	"hash"
)

// Commitment is the one-way digest binding an untrusted device to a
// computation result before the device knows whether it will be audited.
// It has no identity of its own; it is always recomputed from the
// serialized result, never mutated.
type Commitment []byte

// Compute derives the commitment to a serialized result using the given
// hash primitive. The hash is reset first, so a single hasher may be
// reused across commit cycles. Deterministic: identical inputs yield
// identical digests.
func Compute(h hash.Hash, serialized []byte) Commitment {
	h.Reset()
	h.Write(serialized)
	return Commitment(h.Sum(nil))
}

// Equal compares two commitments in constant time.
func (c Commitment) Equal(other Commitment) bool {
	return subtle.ConstantTimeCompare(c, other) == 1
}

// String returns the hex encoding of the commitment, the form a voter
// would scan off a screen or QR code.
func (c Commitment) String() string {
	return hex.EncodeToString(c)
}
