package challenge

import (
	"errors"
	"fmt"
	"hash"

	"github.com/phayes/benaloh-challenge/randomness"
)

// CheckCommitment verifies a commitment on the trusted device. It
// re-runs the computation with the revealed random factors replayed in
// place of a genuine source, recomputes the commitment over the
// serialized result, and compares in constant time.
//
// Returns nil only on an exact match. Fails with ErrCommitmentMismatch
// if the digests differ, or with an error wrapping
// randomness.ErrExhausted if the computation drew more randomness than
// was revealed — either way, the untrusted device did not do what it
// committed to.
//
// The function is stateless; hold no Challenge on the verifying device.
func CheckCommitment(h hash.Hash, commitment Commitment, revealed *Revealed, comp Computation) error {
	replay := randomness.NewReplaySource(revealed.Randomness)
	result, err := comp.Run(replay)
	if err != nil {
		if errors.Is(err, randomness.ErrExhausted) {
			return err
		}
		return fmt.Errorf("replayed computation: %w", err)
	}
	if !Compute(h, result).Equal(commitment) {
		return ErrCommitmentMismatch
	}
	return nil
}
