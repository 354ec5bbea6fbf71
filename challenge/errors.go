package challenge

import "errors"

var (
	// ErrNotCommitted is returned when Challenge or Finalize is called
	// with no committed result to act on. The caller must Commit first.
	ErrNotCommitted = errors.New("challenge: no committed result")

	// ErrFinalized is returned when a challenge is used after Finalize.
	// A finalized challenge is spent; start a new one for the next voter.
	ErrFinalized = errors.New("challenge: already finalized")

	// ErrCommitmentMismatch is returned by CheckCommitment when the
	// recomputed digest differs from the one the untrusted device
	// presented. This is not a bug condition: it is the protocol's
	// "the device cheated" signal and should be treated as actionable.
	ErrCommitmentMismatch = errors.New("challenge: commitments do not match")
)
