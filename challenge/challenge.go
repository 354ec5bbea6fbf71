package challenge

import (
	"fmt"
	"hash"
	"io"

	"github.com/phayes/benaloh-challenge/randomness"
)

// Computation is the untrusted computation under audit: any routine
// that is deterministic apart from the randomness it draws from the
// source it is handed. It must tolerate being run multiple times, since
// verification re-runs it on a separate device with replayed randomness.
type Computation interface {
	// Run executes the computation, drawing all of its randomness from
	// src, and returns the serialized result.
	Run(src io.Reader) ([]byte, error)
}

// ComputationFunc adapts a plain function to the Computation interface.
type ComputationFunc func(src io.Reader) ([]byte, error)

// Run calls f.
func (f ComputationFunc) Run(src io.Reader) ([]byte, error) {
	return f(src)
}

// Revealed is the disclosure handed to the verifier after a challenge:
// the random factors recorded while the committed result was produced.
// The associated result is implicit; the verifier re-runs the
// computation with this randomness and must arrive at the same
// commitment. Ownership of the record passes fully to the holder of the
// Revealed value, including the duty to zero it when done.
type Revealed struct {
	Randomness randomness.Record
}

// Zero destroys the revealed random factors.
func (r *Revealed) Zero() {
	r.Randomness.Zero()
}

// commitCycle holds the state of one commit: the result and the record
// of randomness that produced it. The two travel together; a result
// without its record is unrepresentable.
type commitCycle struct {
	result []byte
	record randomness.Record
}

func (cy *commitCycle) zero() {
	for i := range cy.result {
		cy.result[i] = 0
	}
	cy.record.Zero()
}

// Challenge orchestrates commit, challenge, and finalize for one
// untrusted computation. It borrows the genuine randomness source for
// its lifetime and exclusively owns the current cycle's result and
// randomness record between operations.
//
// A Challenge is not safe for concurrent use; the protocol is a strictly
// sequential conversation with one voter at a time, and callers needing
// concurrency must serialize externally.
type Challenge struct {
	src       io.Reader
	comp      Computation
	cycle     *commitCycle // nil while uncommitted
	finalized bool
}

// New creates a challenge around a genuine randomness source (typically
// crypto/rand.Reader on the untrusted device) and the computation under
// audit.
func New(src io.Reader, comp Computation) *Challenge {
	return &Challenge{src: src, comp: comp}
}

// Commit runs the untrusted computation with a fresh recording source,
// stores the result together with the recorded randomness, and returns
// the commitment to the serialized result under the given hash
// primitive.
//
// Committing again before a challenge or finalize starts a fresh cycle:
// the previous result and record are zeroed and discarded. This is
// deliberate — it is how a voter revises their ballot and re-commits.
// If the computation itself fails, the error propagates unchanged, the
// freshly recorded bytes are destroyed, and the previous cycle (if any)
// is left untouched.
func (c *Challenge) Commit(h hash.Hash) (Commitment, error) {
	if c.finalized {
		return nil, ErrFinalized
	}
	rec := randomness.NewRecordingSource(c.src)
	result, err := c.comp.Run(rec)
	if err != nil {
		rec.Zero()
		return nil, fmt.Errorf("untrusted computation: %w", err)
	}
	if c.cycle != nil {
		c.cycle.zero()
	}
	c.cycle = &commitCycle{result: result, record: rec.Drain()}
	return Compute(h, result), nil
}

// Challenge reveals the random factors behind the current commitment and
// invalidates the committed result: the stored result is zeroed and the
// record is handed out with no copy retained, so the same cycle can
// never also be finalized. Transitions back to uncommitted; fails with
// ErrNotCommitted if there is nothing to challenge.
func (c *Challenge) Challenge() (*Revealed, error) {
	if c.finalized {
		return nil, ErrFinalized
	}
	if c.cycle == nil {
		return nil, ErrNotCommitted
	}
	cy := c.cycle
	c.cycle = nil
	for i := range cy.result {
		cy.result[i] = 0
	}
	return &Revealed{Randomness: cy.record}, nil
}

// Finalize accepts the committed result as the real output, zeroing the
// randomness record so it can never be revealed afterwards. The
// challenge is spent: all further operations fail with ErrFinalized.
// Fails with ErrNotCommitted if there is nothing to finalize.
func (c *Challenge) Finalize() ([]byte, error) {
	if c.finalized {
		return nil, ErrFinalized
	}
	if c.cycle == nil {
		return nil, ErrNotCommitted
	}
	cy := c.cycle
	c.cycle = nil
	c.finalized = true
	cy.record.Zero()
	return cy.result, nil
}

// Close destroys any retained result and randomness record. Call it
// (typically via defer) on every challenge that might be dropped before
// Finalize, so an abandoned cycle's secrets do not linger in memory.
// Safe to call multiple times and after any operation.
func (c *Challenge) Close() error {
	if c.cycle != nil {
		c.cycle.zero()
		c.cycle = nil
	}
	return nil
}
