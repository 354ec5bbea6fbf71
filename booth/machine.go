package booth

import (
	"crypto/rand"
	"errors"
	"hash"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/crypto/sha3"

	"github.com/phayes/benaloh-challenge/ballot"
	"github.com/phayes/benaloh-challenge/challenge"
)

// ErrNoBallot is returned when the booth is asked for a commitment,
// challenge, or cast before any ballot has been marked.
var ErrNoBallot = errors.New("booth: no ballot marked")

// MachineConfig configures a voting machine.
type MachineConfig struct {
	// ElectionKey is the election public key ballots are encrypted to.
	ElectionKey ballot.PublicKey

	// Randomness is the machine's genuine entropy source. Defaults to
	// crypto/rand.Reader.
	Randomness io.Reader

	// NewHash constructs the commitment hash primitive. Defaults to
	// SHA3-256.
	NewHash func() hash.Hash

	// Log is the structured logger for machine operations.
	Log *slog.Logger
}

// Machine is the untrusted device: it encrypts marked ballots, presents
// commitments, and answers challenges or casts. One machine serves one
// voter at a time; operations are serialized internally.
type Machine struct {
	cfg MachineConfig

	mu         sync.Mutex
	ch         *challenge.Challenge
	marked     []byte
	commitment challenge.Commitment
}

// NewMachine creates a voting machine.
func NewMachine(cfg MachineConfig) *Machine {
	if cfg.Randomness == nil {
		cfg.Randomness = rand.Reader
	}
	if cfg.NewHash == nil {
		cfg.NewHash = func() hash.Hash { return sha3.New256() }
	}
	if cfg.Log == nil {
		cfg.Log = slog.Default()
	}
	return &Machine{cfg: cfg}
}

// Mark records the voter's marked ballot, encrypts it, and returns the
// commitment the voter should scan before deciding to cast or
// challenge. Marking again revises the ballot and re-commits, starting
// a fresh cycle with fresh randomness.
func (m *Machine) Mark(markedBallot []byte) (challenge.Commitment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ch == nil {
		// The computation reads the machine's current marked ballot, so
		// one challenge serves the whole mark/re-mark conversation.
		m.ch = challenge.New(m.cfg.Randomness, challenge.ComputationFunc(
			func(src io.Reader) ([]byte, error) {
				return ballot.Computation(m.cfg.ElectionKey, m.marked).Run(src)
			}))
	}
	m.marked = append(m.marked[:0], markedBallot...)

	com, err := m.ch.Commit(m.cfg.NewHash())
	if err != nil {
		return nil, err
	}
	m.commitment = com
	m.cfg.Log.Info("ballot marked", "commitment", com.String())
	return com, nil
}

// Commitment returns the commitment for the currently marked ballot.
func (m *Machine) Commitment() (challenge.Commitment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.commitment == nil {
		return nil, ErrNoBallot
	}
	return m.commitment, nil
}

// ChallengeResponse is what the machine transmits to the voter's phone
// on a challenge: the marked ballot and the random factors used to
// encrypt it.
type ChallengeResponse struct {
	Ballot     []byte `json:"ballot"`
	Randomness []byte `json:"randomness"`
}

// Challenge reveals the random factors behind the current commitment,
// voiding it. The voter must mark again (or re-mark) before casting.
func (m *Machine) Challenge() (*ChallengeResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ch == nil {
		return nil, ErrNoBallot
	}
	revealed, err := m.ch.Challenge()
	if err != nil {
		return nil, err
	}
	m.commitment = nil
	m.cfg.Log.Info("commitment challenged, randomness revealed")
	return &ChallengeResponse{
		Ballot:     append([]byte(nil), m.marked...),
		Randomness: revealed.Randomness,
	}, nil
}

// Cast finalizes the current commitment and returns the encrypted
// ballot, permanently discarding the random factors. The machine then
// resets for the next voter.
func (m *Machine) Cast() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ch == nil {
		return nil, ErrNoBallot
	}
	ciphertext, err := m.ch.Finalize()
	if err != nil {
		return nil, err
	}
	m.cfg.Log.Info("ballot cast", "commitment", m.commitment.String())

	// Session over: the finalized challenge is spent.
	m.ch = nil
	m.marked = nil
	m.commitment = nil
	return ciphertext, nil
}

// Reset abandons any in-progress session, destroying its secrets.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ch != nil {
		m.ch.Close()
		m.ch = nil
	}
	m.marked = nil
	m.commitment = nil
}
