package booth

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"hash"
	"io"
	"net/http"

	"golang.org/x/crypto/sha3"

	"github.com/phayes/benaloh-challenge/ballot"
	"github.com/phayes/benaloh-challenge/challenge"
)

// Verifier plays the voter's trusted device. It scans commitments off
// the booth and, on a challenge, re-runs the ballot encryption locally
// with the revealed randomness to check the booth's honesty. It holds
// no randomness source of its own; verification only ever replays.
type Verifier struct {
	// BaseURL is the booth's base URL, e.g. http://localhost:7880.
	BaseURL string

	// ElectionKey is the election public key, known to everyone.
	ElectionKey ballot.PublicKey

	// NewHash constructs the commitment hash primitive. Defaults to
	// SHA3-256, matching the machine.
	NewHash func() hash.Hash

	// Client is the HTTP client to use. Defaults to
	// http.DefaultClient.
	Client *http.Client
}

func (v *Verifier) newHash() hash.Hash {
	if v.NewHash == nil {
		return sha3.New256()
	}
	return v.NewHash()
}

func (v *Verifier) client() *http.Client {
	if v.Client == nil {
		return http.DefaultClient
	}
	return v.Client
}

// ScanCommitment fetches the booth's current commitment, the equivalent
// of scanning the QR code on the machine's screen.
func (v *Verifier) ScanCommitment(ctx context.Context) (challenge.Commitment, error) {
	var resp commitmentResponse
	if err := v.get(ctx, "/api/commitment", &resp); err != nil {
		return nil, err
	}
	com, err := hex.DecodeString(resp.Commitment)
	if err != nil {
		return nil, fmt.Errorf("decode commitment: %w", err)
	}
	return challenge.Commitment(com), nil
}

// Audit challenges the booth and verifies the revealed randomness
// against a previously scanned commitment. On success it returns the
// marked ballot the booth claims to have encrypted, so the voter can
// confirm it matches what they entered. A non-nil error wrapping
// challenge.ErrCommitmentMismatch or randomness.ErrExhausted means the
// booth cheated.
func (v *Verifier) Audit(ctx context.Context, scanned challenge.Commitment) ([]byte, error) {
	var resp ChallengeResponse
	if err := v.post(ctx, "/api/challenge", &resp); err != nil {
		return nil, err
	}

	revealed := &challenge.Revealed{Randomness: resp.Randomness}
	comp := ballot.Computation(v.ElectionKey, resp.Ballot)
	if err := challenge.CheckCommitment(v.newHash(), scanned, revealed, comp); err != nil {
		return nil, fmt.Errorf("booth failed audit: %w", err)
	}
	return resp.Ballot, nil
}

// Cast tells the booth to cast the committed ballot and returns the
// final encrypted ballot.
func (v *Verifier) Cast(ctx context.Context) ([]byte, error) {
	var resp castResponse
	if err := v.post(ctx, "/api/cast", &resp); err != nil {
		return nil, err
	}
	return resp.Ciphertext, nil
}

// Mark submits a marked ballot to the booth and returns the resulting
// commitment. In a real deployment the voter marks the ballot on the
// machine itself; this exists so demos and tests can drive the full
// conversation.
func (v *Verifier) Mark(ctx context.Context, markedBallot []byte) (challenge.Commitment, error) {
	body, err := json.Marshal(markRequest{Ballot: markedBallot})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.BaseURL+"/api/ballot", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var resp commitmentResponse
	if err := v.do(req, &resp); err != nil {
		return nil, err
	}
	com, err := hex.DecodeString(resp.Commitment)
	if err != nil {
		return nil, fmt.Errorf("decode commitment: %w", err)
	}
	return challenge.Commitment(com), nil
}

func (v *Verifier) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.BaseURL+path, nil)
	if err != nil {
		return err
	}
	return v.do(req, out)
}

func (v *Verifier) post(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.BaseURL+path, nil)
	if err != nil {
		return err
	}
	return v.do(req, out)
}

func (v *Verifier) do(req *http.Request, out any) error {
	resp, err := v.client().Do(req)
	if err != nil {
		return fmt.Errorf("booth request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("booth returned %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
