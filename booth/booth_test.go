package booth

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phayes/benaloh-challenge/ballot"
	"github.com/phayes/benaloh-challenge/challenge"
	"github.com/phayes/benaloh-challenge/testutil"
)

func newTestMachine(t *testing.T) (*Machine, ballot.PrivateKey) {
	t.Helper()
	pub, priv, err := ballot.GenerateKeyPair()
	require.NoError(t, err)

	machine := NewMachine(MachineConfig{
		ElectionKey: pub,
		Randomness:  testutil.NewSeededSource([]byte("machine-seed")),
		Log:         slog.Default(),
	})
	return machine, priv
}

func TestMachineMarkChallengeVerify(t *testing.T) {
	machine, _ := newTestMachine(t)

	com, err := machine.Mark([]byte("Barack Obama"))
	require.NoError(t, err)

	got, err := machine.Commitment()
	require.NoError(t, err)
	require.True(t, com.Equal(got))

	resp, err := machine.Challenge()
	require.NoError(t, err)
	require.Equal(t, []byte("Barack Obama"), resp.Ballot)

	// The phone's half, locally.
	err = challenge.CheckCommitment(
		machine.cfg.NewHash(), com,
		&challenge.Revealed{Randomness: resp.Randomness},
		ballot.Computation(machine.cfg.ElectionKey, resp.Ballot))
	require.NoError(t, err)

	// The challenged commitment is void.
	_, err = machine.Commitment()
	require.ErrorIs(t, err, ErrNoBallot)
	_, err = machine.Cast()
	require.ErrorIs(t, err, challenge.ErrNotCommitted)
}

func TestMachineRemarkRevisesBallot(t *testing.T) {
	machine, priv := newTestMachine(t)

	com1, err := machine.Mark([]byte("first choice"))
	require.NoError(t, err)
	com2, err := machine.Mark([]byte("second choice"))
	require.NoError(t, err)
	require.False(t, com1.Equal(com2))

	ciphertext, err := machine.Cast()
	require.NoError(t, err)

	enc, err := ballot.Parse(ciphertext)
	require.NoError(t, err)
	plaintext, err := ballot.Decrypt(priv, enc)
	require.NoError(t, err)
	require.Equal(t, []byte("second choice"), plaintext)
}

func TestMachineResetsAfterCast(t *testing.T) {
	machine, _ := newTestMachine(t)

	_, err := machine.Mark([]byte("ballot one"))
	require.NoError(t, err)
	_, err = machine.Cast()
	require.NoError(t, err)

	_, err = machine.Cast()
	require.ErrorIs(t, err, ErrNoBallot)

	// Next voter gets a fresh session.
	_, err = machine.Mark([]byte("ballot two"))
	require.NoError(t, err)
	_, err = machine.Cast()
	require.NoError(t, err)
}

func TestMachineOperationsBeforeMark(t *testing.T) {
	machine, _ := newTestMachine(t)

	_, err := machine.Commitment()
	assert.ErrorIs(t, err, ErrNoBallot)
	_, err = machine.Challenge()
	assert.ErrorIs(t, err, ErrNoBallot)
	_, err = machine.Cast()
	assert.ErrorIs(t, err, ErrNoBallot)
}

// newTestBooth serves a machine over HTTP and returns a verifier
// pointed at it.
func newTestBooth(t *testing.T) (*Verifier, ballot.PrivateKey) {
	t.Helper()
	machine, priv := newTestMachine(t)

	router := chi.NewRouter()
	NewHandler(machine, slog.Default()).RegisterRoutes(router)
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)

	return &Verifier{
		BaseURL:     ts.URL,
		ElectionKey: machine.cfg.ElectionKey,
		Client:      ts.Client(),
	}, priv
}

func TestEndToEndAuditThenCast(t *testing.T) {
	phone, priv := newTestBooth(t)
	ctx := context.Background()

	// Two audit rounds: mark, scan, challenge, verify.
	for i := 0; i < 2; i++ {
		com, err := phone.Mark(ctx, []byte("Barack Obama"))
		require.NoError(t, err)

		scanned, err := phone.ScanCommitment(ctx)
		require.NoError(t, err)
		require.True(t, com.Equal(scanned))

		audited, err := phone.Audit(ctx, scanned)
		require.NoError(t, err)
		require.Equal(t, []byte("Barack Obama"), audited)
	}

	// Satisfied, the voter re-marks and casts.
	_, err := phone.Mark(ctx, []byte("Barack Obama"))
	require.NoError(t, err)
	ciphertext, err := phone.Cast(ctx)
	require.NoError(t, err)

	enc, err := ballot.Parse(ciphertext)
	require.NoError(t, err)
	plaintext, err := ballot.Decrypt(priv, enc)
	require.NoError(t, err)
	require.Equal(t, []byte("Barack Obama"), plaintext)
}

func TestEndToEndDetectsTamperedCommitment(t *testing.T) {
	phone, _ := newTestBooth(t)
	ctx := context.Background()

	com, err := phone.Mark(ctx, []byte("Barack Obama"))
	require.NoError(t, err)

	// Simulate a cheating booth by corrupting what the voter scanned.
	tampered := append(challenge.Commitment(nil), com...)
	tampered[5] ^= 0x40

	_, err = phone.Audit(ctx, tampered)
	require.ErrorIs(t, err, challenge.ErrCommitmentMismatch)
}

func TestEndToEndProtocolErrors(t *testing.T) {
	phone, _ := newTestBooth(t)
	ctx := context.Background()

	// Nothing marked yet: scanning and casting are protocol violations.
	_, err := phone.ScanCommitment(ctx)
	require.Error(t, err)
	_, err = phone.Cast(ctx)
	require.Error(t, err)

	// Challenged commitment cannot be cast without a fresh mark.
	_, err = phone.Mark(ctx, []byte("ballot"))
	require.NoError(t, err)
	scanned, err := phone.ScanCommitment(ctx)
	require.NoError(t, err)
	_, err = phone.Audit(ctx, scanned)
	require.NoError(t, err)
	_, err = phone.Cast(ctx)
	require.Error(t, err)
}
