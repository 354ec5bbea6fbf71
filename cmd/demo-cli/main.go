// Command demo-cli walks through the Benaloh challenge end to end.
//
// In local mode (the default) it plays every role in one process: the
// voting machine commits to an encrypted ballot, the "phone" audits it
// a few times, the voter re-marks, and finally casts. In booth mode
// (--booth) it drives a running cmd/booth server over HTTP instead.
//
// # Usage
//
//	go run ./cmd/demo-cli --ballot="Barack Obama" --audits=2
//	go run ./cmd/demo-cli --booth=http://localhost:7880 --ballot="Yes on 42"
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"golang.org/x/crypto/sha3"

	"github.com/phayes/benaloh-challenge/ballot"
	"github.com/phayes/benaloh-challenge/booth"
	"github.com/phayes/benaloh-challenge/challenge"
)

func main() {
	var (
		boothURL       = flag.String("booth", "", "Booth URL (runs locally if empty)")
		markedBallot   = flag.String("ballot", "Barack Obama", "The marked ballot")
		audits         = flag.Int("audits", 2, "Number of challenge rounds before casting")
		electionKeyHex = flag.String("election-key", "", "X25519 election public key (hex, required with --booth)")
	)
	flag.Parse()

	var err error
	if *boothURL == "" {
		err = runLocal(*markedBallot, *audits)
	} else {
		err = runAgainstBooth(*boothURL, *electionKeyHex, *markedBallot, *audits)
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// runLocal plays machine, voter, and phone in one process.
func runLocal(markedBallot string, audits int) error {
	electionPub, electionPriv, err := ballot.GenerateKeyPair()
	if err != nil {
		return fmt.Errorf("generate election key: %w", err)
	}
	fmt.Printf("Election public key:  %s\n", hex.EncodeToString(electionPub[:]))

	comp := ballot.Computation(electionPub, []byte(markedBallot))
	ch := challenge.New(rand.Reader, comp)
	defer ch.Close()

	for i := 0; i < audits; i++ {
		com, err := ch.Commit(sha3.New256())
		if err != nil {
			return fmt.Errorf("commit: %w", err)
		}
		fmt.Printf("Round %d commitment:   %s\n", i+1, com)

		revealed, err := ch.Challenge()
		if err != nil {
			return fmt.Errorf("challenge: %w", err)
		}

		// The phone's half: replay and compare.
		if err := challenge.CheckCommitment(sha3.New256(), com, revealed, comp); err != nil {
			return fmt.Errorf("audit round %d: %w", i+1, err)
		}
		revealed.Zero()
		fmt.Printf("Round %d audit:        machine honest\n", i+1)
	}

	com, err := ch.Commit(sha3.New256())
	if err != nil {
		return fmt.Errorf("final commit: %w", err)
	}
	fmt.Printf("Final commitment:     %s\n", com)

	ciphertext, err := ch.Finalize()
	if err != nil {
		return fmt.Errorf("cast: %w", err)
	}
	fmt.Printf("Cast ballot:          %s\n", hex.EncodeToString(ciphertext))

	// Demo tally: the election authority decrypts the cast ballot.
	enc, err := ballot.Parse(ciphertext)
	if err != nil {
		return fmt.Errorf("parse cast ballot: %w", err)
	}
	plaintext, err := ballot.Decrypt(electionPriv, enc)
	if err != nil {
		return fmt.Errorf("tally decrypt: %w", err)
	}
	fmt.Printf("Tally reads:          %s\n", plaintext)
	return nil
}

// runAgainstBooth drives a running booth server as the voter's phone.
func runAgainstBooth(boothURL, electionKeyHex, markedBallot string, audits int) error {
	if electionKeyHex == "" {
		return fmt.Errorf("--election-key is required with --booth")
	}
	keyBytes, err := hex.DecodeString(electionKeyHex)
	if err != nil {
		return fmt.Errorf("invalid election key hex: %w", err)
	}
	var electionKey ballot.PublicKey
	if len(keyBytes) != len(electionKey) {
		return fmt.Errorf("expected %d key bytes, got %d", len(electionKey), len(keyBytes))
	}
	copy(electionKey[:], keyBytes)

	ctx := context.Background()
	phone := &booth.Verifier{BaseURL: boothURL, ElectionKey: electionKey}

	for i := 0; i < audits; i++ {
		com, err := phone.Mark(ctx, []byte(markedBallot))
		if err != nil {
			return fmt.Errorf("mark ballot: %w", err)
		}
		fmt.Printf("Round %d commitment:   %s\n", i+1, com)

		audited, err := phone.Audit(ctx, com)
		if err != nil {
			return fmt.Errorf("audit round %d: %w", i+1, err)
		}
		fmt.Printf("Round %d audit:        booth honest, ballot reads %q\n", i+1, audited)
	}

	com, err := phone.Mark(ctx, []byte(markedBallot))
	if err != nil {
		return fmt.Errorf("mark ballot: %w", err)
	}
	fmt.Printf("Final commitment:     %s\n", com)

	ciphertext, err := phone.Cast(ctx)
	if err != nil {
		return fmt.Errorf("cast: %w", err)
	}
	fmt.Printf("Cast ballot:          %s\n", hex.EncodeToString(ciphertext))
	return nil
}
