// Command booth runs the demo voting booth: an HTTP server playing the
// untrusted device in the Benaloh challenge.
//
// The booth encrypts marked ballots to the election public key and
// serves commitments that a verifier (see cmd/demo-cli) can scan and
// audit. If no election key is given, a fresh key pair is generated and
// the private key printed, so a demo tally can decrypt cast ballots.
//
// # Usage
//
//	go run ./cmd/booth --addr=:7880
//	go run ./cmd/booth --addr=:7880 --election-key=<hex public key>
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phayes/benaloh-challenge/ballot"
	"github.com/phayes/benaloh-challenge/booth"
)

func main() {
	var (
		addr           = flag.String("addr", ":7880", "HTTP listen address")
		electionKeyHex = flag.String("election-key", "", "X25519 election public key (hex, generates if empty)")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	electionKey, err := loadOrGenerateElectionKey(*electionKeyHex)
	if err != nil {
		fmt.Printf("Election key error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Election public key: %s\n", hex.EncodeToString(electionKey[:]))

	machine := booth.NewMachine(booth.MachineConfig{
		ElectionKey: electionKey,
		Log:         log,
	})

	srv, err := booth.NewServer(&booth.ServerConfig{
		ListenAddr:               *addr,
		Log:                      log,
		GracefulShutdownDuration: 10 * time.Second,
		ReadTimeout:              5 * time.Second,
		WriteTimeout:             30 * time.Second,
	}, booth.NewHandler(machine, log))
	if err != nil {
		fmt.Printf("Server error: %v\n", err)
		os.Exit(1)
	}

	srv.RunInBackground()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	machine.Reset()
	srv.Shutdown()
}

func loadOrGenerateElectionKey(hexKey string) (ballot.PublicKey, error) {
	var key ballot.PublicKey
	if hexKey == "" {
		pub, priv, err := ballot.GenerateKeyPair()
		if err != nil {
			return key, err
		}
		fmt.Printf("Election private key (demo only, keep safe): %s\n", hex.EncodeToString(priv[:]))
		return pub, nil
	}

	keyBytes, err := hex.DecodeString(hexKey)
	if err != nil {
		return key, fmt.Errorf("invalid hex: %w", err)
	}
	if len(keyBytes) != len(key) {
		return key, fmt.Errorf("expected %d key bytes, got %d", len(key), len(keyBytes))
	}
	copy(key[:], keyBytes)
	return key, nil
}
