// Package cmd provides the Benaloh challenge demo binaries.
//
// # Commands
//
// booth: Runs the demo voting booth HTTP server (the untrusted device).
//
//	go run ./cmd/booth --addr=:7880 --election-key=<hex>
//
// demo-cli: Walks through the full protocol in one process — commit,
// challenge, verify on the "phone", re-commit, cast.
//
//	go run ./cmd/demo-cli --ballot="Barack Obama"
//	go run ./cmd/demo-cli --booth=http://localhost:7880 --audits=3
package cmd
