// Package randomness provides the recording and replaying random sources
// that the Benaloh challenge protocol is built on.
//
// A randomness source is any io.Reader that fills buffers with random
// bytes (crypto/rand.Reader being the usual genuine source). The package
// provides two wrappers around that capability:
//
//   - RecordingSource wraps a genuine source and captures every byte it
//     hands out, in request order, so the exact random inputs of an
//     otherwise-deterministic computation can later be disclosed.
//   - ReplaySource feeds a previously captured Record back to the same
//     computation on a separate device, reproducing its output exactly.
//
// A ReplaySource never falls back to real randomness: once its record is
// exhausted, further reads fail with ErrExhausted. A replayed computation
// that asks for more randomness than was recorded is structurally
// different from the one that produced the record, and that is a
// verification failure, not something to paper over.
//
// Records hold secret material (the random factors of an encryption, for
// example). Every component that retires a Record is expected to call
// Zero on it first.
package randomness
