// Package ballot implements the canonical untrusted computation for the
// Benaloh challenge: encrypting a marked ballot to an election public
// key.
//
// The construction is ECIES over X25519 with HKDF key derivation and
// AES-256-GCM. Unlike a conventional ECIES implementation, Encrypt draws
// all of its randomness — the ephemeral scalar and the GCM nonce — from
// a caller-supplied source rather than crypto/rand directly. Run under a
// recording source the encryption is auditable; run under a replay
// source it is exactly reproducible, which is what lets a trusted device
// verify a voting machine's commitment.
package ballot
