// Package challenge implements the Benaloh challenge, an interactive
// protocol for auditing an untrusted device's randomized computation
// without learning the secret randomness behind an accepted output.
//
// The canonical setting is an electronic voting machine. The machine
// encrypts a marked ballot using random factors and presents a one-way
// hash of the ciphertext (the commitment) before it knows whether the
// voter will cast or challenge. On a challenge the machine must reveal
// the random factors it used, and a separate trusted device re-runs the
// encryption with those factors to check that the commitment was honest.
// Revealing the factors invalidates the ciphertext as a castable vote,
// so the machine can never both pass an audit and cast a different
// ciphertext than it committed to. A machine that cheats therefore risks
// detection on every single commitment.
//
// The flow on the untrusted device:
//
//	ch := challenge.New(rand.Reader, computation)
//	defer ch.Close()
//
//	com, err := ch.Commit(sha3.New256())    // run computation, get commitment
//	revealed, err := ch.Challenge()         // audit: reveal random factors
//	com, err = ch.Commit(sha3.New256())     // fresh cycle after an audit
//	result, err := ch.Finalize()            // accept: discard random factors
//
// And on the trusted device:
//
//	err := challenge.CheckCommitment(sha3.New256(), com, revealed, computation)
//
// The computation must be deterministic apart from the randomness it
// draws from the source it is handed; anything else (clocks, goroutine
// ordering, map iteration) will break replay and surface as a
// verification failure.
package challenge
