/*
Package booth is a demonstration deployment of the Benaloh challenge: an
HTTP voting booth playing the untrusted device, and a verifier playing
the voter's trusted phone.

The booth exposes the voter-facing protocol steps as JSON endpoints:

	POST /api/ballot     mark (or re-mark) a ballot; returns the commitment
	GET  /api/commitment the current commitment, as scanned by the phone
	POST /api/challenge  reveal the random factors, voiding the commitment
	POST /api/cast       finalize; returns the encrypted ballot

The Verifier drives the phone side: scan the commitment, demand a
challenge, and re-run the encryption locally with the revealed
randomness to check that the booth was honest.

The challenge library itself is transportless; this package exists to
exercise the protocol end to end the way a real deployment would wire
it, and as a reference for building such a deployment.
*/
package booth
