/*
Package testutil provides test doubles for the Benaloh challenge
protocol: deterministic randomness sources, failure-injecting sources,
and a fixed-output hasher.

Replay-based protocols are awkward to test against genuine entropy, so
most tests here run against a seeded source that produces the same
stream every time:

	src := testutil.NewSeededSource([]byte("test-seed"))
	ch := challenge.New(src, computation)

NewFailingSource and NewShortSource exercise the error paths of the
recording source, and FixedHasher pins commitments to a known digest so
state-machine tests do not depend on any concrete hash algorithm.
*/
package testutil
