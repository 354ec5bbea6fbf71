package testutil

import (
	"crypto/rand"
	"errors"
	"hash"
	"io"

	"golang.org/x/crypto/sha3"
)

// NewSeededSource returns a randomness source that produces a
// deterministic byte stream derived from seed, suitable anywhere an
// io.Reader randomness source is expected. The stream is a SHAKE256
// extendable output, so it never runs dry.
func NewSeededSource(seed []byte) io.Reader {
	shake := sha3.NewShake256()
	shake.Write(seed)
	return shake
}

// ErrSourceFailure is returned by sources created with NewFailingSource.
var ErrSourceFailure = errors.New("testutil: injected source failure")

// NewFailingSource returns a source that yields n good bytes from seed
// and then fails every subsequent read with ErrSourceFailure.
func NewFailingSource(seed []byte, n int) io.Reader {
	return io.MultiReader(
		io.LimitReader(NewSeededSource(seed), int64(n)),
		failingReader{},
	)
}

// NewShortSource returns a source that yields exactly n bytes from seed
// and then io.EOF.
func NewShortSource(seed []byte, n int) io.Reader {
	return io.LimitReader(NewSeededSource(seed), int64(n))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, ErrSourceFailure
}

// GenerateRandomBytes returns n bytes of genuine randomness.
func GenerateRandomBytes(n int) ([]byte, error) {
	out := make([]byte, n)
	if _, err := rand.Read(out); err != nil {
		return nil, err
	}
	return out, nil
}

// FixedHasher implements hash.Hash but always sums to the same digest,
// regardless of what was written. It lets state-machine tests assert on
// commitment plumbing without caring about any real hash algorithm.
type FixedHasher struct {
	Digest []byte
}

// NewFixedHasher returns a FixedHasher that reports digest.
func NewFixedHasher(digest []byte) *FixedHasher {
	return &FixedHasher{Digest: digest}
}

var _ hash.Hash = (*FixedHasher)(nil)

func (f *FixedHasher) Write(p []byte) (int, error) { return len(p), nil }
func (f *FixedHasher) Sum(b []byte) []byte         { return append(b, f.Digest...) }
func (f *FixedHasher) Reset()                      {}
func (f *FixedHasher) Size() int                   { return len(f.Digest) }
func (f *FixedHasher) BlockSize() int              { return 64 }
