package ballot

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/hkdf"

	"github.com/phayes/benaloh-challenge/challenge"
)

const (
	keySize   = 32
	nonceSize = 12
)

// hkdfInfo domain-separates the derived AES key from other uses of the
// same shared secret.
var hkdfInfo = []byte("benaloh-ballot-encryption-v1")

// PublicKey is an X25519 election public key. Ballots are encrypted to
// it on the voting machine.
type PublicKey [32]byte

// PrivateKey is an X25519 election private key, held by the election
// authority for tallying. The voting machine never sees it.
type PrivateKey [32]byte

// GenerateKeyPair generates a new X25519 election key pair from genuine
// randomness. Key generation is not part of any commit cycle, so it
// reads crypto/rand directly.
func GenerateKeyPair() (PublicKey, PrivateKey, error) {
	var pub PublicKey
	var priv PrivateKey
	if _, err := rand.Read(priv[:]); err != nil {
		return pub, priv, err
	}
	pubBytes, err := curve25519.X25519(priv[:], curve25519.Basepoint)
	if err != nil {
		return pub, priv, fmt.Errorf("derive public key: %w", err)
	}
	copy(pub[:], pubBytes)
	return pub, priv, nil
}

// Encrypted is an encrypted ballot.
// Wire format: ephemeral pubkey (32 bytes) || nonce (12 bytes) || ciphertext+tag.
type Encrypted struct {
	EphemeralPubKey []byte // X25519 public key
	Nonce           []byte // AES-GCM nonce
	Ciphertext      []byte // encrypted ballot with auth tag
}

// Encrypt encrypts a marked ballot to the election public key, drawing
// the ephemeral scalar and nonce from src. Given the same source bytes
// it produces the same ciphertext, so it is deterministic under replay.
func Encrypt(key PublicKey, plaintext []byte, src io.Reader) (*Encrypted, error) {
	var ephemeralPriv [32]byte
	if _, err := io.ReadFull(src, ephemeralPriv[:]); err != nil {
		return nil, fmt.Errorf("draw ephemeral scalar: %w", err)
	}

	ephemeralPub, err := curve25519.X25519(ephemeralPriv[:], curve25519.Basepoint)
	if err != nil {
		return nil, fmt.Errorf("derive ephemeral key: %w", err)
	}

	sharedPoint, err := curve25519.X25519(ephemeralPriv[:], key[:])
	if err != nil {
		return nil, fmt.Errorf("X25519: %w", err)
	}

	aesKey, err := deriveAESKey(sharedPoint)
	if err != nil {
		return nil, err
	}

	gcm, err := newGCM(aesKey)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(src, nonce); err != nil {
		return nil, fmt.Errorf("draw nonce: %w", err)
	}

	// Bind the ciphertext to the ephemeral key via additional data.
	ciphertext := gcm.Seal(nil, nonce, plaintext, ephemeralPub)

	return &Encrypted{
		EphemeralPubKey: ephemeralPub,
		Nonce:           nonce,
		Ciphertext:      ciphertext,
	}, nil
}

// Decrypt decrypts an encrypted ballot with the election private key.
func Decrypt(key PrivateKey, e *Encrypted) ([]byte, error) {
	if len(e.EphemeralPubKey) != keySize {
		return nil, errors.New("invalid ephemeral key size")
	}
	if len(e.Nonce) != nonceSize {
		return nil, errors.New("invalid nonce size")
	}

	sharedPoint, err := curve25519.X25519(key[:], e.EphemeralPubKey)
	if err != nil {
		return nil, fmt.Errorf("X25519: %w", err)
	}

	aesKey, err := deriveAESKey(sharedPoint)
	if err != nil {
		return nil, err
	}

	gcm, err := newGCM(aesKey)
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, e.Nonce, e.Ciphertext, e.EphemeralPubKey)
	if err != nil {
		return nil, fmt.Errorf("decrypt: %w", err)
	}
	return plaintext, nil
}

// Bytes serializes an encrypted ballot. The serialized form is what
// gets committed to and, on a cast, what becomes the final output.
func (e *Encrypted) Bytes() []byte {
	out := make([]byte, 0, len(e.EphemeralPubKey)+len(e.Nonce)+len(e.Ciphertext))
	out = append(out, e.EphemeralPubKey...)
	out = append(out, e.Nonce...)
	out = append(out, e.Ciphertext...)
	return out
}

// Parse deserializes an encrypted ballot.
func Parse(data []byte) (*Encrypted, error) {
	if len(data) < keySize+nonceSize {
		return nil, errors.New("encrypted ballot too short")
	}
	return &Encrypted{
		EphemeralPubKey: data[:keySize],
		Nonce:           data[keySize : keySize+nonceSize],
		Ciphertext:      data[keySize+nonceSize:],
	}, nil
}

// Computation returns the ballot encryption as a challenge computation:
// it encrypts plaintext to key with whatever source the challenge hands
// it and returns the serialized ciphertext. The same computation runs on
// the voting machine under a recording source and on the verifier under
// a replay source.
func Computation(key PublicKey, plaintext []byte) challenge.ComputationFunc {
	return func(src io.Reader) ([]byte, error) {
		e, err := Encrypt(key, plaintext, src)
		if err != nil {
			return nil, err
		}
		return e.Bytes(), nil
	}
}

// deriveAESKey derives the AES-256 key from the X25519 shared point via
// HKDF.
func deriveAESKey(sharedPoint []byte) ([]byte, error) {
	kdf := hkdf.New(sha256.New, sharedPoint, nil, hkdfInfo)
	key := make([]byte, keySize)
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	return key, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}
	return gcm, nil
}
