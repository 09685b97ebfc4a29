package keyhash

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"hash"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the number of random bytes in a freshly generated salt.
	SaltSize = 16

	// Iterations is the PBKDF2 iteration count used by WithSalt. High on
	// purpose: this path exists for password and backup-code storage.
	Iterations = 100_000

	// KeyLength is the derived key size in bytes produced by WithSalt.
	KeyLength = 32

	// DefaultAlgorithm is used by Digest when no algorithm is specified.
	DefaultAlgorithm = "sha256"
)

// newHashFunc maps an algorithm name to its constructor. SHA-1 is kept only
// because RFC 6238 TOTP interop requires it; do not use it for new digests.
func newHashFunc(algorithm string) (func() hash.Hash, error) {
	switch strings.ToLower(algorithm) {
	case "sha1":
		return sha1.New, nil
	case "sha256":
		return sha256.New, nil
	case "sha512":
		return sha512.New, nil
	default:
		return nil, errors.Join(ErrUnsupportedAlgorithm, errors.New(algorithm))
	}
}

// HMAC computes a keyed hash of message under key using the named algorithm.
func HMAC(algorithm string, key, message []byte) ([]byte, error) {
	fn, err := newHashFunc(algorithm)
	if err != nil {
		return nil, err
	}
	mac := hmac.New(fn, key)
	mac.Write(message)
	return mac.Sum(nil), nil
}

// Digest returns the hex-encoded one-way hash of text. It is deterministic and
// fast, suitable for non-secret fingerprints only, never for passwords.
func Digest(algorithm, text string) (string, error) {
	if algorithm == "" {
		algorithm = DefaultAlgorithm
	}
	fn, err := newHashFunc(algorithm)
	if err != nil {
		return "", err
	}
	h := fn()
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil)), nil
}

// NewSalt generates a fresh random salt for WithSalt.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, errors.Join(ErrFailedToGenerateSalt, err)
	}
	return salt, nil
}

// WithSalt derives a slow, iterated keyed hash of text using PBKDF2-HMAC-SHA256
// and returns it hex-encoded. The same (text, salt) pair always produces the
// same output, so the result is safe to persist for later verification.
func WithSalt(text string, salt []byte) string {
	key := pbkdf2.Key([]byte(text), salt, Iterations, KeyLength, sha256.New)
	return hex.EncodeToString(key)
}

// VerifyWithSalt recomputes the salted hash of text and compares it against
// hexHash in constant time. Callers never need to handle timing themselves.
func VerifyWithSalt(text, hexHash string, salt []byte) bool {
	computed := WithSalt(text, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hexHash)) == 1
}

// Equal reports whether two strings are equal using a constant-time comparison.
func Equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
