package secrets

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/praxislegal/trustkit/pkg/keyhash"
)

// Hashed is the storable result of salted hashing: persist both fields and
// pass them back to VerifyHash.
type Hashed struct {
	Hash string
	Salt []byte
}

// Hash returns the hex-encoded one-way digest of text using the named
// algorithm (sha256 when empty). Deterministic and fast; for non-secret
// fingerprints such as document checksums, never for passwords.
func Hash(text, algorithm string) (string, error) {
	return keyhash.Digest(algorithm, text)
}

// HashWithSalt derives a slow, iterated hash of text suitable for credential
// storage. When no salt is supplied a fresh random one is generated.
func HashWithSalt(text string, salt ...[]byte) (Hashed, error) {
	var s []byte
	if len(salt) > 0 && len(salt[0]) > 0 {
		s = salt[0]
	} else {
		var err error
		if s, err = keyhash.NewSalt(); err != nil {
			return Hashed{}, err
		}
	}
	return Hashed{Hash: keyhash.WithSalt(text, s), Salt: s}, nil
}

// VerifyHash recomputes the salted hash of text and compares it in constant
// time. A mismatch is an expected outcome, not an error.
func VerifyHash(text, hash string, salt []byte) bool {
	return keyhash.VerifyWithSalt(text, hash, salt)
}

// HashPassword hashes an interactive login password with bcrypt.
func HashPassword(password string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Join(ErrFailedToHashPassword, err)
	}
	return hash, nil
}

// VerifyPassword reports whether password matches a bcrypt hash produced by
// HashPassword.
func VerifyPassword(hash []byte, password string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}
