package secrets

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	// KeySize is the required symmetric key length: 256 bits for AES-256.
	KeySize = 32

	// keyInfo provides HKDF domain separation so keys derived here are
	// unrelated to keys derived elsewhere from the same inputs.
	keyInfo = "trustkit-secrets-v1"
)

// GenerateKey creates a new random 32-byte key suitable for AES-256.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, errors.Join(ErrFailedToGenerateKey, err)
	}
	return key, nil
}

// GenerateEncodedKey creates a new random key encoded with base64, the form
// expected by the ENCRYPTION_KEY environment variable.
func GenerateEncodedKey() (string, error) {
	key, err := GenerateKey()
	if err != nil {
		return "", err
	}
	return EncodeKey(key), nil
}

// EncodeKey renders key material in the base64 form used by configuration.
func EncodeKey(key []byte) string {
	return base64.StdEncoding.EncodeToString(key)
}

// ParseKey decodes a base64-encoded key and validates its length. There is no
// fallback: a missing, malformed or mis-sized key is a configuration error the
// caller must treat as fatal at startup.
func ParseKey(encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, errors.Join(ErrFailedToLoadKey, ErrKeyNotSet)
	}

	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadKey, err)
	}

	if len(key) != KeySize {
		return nil, errors.Join(ErrFailedToLoadKey, ErrInvalidKeySize)
	}

	return key, nil
}

// DeriveTenantKey creates a compound 32-byte key from the application key and
// a per-tenant key using HKDF-SHA-256. Both inputs must be exactly KeySize
// bytes.
func DeriveTenantKey(appKey, tenantKey []byte) ([]byte, error) {
	if len(appKey) != KeySize {
		return nil, ErrInvalidAppKey
	}
	if len(tenantKey) != KeySize {
		return nil, ErrInvalidTenantKey
	}

	reader := hkdf.New(sha256.New, appKey, tenantKey, []byte(keyInfo))

	key := make([]byte, KeySize)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}

	return key, nil
}
