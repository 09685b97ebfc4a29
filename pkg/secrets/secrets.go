package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
)

// Service performs authenticated encryption with a fixed 32-byte key supplied
// once at construction. It is stateless after construction and safe for
// concurrent use.
type Service struct {
	aead cipher.AEAD
}

// New creates an encryption service from a 32-byte AES-256 key. Keys of any
// other length are rejected outright; the service never truncates or pads key
// material to fit.
func New(key []byte) (*Service, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKeySize
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	return &Service{aead: aead}, nil
}

// NewTenant creates a service whose key is derived from the application key
// and a per-tenant (law firm / workspace) key via HKDF. Encrypting the same
// record for two tenants yields unrelated ciphertexts even under a shared
// application key.
func NewTenant(appKey, tenantKey []byte) (*Service, error) {
	key, err := DeriveTenantKey(appKey, tenantKey)
	if err != nil {
		return nil, err
	}
	return New(key)
}

// EncryptString encrypts a string and returns a base64-encoded blob containing
// nonce, ciphertext and authentication tag. An empty plaintext produces an
// empty result rather than an error.
func (s *Service) EncryptString(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}
	ciphertext, err := s.EncryptBytes([]byte(plaintext))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// DecryptString decrypts a blob produced by EncryptString.
func (s *Service) DecryptString(ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", nil
	}
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", errors.Join(ErrInvalidCiphertext, err)
	}
	plaintext, err := s.DecryptBytes(raw)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// EncryptBytes encrypts raw bytes with AES-256-GCM. A fresh random nonce is
// generated on every call and prepended to the returned ciphertext so the
// result is self-contained: nonce + encrypted data + tag.
func (s *Service) EncryptBytes(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	return s.aead.Seal(nonce, nonce, data, nil), nil
}

// DecryptBytes decrypts ciphertext produced by EncryptBytes. It fails closed:
// a tampered tag, a flipped ciphertext bit, or a structurally broken payload
// all surface ErrDecryptionFailed or ErrInvalidCiphertext, never corrupted
// plaintext.
func (s *Service) DecryptBytes(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) == 0 {
		return nil, nil
	}

	nonceSize := s.aead.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, ErrInvalidCiphertext
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]

	plaintext, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, errors.Join(ErrDecryptionFailed, err)
	}

	return plaintext, nil
}
