package secrets

import "errors"

var (
	// Key material errors
	ErrInvalidKeySize      = errors.New("invalid key size: must be 32 bytes")
	ErrInvalidAppKey       = errors.New("invalid app key: must be 32 bytes")
	ErrInvalidTenantKey    = errors.New("invalid tenant key: must be 32 bytes")
	ErrKeyNotSet           = errors.New("encryption key not set")
	ErrFailedToGenerateKey = errors.New("failed to generate encryption key")
	ErrFailedToLoadKey     = errors.New("failed to load encryption key")
	ErrKeyDerivationFailed = errors.New("key derivation failed")

	// Encryption/decryption errors
	ErrEncryptionFailed     = errors.New("encryption failed")
	ErrDecryptionFailed     = errors.New("decryption failed")
	ErrInvalidCiphertext    = errors.New("invalid ciphertext format")
	ErrInvalidObjectPayload = errors.New("decrypted payload is not valid structured data")

	// Hashing errors
	ErrFailedToHashPassword = errors.New("failed to hash password")

	// Signing errors
	ErrFailedToGenerateKeyPair = errors.New("failed to generate key pair")
	ErrKeyPairExists           = errors.New("key pair already exists")
	ErrInvalidPrivateKey       = errors.New("invalid private key")
	ErrFailedToSign            = errors.New("failed to sign data")
)
