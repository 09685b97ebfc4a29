package secrets

// Config carries the symmetric key material for the encryption service. The
// key is required in every environment: there is deliberately no fallback to a
// generated or human-readable default, so a misconfigured deployment fails at
// startup instead of silently encrypting under a weak key.
type Config struct {
	// EncryptionKey is a base64-encoded 32-byte AES-256 key.
	EncryptionKey string `env:"ENCRYPTION_KEY,required"`
}

// NewFromConfig builds an encryption service from configuration, validating
// the key's encoding and length before any data is touched.
func NewFromConfig(cfg Config) (*Service, error) {
	key, err := ParseKey(cfg.EncryptionKey)
	if err != nil {
		return nil, err
	}
	return New(key)
}
