package secrets

import (
	"encoding/json"
	"errors"
)

// EncryptObject serializes v as JSON and encrypts the result through
// EncryptString. Use it for structured values such as client intake records or
// contract metadata that must be opaque at rest.
func (s *Service) EncryptObject(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}
	return s.EncryptString(string(data))
}

// DecryptObject decrypts ciphertext produced by EncryptObject and unmarshals
// it into v. A payload that decrypts correctly but is not valid JSON surfaces
// ErrInvalidObjectPayload, distinct from an authentication failure.
func (s *Service) DecryptObject(ciphertext string, v any) error {
	plaintext, err := s.DecryptString(ciphertext)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(plaintext), v); err != nil {
		return errors.Join(ErrInvalidObjectPayload, err)
	}
	return nil
}
