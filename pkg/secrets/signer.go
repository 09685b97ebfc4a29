package secrets

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultKeyBits is the RSA modulus size used when GenerateKeyPair is
	// called with a non-positive bit count.
	DefaultKeyBits = 2048

	privateKeyFile = "private.pem"
	publicKeyFile  = "public.pem"
)

// KeyPair holds the on-disk locations of a generated signing key pair. The
// private key never leaves the encryption boundary except as this path.
type KeyPair struct {
	PublicKeyPath  string
	PrivateKeyPath string
}

// GenerateKeyPair creates an RSA signing key pair and writes both halves as
// PEM files under dir, creating the directory if needed. Existing key files
// are never overwritten; callers that want rotation must move the old pair
// aside first.
func GenerateKeyPair(bits int, dir string) (KeyPair, error) {
	if bits <= 0 {
		bits = DefaultKeyBits
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return KeyPair{}, fmt.Errorf("create key directory %q: %w", dir, err)
	}

	pair := KeyPair{
		PrivateKeyPath: filepath.Join(dir, privateKeyFile),
		PublicKeyPath:  filepath.Join(dir, publicKeyFile),
	}

	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return KeyPair{}, errors.Join(ErrFailedToGenerateKeyPair, err)
	}

	privateBlock := &pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	}
	if err := writePEMExclusive(pair.PrivateKeyPath, privateBlock, 0o600); err != nil {
		return KeyPair{}, err
	}

	publicDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		_ = os.Remove(pair.PrivateKeyPath)
		return KeyPair{}, errors.Join(ErrFailedToGenerateKeyPair, err)
	}
	publicBlock := &pem.Block{Type: "PUBLIC KEY", Bytes: publicDER}
	if err := writePEMExclusive(pair.PublicKeyPath, publicBlock, 0o644); err != nil {
		_ = os.Remove(pair.PrivateKeyPath)
		return KeyPair{}, err
	}

	return pair, nil
}

// writePEMExclusive writes a PEM block to a new file, refusing to clobber an
// existing one.
func writePEMExclusive(path string, block *pem.Block, perm os.FileMode) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		if os.IsExist(err) {
			return errors.Join(ErrKeyPairExists, fmt.Errorf("key file %q already exists", path))
		}
		return fmt.Errorf("create key file %q: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close key file %q: %w", path, closeErr)
		}
	}()

	if err := pem.Encode(f, block); err != nil {
		return fmt.Errorf("write key file %q: %w", path, err)
	}
	return nil
}

// Sign produces an RSA PKCS#1 v1.5 signature over the SHA-256 digest of data
// using the PEM-encoded private key at privateKeyPath.
func Sign(data []byte, privateKeyPath string) ([]byte, error) {
	raw, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read private key %q: %w", privateKeyPath, err)
	}

	block, _ := pem.Decode(raw)
	if block == nil || block.Type != "RSA PRIVATE KEY" {
		return nil, ErrInvalidPrivateKey
	}

	key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, errors.Join(ErrInvalidPrivateKey, err)
	}

	digest := sha256.Sum256(data)
	signature, err := rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA256, digest[:])
	if err != nil {
		return nil, errors.Join(ErrFailedToSign, err)
	}
	return signature, nil
}

// Verify reports whether signature is a valid signature of data under the
// PEM-encoded public key at publicKeyPath. Any malformed input yields false
// rather than an error: callers treat an invalid signature as an expected
// outcome.
func Verify(data, signature []byte, publicKeyPath string) bool {
	raw, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return false
	}

	block, _ := pem.Decode(raw)
	if block == nil {
		return false
	}

	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return false
	}

	key, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return false
	}

	digest := sha256.Sum256(data)
	return rsa.VerifyPKCS1v15(key, crypto.SHA256, digest[:], signature) == nil
}
