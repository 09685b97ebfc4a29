// Package secrets is the authenticated encryption boundary of the platform.
// It protects sensitive legal-practice data at rest — privileged notes, intake
// records, uploaded documents — and covers the adjacent credential concerns:
// salted password hashing and asymmetric signing.
//
// The symmetric key is a fixed 32-byte AES-256 key supplied once at service
// construction; construction fails on any other length. Every encryption call
// generates a fresh random nonce, so two encryptions of the same plaintext
// never share ciphertext. Decryption fails closed on tampering.
//
// # Architecture
//
//   - Service (secrets.go) – AES-256-GCM over strings and byte slices with the
//     nonce prepended to the ciphertext: nonce + encrypted data + tag, base64
//     for the string form.
//   - object.go – JSON serialization through the string pair, with a distinct
//     error for payloads that decrypt but fail to parse.
//   - file.go – constant-memory chunked streaming for arbitrarily large files.
//     Each 64 KiB frame carries its own nonce and is bound to its position and
//     a last-frame marker via additional data, so reordering, splicing and
//     truncation all fail authentication.
//   - keys.go – key generation, base64 encoding for configuration, strict
//     length validation, and HKDF-SHA-256 derivation of per-tenant compound
//     keys for multi-firm isolation.
//   - hash.go – fast hex digests for fingerprints, PBKDF2 salted hashing for
//     credential storage (via pkg/keyhash), and bcrypt for login passwords.
//   - signer.go – RSA PKCS#1 v1.5 over SHA-256 with PEM key files on disk.
//     GenerateKeyPair refuses to overwrite existing keys.
//
// # Usage
//
//	var cfg secrets.Config
//	config.MustLoad(&cfg)
//
//	svc, err := secrets.NewFromConfig(cfg)
//	if err != nil {
//	    log.Fatal(err) // bad or missing key material is fatal at startup
//	}
//
//	ct, _ := svc.EncryptString("privileged note")
//	pt, _ := svc.DecryptString(ct)
//
// # Error Handling
//
// Exported operations wrap package sentinels with errors.Join; match with
// errors.Is. ErrDecryptionFailed means the authentication tag did not verify;
// ErrInvalidCiphertext means the payload is structurally broken. Signature
// verification and hash verification return booleans because a mismatch is an
// expected outcome, not an exception.
package secrets
