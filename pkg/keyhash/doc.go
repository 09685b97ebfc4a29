// Package keyhash is the keyed-hash primitive layer shared by the rest of the
// trust-boundary core. It wraps HMAC over a small set of approved algorithms,
// fast hex digests for non-secret fingerprints, and a slow PBKDF2-based salted
// hash for password and backup-code storage.
//
// Everything that compares secret-derived material goes through the
// constant-time helpers in this package so that higher layers never perform a
// timing-sensitive comparison by hand.
//
// # Architecture
//
//   - HMAC / Digest – thin wrappers over crypto/hmac and the sha1/sha256/sha512
//     constructors. SHA-1 exists solely for RFC 6238 TOTP interoperability.
//   - WithSalt / VerifyWithSalt – PBKDF2-HMAC-SHA256 with 100k iterations and a
//     32-byte derived key, hex-encoded for storage as a (salt, hash) pair.
//   - NewSalt – 16 random bytes from crypto/rand.
//   - Equal – constant-time string equality for already-derived values.
//
// # Usage
//
//	salt, _ := keyhash.NewSalt()
//	stored := keyhash.WithSalt("s3cret", salt)
//
//	// later
//	ok := keyhash.VerifyWithSalt(candidate, stored, salt)
//
// # Error Handling
//
// Unknown algorithm names surface ErrUnsupportedAlgorithm; compare with
// errors.Is. Verification failures are boolean results, not errors.
package keyhash
