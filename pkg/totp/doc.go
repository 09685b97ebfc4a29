// Package totp implements RFC 6238 Time-based One-Time Passwords from
// primitives: secret generation, enrollment URI and QR code construction,
// code generation/validation with a clock-drift window, and one-time backup
// codes for account recovery.
//
// The package is a pure-function service. All state — the per-user secret,
// the stored backup-code hashes, the last accepted counter for replay
// protection — is caller-supplied and caller-persisted, which makes every
// function safe for concurrent use without locking.
//
// # Architecture
//
//   - otp.go – the RFC 4226 HOTP core (HMAC-SHA1 over a big-endian 8-byte
//     counter with dynamic truncation, via pkg/keyhash), time-step arithmetic,
//     window-tolerant validation, and Key Uri Format enrollment URIs.
//     MatchCounterAt exposes the matched time-step so callers can persist a
//     last-accepted counter and reject replays.
//   - recovery.go – batch generation of 8-hex-character backup codes, per-code
//     salted PBKDF2 hashing into "salt:hash" records, and constant-time lookup
//     returning the matched index for single-use invalidation.
//   - qr.go – scannable enrollment images through pkg/qrcode.
//
// # Usage
//
//	secret, _ := totp.GenerateSecretKey()
//
//	uri, _ := totp.EnrollmentURI(totp.EnrollmentParams{
//	    Secret:      secret,
//	    AccountName: "counsel@firm.example",
//	    Issuer:      "PraxisLegal",
//	})
//	png, _ := totp.QRCode(uri, 256)
//
//	// later, at login
//	ok, _ := totp.ValidateCode(secret, submitted)
//
// # Error Handling
//
// A wrong code is (false, nil): an expected outcome, not an error. Errors are
// reserved for malformed inputs and generation failures, wrap the package
// sentinels with errors.Join, and match with errors.Is.
package totp
