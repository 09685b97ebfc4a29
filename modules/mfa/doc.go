// Package mfa wires the TOTP, secrets, and storage layers into a complete
// multi-factor authentication flow.
//
// # Architecture
//
// The package composes three lower layers without duplicating them:
//
//   - pkg/totp generates secrets and codes and stays fully stateless
//   - pkg/secrets encrypts the shared secret before it touches storage
//   - a Redis client tracks the last accepted counter per user so a code,
//     once used, cannot be replayed inside the acceptance window
//
// The service never persists anything itself. Enroll returns the encrypted
// secret and hashed backup codes for the caller to store; UseBackupCode
// returns the reduced hash list the caller must write back.
//
// # Usage
//
//	svc := mfa.New(secretsSvc, redisClient, mfa.Config{Issuer: "PraxisLegal"}, log)
//
//	enrollment, err := svc.Enroll(ctx, user.ID, user.Email)
//	// show enrollment.QRCode and enrollment.BackupCodes once,
//	// persist enrollment.EncryptedSecret and enrollment.HashedBackupCodes
//
//	ok, err := svc.VerifyCode(ctx, user.ID, user.MFASecret, submittedCode)
//
// # Error Handling
//
// Verification failures are reported through the boolean result; errors mean
// the stored secret could not be decrypted or the input was malformed. When
// the replay store is unreachable, verification degrades to plain
// window-based matching rather than locking users out, and the degradation
// is logged.
package mfa
