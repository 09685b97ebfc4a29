package totp

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/praxislegal/trustkit/pkg/keyhash"
)

const (
	// DefaultBackupCodeCount is the batch size issued at enrollment.
	DefaultBackupCodeCount = 10

	// backupCodeBytes yields 8 uppercase hex characters per code.
	backupCodeBytes = 4
)

// Match is the result of a backup-code lookup. Index points at the stored
// entry that matched so the caller can invalidate that single code.
type Match struct {
	Valid bool
	Index int
}

// GenerateBackupCodes creates one-time recovery codes for display at
// enrollment. Each code is an 8-character uppercase hex string. The plaintext
// is shown to the user exactly once; only the salted hashes are stored.
func GenerateBackupCodes(count int) ([]string, error) {
	if count < 1 {
		return nil, ErrInvalidBackupCodeCount
	}

	codes := make([]string, count)
	for i := 0; i < count; i++ {
		raw := make([]byte, backupCodeBytes)
		if _, err := rand.Read(raw); err != nil {
			return nil, errors.Join(ErrFailedToGenerateBackupCode, err)
		}
		codes[i] = fmt.Sprintf("%X", raw)
	}
	return codes, nil
}

// HashBackupCodes salts and hashes each code independently for storage. The
// stored form is "salt:hash", both hex-encoded; a distinct random salt per
// code keeps identical codes from producing identical records.
func HashBackupCodes(codes []string) ([]string, error) {
	hashed := make([]string, len(codes))
	for i, code := range codes {
		salt, err := keyhash.NewSalt()
		if err != nil {
			return nil, err
		}
		hashed[i] = hex.EncodeToString(salt) + ":" + keyhash.WithSalt(code, salt)
	}
	return hashed, nil
}

// VerifyBackupCode scans the stored list for an entry matching code. Each
// comparison is constant-time. The service itself is stateless: re-verifying
// the same code against an unmodified list succeeds again, so the caller must
// remove the entry at Match.Index after a successful use to enforce the
// one-time-use invariant.
func VerifyBackupCode(code string, hashedCodes []string) Match {
	code = strings.ToUpper(strings.TrimSpace(code))

	for i, entry := range hashedCodes {
		saltHex, hash, ok := strings.Cut(entry, ":")
		if !ok {
			continue
		}
		salt, err := hex.DecodeString(saltHex)
		if err != nil {
			continue
		}
		if keyhash.VerifyWithSalt(code, hash, salt) {
			return Match{Valid: true, Index: i}
		}
	}
	return Match{Valid: false, Index: -1}
}
