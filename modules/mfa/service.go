package mfa

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/praxislegal/trustkit/pkg/logger"
	"github.com/praxislegal/trustkit/pkg/secrets"
	"github.com/praxislegal/trustkit/pkg/totp"
)

// Service orchestrates multi-factor enrollment and verification on top of the
// stateless pkg/totp core: it encrypts secrets for storage, renders
// enrollment material, enforces the one-time-use invariant for backup codes,
// and adds replay protection for TOTP codes via a last-accepted counter kept
// in the shared store.
type Service struct {
	secrets *secrets.Service
	store   redis.UniversalClient
	cfg     Config
	log     *slog.Logger
}

// New creates the MFA orchestration service. The store client may be nil, in
// which case replay protection is disabled and every in-window code is
// accepted, matching the bare pkg/totp behavior.
func New(secretsSvc *secrets.Service, store redis.UniversalClient, cfg Config, log *slog.Logger) *Service {
	if log == nil {
		log = logger.Discard()
	}
	return &Service{
		secrets: secretsSvc,
		store:   store,
		cfg:     cfg.withDefaults(),
		log:     log,
	}
}

// Enrollment is everything a caller needs to onboard a user: the secret
// encrypted for persistence, the scannable enrollment material, and the
// backup codes — plaintext for exactly one display, hashes for storage.
type Enrollment struct {
	EncryptedSecret   string
	URI               string
	QRCode            string // data-URI PNG for direct <img> embedding
	BackupCodes       []string
	HashedBackupCodes []string
}

// Enroll generates a fresh MFA secret for a user and prepares all onboarding
// material. The plaintext secret never leaves this function; callers persist
// only EncryptedSecret and HashedBackupCodes.
func (s *Service) Enroll(ctx context.Context, userID, accountName string) (Enrollment, error) {
	secret, err := totp.GenerateSecretKey()
	if err != nil {
		return Enrollment{}, err
	}

	encrypted, err := s.secrets.EncryptString(secret)
	if err != nil {
		return Enrollment{}, err
	}

	uri, err := totp.EnrollmentURI(totp.EnrollmentParams{
		Secret:      secret,
		AccountName: accountName,
		Issuer:      s.cfg.Issuer,
	})
	if err != nil {
		return Enrollment{}, err
	}

	qr, err := totp.QRCodeBase64(uri, s.cfg.QRSize)
	if err != nil {
		return Enrollment{}, err
	}

	codes, err := totp.GenerateBackupCodes(s.cfg.BackupCodeCount)
	if err != nil {
		return Enrollment{}, err
	}
	hashed, err := totp.HashBackupCodes(codes)
	if err != nil {
		return Enrollment{}, err
	}

	s.log.Info("mfa enrollment material generated",
		logger.UserID(userID),
		logger.Component("mfa"),
	)

	return Enrollment{
		EncryptedSecret:   encrypted,
		URI:               uri,
		QRCode:            qr,
		BackupCodes:       codes,
		HashedBackupCodes: hashed,
	}, nil
}

// VerifyCode checks a submitted TOTP code against the user's stored
// (encrypted) secret. A code that matches the time window but reuses an
// already-accepted counter is rejected: each code is good once.
//
// A false result is the expected login-failure outcome; errors are reserved
// for undecryptable secrets and malformed input.
func (s *Service) VerifyCode(ctx context.Context, userID, encryptedSecret, code string) (bool, error) {
	secret, err := s.secrets.DecryptString(encryptedSecret)
	if err != nil {
		return false, err
	}

	counter, ok, err := totp.MatchCounterAt(secret, code, time.Now(), s.cfg.Skew)
	if err != nil || !ok {
		return false, err
	}

	if !s.acceptCounter(ctx, userID, counter) {
		s.log.Warn("rejected replayed TOTP code",
			logger.UserID(userID),
			logger.Component("mfa"),
		)
		return false, nil
	}

	return true, nil
}

// acceptCounter atomically records the matched counter and reports whether it
// advances past the last accepted one. The guard lives in the shared store so
// replays are caught across instances. When the store is unavailable the
// check degrades open — a cache outage must not lock every MFA user out —
// and the failure is logged.
func (s *Service) acceptCounter(ctx context.Context, userID string, counter int64) bool {
	if s.store == nil {
		return true
	}

	key := s.cfg.CounterKeyPrefix + userID
	ttl := time.Duration((2*s.cfg.Skew+2)*totp.DefaultPeriod) * time.Second

	// GETSET-style update via a small Lua script keeps check-and-set atomic
	// under concurrent logins for the same account.
	const script = `
local last = tonumber(redis.call("GET", KEYS[1]) or "-1")
local counter = tonumber(ARGV[1])
if counter <= last then
	return 0
end
redis.call("SET", KEYS[1], ARGV[1], "PX", ARGV[2])
return 1
`
	res, err := s.store.Eval(ctx, script, []string{key},
		strconv.FormatInt(counter, 10),
		strconv.FormatInt(ttl.Milliseconds(), 10),
	).Int64()
	if err != nil {
		s.log.Error("replay guard unavailable, accepting in-window code",
			logger.Error(err),
			logger.UserID(userID),
			logger.Component("mfa"),
		)
		return true
	}
	return res == 1
}

// UseBackupCode verifies a recovery code against the stored hashes and, on
// success, returns the list with the consumed entry removed. Callers must
// persist the returned list; that removal is what makes backup codes
// one-time-use, since pkg/totp itself is stateless.
func (s *Service) UseBackupCode(ctx context.Context, userID, code string, hashedCodes []string) ([]string, bool) {
	match := totp.VerifyBackupCode(code, hashedCodes)
	if !match.Valid {
		return hashedCodes, false
	}

	remaining := make([]string, 0, len(hashedCodes)-1)
	remaining = append(remaining, hashedCodes[:match.Index]...)
	remaining = append(remaining, hashedCodes[match.Index+1:]...)

	s.log.Info("backup code consumed",
		logger.UserID(userID),
		slog.Int("remaining", len(remaining)),
		logger.Component("mfa"),
	)

	return remaining, true
}
