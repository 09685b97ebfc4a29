package revocation

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/praxislegal/trustkit/pkg/logger"
)

const revokedMarker = "1"

// Service records revoked bearer-token identifiers in a TTL-capable key-value
// store. An entry's TTL equals the token's remaining lifetime, so the
// blacklist never outlives the tokens it shadows and needs no cleanup job.
//
// All state lives in the store; the service itself is stateless and safe for
// concurrent use. Two concurrent Add calls for the same token race harmlessly:
// both intended outcomes are "revoked", last writer wins on TTL.
type Service struct {
	client    redis.UniversalClient
	prefix    string
	failOpen  bool
	opTimeout time.Duration
	log       *slog.Logger
}

// New creates a revocation service over the shared store. A nil logger
// discards; store failures are always logged since the boolean returns
// deliberately swallow the underlying error.
func New(client redis.UniversalClient, cfg Config, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	cfg = cfg.withDefaults()
	return &Service{
		client:    client,
		prefix:    cfg.KeyPrefix,
		failOpen:  cfg.FailOpen,
		opTimeout: cfg.OpTimeout,
		log:       log,
	}
}

func (s *Service) key(token string) string {
	return s.prefix + token
}

// opContext bounds every store call so an unresponsive store degrades into
// the configured failure policy instead of stalling a request worker.
func (s *Service) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opTimeout)
}

// Add marks a token as revoked for ttl. Idempotent: re-adding simply
// refreshes the TTL. Pass the token's remaining validity (see TTLFromExpiry)
// so the entry self-destructs when the token itself expires. A non-positive
// ttl means the token is already expired and there is nothing to shadow.
func (s *Service) Add(ctx context.Context, token string, ttl time.Duration) bool {
	if ttl <= 0 {
		return true
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	if err := s.client.Set(ctx, s.key(token), revokedMarker, ttl).Err(); err != nil {
		s.log.Error("failed to add token to blacklist",
			logger.Error(err),
			logger.Component("revocation"),
		)
		return false
	}
	return true
}

// IsBlacklisted reports whether a token has been revoked. Absence means "not
// revoked"; the validity of the token's own signature and expiry is the
// caller's separate responsibility.
//
// When the store is unreachable the answer follows the configured policy:
// fail-open returns false (token accepted, availability preserved),
// fail-closed returns true (token rejected, strict compliance).
func (s *Service) IsBlacklisted(ctx context.Context, token string) bool {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	val, err := s.client.Get(ctx, s.key(token)).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		s.log.Error("failed to check token blacklist",
			logger.Error(err),
			logger.Component("revocation"),
		)
		return !s.failOpen
	}
	return val == revokedMarker
}

// Remove un-revokes a token. Rarely used; exists for administrative
// correction of a mistaken revocation.
func (s *Service) Remove(ctx context.Context, token string) bool {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		s.log.Error("failed to remove token from blacklist",
			logger.Error(err),
			logger.Component("revocation"),
		)
		return false
	}
	return true
}

// RevokeAllUserTokens fans Add out over a user's known active tokens, used
// for forced logout. It can only revoke the tokens the caller can enumerate;
// it is not a substitute for short token lifetimes.
func (s *Service) RevokeAllUserTokens(ctx context.Context, userID string, tokens []string, ttl time.Duration) bool {
	ok := true
	for _, token := range tokens {
		if !s.Add(ctx, token, ttl) {
			ok = false
		}
	}
	if !ok {
		s.log.Error("failed to revoke all tokens for user",
			logger.UserID(userID),
			logger.Component("revocation"),
		)
	} else {
		s.log.Info("revoked all known tokens for user",
			logger.UserID(userID),
			slog.Int("count", len(tokens)),
			logger.Component("revocation"),
		)
	}
	return ok
}

// Size counts blacklist entries by scanning the service's key prefix in
// batches. Diagnostic only: it walks the whole namespace and has no place on
// a hot path.
func (s *Service) Size(ctx context.Context) (int64, error) {
	var (
		total  int64
		cursor uint64
	)

	for {
		batch, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", scanBatchSize).Result()
		if err != nil {
			return 0, err
		}
		total += int64(len(batch))
		cursor = next
		if cursor == 0 {
			return total, nil
		}
	}
}

const scanBatchSize = 1000

// TTLFromExpiry converts a token's exp claim (Unix seconds) into the TTL a
// revocation entry should carry: the token's remaining lifetime. Expired
// tokens yield zero.
func TTLFromExpiry(exp int64) time.Duration {
	remaining := time.Until(time.Unix(exp, 0))
	if remaining < 0 {
		return 0
	}
	return remaining
}
