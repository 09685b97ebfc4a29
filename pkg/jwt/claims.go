package jwt

import (
	"time"

	"github.com/google/uuid"
)

// StandardClaims represents the registered JWT claims defined in RFC 7519
// Section 4.1. Temporal claims use Unix timestamps for consistent validation.
type StandardClaims struct {
	ID        string `json:"jti,omitempty"` // JWT ID - the stable identifier the revocation blacklist is keyed on
	Subject   string `json:"sub,omitempty"` // Subject - typically the user ID
	Issuer    string `json:"iss,omitempty"` // Issuer - identifies who issued the token
	Audience  string `json:"aud,omitempty"` // Audience - intended recipient(s)
	ExpiresAt int64  `json:"exp,omitempty"` // Expiration time - Unix timestamp
	NotBefore int64  `json:"nbf,omitempty"` // Not before - Unix timestamp
	IssuedAt  int64  `json:"iat,omitempty"` // Issued at - Unix timestamp
}

// Valid validates the temporal claims against current time. Zero values are
// treated as unset per RFC 7519 and ignored.
func (c StandardClaims) Valid() error {
	now := time.Now().Unix()

	if c.ExpiresAt > 0 && now > c.ExpiresAt {
		return ErrExpiredToken
	}

	if c.NotBefore > 0 && now < c.NotBefore {
		return ErrInvalidToken
	}

	return nil
}

// NewStandardClaims mints claims for a fresh bearer token: a unique jti (the
// handle logout and revocation operate on), issued-at now, expiring after ttl.
func NewStandardClaims(subject string, ttl time.Duration) StandardClaims {
	now := time.Now()
	return StandardClaims{
		ID:        NewID(),
		Subject:   subject,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
	}
}

// NewID generates a unique token identifier suitable for the jti claim.
func NewID() string {
	return uuid.NewString()
}
