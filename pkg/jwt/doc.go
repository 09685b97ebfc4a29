// Package jwt implements the bearer-token format whose identifiers the
// revocation blacklist shadows: HS256 JSON Web Tokens built directly on
// crypto/hmac rather than a third-party JWT dependency.
//
// Tokens carry a unique jti claim minted at issuance. On logout the jti and
// the token's remaining lifetime go to pkg/revocation; on every authenticated
// request the middleware parses the token here, then asks the blacklist about
// the jti before trusting it.
//
// # Architecture
//
//   - jwt.go – Generate/Parse with constant-time signature verification and
//     algorithm pinning to HS256 (algorithm-confusion tokens are rejected).
//   - claims.go – the RFC 7519 registered claims, temporal validation, and
//     NewStandardClaims for minting tokens with fresh jti values.
//
// # Usage
//
//	svc, _ := jwt.NewFromString(cfg.SigningKey)
//
//	claims := jwt.NewStandardClaims(user.ID, 24*time.Hour)
//	token, _ := svc.Generate(claims)
//
//	var parsed jwt.StandardClaims
//	if err := svc.Parse(token, &parsed); err != nil {
//	    // invalid, tampered or expired
//	}
//
// # Error Handling
//
// Sentinel errors (ErrInvalidSignature, ErrExpiredToken, ...) are matched
// with errors.Is. A valid-but-revoked token is not this package's concern;
// see pkg/revocation.
package jwt
