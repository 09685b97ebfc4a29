// Package revocation gives otherwise long-lived bearer tokens immediate
// logout and mass-revocation semantics. Revoked token identifiers are
// recorded in a shared TTL-capable key-value store under a fixed key prefix;
// each entry's TTL is the token's remaining lifetime, so the blacklist is
// self-pruning and its memory footprint stays bounded.
//
// The revocation state machine is deliberately simple: absent → revoked (Add)
// → absent (TTL expiry or Remove). Absence always means "not revoked"; token
// signature and expiry validation belong to the authentication middleware,
// not here.
//
// # Failure policy
//
// Store errors never propagate as panics or errors on the request path. They
// are logged and converted to booleans according to Config.FailOpen:
//
//   - fail-open (default): IsBlacklisted reports false, Add/Remove report
//     false. A store outage degrades revocation, not authentication.
//   - fail-closed: IsBlacklisted reports true, rejecting all tokens while the
//     store is down. For deployments where a stale revocation is worse than
//     an authentication outage.
//
// Every store call carries a bounded timeout so an unresponsive store behaves
// like an unreachable one.
//
// # Usage
//
//	svc := revocation.New(client, revocation.Config{FailOpen: true}, log)
//
//	// logout
//	svc.Add(ctx, claims.ID, revocation.TTLFromExpiry(claims.ExpiresAt))
//
//	// every authenticated request
//	if svc.IsBlacklisted(ctx, claims.ID) {
//	    // reject
//	}
package revocation
