// Package redis provides connectivity to the TTL-capable key-value store that
// backs token revocation: environment-driven configuration, a retrying
// connector, and a readiness probe.
//
// The package deliberately exposes the raw go-redis client rather than an
// abstraction of its own; pkg/revocation and modules/mfa consume
// redis.UniversalClient directly so tests can substitute an in-process server.
//
// # Usage
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
// # Error Handling
//
// Connect wraps ErrFailedToParseConnString and ErrNotReady with errors.Join;
// match with errors.Is.
package redis
