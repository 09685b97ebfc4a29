// Package logger builds configured log/slog loggers for the trust-boundary
// services: JSON output at info level in production, text at debug level in
// development, with option-based construction and context-driven attribute
// injection.
//
// The attr helpers keep log keys consistent across packages and ensure
// sensitive material stays out of logs: TokenID logs only the jti, never the
// bearer token; nothing here ever logs key material or plaintext secrets.
//
// # Usage
//
//	log := logger.New(logger.WithEnvironment(environment.Detect(), "trustkit"))
//
//	log.Error("failed to check token blacklist",
//	    logger.Error(err),
//	    logger.Component("revocation"),
//	)
package logger
