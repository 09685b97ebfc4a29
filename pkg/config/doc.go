// Package config loads environment-sourced configuration into tagged structs,
// once per type per process. It backs every Config struct in this module:
// encryption key material, Redis connectivity, TOTP enrollment settings and
// the revocation failure policy.
//
// The loader is deliberately strict about required values. Key material uses
// `env:"...,required"` tags and services validate lengths on top, so a
// deployment missing its ENCRYPTION_KEY fails at startup rather than falling
// back to a weak default.
//
// # Usage
//
//	var redisCfg redis.Config
//	config.MustLoad(&redisCfg)
//
//	var secretsCfg secrets.Config
//	if err := config.Load(&secretsCfg); err != nil {
//	    // surface a ConfigurationError; do not start
//	}
//
// # Error Handling
//
// Load wraps ErrParsingConfig around the underlying parse failure; MustLoad
// panics. Both behaviors are intentional: configuration errors are fatal,
// never retried.
package config
