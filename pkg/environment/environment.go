package environment

import (
	"context"
	"os"
)

// Environment represents the application deployment environment.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// Detect reads the environment from APP_ENV, defaulting to development. The
// trust-boundary packages use this for fail-fast behavior: secret material
// that may be generated ad hoc during development is a fatal startup error in
// production.
func Detect() Environment {
	switch os.Getenv("APP_ENV") {
	case string(Production), "prod":
		return Production
	case string(Staging), "stage":
		return Staging
	default:
		return Development
	}
}

type contextKey struct{}

// WithContext adds the environment to a context.
func WithContext(ctx context.Context, env Environment) context.Context {
	return context.WithValue(ctx, contextKey{}, env)
}

// FromContext retrieves the environment from a context, empty when unset.
func FromContext(ctx context.Context) Environment {
	if ctx == nil {
		return ""
	}
	env, _ := ctx.Value(contextKey{}).(Environment)
	return env
}

// IsProduction reports whether the detected environment is production.
func IsProduction() bool {
	return Detect() == Production
}
