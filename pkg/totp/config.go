package totp

// Config carries the enrollment-facing TOTP settings. The algorithm, digit
// count and period rarely change in practice: authenticator-app interop pins
// them to the RFC 6238 defaults.
type Config struct {
	Issuer string `env:"TOTP_ISSUER,required"`        // Name shown in authenticator apps
	Digits int    `env:"TOTP_DIGITS" envDefault:"6"`  // Code width
	Period int    `env:"TOTP_PERIOD" envDefault:"30"` // Time-step length in seconds
	Skew   int    `env:"TOTP_SKEW" envDefault:"1"`    // Adjacent steps tolerated on validation
}
