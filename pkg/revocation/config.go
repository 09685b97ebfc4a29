package revocation

import "time"

// Config controls the revocation service's key namespace and failure policy.
//
// FailOpen is the availability/security trade-off for store outages: open
// treats unknown tokens as not revoked so a cache outage does not become a
// full authentication outage; closed rejects every token while the store is
// unreachable. The default is open; deployments with strict compliance
// requirements set REVOCATION_FAIL_OPEN=false.
type Config struct {
	KeyPrefix string        `env:"REVOCATION_KEY_PREFIX" envDefault:"blacklist:token:"`
	FailOpen  bool          `env:"REVOCATION_FAIL_OPEN" envDefault:"true"`
	OpTimeout time.Duration `env:"REVOCATION_OP_TIMEOUT" envDefault:"3s"`
}

func (c Config) withDefaults() Config {
	if c.KeyPrefix == "" {
		c.KeyPrefix = "blacklist:token:"
	}
	if c.OpTimeout <= 0 {
		c.OpTimeout = 3 * time.Second
	}
	return c
}
