package mfa

import "github.com/praxislegal/trustkit/pkg/totp"

// Config controls enrollment presentation and verification tolerance.
type Config struct {
	Issuer           string `env:"TOTP_ISSUER,required"`
	Skew             int    `env:"TOTP_SKEW" envDefault:"1"`
	QRSize           int    `env:"MFA_QR_SIZE" envDefault:"256"`
	BackupCodeCount  int    `env:"MFA_BACKUP_CODE_COUNT" envDefault:"10"`
	CounterKeyPrefix string `env:"MFA_COUNTER_KEY_PREFIX" envDefault:"mfa:counter:"`
}

func (c Config) withDefaults() Config {
	if c.Skew < 0 {
		c.Skew = totp.DefaultSkew
	}
	if c.QRSize <= 0 {
		c.QRSize = 256
	}
	if c.BackupCodeCount <= 0 {
		c.BackupCodeCount = totp.DefaultBackupCodeCount
	}
	if c.CounterKeyPrefix == "" {
		c.CounterKeyPrefix = "mfa:counter:"
	}
	return c
}
