package totp

import (
	"crypto/rand"
	"encoding/base32"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/praxislegal/trustkit/pkg/keyhash"
)

const (
	DefaultDigits    = 6      // Standard 6-digit TOTP codes
	DefaultPeriod    = 30     // 30-second validity window (RFC 6238 standard)
	DefaultSkew      = 1      // Adjacent time steps accepted to absorb clock drift
	DefaultAlgorithm = "SHA1" // HMAC-SHA1 (RFC 6238 standard, required for app interop)

	// SecretSize is the raw secret length before Base32 encoding: 160 bits,
	// the RFC 4226 recommendation.
	SecretSize = 20
)

var (
	// ValidateSecretKeyRegex ensures Base32 format: uppercase A-Z, digits 2-7, optional padding
	ValidateSecretKeyRegex = regexp.MustCompile("^[A-Z2-7]+=*$")

	codeRegex = regexp.MustCompile(fmt.Sprintf(`^\d{%d}$`, DefaultDigits))
)

// EnrollmentParams contains the parameters for building an otpauth:// URI.
type EnrollmentParams struct {
	Secret      string // Base32-encoded TOTP secret key (required)
	AccountName string // User identifier like email (required)
	Issuer      string // Service name displayed in authenticator apps (required)
	Algorithm   string // HMAC algorithm (optional, defaults to SHA1)
	Digits      int    // Number of digits in generated codes (optional, defaults to 6)
	Period      int    // Code validity period in seconds (optional, defaults to 30)
}

// Validate ensures all required enrollment parameters are present and valid.
func (p EnrollmentParams) Validate() error {
	if p.Secret == "" {
		return ErrMissingSecret
	}
	if !ValidateSecretKeyRegex.MatchString(p.Secret) {
		return ErrInvalidSecret
	}
	if p.AccountName == "" {
		return ErrMissingAccountName
	}
	if p.Issuer == "" {
		return ErrMissingIssuer
	}
	return nil
}

// withDefaults returns a copy with RFC 6238 standard defaults applied to
// zero-valued fields.
func (p EnrollmentParams) withDefaults() EnrollmentParams {
	if p.Algorithm == "" {
		p.Algorithm = DefaultAlgorithm
	}
	if p.Digits == 0 {
		p.Digits = DefaultDigits
	}
	if p.Period == 0 {
		p.Period = DefaultPeriod
	}
	return p
}

// GenerateSecretKey generates a new Base32-encoded secret for MFA enrollment.
func GenerateSecretKey() (string, error) {
	secret := make([]byte, SecretSize)
	if _, err := rand.Read(secret); err != nil {
		return "", errors.Join(ErrFailedToGenerateSecretKey, err)
	}
	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(secret), nil
}

// EnrollmentURI creates a properly encoded otpauth:// URI for authenticator
// apps. The format follows the Key Uri Format specification:
// https://github.com/google/google-authenticator/wiki/Key-Uri-Format
// Parameter names, algorithm casing, and percent-encoding must stay
// byte-compatible with Google Authenticator, 1Password and friends.
func EnrollmentURI(params EnrollmentParams) (string, error) {
	if err := params.Validate(); err != nil {
		return "", err
	}

	params = params.withDefaults()

	label := fmt.Sprintf("%s:%s",
		url.PathEscape(params.Issuer),
		url.PathEscape(params.AccountName),
	)

	query := url.Values{}
	query.Set("secret", params.Secret)
	query.Set("issuer", params.Issuer)
	query.Set("algorithm", params.Algorithm)
	query.Set("digits", fmt.Sprintf("%d", params.Digits))
	query.Set("period", fmt.Sprintf("%d", params.Period))

	return fmt.Sprintf("otpauth://totp/%s?%s", label, query.Encode()), nil
}

// decodeSecret normalizes and Base32-decodes a secret.
func decodeSecret(secret string) ([]byte, error) {
	secret = strings.TrimSpace(strings.ToUpper(secret))
	if !ValidateSecretKeyRegex.MatchString(secret) {
		return nil, ErrInvalidSecret
	}
	key, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(strings.TrimRight(secret, "="))
	if err != nil {
		return nil, errors.Join(ErrInvalidSecret, err)
	}
	return key, nil
}

// hotp implements the RFC 4226 HMAC-based One-Time Password algorithm: the
// big-endian 8-byte counter is HMAC'd with the key, a 4-byte window is chosen
// by dynamic truncation (offset = low nibble of the last HMAC byte), and the
// resulting 31-bit integer is reduced modulo 10^digits.
func hotp(key []byte, counter uint64, digits int) (int, error) {
	counterBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(counterBytes, counter)

	mac, err := keyhash.HMAC("sha1", key, counterBytes)
	if err != nil {
		return 0, err
	}

	offset := mac[len(mac)-1] & 0x0f
	code := (int(mac[offset]&0x7f) << 24) |
		(int(mac[offset+1]&0xff) << 16) |
		(int(mac[offset+2]&0xff) << 8) |
		(int(mac[offset+3] & 0xff))

	return code % int(math.Pow10(digits)), nil
}

// counterAt returns the RFC 6238 time-step counter for the given moment.
func counterAt(t time.Time) int64 {
	return t.Unix() / int64(DefaultPeriod)
}

// GenerateCode computes the 6-digit code for the current 30-second window.
func GenerateCode(secret string) (string, error) {
	return GenerateCodeAt(secret, time.Now())
}

// GenerateCodeAt computes the code for the window containing t. Useful for
// testing and for pre-computing enrollment confirmation codes.
func GenerateCodeAt(secret string, t time.Time) (string, error) {
	key, err := decodeSecret(secret)
	if err != nil {
		return "", err
	}

	code, err := hotp(key, uint64(counterAt(t)), DefaultDigits)
	if err != nil {
		return "", errors.Join(ErrFailedToGenerateCode, err)
	}

	return fmt.Sprintf("%0*d", DefaultDigits, code), nil
}

// ValidateCode checks a submitted code against the current window with the
// default ±1 step tolerance. A non-matching code is (false, nil); only a
// malformed secret or code shape is an error.
func ValidateCode(secret, code string) (bool, error) {
	_, ok, err := MatchCounterAt(secret, code, time.Now(), DefaultSkew)
	return ok, err
}

// MatchCounterAt checks code against the windows [counter-skew, counter+skew]
// around t and reports the counter that matched. Callers implementing replay
// protection persist the matched counter and reject codes at or below it.
func MatchCounterAt(secret, code string, t time.Time, skew int) (int64, bool, error) {
	key, err := decodeSecret(secret)
	if err != nil {
		return 0, false, err
	}

	code = strings.TrimSpace(code)
	if !codeRegex.MatchString(code) {
		return 0, false, ErrInvalidCodeFormat
	}

	if skew < 0 {
		skew = 0
	}

	counter := counterAt(t)
	for i := -skew; i <= skew; i++ {
		candidate := counter + int64(i)
		if candidate < 0 {
			continue
		}
		expected, err := hotp(key, uint64(candidate), DefaultDigits)
		if err != nil {
			return 0, false, errors.Join(ErrFailedToValidateCode, err)
		}
		if keyhash.Equal(fmt.Sprintf("%0*d", DefaultDigits, expected), code) {
			return candidate, true, nil
		}
	}

	return 0, false, nil
}
