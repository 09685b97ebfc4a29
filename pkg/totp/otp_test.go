package totp_test

import (
	"testing"
	"time"

	"github.com/praxislegal/trustkit/pkg/totp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rfcSecret is the RFC 6238 shared secret ("12345678901234567890" in ASCII),
// Base32-encoded.
const rfcSecret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

func TestGenerateSecretKey(t *testing.T) {
	t.Parallel()
	secret, err := totp.GenerateSecretKey()
	require.NoError(t, err)
	assert.NotEmpty(t, secret)
	assert.Regexp(t, totp.ValidateSecretKeyRegex, secret)

	other, err := totp.GenerateSecretKey()
	require.NoError(t, err)
	assert.NotEqual(t, secret, other)
}

func TestGenerateCodeAt_RFCVectors(t *testing.T) {
	t.Parallel()

	// Truncations of the RFC 6238 Appendix B SHA-1 reference values to this
	// service's 6-digit configuration.
	tests := []struct {
		unix int64
		want string
	}{
		{unix: 59, want: "287082"},
		{unix: 1111111109, want: "081804"}, // exercises zero padding
		{unix: 1111111111, want: "050471"},
		{unix: 1234567890, want: "005924"},
		{unix: 2000000000, want: "279037"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			got, err := totp.GenerateCodeAt(rfcSecret, time.Unix(tt.unix, 0))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateCodeAt_Determinism(t *testing.T) {
	t.Parallel()

	base := time.Unix(1700000010, 0) // mid-window

	first, err := totp.GenerateCodeAt(rfcSecret, base)
	require.NoError(t, err)
	second, err := totp.GenerateCodeAt(rfcSecret, base.Add(5*time.Second))
	require.NoError(t, err)
	assert.Equal(t, first, second, "same 30-second window must yield the same code")

	next, err := totp.GenerateCodeAt(rfcSecret, base.Add(time.Duration(totp.DefaultPeriod)*time.Second))
	require.NoError(t, err)
	assert.NotEqual(t, first, next, "advancing one step must change the code")
}

func TestGenerateCode_InvalidSecret(t *testing.T) {
	t.Parallel()
	_, err := totp.GenerateCode("not-valid-base32!@#")
	assert.ErrorIs(t, err, totp.ErrInvalidSecret)
}

func TestMatchCounterAt_WindowTolerance(t *testing.T) {
	t.Parallel()

	now := time.Unix(1700000000, 0)
	step := time.Duration(totp.DefaultPeriod) * time.Second

	// Code minted one step in the past.
	stale, err := totp.GenerateCodeAt(rfcSecret, now.Add(-step))
	require.NoError(t, err)

	t.Run("previous step accepted within default skew", func(t *testing.T) {
		t.Parallel()
		counter, ok, err := totp.MatchCounterAt(rfcSecret, stale, now, totp.DefaultSkew)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, now.Add(-step).Unix()/int64(totp.DefaultPeriod), counter)
	})

	t.Run("rejected two steps later", func(t *testing.T) {
		t.Parallel()
		_, ok, err := totp.MatchCounterAt(rfcSecret, stale, now.Add(2*step), totp.DefaultSkew)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("zero skew rejects adjacent step", func(t *testing.T) {
		t.Parallel()
		_, ok, err := totp.MatchCounterAt(rfcSecret, stale, now, 0)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestValidateCode(t *testing.T) {
	t.Parallel()

	secret, err := totp.GenerateSecretKey()
	require.NoError(t, err)
	code, err := totp.GenerateCode(secret)
	require.NoError(t, err)

	tests := []struct {
		name    string
		secret  string
		code    string
		want    bool
		wantErr error
	}{
		{name: "current code validates", secret: secret, code: code, want: true},
		{name: "wrong code is false not error", secret: secret, code: "000000", want: false},
		{name: "malformed code shape", secret: secret, code: "12345", wantErr: totp.ErrInvalidCodeFormat},
		{name: "non-numeric code", secret: secret, code: "abcdef", wantErr: totp.ErrInvalidCodeFormat},
		{name: "invalid secret", secret: "!!!", code: "123456", wantErr: totp.ErrInvalidSecret},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ok, err := totp.ValidateCode(tt.secret, tt.code)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			// The wrong-code case could collide with a real code with
			// probability 10^-6 per window; acceptable for a unit test.
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestEnrollmentURI(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		params  totp.EnrollmentParams
		want    string
		wantErr error
	}{
		{
			name: "basic URI with defaults",
			params: totp.EnrollmentParams{
				Secret:      "ABCDEFGHIJKLMNOP",
				AccountName: "counsel@firm.example",
				Issuer:      "PraxisLegal",
			},
			want: "otpauth://totp/PraxisLegal:counsel@firm.example?algorithm=SHA1&digits=6&issuer=PraxisLegal&period=30&secret=ABCDEFGHIJKLMNOP",
		},
		{
			name: "free text components are percent-encoded",
			params: totp.EnrollmentParams{
				Secret:      "ABCDEFGHIJKLMNOP",
				AccountName: "jr+associate@firm.example",
				Issuer:      "Praxis & Partners",
			},
			want: "otpauth://totp/Praxis%20&%20Partners:jr+associate@firm.example?algorithm=SHA1&digits=6&issuer=Praxis+%26+Partners&period=30&secret=ABCDEFGHIJKLMNOP",
		},
		{
			name:    "missing secret",
			params:  totp.EnrollmentParams{AccountName: "a@b.c", Issuer: "X"},
			wantErr: totp.ErrMissingSecret,
		},
		{
			name:    "invalid secret",
			params:  totp.EnrollmentParams{Secret: "lowercase!", AccountName: "a@b.c", Issuer: "X"},
			wantErr: totp.ErrInvalidSecret,
		},
		{
			name:    "missing account name",
			params:  totp.EnrollmentParams{Secret: "ABCDEFGH", Issuer: "X"},
			wantErr: totp.ErrMissingAccountName,
		},
		{
			name:    "missing issuer",
			params:  totp.EnrollmentParams{Secret: "ABCDEFGH", AccountName: "a@b.c"},
			wantErr: totp.ErrMissingIssuer,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := totp.EnrollmentURI(tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQRCode(t *testing.T) {
	t.Parallel()

	uri, err := totp.EnrollmentURI(totp.EnrollmentParams{
		Secret:      "ABCDEFGHIJKLMNOP",
		AccountName: "counsel@firm.example",
		Issuer:      "PraxisLegal",
	})
	require.NoError(t, err)

	png, err := totp.QRCode(uri, 256)
	require.NoError(t, err)
	assert.NotEmpty(t, png)
	// PNG magic bytes
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])

	dataURI, err := totp.QRCodeBase64(uri, 256)
	require.NoError(t, err)
	assert.Contains(t, dataURI, "data:image/png;base64,")
}
