package mfa_test

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxislegal/trustkit/modules/mfa"
	"github.com/praxislegal/trustkit/pkg/secrets"
	"github.com/praxislegal/trustkit/pkg/totp"
)

func newTestService(t *testing.T) (*mfa.Service, *secrets.Service, *miniredis.Miniredis) {
	t.Helper()

	key, err := secrets.GenerateKey()
	require.NoError(t, err)
	secretsSvc, err := secrets.New(key)
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	svc := mfa.New(secretsSvc, client, mfa.Config{Issuer: "PraxisLegal", Skew: 1}, nil)
	return svc, secretsSvc, mr
}

func TestEnroll(t *testing.T) {
	t.Parallel()

	svc, secretsSvc, _ := newTestService(t)

	enrollment, err := svc.Enroll(context.Background(), "user-1", "partner@praxis.example")
	require.NoError(t, err)

	assert.NotEmpty(t, enrollment.EncryptedSecret)
	assert.True(t, strings.HasPrefix(enrollment.URI, "otpauth://totp/"))
	assert.True(t, strings.HasPrefix(enrollment.QRCode, "data:image/png;base64,"))
	assert.Len(t, enrollment.BackupCodes, totp.DefaultBackupCodeCount)
	assert.Len(t, enrollment.HashedBackupCodes, totp.DefaultBackupCodeCount)

	// The encrypted secret must decrypt back to the one embedded in the URI.
	secret, err := secretsSvc.DecryptString(enrollment.EncryptedSecret)
	require.NoError(t, err)

	parsed, err := url.Parse(enrollment.URI)
	require.NoError(t, err)
	assert.Equal(t, secret, parsed.Query().Get("secret"))
}

func TestVerifyCode(t *testing.T) {
	t.Parallel()

	t.Run("accepts a fresh in-window code", func(t *testing.T) {
		t.Parallel()

		svc, secretsSvc, _ := newTestService(t)
		enrollment, err := svc.Enroll(context.Background(), "user-1", "acct")
		require.NoError(t, err)

		secret, err := secretsSvc.DecryptString(enrollment.EncryptedSecret)
		require.NoError(t, err)
		code, err := totp.GenerateCode(secret)
		require.NoError(t, err)

		ok, err := svc.VerifyCode(context.Background(), "user-1", enrollment.EncryptedSecret, code)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("rejects a replayed code", func(t *testing.T) {
		t.Parallel()

		svc, secretsSvc, _ := newTestService(t)
		enrollment, err := svc.Enroll(context.Background(), "user-1", "acct")
		require.NoError(t, err)

		secret, err := secretsSvc.DecryptString(enrollment.EncryptedSecret)
		require.NoError(t, err)
		code, err := totp.GenerateCode(secret)
		require.NoError(t, err)

		ok, err := svc.VerifyCode(context.Background(), "user-1", enrollment.EncryptedSecret, code)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = svc.VerifyCode(context.Background(), "user-1", enrollment.EncryptedSecret, code)
		require.NoError(t, err)
		assert.False(t, ok, "a code must be accepted at most once")
	})

	t.Run("replay guard is scoped per user", func(t *testing.T) {
		t.Parallel()

		svc, secretsSvc, _ := newTestService(t)
		enrollment, err := svc.Enroll(context.Background(), "user-1", "acct")
		require.NoError(t, err)

		secret, err := secretsSvc.DecryptString(enrollment.EncryptedSecret)
		require.NoError(t, err)
		code, err := totp.GenerateCode(secret)
		require.NoError(t, err)

		ok, err := svc.VerifyCode(context.Background(), "user-1", enrollment.EncryptedSecret, code)
		require.NoError(t, err)
		require.True(t, ok)

		// Another user sharing the same secret material is still allowed.
		ok, err = svc.VerifyCode(context.Background(), "user-2", enrollment.EncryptedSecret, code)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("rejects a wrong code", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newTestService(t)
		enrollment, err := svc.Enroll(context.Background(), "user-1", "acct")
		require.NoError(t, err)

		ok, err := svc.VerifyCode(context.Background(), "user-1", enrollment.EncryptedSecret, "000000")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("errors on an undecryptable secret", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newTestService(t)

		ok, err := svc.VerifyCode(context.Background(), "user-1", "not-a-ciphertext", "123456")
		require.Error(t, err)
		assert.False(t, ok)
	})

	t.Run("degrades open when the replay store is down", func(t *testing.T) {
		t.Parallel()

		svc, secretsSvc, mr := newTestService(t)
		enrollment, err := svc.Enroll(context.Background(), "user-1", "acct")
		require.NoError(t, err)

		secret, err := secretsSvc.DecryptString(enrollment.EncryptedSecret)
		require.NoError(t, err)
		code, err := totp.GenerateCode(secret)
		require.NoError(t, err)

		mr.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		ok, err := svc.VerifyCode(ctx, "user-1", enrollment.EncryptedSecret, code)
		require.NoError(t, err)
		assert.True(t, ok, "a guard outage must not lock users out")
	})
}

func TestUseBackupCode(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	enrollment, err := svc.Enroll(context.Background(), "user-1", "acct")
	require.NoError(t, err)

	code := enrollment.BackupCodes[3]

	remaining, ok := svc.UseBackupCode(context.Background(), "user-1", code, enrollment.HashedBackupCodes)
	require.True(t, ok)
	assert.Len(t, remaining, len(enrollment.HashedBackupCodes)-1)

	// The consumed code no longer verifies against the returned list.
	_, ok = svc.UseBackupCode(context.Background(), "user-1", code, remaining)
	assert.False(t, ok)

	// Untouched codes still work against the reduced list.
	final, ok := svc.UseBackupCode(context.Background(), "user-1", enrollment.BackupCodes[0], remaining)
	require.True(t, ok)
	assert.Len(t, final, len(remaining)-1)

	// An invalid code returns the input list unchanged.
	same, ok := svc.UseBackupCode(context.Background(), "user-1", "ZZZZZZZZ", final)
	assert.False(t, ok)
	assert.Equal(t, final, same)
}
