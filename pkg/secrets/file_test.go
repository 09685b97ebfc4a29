package secrets_test

import (
	"bytes"
	"crypto/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/praxislegal/trustkit/pkg/secrets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encryptTempFile(t *testing.T, svc *secrets.Service, content []byte) (inPath, encPath string) {
	t.Helper()
	dir := t.TempDir()
	inPath = filepath.Join(dir, "plain.bin")
	encPath = filepath.Join(dir, "cipher.bin")
	require.NoError(t, os.WriteFile(inPath, content, 0o600))
	require.NoError(t, svc.EncryptFile(inPath, encPath))
	return inPath, encPath
}

func TestEncryptDecryptFile(t *testing.T) {
	t.Parallel()
	svc := newService(t)

	tests := []struct {
		name string
		size int
	}{
		{name: "empty file", size: 0},
		{name: "small file", size: 137},
		{name: "exactly one chunk", size: 64 * 1024},
		{name: "multi-chunk", size: 64*1024*3 + 511},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			content := make([]byte, tt.size)
			_, err := rand.Read(content)
			require.NoError(t, err)

			_, encPath := encryptTempFile(t, svc, content)

			outPath := filepath.Join(t.TempDir(), "decrypted.bin")
			require.NoError(t, svc.DecryptFile(encPath, outPath))

			decrypted, err := os.ReadFile(outPath)
			require.NoError(t, err)
			assert.True(t, bytes.Equal(content, decrypted))
		})
	}
}

func TestDecryptFile_Tampered(t *testing.T) {
	t.Parallel()
	svc := newService(t)

	content := bytes.Repeat([]byte("discovery exhibit "), 8192) // spans chunks
	_, encPath := encryptTempFile(t, svc, content)

	encrypted, err := os.ReadFile(encPath)
	require.NoError(t, err)

	t.Run("flipped bit mid-stream", func(t *testing.T) {
		t.Parallel()
		tampered := make([]byte, len(encrypted))
		copy(tampered, encrypted)
		tampered[len(tampered)/2] ^= 0x01

		dir := t.TempDir()
		badPath := filepath.Join(dir, "tampered.bin")
		require.NoError(t, os.WriteFile(badPath, tampered, 0o600))

		outPath := filepath.Join(dir, "out.bin")
		err := svc.DecryptFile(badPath, outPath)
		assert.Error(t, err)
		assert.NoFileExists(t, outPath, "partial plaintext must be removed")
	})

	t.Run("truncated stream", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		truncPath := filepath.Join(dir, "truncated.bin")
		require.NoError(t, os.WriteFile(truncPath, encrypted[:len(encrypted)/2], 0o600))

		outPath := filepath.Join(dir, "out.bin")
		err := svc.DecryptFile(truncPath, outPath)
		assert.Error(t, err)
		assert.NoFileExists(t, outPath)
	})

	t.Run("trailing garbage", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		spliced := append(append([]byte{}, encrypted...), 0xde, 0xad)
		splicedPath := filepath.Join(dir, "spliced.bin")
		require.NoError(t, os.WriteFile(splicedPath, spliced, 0o600))

		outPath := filepath.Join(dir, "out.bin")
		err := svc.DecryptFile(splicedPath, outPath)
		assert.ErrorIs(t, err, secrets.ErrInvalidCiphertext)
	})

	t.Run("wrong key", func(t *testing.T) {
		t.Parallel()
		other := newService(t)
		outPath := filepath.Join(t.TempDir(), "out.bin")
		err := other.DecryptFile(encPath, outPath)
		assert.ErrorIs(t, err, secrets.ErrDecryptionFailed)
	})
}

func TestEncryptFile_MissingInput(t *testing.T) {
	t.Parallel()
	svc := newService(t)

	dir := t.TempDir()
	err := svc.EncryptFile(filepath.Join(dir, "does-not-exist"), filepath.Join(dir, "out.bin"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "does-not-exist")
}
