package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignedURLSignerGenerateAndParse(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Hour)
	token, expiresAt, err := signer.Generate("backup-1", "2024/ppgee-backup-2024-03-01.json")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.False(t, expiresAt.IsZero())

	id, path, parsedExpiry, err := signer.Parse(token, false)
	require.NoError(t, err)
	require.Equal(t, "backup-1", id)
	require.Equal(t, "2024/ppgee-backup-2024-03-01.json", path)
	require.WithinDuration(t, expiresAt, parsedExpiry, time.Second)
}

func TestSignedURLSignerExpired(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Minute)
	issued := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	signer.now = func() time.Time { return issued }
	token, _, err := signer.Generate("backup-1", "file.json")
	require.NoError(t, err)

	signer.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, _, _, err = signer.Parse(token, false)
	require.ErrorIs(t, err, ErrTokenExpired)

	id, path, _, err := signer.Parse(token, true)
	require.NoError(t, err)
	require.Equal(t, "backup-1", id)
	require.Equal(t, "file.json", path)
}

func TestSignedURLSignerRejectsTampering(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Hour)
	token, _, err := signer.Generate("backup-1", "file.json")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	parts[0] = "backup-2"
	_, _, _, err = signer.Parse(strings.Join(parts, "."), false)
	require.ErrorIs(t, err, ErrTokenInvalid)

	other := NewSignedURLSigner("other", time.Hour)
	_, _, _, err = other.Parse(token, false)
	require.ErrorIs(t, err, ErrTokenInvalid)

	_, _, _, err = signer.Parse("garbage", false)
	require.ErrorIs(t, err, ErrTokenInvalid)
}
