package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignedURLSignerGenerateAndParse(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Hour)
	token, expiresAt, err := signer.Generate("preview-1", "preview-1/classes.csv")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.False(t, expiresAt.IsZero())

	claims, err := signer.Parse(token)
	require.NoError(t, err)
	require.Equal(t, "preview-1", claims.PreviewID)
	require.Equal(t, "preview-1/classes.csv", claims.Path)
	require.WithinDuration(t, expiresAt, claims.ExpiresAt.Time, time.Second)
}

func TestSignedURLSignerExpired(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Second)
	token, _, err := signer.Generate("preview-1", "preview-1/exam.pdf")
	require.NoError(t, err)
	time.Sleep(2100 * time.Millisecond)

	_, err = signer.Parse(token)
	require.Error(t, err)
}

func TestSignedURLSignerRejectsForeignSecret(t *testing.T) {
	token, _, err := NewSignedURLSigner("secret", time.Hour).Generate("preview-1", "a.csv")
	require.NoError(t, err)

	_, err = NewSignedURLSigner("other", time.Hour).Parse(token)
	require.Error(t, err)

	_, _, err = NewSignedURLSigner("secret", time.Hour).Generate("", "a.csv")
	require.Error(t, err)
}
