package storage

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const downloadIssuer = "edu-pilot-exports"

// DownloadClaims binds a download token to a preview and a stored artifact.
type DownloadClaims struct {
	PreviewID string `json:"pid"`
	Path      string `json:"path"`
	jwt.RegisteredClaims
}

// SignedURLSigner creates and validates signed download tokens.
type SignedURLSigner struct {
	secret []byte
	ttl    time.Duration
}

// NewSignedURLSigner constructs a signer with the provided secret and TTL.
func NewSignedURLSigner(secret string, ttl time.Duration) *SignedURLSigner {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SignedURLSigner{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Generate returns a signed token referencing the preview and artifact path.
func (s *SignedURLSigner) Generate(previewID, relPath string) (string, time.Time, error) {
	if previewID == "" || relPath == "" {
		return "", time.Time{}, fmt.Errorf("previewID and relPath required")
	}
	if len(s.secret) == 0 {
		return "", time.Time{}, fmt.Errorf("signing secret missing")
	}
	issuedAt := time.Now().UTC()
	expiresAt := issuedAt.Add(s.ttl)
	claims := &DownloadClaims{
		PreviewID: previewID,
		Path:      relPath,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    downloadIssuer,
			Subject:   previewID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign download token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse validates signature, issuer and expiry and returns the embedded claims.
func (s *SignedURLSigner) Parse(token string) (*DownloadClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &DownloadClaims{}, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(downloadIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("parse download token: %w", err)
	}
	claims, ok := parsed.Claims.(*DownloadClaims)
	if !ok || !parsed.Valid || claims.PreviewID == "" || claims.Path == "" {
		return nil, fmt.Errorf("invalid download token claims")
	}
	return claims, nil
}
