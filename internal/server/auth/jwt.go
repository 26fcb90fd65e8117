// Package auth signs and verifies the access and refresh tokens and hashes
// passwords. It holds no state beyond key material from configuration.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/JokeryEU/shoplistapp-server/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// GenerateToken signs an HS256 token whose only identity claim is the
// subject. The jti is a random nonce so that two tokens minted in the same
// second for the same subject still differ.
func GenerateToken(subject string, secretKey []byte, issuedAt time.Time, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(validityDuration)),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetSubjectFromToken verifies signature and expiry against secretKey, using
// now as the clock, and returns the subject.
//
// Errors: common.ErrMalformedCredential for input that is not a JWT,
// common.ErrExpiredCredential past expiry, common.ErrInvalidCredential for
// anything else (bad signature, wrong algorithm, missing subject).
func GetSubjectFromToken(tokenString string, secretKey []byte, now func() time.Time) (string, error) {
	claims := &jwt.RegisteredClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return "", fmt.Errorf("%w: %v", common.ErrMalformedCredential, err)
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", common.ErrExpiredCredential
		default:
			return "", fmt.Errorf("%w: %v", common.ErrInvalidCredential, err)
		}
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", common.ErrInvalidCredential)
	}

	return claims.Subject, nil
}

// Codec issues and verifies both token kinds. Each kind has its own secret
// and lifetime, so a token of one kind never verifies as the other.
type Codec struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

// CodecOption customises a Codec.
type CodecOption func(*Codec)

// WithClock replaces time.Now for both signing and verification.
func WithClock(now func() time.Time) CodecOption {
	return func(c *Codec) { c.now = now }
}

// NewCodec returns a Codec for the given key material and lifetimes.
func NewCodec(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration, opts ...CodecOption) (*Codec, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, errors.New("token secrets must not be empty")
	}
	if accessSecret == refreshSecret {
		return nil, errors.New("access and refresh secrets must differ")
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, errors.New("token lifetimes must be positive")
	}

	c := &Codec{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Codec) IssueAccess(subject string) (string, error) {
	return GenerateToken(subject, c.accessSecret, c.now(), c.accessTTL)
}

func (c *Codec) IssueRefresh(subject string) (string, error) {
	return GenerateToken(subject, c.refreshSecret, c.now(), c.refreshTTL)
}

func (c *Codec) VerifyAccess(token string) (string, error) {
	return GetSubjectFromToken(token, c.accessSecret, c.now)
}

func (c *Codec) VerifyRefresh(token string) (string, error) {
	return GetSubjectFromToken(token, c.refreshSecret, c.now)
}

// AccessTTL is the lifetime of issued access tokens.
func (c *Codec) AccessTTL() time.Duration { return c.accessTTL }

// RefreshTTL is the lifetime of issued refresh tokens.
func (c *Codec) RefreshTTL() time.Duration { return c.refreshTTL }
