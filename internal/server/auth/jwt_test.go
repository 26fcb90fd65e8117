package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/JokeryEU/shoplistapp-server/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

var testNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func newTestCodec(t *testing.T, now *time.Time) *Codec {
	t.Helper()
	c, err := NewCodec("access-secret", "refresh-secret", 24*time.Hour, 7*24*time.Hour,
		WithClock(func() time.Time { return *now }))
	if err != nil {
		t.Fatalf("NewCodec error: %v", err)
	}
	return c
}

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	userID := "8a6e0804-2bd0-4672-b79d-d97027f9071a"

	tok, err := GenerateToken(userID, secret, time.Now(), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	got, err := GetSubjectFromToken(tok, secret, time.Now)
	if err != nil {
		t.Fatalf("GetSubjectFromToken error: %v", err)
	}
	if got != userID {
		t.Fatalf("subject mismatch: got %q want %q", got, userID)
	}
}

func TestGetSubjectFromToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := GenerateToken("u1", secret, time.Now(), -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = GetSubjectFromToken(tok, secret, time.Now)
	if err != common.ErrExpiredCredential {
		t.Fatalf("expected common.ErrExpiredCredential, got %v", err)
	}
}

func TestGetSubjectFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("u2", []byte("right-secret"), time.Now(), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = GetSubjectFromToken(tok, []byte("wrong-secret"), time.Now)
	if !errors.Is(err, common.ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential, got %v", err)
	}
}

func TestGetSubjectFromToken_Malformed(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "abc", "not.a.jwt", "a.b"} {
		_, err := GetSubjectFromToken(in, []byte("k"), time.Now)
		if !errors.Is(err, common.ErrMalformedCredential) {
			t.Fatalf("%q: expected ErrMalformedCredential, got %v", in, err)
		}
	}
}

func TestGetSubjectFromToken_MissingSubject(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	tok, err := GenerateToken("", secret, time.Now(), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = GetSubjectFromToken(tok, secret, time.Now)
	if !errors.Is(err, common.ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential, got %v", err)
	}
}

func TestGetSubjectFromToken_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(secret)
	if err != nil {
		t.Fatalf("SignedString error: %v", err)
	}

	_, err = GetSubjectFromToken(tok, secret, time.Now)
	if !errors.Is(err, common.ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential, got %v", err)
	}
}

func TestGetSubjectFromToken_RequiresExpiry(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "u1"}).SignedString(secret)
	if err != nil {
		t.Fatalf("SignedString error: %v", err)
	}

	if _, err := GetSubjectFromToken(tok, secret, time.Now); err == nil {
		t.Fatal("expected error for token without exp")
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	t.Parallel()

	now := testNow
	c := newTestCodec(t, &now)

	for _, id := range []string{"u1", "8a6e0804-2bd0-4672-b79d-d97027f9071a", strings.Repeat("x", 200)} {
		access, err := c.IssueAccess(id)
		if err != nil {
			t.Fatalf("IssueAccess error: %v", err)
		}
		if got, err := c.VerifyAccess(access); err != nil || got != id {
			t.Fatalf("VerifyAccess = %q, %v; want %q", got, err, id)
		}

		refresh, err := c.IssueRefresh(id)
		if err != nil {
			t.Fatalf("IssueRefresh error: %v", err)
		}
		if got, err := c.VerifyRefresh(refresh); err != nil || got != id {
			t.Fatalf("VerifyRefresh = %q, %v; want %q", got, err, id)
		}
	}
}

func TestCodec_KindsAreNotInterchangeable(t *testing.T) {
	t.Parallel()

	now := testNow
	c := newTestCodec(t, &now)

	access, _ := c.IssueAccess("u1")
	refresh, _ := c.IssueRefresh("u1")

	if _, err := c.VerifyRefresh(access); !errors.Is(err, common.ErrInvalidCredential) {
		t.Fatalf("access token accepted as refresh: %v", err)
	}
	if _, err := c.VerifyAccess(refresh); !errors.Is(err, common.ErrInvalidCredential) {
		t.Fatalf("refresh token accepted as access: %v", err)
	}
}

func TestCodec_ExpiryWindows(t *testing.T) {
	t.Parallel()

	now := testNow
	c := newTestCodec(t, &now)

	access, _ := c.IssueAccess("u1")
	refresh, _ := c.IssueRefresh("u1")

	now = testNow.Add(23 * time.Hour)
	if _, err := c.VerifyAccess(access); err != nil {
		t.Fatalf("access token should still be valid: %v", err)
	}

	now = testNow.Add(25 * time.Hour)
	if _, err := c.VerifyAccess(access); !errors.Is(err, common.ErrExpiredCredential) {
		t.Fatalf("expected ErrExpiredCredential for access, got %v", err)
	}
	if _, err := c.VerifyRefresh(refresh); err != nil {
		t.Fatalf("refresh token should still be valid: %v", err)
	}

	now = testNow.Add(7*24*time.Hour + time.Minute)
	if _, err := c.VerifyRefresh(refresh); !errors.Is(err, common.ErrExpiredCredential) {
		t.Fatalf("expected ErrExpiredCredential for refresh, got %v", err)
	}
}

func TestCodec_TokensAreUnique(t *testing.T) {
	t.Parallel()

	now := testNow
	c := newTestCodec(t, &now)

	a, _ := c.IssueRefresh("u1")
	b, _ := c.IssueRefresh("u1")
	if a == b {
		t.Fatal("two refresh tokens issued at the same instant must differ")
	}
}

func TestNewCodec_RejectsBadConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		access, refresh  string
		accessTTL, rfTTL time.Duration
	}{
		{"empty access", "", "r", time.Hour, time.Hour},
		{"empty refresh", "a", "", time.Hour, time.Hour},
		{"same secrets", "same", "same", time.Hour, time.Hour},
		{"zero access ttl", "a", "r", 0, time.Hour},
		{"negative refresh ttl", "a", "r", time.Hour, -time.Hour},
	}
	for _, tt := range tests {
		if _, err := NewCodec(tt.access, tt.refresh, tt.accessTTL, tt.rfTTL); err == nil {
			t.Fatalf("%s: expected error", tt.name)
		}
	}
}
