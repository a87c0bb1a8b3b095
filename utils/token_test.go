package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	if err != nil {
		t.Fatalf("expected no error signing token, got: %v", err)
	}
	return token
}

func TestInspectToken(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signed(t, jwt.MapClaims{
		"userId": "admin-1",
		"role":   "ADMIN",
		"exp":    exp.Unix(),
	})

	info, err := InspectToken(token)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if info.Subject != "admin-1" {
		t.Errorf("expected subject 'admin-1', got '%s'", info.Subject)
	}
	if info.Role != "ADMIN" {
		t.Errorf("expected role 'ADMIN', got '%s'", info.Role)
	}
	if info.ExpiresAt == nil || !info.ExpiresAt.Equal(exp) {
		t.Errorf("expected expiry %v, got %v", exp, info.ExpiresAt)
	}
	if info.Expired(time.Now()) {
		t.Error("token should not be expired yet")
	}
}

func TestInspectTokenExpired(t *testing.T) {
	token := signed(t, jwt.MapClaims{"sub": "u1", "exp": time.Now().Add(-time.Minute).Unix()})

	info, err := InspectToken(token)
	if err != nil {
		t.Fatalf("expired tokens must still decode, got: %v", err)
	}
	if info.Subject != "u1" {
		t.Errorf("expected sub claim to win, got '%s'", info.Subject)
	}
	if !info.Expired(time.Now()) {
		t.Error("expected token to be expired")
	}
}

func TestInspectTokenWithoutExpiry(t *testing.T) {
	info, err := InspectToken(signed(t, jwt.MapClaims{"id": "u2"}))
	if err != nil {
		t.Fatal(err)
	}
	if info.Expired(time.Now().Add(100 * 365 * 24 * time.Hour)) {
		t.Error("tokens without exp never expire")
	}
}

func TestInspectTokenGarbage(t *testing.T) {
	if _, err := InspectToken("not-a-jwt"); err == nil {
		t.Error("expected error for malformed token")
	}
	if _, err := InspectToken(""); err == nil {
		t.Error("expected error for empty token")
	}
}
