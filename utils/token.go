package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what the console can read from a backend-issued bearer token.
type TokenInfo struct {
	Subject   string
	Role      string
	ExpiresAt *time.Time
}

type backendClaims struct {
	UserID   string `json:"userId"`
	LegacyID string `json:"id"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// InspectToken decodes the claims of a bearer token without verifying the
// signature. The backend remains the authority; this only lets the console
// skip tokens that are already expired.
func InspectToken(token string) (*TokenInfo, error) {
	if token == "" {
		return nil, errors.New("empty token")
	}
	claims := &backendClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}

	info := &TokenInfo{Role: claims.Role, Subject: claims.Subject}
	if info.Subject == "" {
		info.Subject = claims.UserID
	}
	if info.Subject == "" {
		info.Subject = claims.LegacyID
	}
	if claims.ExpiresAt != nil {
		exp := claims.ExpiresAt.Time
		info.ExpiresAt = &exp
	}
	return info, nil
}

// Expired reports whether the token carries an exp claim at or before now.
// Tokens without exp never expire from the console's point of view.
func (i *TokenInfo) Expired(now time.Time) bool {
	return i != nil && i.ExpiresAt != nil && !now.Before(*i.ExpiresAt)
}
