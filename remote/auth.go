package remote

import (
	"context"
	"errors"
	"net/http"
)

var ErrNoToken = errors.New("login response did not include a token")

type AuthService struct {
	client *Client
}

func NewAuthService(c *Client) *AuthService {
	return &AuthService{client: c}
}

// Login exchanges credentials for a bearer token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	env, err := s.client.do(ctx, http.MethodPost, "/auth/login", nil, map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return "", err
	}
	if env.Token != "" {
		return env.Token, nil
	}
	// Some deployments nest the token under data.
	var nested struct {
		Token string `json:"token"`
	}
	if env.hasData() && decodeData(env, &nested) == nil && nested.Token != "" {
		return nested.Token, nil
	}
	return "", ErrNoToken
}

// Me returns the user the current bearer token belongs to.
func (s *AuthService) Me(ctx context.Context) (*User, error) {
	env, err := s.client.do(ctx, http.MethodGet, "/users/me", nil, nil)
	if err != nil {
		return nil, err
	}
	var u User
	if err := decodeData(env, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
