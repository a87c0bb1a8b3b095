// Package session holds the operator who is signed in to the console. There is
// one session per process; its bearer token is persisted in the authToken slot
// so a restart does not sign the operator out.
package session

import (
	"context"
	"crypto/subtle"
	"errors"
	"sync"
	"time"

	"admin-console/localstore"
	"admin-console/logger"
	"admin-console/remote"
	"admin-console/utils"

	"go.uber.org/zap"
)

const TokenSlot = "authToken"

var (
	ErrNoSession = errors.New("no active session")
	ErrNotAdmin  = errors.New("account is not an administrator")
)

// AuthAPI is the part of the remote auth service the session needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context) (*remote.User, error)
}

// Session implements remote.TokenSource.
type Session struct {
	slots localstore.Store
	auth  AuthAPI
	now   func() time.Time

	mu    sync.RWMutex
	token string
	user  *remote.User
}

func New(slots localstore.Store, auth AuthAPI) *Session {
	return &Session{slots: slots, auth: auth, now: time.Now}
}

// Token is the bearer token attached to remote calls, or "".
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the signed-in operator, or nil.
func (s *Session) User() *remote.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

// Authenticate reports whether token is the current session token and returns
// the operator it belongs to.
func (s *Session) Authenticate(token string) (*remote.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" || s.user == nil || token == "" {
		return nil, false
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.token)) != 1 {
		return nil, false
	}
	u := *s.user
	return &u, true
}

// Restore loads the persisted token and verifies it against the backend. A
// missing, expired or rejected token leaves the session empty and returns
// ErrNoSession.
func (s *Session) Restore(ctx context.Context) (*remote.User, error) {
	log := logger.GetGlobalLogger().WithContext(ctx)

	raw, err := s.slots.Get(ctx, TokenSlot)
	if errors.Is(err, localstore.ErrSlotNotFound) || (err == nil && len(raw) == 0) {
		s.reset()
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	token := string(raw)

	if info, err := utils.InspectToken(token); err == nil && info.Expired(s.now()) {
		log.Info("stored token expired, clearing session")
		s.discard(ctx)
		return nil, ErrNoSession
	}

	user, err := s.auth.Me(remote.WithToken(ctx, token))
	if err != nil {
		log.Warn("stored token rejected, clearing session", zap.Error(err))
		s.discard(ctx)
		return nil, ErrNoSession
	}
	if !user.IsAdmin() {
		log.Warn("stored token belongs to a non-admin, clearing session", zap.String("user_id", user.ID))
		s.discard(ctx)
		return nil, ErrNoSession
	}

	s.set(token, user)
	return s.User(), nil
}

// Login exchanges credentials for a token, loads the profile and persists the
// token. The current session is only replaced once the new operator is known
// to be an admin; any failure leaves it untouched.
func (s *Session) Login(ctx context.Context, email, password string) (*remote.User, error) {
	token, err := s.auth.Login(remote.WithToken(ctx, ""), email, password)
	if err != nil {
		return nil, err
	}

	user, err := s.auth.Me(remote.WithToken(ctx, token))
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, ErrNotAdmin
	}
	if err := s.slots.Put(ctx, TokenSlot, []byte(token)); err != nil {
		return nil, err
	}
	s.set(token, user)

	logger.GetGlobalLogger().WithContext(ctx).Info("operator signed in",
		zap.String("user_id", user.ID), zap.String("role", user.Role))
	return s.User(), nil
}

// Logout clears the persisted token and resets the session.
func (s *Session) Logout(ctx context.Context) error {
	s.reset()
	if err := s.slots.Delete(ctx, TokenSlot); err != nil && !errors.Is(err, localstore.ErrSlotNotFound) {
		return err
	}
	return nil
}

// Clear drops the in-memory session and the persisted token. It is the
// remote client's 401 hook and must not call back into the client.
func (s *Session) Clear() {
	s.discard(context.Background())
}

func (s *Session) discard(ctx context.Context) {
	s.reset()
	if err := s.slots.Delete(ctx, TokenSlot); err != nil && !errors.Is(err, localstore.ErrSlotNotFound) {
		logger.GetGlobalLogger().WithContext(ctx).Warn("failed to clear stored token", zap.Error(err))
	}
}

func (s *Session) set(token string, user *remote.User) {
	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()
}

func (s *Session) reset() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()
}

var _ remote.TokenSource = (*Session)(nil)
