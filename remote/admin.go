package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrInvalidRole       = errors.New("invalid role for direct notification")
	ErrUnknownUserFilter = errors.New("unknown user filter")
)

type UserFilter string

const (
	UserFilterAll       UserFilter = "all"
	UserFilterCustomers UserFilter = "customers"
	UserFilterProviders UserFilter = "providers"
	UserFilterReported  UserFilter = "reported"
	UserFilterBlocked   UserFilter = "blocked"
)

func (f UserFilter) path() (string, error) {
	switch f {
	case UserFilterAll, "":
		return "/admin/users", nil
	case UserFilterCustomers, UserFilterProviders, UserFilterReported, UserFilterBlocked:
		return "/admin/users/" + string(f), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownUserFilter, string(f))
}

// AdminService covers dashboard, user management, notifications and the
// operator's own profile.
type AdminService struct {
	client *Client
}

func NewAdminService(c *Client) *AdminService {
	return &AdminService{client: c}
}

func (s *AdminService) raw(ctx context.Context, path string) (json.RawMessage, error) {
	env, err := s.client.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	if !env.hasData() {
		return json.RawMessage("{}"), nil
	}
	return env.Data, nil
}

func (s *AdminService) Overview(ctx context.Context) (json.RawMessage, error) {
	return s.raw(ctx, "/admin/overview")
}

func (s *AdminService) UserOverview(ctx context.Context) (json.RawMessage, error) {
	return s.raw(ctx, "/admin/user-overview")
}

func (s *AdminService) RecentUsers(ctx context.Context) (json.RawMessage, error) {
	return s.raw(ctx, "/admin/recent-users")
}

func (s *AdminService) ListUsers(ctx context.Context, filter UserFilter, page, limit int) (*Page, error) {
	path, err := filter.path()
	if err != nil {
		return nil, err
	}
	env, err := s.client.do(ctx, http.MethodGet, path, pageQuery(page, limit), nil)
	if err != nil {
		return nil, err
	}
	return decodePage(env)
}

func (s *AdminService) BlockUser(ctx context.Context, userID, reason string) error {
	_, err := s.client.do(ctx, http.MethodPatch, "/admin/users/"+escape(userID)+"/block", nil,
		map[string]string{"reason": reason})
	return err
}

func (s *AdminService) UnblockUser(ctx context.Context, userID string) error {
	_, err := s.client.do(ctx, http.MethodPatch, "/admin/users/"+escape(userID)+"/unblock", nil, nil)
	return err
}

func (s *AdminService) SendBroadcast(ctx context.Context, b Broadcast) error {
	if b.Type == "" {
		b.Type = "INFO"
	}
	if b.TargetRole == "" {
		b.TargetRole = "ALL"
	}
	_, err := s.client.do(ctx, http.MethodPost, "/admin/notifications", nil, b)
	return err
}

// SendDirectNotification routes by the recipient's role; only customers and
// providers have a notification inbox.
func (s *AdminService) SendDirectNotification(ctx context.Context, userID, role string, n Notification) error {
	var path string
	switch strings.ToUpper(role) {
	case "CUSTOMER":
		path = "/api/v1/admin/customer/notifications"
	case "PROVIDER":
		path = "/api/v1/admin/provider/notifications"
	default:
		return fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	body := map[string]string{
		"userId":  userID,
		"title":   n.Title,
		"message": n.Message,
	}
	if n.Type != "" {
		body["type"] = n.Type
	}
	_, err := s.client.do(ctx, http.MethodPost, path, nil, body)
	return err
}

func (s *AdminService) SendUserNotification(ctx context.Context, userID string, n Notification) error {
	if n.Type == "" {
		n.Type = "NORMAL"
	}
	_, err := s.client.do(ctx, http.MethodPost, "/admin/users/notifications/send", nil, map[string]string{
		"userId":  userID,
		"title":   n.Title,
		"message": n.Message,
		"type":    n.Type,
	})
	return err
}

func (s *AdminService) ProviderNotifications(ctx context.Context, page, limit int) (*Page, error) {
	env, err := s.client.do(ctx, http.MethodGet, "/provider/notifications", pageQuery(page, limit), nil)
	if err != nil {
		return nil, err
	}
	return decodePage(env)
}

func (s *AdminService) Profile(ctx context.Context) (*User, error) {
	env, err := s.client.do(ctx, http.MethodGet, "/admin/profile", nil, nil)
	if err != nil {
		return nil, err
	}
	var u User
	if err := decodeData(env, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *AdminService) UpdateProfile(ctx context.Context, p ProfileUpdate) (*User, error) {
	env, err := s.client.do(ctx, http.MethodPut, "/admin/profile", nil, p)
	if err != nil {
		return nil, err
	}
	var u User
	if err := decodeData(env, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *AdminService) ChangePassword(ctx context.Context, p PasswordChange) error {
	_, err := s.client.do(ctx, http.MethodPatch, "/api/v1/admin/change-password", nil, p)
	return err
}
