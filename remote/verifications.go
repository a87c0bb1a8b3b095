package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

var ErrReasonRequired = errors.New("rejection reason is required")

// VerificationService handles provider verification requests.
type VerificationService struct {
	client *Client
}

func NewVerificationService(c *Client) *VerificationService {
	return &VerificationService{client: c}
}

func (s *VerificationService) ListPending(ctx context.Context, page, limit int) (*Page, error) {
	env, err := s.client.do(ctx, http.MethodGet, "/api/admin/verifications", pageQuery(page, limit), nil)
	if err != nil {
		return nil, err
	}
	return decodePage(env)
}

func (s *VerificationService) Details(ctx context.Context, providerUserID string) (json.RawMessage, error) {
	env, err := s.client.do(ctx, http.MethodGet, "/api/admin/verifications/"+escape(providerUserID), nil, nil)
	if err != nil {
		return nil, err
	}
	if !env.hasData() {
		return nil, ErrUnexpectedResponse
	}
	return env.Data, nil
}

func (s *VerificationService) Approve(ctx context.Context, providerUserID string) error {
	_, err := s.client.do(ctx, http.MethodPatch, "/api/admin/verifications/"+escape(providerUserID)+"/approve", nil, nil)
	return err
}

func (s *VerificationService) Reject(ctx context.Context, providerUserID, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return ErrReasonRequired
	}
	_, err := s.client.do(ctx, http.MethodPatch, "/api/admin/verifications/"+escape(providerUserID)+"/reject", nil,
		map[string]string{"reason": reason})
	return err
}

// decodePage accepts both a bare array and a {data, pagination} object.
func decodePage(env *Envelope) (*Page, error) {
	page := &Page{Data: json.RawMessage("[]")}
	if !env.hasData() {
		return page, nil
	}
	trimmed := strings.TrimSpace(string(env.Data))
	if strings.HasPrefix(trimmed, "[") {
		page.Data = env.Data
		return page, nil
	}
	if err := decodeData(env, page); err != nil {
		return nil, err
	}
	if len(page.Data) == 0 || string(page.Data) == "null" {
		page.Data = json.RawMessage("[]")
	}
	return page, nil
}
