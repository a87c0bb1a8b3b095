package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var ErrTooManyMedia = fmt.Errorf("bulk create accepts at most %d media items", MaxBulkMedia)

// MediaService wraps /api/media.
type MediaService struct {
	client *Client
}

func NewMediaService(c *Client) *MediaService {
	return &MediaService{client: c}
}

func (s *MediaService) Create(ctx context.Context, in MediaInput) (*Media, error) {
	env, err := s.client.do(ctx, http.MethodPost, "/api/media", nil, in)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, ErrUnexpectedResponse
	}
	var m Media
	if err := decodeData(env, &m); err != nil {
		return nil, err
	}
	if m.ID == "" {
		return nil, errors.New("remote media created without id")
	}
	return &m, nil
}

func (s *MediaService) CreateBulk(ctx context.Context, items []MediaInput) ([]Media, error) {
	if len(items) == 0 {
		return nil, nil
	}
	if len(items) > MaxBulkMedia {
		return nil, ErrTooManyMedia
	}
	env, err := s.client.do(ctx, http.MethodPost, "/api/media", nil, map[string]interface{}{"media": items})
	if err != nil {
		return nil, err
	}
	var created []Media
	if err := decodeData(env, &created); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *MediaService) Get(ctx context.Context, id string) (*Media, error) {
	env, err := s.client.do(ctx, http.MethodGet, "/api/media/"+escape(id), nil, nil)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, ErrUnexpectedResponse
	}
	var m Media
	if err := decodeData(env, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Update is a partial update; the backend only touches the fields it receives.
func (s *MediaService) Update(ctx context.Context, id string, in MediaInput) error {
	_, err := s.client.do(ctx, http.MethodPatch, "/api/media/"+escape(id), nil, in)
	return err
}

// Delete soft-deletes the media item on the backend.
func (s *MediaService) Delete(ctx context.Context, id string) error {
	_, err := s.client.do(ctx, http.MethodDelete, "/api/media/"+escape(id), nil, nil)
	return err
}
