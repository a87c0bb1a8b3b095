package remote

import (
	"context"
	"net/http"
)

type CategoryService struct {
	client *Client
}

func NewCategoryService(c *Client) *CategoryService {
	return &CategoryService{client: c}
}

func (s *CategoryService) List(ctx context.Context) ([]Category, error) {
	env, err := s.client.do(ctx, http.MethodGet, "/api/categories", nil, nil)
	if err != nil {
		return nil, err
	}
	categories := []Category{}
	if !env.hasData() {
		return categories, nil
	}
	if err := decodeData(env, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *CategoryService) Get(ctx context.Context, id string) (*Category, error) {
	env, err := s.client.do(ctx, http.MethodGet, "/api/categories/"+escape(id), nil, nil)
	if err != nil {
		return nil, err
	}
	var cat Category
	if err := decodeData(env, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (s *CategoryService) Create(ctx context.Context, name string) (*Category, error) {
	env, err := s.client.do(ctx, http.MethodPost, "/api/categories", nil, map[string]string{"categoryName": name})
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, ErrUnexpectedResponse
	}
	cat := Category{CategoryName: name}
	if env.hasData() {
		if err := decodeData(env, &cat); err != nil {
			return nil, err
		}
	}
	return &cat, nil
}

func (s *CategoryService) Update(ctx context.Context, id, name string) (*Category, error) {
	env, err := s.client.do(ctx, http.MethodPut, "/api/categories/"+escape(id), nil, map[string]string{"categoryName": name})
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, ErrUnexpectedResponse
	}
	cat := Category{ID: id, CategoryName: name}
	if env.hasData() {
		if err := decodeData(env, &cat); err != nil {
			return nil, err
		}
	}
	return &cat, nil
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	env, err := s.client.do(ctx, http.MethodDelete, "/api/categories/"+escape(id), nil, nil)
	if err != nil {
		return err
	}
	if !env.Success {
		return ErrUnexpectedResponse
	}
	return nil
}
