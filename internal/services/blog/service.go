package blog

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"ustat/internal/api"
	"ustat/internal/domain"
)

const pathPosts = "/blog/posts"

// Service implements domain.BlogService.
type Service struct {
	api domain.APIClient
}

func New(c domain.APIClient) *Service {
	return &Service{api: c}
}

// Posts lists posts matching q.
func (s *Service) Posts(ctx context.Context, q domain.PostQuery) ([]domain.Post, error) {
	if q.Page < 0 || q.Limit < 0 {
		return nil, domain.Invalid("page", "page and limit must not be negative")
	}
	var raw json.RawMessage
	if err := s.api.Get(ctx, pathPosts, query(q), &raw); err != nil {
		return nil, err
	}
	return api.DecodeList[domain.Post](raw, "posts", "data", "items")
}

// Post fetches one post by id.
func (s *Service) Post(ctx context.Context, id string) (domain.Post, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Post{}, domain.Invalid("id", "post id is required")
	}
	var raw json.RawMessage
	if err := s.api.Get(ctx, pathPosts+"/"+url.PathEscape(id), nil, &raw); err != nil {
		return domain.Post{}, err
	}
	var p domain.Post
	if err := api.DecodeObject(raw, &p, "post", "data"); err != nil {
		return domain.Post{}, err
	}
	return p, nil
}

func query(q domain.PostQuery) url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	return v
}

var _ domain.BlogService = (*Service)(nil)
