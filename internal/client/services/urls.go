package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/avelichko/snipcli/internal/client/api"
	"github.com/avelichko/snipcli/internal/client/models"
)

// ListParams is the wire form of a list-view descriptor.
type ListParams struct {
	Page      int
	Size      int
	Sort      string
	Direction string
	Search    string
}

func (p ListParams) values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(p.Page))
	v.Set("size", strconv.Itoa(p.Size))
	v.Set("sort", p.Sort)
	v.Set("direction", p.Direction)
	v.Set("search", p.Search)
	return v
}

// URLService maps the shortened-link operations of the backend.
type URLService interface {
	Create(ctx context.Context, req models.CreateURLRequest) (*models.URL, error)
	List(ctx context.Context, params ListParams) (*models.URLPage, error)
	Get(ctx context.Context, shortCode string) (*models.URL, error)
	Delete(ctx context.Context, shortCode string) error
	Top(ctx context.Context, limit int) ([]models.URL, error)
	Stats(ctx context.Context) (*models.UserStats, error)
}

type urlService struct {
	gw api.Gateway
}

func NewURLService(gw api.Gateway) URLService {
	return &urlService{gw: gw}
}

func (s *urlService) Create(ctx context.Context, req models.CreateURLRequest) (*models.URL, error) {
	env, err := s.gw.Send(ctx, http.MethodPost, "/api/urls", nil, req)
	if err != nil {
		return nil, fmt.Errorf("create url: %w", err)
	}

	var u models.URL
	if err := env.Decode(&u); err != nil {
		return nil, fmt.Errorf("create url: decode response: %w", err)
	}
	return &u, nil
}

func (s *urlService) List(ctx context.Context, params ListParams) (*models.URLPage, error) {
	env, err := s.gw.Send(ctx, http.MethodGet, "/api/urls", params.values(), nil)
	if err != nil {
		return nil, fmt.Errorf("fetch urls: %w", err)
	}

	var page models.URLPage
	if err := env.Decode(&page); err != nil {
		return nil, fmt.Errorf("fetch urls: decode response: %w", err)
	}
	return &page, nil
}

func (s *urlService) Get(ctx context.Context, shortCode string) (*models.URL, error) {
	env, err := s.gw.Send(ctx, http.MethodGet, "/api/urls/"+shortCode, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch url %s: %w", shortCode, err)
	}

	var u models.URL
	if err := env.Decode(&u); err != nil {
		return nil, fmt.Errorf("fetch url %s: decode response: %w", shortCode, err)
	}
	return &u, nil
}

// Delete removes a link. The server performs a soft delete; the client just
// drops the item from view and re-fetches.
func (s *urlService) Delete(ctx context.Context, shortCode string) error {
	if _, err := s.gw.Send(ctx, http.MethodDelete, "/api/urls/"+shortCode, nil, nil); err != nil {
		return fmt.Errorf("delete url %s: %w", shortCode, err)
	}
	return nil
}

func (s *urlService) Top(ctx context.Context, limit int) ([]models.URL, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))

	env, err := s.gw.Send(ctx, http.MethodGet, "/api/urls/top", params, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch top urls: %w", err)
	}

	var urls []models.URL
	if err := env.Decode(&urls); err != nil {
		return nil, fmt.Errorf("fetch top urls: decode response: %w", err)
	}
	return urls, nil
}

func (s *urlService) Stats(ctx context.Context) (*models.UserStats, error) {
	env, err := s.gw.Send(ctx, http.MethodGet, "/api/urls/stats", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch stats: %w", err)
	}

	var stats models.UserStats
	if err := env.Decode(&stats); err != nil {
		return nil, fmt.Errorf("fetch stats: decode response: %w", err)
	}
	return &stats, nil
}
