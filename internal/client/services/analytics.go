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

// AnalyticsService maps the click-analytics operations of the backend.
type AnalyticsService interface {
	URL(ctx context.Context, shortCode string, days int) (*models.Analytics, error)
	Dashboard(ctx context.Context) (*models.Analytics, error)
	// Export fetches the raw export body (CSV or JSON, per format).
	Export(ctx context.Context, shortCode, format string, days int) ([]byte, error)
}

type analyticsService struct {
	gw api.Gateway
}

func NewAnalyticsService(gw api.Gateway) AnalyticsService {
	return &analyticsService{gw: gw}
}

func (s *analyticsService) URL(ctx context.Context, shortCode string, days int) (*models.Analytics, error) {
	params := url.Values{}
	params.Set("days", strconv.Itoa(days))

	env, err := s.gw.Send(ctx, http.MethodGet, "/api/analytics/"+shortCode, params, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch analytics for %s: %w", shortCode, err)
	}

	var a models.Analytics
	if err := env.Decode(&a); err != nil {
		return nil, fmt.Errorf("fetch analytics for %s: decode response: %w", shortCode, err)
	}
	return &a, nil
}

func (s *analyticsService) Dashboard(ctx context.Context) (*models.Analytics, error) {
	env, err := s.gw.Send(ctx, http.MethodGet, "/api/analytics/dashboard", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch dashboard analytics: %w", err)
	}

	var a models.Analytics
	if err := env.Decode(&a); err != nil {
		return nil, fmt.Errorf("fetch dashboard analytics: decode response: %w", err)
	}
	return &a, nil
}

func (s *analyticsService) Export(ctx context.Context, shortCode, format string, days int) ([]byte, error) {
	params := url.Values{}
	params.Set("format", format)
	params.Set("days", strconv.Itoa(days))

	data, err := s.gw.Download(ctx, "/api/analytics/"+shortCode+"/export", params)
	if err != nil {
		return nil, fmt.Errorf("export analytics for %s: %w", shortCode, err)
	}
	return data, nil
}
