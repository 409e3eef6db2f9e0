// Package services contains the typed resource façades of the SnipURL API.
// Each method maps one domain operation to one gateway call; input validation
// is the caller's responsibility and is not repeated here.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/avelichko/snipcli/internal/client/api"
	"github.com/avelichko/snipcli/internal/client/models"
	"github.com/avelichko/snipcli/internal/common"
)

// AuthService maps the authentication operations of the backend.
//
// Contract:
//   - Login: exchange credentials for a token and profile; rejection is
//     reported as common.ErrorInvalidCredentials.
//   - Register: create an account; does not log in.
//   - CurrentUser: fetch the authenticated profile (bearer token required).
//   - Logout: best-effort server-side logout.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResult, error)
	CurrentUser(ctx context.Context) (*models.Profile, error)
	Logout(ctx context.Context) error
}

type authService struct {
	gw api.Gateway
}

func NewAuthService(gw api.Gateway) AuthService {
	return &authService{gw: gw}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	env, err := s.gw.Send(ctx, http.MethodPost, "/api/auth/login", nil, loginRequest{Email: email, Password: password})
	if err != nil {
		// The backend answers 401 to a wrong password; on this endpoint that
		// means rejected credentials, not an expired session.
		if errors.Is(err, common.ErrorUnauthorized) {
			return nil, common.ErrorInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	var resp models.AuthResponse
	if err := env.Decode(&resp); err != nil {
		return nil, fmt.Errorf("login: decode response: %w", err)
	}
	return &resp, nil
}

func (s *authService) Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResult, error) {
	env, err := s.gw.Send(ctx, http.MethodPost, "/api/auth/register", nil, req)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	var res models.RegisterResult
	if err := env.DecodeRaw(&res); err != nil {
		return nil, fmt.Errorf("register: decode response: %w", err)
	}
	return &res, nil
}

func (s *authService) CurrentUser(ctx context.Context) (*models.Profile, error) {
	env, err := s.gw.Send(ctx, http.MethodGet, "/api/auth/me", nil, nil)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return nil, err
		}
		return nil, fmt.Errorf("fetch current user: %w", err)
	}

	var p models.Profile
	if err := env.Decode(&p); err != nil {
		return nil, fmt.Errorf("fetch current user: decode response: %w", err)
	}
	return &p, nil
}

func (s *authService) Logout(ctx context.Context) error {
	if _, err := s.gw.Send(ctx, http.MethodPost, "/api/auth/logout", nil, nil); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}
