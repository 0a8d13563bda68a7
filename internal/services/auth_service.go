package services

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"shop_client/internal/clients"
	"shop_client/internal/domain"
)

const authPath = "/admin/auth"

type AuthService interface {
	Login(ctx context.Context, creds domain.Credentials) (*domain.LoginResult, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*domain.UserProfile, error)
}

type authService struct {
	r resource
}

func NewAuthService(client *clients.Client, logger *logrus.Logger) AuthService {
	return &authService{r: newResource(client, authPath, logger)}
}

func (s *authService) Login(ctx context.Context, creds domain.Credentials) (*domain.LoginResult, error) {
	s.r.log.Debugf("AuthService: Login for user '%s'", creds.Username)
	return send[domain.LoginResult](ctx, s.r, http.MethodPost, s.r.path("login"), creds)
}

func (s *authService) Logout(ctx context.Context) error {
	s.r.log.Debug("AuthService: Logout")
	return s.r.call(ctx, http.MethodPost, s.r.path("logout"), nil, nil, nil)
}

func (s *authService) Me(ctx context.Context) (*domain.UserProfile, error) {
	s.r.log.Debug("AuthService: Fetching current profile")
	var profile domain.UserProfile
	if err := s.r.call(ctx, http.MethodGet, s.r.path("me"), nil, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
