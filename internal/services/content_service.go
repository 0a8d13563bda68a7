package services

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"shop_client/internal/clients"
	"shop_client/internal/domain"
)

const (
	reviewsPath  = "/admin/reviews"
	settingsPath = "/admin/settings"
	usersPath    = "/admin/users"
)

type ReviewService interface {
	GetAll(ctx context.Context, params domain.ListParams) (*domain.ReviewPage, error)
	GetByID(ctx context.Context, id string) (*domain.Review, error)
	Approve(ctx context.Context, id string) (*domain.Review, error)
	Delete(ctx context.Context, id string) error
}

type reviewService struct {
	r resource
}

func NewReviewService(client *clients.Client, logger *logrus.Logger) ReviewService {
	return &reviewService{r: newResource(client, reviewsPath, logger)}
}

func (s *reviewService) GetAll(ctx context.Context, params domain.ListParams) (*domain.ReviewPage, error) {
	return list[domain.ReviewPage](ctx, s.r, params)
}

func (s *reviewService) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	return get[domain.Review](ctx, s.r, id)
}

func (s *reviewService) Approve(ctx context.Context, id string) (*domain.Review, error) {
	s.r.log.Debugf("ReviewService: Approve %s", id)
	return send[domain.Review](ctx, s.r, http.MethodPatch, s.r.path(id, "approve"), nil)
}

func (s *reviewService) Delete(ctx context.Context, id string) error {
	s.r.log.Debugf("ReviewService: Delete %s", id)
	return remove(ctx, s.r, id)
}

type SettingsService interface {
	GetAll(ctx context.Context) (domain.Settings, error)
	Update(ctx context.Context, settings domain.Settings) (domain.Settings, error)
}

type settingsService struct {
	r resource
}

func NewSettingsService(client *clients.Client, logger *logrus.Logger) SettingsService {
	return &settingsService{r: newResource(client, settingsPath, logger)}
}

func (s *settingsService) GetAll(ctx context.Context) (domain.Settings, error) {
	settings := domain.Settings{}
	if err := s.r.call(ctx, http.MethodGet, s.r.path(), nil, nil, &settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *settingsService) Update(ctx context.Context, settings domain.Settings) (domain.Settings, error) {
	s.r.log.Debugf("SettingsService: Update %d keys", len(settings))
	updated := domain.Settings{}
	if err := s.r.call(ctx, http.MethodPut, s.r.path(), nil, settings, &updated); err != nil {
		return nil, err
	}
	return updated, nil
}

type UserService interface {
	GetAll(ctx context.Context, params domain.ListParams) (*domain.UserPage, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, input domain.UserInput) (*domain.User, error)
	Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

type userService struct {
	r resource
}

func NewUserService(client *clients.Client, logger *logrus.Logger) UserService {
	return &userService{r: newResource(client, usersPath, logger)}
}

func (s *userService) GetAll(ctx context.Context, params domain.ListParams) (*domain.UserPage, error) {
	return list[domain.UserPage](ctx, s.r, params)
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return get[domain.User](ctx, s.r, id)
}

func (s *userService) Create(ctx context.Context, input domain.UserInput) (*domain.User, error) {
	s.r.log.Debugf("UserService: Create '%s'", input.Email)
	return send[domain.User](ctx, s.r, http.MethodPost, s.r.path(), input)
}

func (s *userService) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	s.r.log.Debugf("UserService: Update %s", id)
	return send[domain.User](ctx, s.r, http.MethodPatch, s.r.path(id), patch)
}

func (s *userService) Delete(ctx context.Context, id string) error {
	s.r.log.Debugf("UserService: Delete %s", id)
	return remove(ctx, s.r, id)
}
