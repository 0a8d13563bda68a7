package services

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"shop_client/internal/clients"
	"shop_client/internal/domain"
)

const storesPath = "/admin/stores"

type StoreService interface {
	GetAll(ctx context.Context, params domain.ListParams) (*domain.StorePage, error)
	GetByID(ctx context.Context, id string) (*domain.Store, error)
	Create(ctx context.Context, input domain.StoreInput) (*domain.Store, error)
	Update(ctx context.Context, id string, input domain.StoreInput) (*domain.Store, error)
	Delete(ctx context.Context, id string) error
	Approve(ctx context.Context, id string) (*domain.Store, error)
}

type storeService struct {
	r resource
}

func NewStoreService(client *clients.Client, logger *logrus.Logger) StoreService {
	return &storeService{r: newResource(client, storesPath, logger)}
}

func (s *storeService) GetAll(ctx context.Context, params domain.ListParams) (*domain.StorePage, error) {
	s.r.log.Debugf("StoreService: GetAll page=%d limit=%d", params.Page, params.Limit)
	return list[domain.StorePage](ctx, s.r, params)
}

func (s *storeService) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	return get[domain.Store](ctx, s.r, id)
}

func (s *storeService) Create(ctx context.Context, input domain.StoreInput) (*domain.Store, error) {
	s.r.log.Debugf("StoreService: Create '%s'", input.Name)
	return send[domain.Store](ctx, s.r, http.MethodPost, s.r.path(), input)
}

func (s *storeService) Update(ctx context.Context, id string, input domain.StoreInput) (*domain.Store, error) {
	return send[domain.Store](ctx, s.r, http.MethodPut, s.r.path(id), input)
}

func (s *storeService) Delete(ctx context.Context, id string) error {
	s.r.log.Debugf("StoreService: Delete %s", id)
	return remove(ctx, s.r, id)
}

func (s *storeService) Approve(ctx context.Context, id string) (*domain.Store, error) {
	s.r.log.Debugf("StoreService: Approve %s", id)
	return send[domain.Store](ctx, s.r, http.MethodPatch, s.r.path(id, "approve"), nil)
}
