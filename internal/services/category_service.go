package services

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"shop_client/internal/clients"
	"shop_client/internal/domain"
)

const categoriesPath = "/admin/categories"

type CategoryService interface {
	GetAll(ctx context.Context, params domain.ListParams) (*domain.CategoryPage, error)
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	Create(ctx context.Context, input domain.CategoryInput) (*domain.Category, error)
	Update(ctx context.Context, id string, input domain.CategoryInput) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, ids []string) error
}

type categoryService struct {
	r resource
}

func NewCategoryService(client *clients.Client, logger *logrus.Logger) CategoryService {
	return &categoryService{r: newResource(client, categoriesPath, logger)}
}

func (s *categoryService) GetAll(ctx context.Context, params domain.ListParams) (*domain.CategoryPage, error) {
	s.r.log.Debugf("CategoryService: GetAll page=%d limit=%d", params.Page, params.Limit)
	return list[domain.CategoryPage](ctx, s.r, params)
}

func (s *categoryService) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	s.r.log.Debugf("CategoryService: GetByID %s", id)
	return get[domain.Category](ctx, s.r, id)
}

func (s *categoryService) Create(ctx context.Context, input domain.CategoryInput) (*domain.Category, error) {
	s.r.log.Debugf("CategoryService: Create '%s'", input.Name)
	return send[domain.Category](ctx, s.r, http.MethodPost, s.r.path(), input)
}

func (s *categoryService) Update(ctx context.Context, id string, input domain.CategoryInput) (*domain.Category, error) {
	s.r.log.Debugf("CategoryService: Update %s", id)
	return send[domain.Category](ctx, s.r, http.MethodPut, s.r.path(id), input)
}

func (s *categoryService) Delete(ctx context.Context, id string) error {
	s.r.log.Debugf("CategoryService: Delete %s", id)
	return remove(ctx, s.r, id)
}

func (s *categoryService) Reorder(ctx context.Context, ids []string) error {
	s.r.log.Debugf("CategoryService: Reorder %d categories", len(ids))
	return s.r.call(ctx, http.MethodPut, s.r.path("reorder"), nil, domain.ReorderInput{IDs: ids}, nil)
}
