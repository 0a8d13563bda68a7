package services

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"shop_client/internal/clients"
	"shop_client/internal/domain"
)

const productsPath = "/admin/products"

type ProductService interface {
	GetAll(ctx context.Context, params domain.ListParams) (*domain.ProductPage, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, input domain.ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, input domain.ProductInput) (*domain.Product, error)
	Patch(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	UpdateStock(ctx context.Context, id string, stock int) (*domain.Product, error)
}

type productService struct {
	r resource
}

func NewProductService(client *clients.Client, logger *logrus.Logger) ProductService {
	return &productService{r: newResource(client, productsPath, logger)}
}

func (s *productService) GetAll(ctx context.Context, params domain.ListParams) (*domain.ProductPage, error) {
	s.r.log.Debugf("ProductService: GetAll page=%d limit=%d search='%s'", params.Page, params.Limit, params.Search)
	return list[domain.ProductPage](ctx, s.r, params)
}

func (s *productService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	s.r.log.Debugf("ProductService: GetByID %s", id)
	return get[domain.Product](ctx, s.r, id)
}

func (s *productService) Create(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
	s.r.log.Debugf("ProductService: Create '%s'", input.Name)
	return send[domain.Product](ctx, s.r, http.MethodPost, s.r.path(), input)
}

func (s *productService) Update(ctx context.Context, id string, input domain.ProductInput) (*domain.Product, error) {
	s.r.log.Debugf("ProductService: Update %s", id)
	return send[domain.Product](ctx, s.r, http.MethodPut, s.r.path(id), input)
}

func (s *productService) Patch(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	s.r.log.Debugf("ProductService: Patch %s", id)
	return send[domain.Product](ctx, s.r, http.MethodPatch, s.r.path(id), patch)
}

func (s *productService) Delete(ctx context.Context, id string) error {
	s.r.log.Debugf("ProductService: Delete %s", id)
	return remove(ctx, s.r, id)
}

func (s *productService) UpdateStock(ctx context.Context, id string, stock int) (*domain.Product, error) {
	s.r.log.Debugf("ProductService: UpdateStock %s -> %d", id, stock)
	body := map[string]int{"stock": stock}
	return send[domain.Product](ctx, s.r, http.MethodPatch, s.r.path(id, "stock"), body)
}
