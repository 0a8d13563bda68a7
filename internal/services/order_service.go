package services

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"shop_client/internal/clients"
	"shop_client/internal/domain"
)

const ordersPath = "/admin/orders"

type OrderService interface {
	GetAll(ctx context.Context, params domain.ListParams) (*domain.OrderPage, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	Create(ctx context.Context, input domain.OrderInput) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, input domain.OrderStatusInput) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}

type orderService struct {
	r resource
}

func NewOrderService(client *clients.Client, logger *logrus.Logger) OrderService {
	return &orderService{r: newResource(client, ordersPath, logger)}
}

func (s *orderService) GetAll(ctx context.Context, params domain.ListParams) (*domain.OrderPage, error) {
	s.r.log.Debugf("OrderService: GetAll page=%d limit=%d status='%s'", params.Page, params.Limit, params.Status)
	return list[domain.OrderPage](ctx, s.r, params)
}

func (s *orderService) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	s.r.log.Debugf("OrderService: GetByID %s", id)
	return get[domain.Order](ctx, s.r, id)
}

// Create posts the order and then reads it back to return the full server
// state. The two calls are not atomic: when the read-back fails the order may
// still exist server-side and the error is returned as is.
func (s *orderService) Create(ctx context.Context, input domain.OrderInput) (*domain.Order, error) {
	s.r.log.Debugf("OrderService: Create for '%s' with %d items", input.CustomerName, len(input.Items))
	created, err := send[domain.Order](ctx, s.r, http.MethodPost, s.r.path(), input)
	if err != nil {
		return nil, err
	}

	order, err := get[domain.Order](ctx, s.r, created.ID)
	if err != nil {
		s.r.log.Warnf("OrderService: Order %s created but read-back failed: %v", created.ID, err)
		return nil, err
	}
	return order, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, id string, input domain.OrderStatusInput) (*domain.Order, error) {
	s.r.log.Debugf("OrderService: UpdateStatus %s -> %s", id, input.Status)
	return send[domain.Order](ctx, s.r, http.MethodPatch, s.r.path(id, "status"), input)
}

func (s *orderService) Delete(ctx context.Context, id string) error {
	s.r.log.Debugf("OrderService: Delete %s", id)
	return remove(ctx, s.r, id)
}
