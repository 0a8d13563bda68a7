package services

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"shop_client/internal/clients"
	"shop_client/internal/domain"
)

const (
	vouchersPath   = "/admin/vouchers"
	bannersPath    = "/admin/banners"
	flashSalesPath = "/admin/flash-sales"
)

type VoucherService interface {
	GetAll(ctx context.Context, params domain.ListParams) (*domain.VoucherPage, error)
	GetByID(ctx context.Context, id string) (*domain.Voucher, error)
	Create(ctx context.Context, input domain.VoucherInput) (*domain.Voucher, error)
	Update(ctx context.Context, id string, input domain.VoucherInput) (*domain.Voucher, error)
	Delete(ctx context.Context, id string) error
}

type voucherService struct {
	r resource
}

func NewVoucherService(client *clients.Client, logger *logrus.Logger) VoucherService {
	return &voucherService{r: newResource(client, vouchersPath, logger)}
}

func (s *voucherService) GetAll(ctx context.Context, params domain.ListParams) (*domain.VoucherPage, error) {
	return list[domain.VoucherPage](ctx, s.r, params)
}

func (s *voucherService) GetByID(ctx context.Context, id string) (*domain.Voucher, error) {
	return get[domain.Voucher](ctx, s.r, id)
}

func (s *voucherService) Create(ctx context.Context, input domain.VoucherInput) (*domain.Voucher, error) {
	s.r.log.Debugf("VoucherService: Create '%s'", input.Code)
	return send[domain.Voucher](ctx, s.r, http.MethodPost, s.r.path(), input)
}

func (s *voucherService) Update(ctx context.Context, id string, input domain.VoucherInput) (*domain.Voucher, error) {
	s.r.log.Debugf("VoucherService: Update %s", id)
	return send[domain.Voucher](ctx, s.r, http.MethodPut, s.r.path(id), input)
}

func (s *voucherService) Delete(ctx context.Context, id string) error {
	s.r.log.Debugf("VoucherService: Delete %s", id)
	return remove(ctx, s.r, id)
}

type BannerService interface {
	GetAll(ctx context.Context, params domain.ListParams) (*domain.BannerPage, error)
	GetByID(ctx context.Context, id string) (*domain.Banner, error)
	Create(ctx context.Context, input domain.BannerInput) (*domain.Banner, error)
	Update(ctx context.Context, id string, input domain.BannerInput) (*domain.Banner, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, ids []string) error
}

type bannerService struct {
	r resource
}

func NewBannerService(client *clients.Client, logger *logrus.Logger) BannerService {
	return &bannerService{r: newResource(client, bannersPath, logger)}
}

func (s *bannerService) GetAll(ctx context.Context, params domain.ListParams) (*domain.BannerPage, error) {
	return list[domain.BannerPage](ctx, s.r, params)
}

func (s *bannerService) GetByID(ctx context.Context, id string) (*domain.Banner, error) {
	return get[domain.Banner](ctx, s.r, id)
}

func (s *bannerService) Create(ctx context.Context, input domain.BannerInput) (*domain.Banner, error) {
	s.r.log.Debugf("BannerService: Create '%s'", input.Title)
	return send[domain.Banner](ctx, s.r, http.MethodPost, s.r.path(), input)
}

func (s *bannerService) Update(ctx context.Context, id string, input domain.BannerInput) (*domain.Banner, error) {
	return send[domain.Banner](ctx, s.r, http.MethodPut, s.r.path(id), input)
}

func (s *bannerService) Delete(ctx context.Context, id string) error {
	return remove(ctx, s.r, id)
}

func (s *bannerService) Reorder(ctx context.Context, ids []string) error {
	s.r.log.Debugf("BannerService: Reorder %d banners", len(ids))
	return s.r.call(ctx, http.MethodPut, s.r.path("reorder"), nil, domain.ReorderInput{IDs: ids}, nil)
}

type FlashSaleService interface {
	GetAll(ctx context.Context, params domain.ListParams) (*domain.FlashSalePage, error)
	GetByID(ctx context.Context, id string) (*domain.FlashSale, error)
	Create(ctx context.Context, input domain.FlashSaleInput) (*domain.FlashSale, error)
	Update(ctx context.Context, id string, input domain.FlashSaleInput) (*domain.FlashSale, error)
	Delete(ctx context.Context, id string) error
	AddProduct(ctx context.Context, id string, item domain.FlashSaleItemInput) (*domain.FlashSale, error)
	RemoveProduct(ctx context.Context, id, productID string) error
}

type flashSaleService struct {
	r resource
}

func NewFlashSaleService(client *clients.Client, logger *logrus.Logger) FlashSaleService {
	return &flashSaleService{r: newResource(client, flashSalesPath, logger)}
}

func (s *flashSaleService) GetAll(ctx context.Context, params domain.ListParams) (*domain.FlashSalePage, error) {
	return list[domain.FlashSalePage](ctx, s.r, params)
}

func (s *flashSaleService) GetByID(ctx context.Context, id string) (*domain.FlashSale, error) {
	return get[domain.FlashSale](ctx, s.r, id)
}

func (s *flashSaleService) Create(ctx context.Context, input domain.FlashSaleInput) (*domain.FlashSale, error) {
	s.r.log.Debugf("FlashSaleService: Create '%s'", input.Name)
	return send[domain.FlashSale](ctx, s.r, http.MethodPost, s.r.path(), input)
}

func (s *flashSaleService) Update(ctx context.Context, id string, input domain.FlashSaleInput) (*domain.FlashSale, error) {
	return send[domain.FlashSale](ctx, s.r, http.MethodPut, s.r.path(id), input)
}

func (s *flashSaleService) Delete(ctx context.Context, id string) error {
	return remove(ctx, s.r, id)
}

func (s *flashSaleService) AddProduct(ctx context.Context, id string, item domain.FlashSaleItemInput) (*domain.FlashSale, error) {
	s.r.log.Debugf("FlashSaleService: AddProduct %s to sale %s", item.ProductID, id)
	return send[domain.FlashSale](ctx, s.r, http.MethodPost, s.r.path(id, "products"), item)
}

func (s *flashSaleService) RemoveProduct(ctx context.Context, id, productID string) error {
	s.r.log.Debugf("FlashSaleService: RemoveProduct %s from sale %s", productID, id)
	return s.r.call(ctx, http.MethodDelete, s.r.path(id, "products", productID), nil, nil, nil)
}
