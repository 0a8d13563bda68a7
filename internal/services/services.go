package services

import (
	"github.com/sirupsen/logrus"

	"shop_client/internal/clients"
)

// Services groups every resource façade built over one client.
type Services struct {
	Auth       AuthService
	Products   ProductService
	Categories CategoryService
	Orders     OrderService
	Stores     StoreService
	Vouchers   VoucherService
	Banners    BannerService
	FlashSales FlashSaleService
	Reviews    ReviewService
	Settings   SettingsService
	Users      UserService
	Uploads    UploadService
}

func New(client *clients.Client, logger *logrus.Logger) *Services {
	return &Services{
		Auth:       NewAuthService(client, logger),
		Products:   NewProductService(client, logger),
		Categories: NewCategoryService(client, logger),
		Orders:     NewOrderService(client, logger),
		Stores:     NewStoreService(client, logger),
		Vouchers:   NewVoucherService(client, logger),
		Banners:    NewBannerService(client, logger),
		FlashSales: NewFlashSaleService(client, logger),
		Reviews:    NewReviewService(client, logger),
		Settings:   NewSettingsService(client, logger),
		Users:      NewUserService(client, logger),
		Uploads:    NewUploadService(client, logger),
	}
}
