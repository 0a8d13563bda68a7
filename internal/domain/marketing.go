package domain

import "time"

const (
	VoucherTypePercent = "percent"
	VoucherTypeFixed   = "fixed"
)

type Voucher struct {
	ID            string    `json:"id"`
	Code          string    `json:"code"`
	Type          string    `json:"type"`
	Value         float64   `json:"value"`
	MinOrderValue float64   `json:"minOrderValue"`
	MaxDiscount   *float64  `json:"maxDiscount,omitempty"`
	UsageLimit    int       `json:"usageLimit"`
	UsedCount     int       `json:"usedCount"`
	StartsAt      time.Time `json:"startsAt"`
	EndsAt        time.Time `json:"endsAt"`
	Active        bool      `json:"active"`
}

type VoucherInput struct {
	Code          string    `json:"code"                  validate:"required,alphanum,min=3,max=32"`
	Type          string    `json:"type"                  validate:"required,oneof=percent fixed"`
	Value         float64   `json:"value"                 validate:"required,gt=0"`
	MinOrderValue float64   `json:"minOrderValue"         validate:"gte=0"`
	MaxDiscount   *float64  `json:"maxDiscount,omitempty" validate:"omitempty,gt=0"`
	UsageLimit    int       `json:"usageLimit"            validate:"gte=0"`
	StartsAt      time.Time `json:"startsAt"              validate:"required"`
	EndsAt        time.Time `json:"endsAt"                validate:"required,gtfield=StartsAt"`
	Active        *bool     `json:"active,omitempty"`
}

type VoucherPage struct {
	Vouchers   []Voucher  `json:"vouchers"`
	Pagination Pagination `json:"pagination"`
}

type Banner struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Image    string `json:"image"`
	Link     string `json:"link,omitempty"`
	Position int    `json:"position"`
	Active   bool   `json:"active"`
}

type BannerInput struct {
	Title  string `json:"title"          validate:"required,max=150"`
	Image  string `json:"image"          validate:"required,url"`
	Link   string `json:"link,omitempty" validate:"omitempty,url"`
	Active *bool  `json:"active,omitempty"`
}

type BannerPage struct {
	Banners    []Banner   `json:"banners"`
	Pagination Pagination `json:"pagination"`
}

type FlashSale struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	StartsAt time.Time       `json:"startsAt"`
	EndsAt   time.Time       `json:"endsAt"`
	Active   bool            `json:"active"`
	Items    []FlashSaleItem `json:"items,omitempty"`
}

type FlashSaleItem struct {
	ProductID string  `json:"productId"`
	SalePrice float64 `json:"salePrice"`
	Quantity  int     `json:"quantity"`
	Sold      int     `json:"sold"`
}

type FlashSaleInput struct {
	Name     string    `json:"name"     validate:"required,min=2,max=150"`
	StartsAt time.Time `json:"startsAt" validate:"required"`
	EndsAt   time.Time `json:"endsAt"   validate:"required,gtfield=StartsAt"`
	Active   *bool     `json:"active,omitempty"`
}

type FlashSaleItemInput struct {
	ProductID string  `json:"productId" validate:"required"`
	SalePrice float64 `json:"salePrice" validate:"required,gt=0"`
	Quantity  int     `json:"quantity"  validate:"required,gt=0"`
}

type FlashSalePage struct {
	FlashSales []FlashSale `json:"flashSales"`
	Pagination Pagination  `json:"pagination"`
}
