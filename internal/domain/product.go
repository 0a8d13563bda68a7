package domain

import "time"

const (
	ProductStatusDraft    = "draft"
	ProductStatusActive   = "active"
	ProductStatusArchived = "archived"
)

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	SalePrice   *float64  `json:"salePrice,omitempty"`
	Stock       int       `json:"stock"`
	SKU         string    `json:"sku,omitempty"`
	CategoryID  string    `json:"categoryId,omitempty"`
	StoreID     string    `json:"storeId,omitempty"`
	Images      []string  `json:"images,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ProductInput struct {
	Name        string   `json:"name"                  validate:"required,min=2,max=200"`
	Slug        string   `json:"slug,omitempty"        validate:"omitempty,slug"`
	Description string   `json:"description,omitempty" validate:"max=5000"`
	Price       float64  `json:"price"                 validate:"required,gt=0"`
	SalePrice   *float64 `json:"salePrice,omitempty"   validate:"omitempty,gt=0,ltfield=Price"`
	Stock       int      `json:"stock"                 validate:"gte=0"`
	SKU         string   `json:"sku,omitempty"         validate:"max=64"`
	CategoryID  string   `json:"categoryId"            validate:"required"`
	StoreID     string   `json:"storeId,omitempty"`
	Images      []string `json:"images,omitempty"      validate:"omitempty,dive,url"`
	Status      string   `json:"status,omitempty"      validate:"omitempty,oneof=draft active archived"`
}

// ProductPatch is a partial update; nil fields are not sent.
type ProductPatch struct {
	Name        *string   `json:"name,omitempty"        validate:"omitempty,min=2,max=200"`
	Slug        *string   `json:"slug,omitempty"        validate:"omitempty,slug"`
	Description *string   `json:"description,omitempty" validate:"omitempty,max=5000"`
	Price       *float64  `json:"price,omitempty"       validate:"omitempty,gt=0"`
	SalePrice   *float64  `json:"salePrice,omitempty"   validate:"omitempty,gt=0"`
	Stock       *int      `json:"stock,omitempty"       validate:"omitempty,gte=0"`
	SKU         *string   `json:"sku,omitempty"         validate:"omitempty,max=64"`
	CategoryID  *string   `json:"categoryId,omitempty"`
	Images      *[]string `json:"images,omitempty"`
	Status      *string   `json:"status,omitempty"      validate:"omitempty,oneof=draft active archived"`
}

type ProductPage struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}
