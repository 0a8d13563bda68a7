package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func IsValidOrderStatus(status OrderStatus) bool {
	switch status {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

type Order struct {
	ID              string      `json:"id"`
	Code            string      `json:"code,omitempty"`
	CustomerName    string      `json:"customerName"`
	CustomerEmail   string      `json:"customerEmail,omitempty"`
	CustomerPhone   string      `json:"customerPhone,omitempty"`
	ShippingAddress string      `json:"shippingAddress,omitempty"`
	StoreID         string      `json:"storeId,omitempty"`
	VoucherCode     string      `json:"voucherCode,omitempty"`
	Items           []OrderItem `json:"items"`
	Subtotal        float64     `json:"subtotal"`
	Discount        float64     `json:"discount"`
	Total           float64     `json:"total"`
	Status          OrderStatus `json:"status"`
	Note            string      `json:"note,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name,omitempty"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type OrderItemInput struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"  validate:"required,gt=0"`
}

type OrderInput struct {
	CustomerName    string           `json:"customerName"          validate:"required,min=2,max=100"`
	CustomerEmail   string           `json:"customerEmail,omitempty" validate:"omitempty,email"`
	CustomerPhone   string           `json:"customerPhone"         validate:"required,phone"`
	ShippingAddress string           `json:"shippingAddress"       validate:"required,min=5"`
	StoreID         string           `json:"storeId,omitempty"`
	VoucherCode     string           `json:"voucherCode,omitempty" validate:"omitempty,alphanum,max=32"`
	Note            string           `json:"note,omitempty"        validate:"max=500"`
	Items           []OrderItemInput `json:"items"                 validate:"required,min=1,dive"`
}

type OrderStatusInput struct {
	Status OrderStatus `json:"status" validate:"required,oneof=pending processing shipped completed cancelled"`
	Note   string      `json:"note,omitempty" validate:"max=500"`
}

type OrderPage struct {
	Orders     []Order    `json:"orders"`
	Pagination Pagination `json:"pagination"`
}
