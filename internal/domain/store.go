package domain

import "time"

const (
	StoreStatusPending  = "pending"
	StoreStatusApproved = "approved"
	StoreStatusRejected = "rejected"
)

type Store struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	OwnerID   string    `json:"ownerId,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Logo      string    `json:"logo,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type StoreInput struct {
	Name    string `json:"name"              validate:"required,min=2,max=100"`
	Slug    string `json:"slug,omitempty"    validate:"omitempty,slug"`
	OwnerID string `json:"ownerId,omitempty"`
	Email   string `json:"email,omitempty"   validate:"omitempty,email"`
	Phone   string `json:"phone,omitempty"   validate:"omitempty,phone"`
	Address string `json:"address,omitempty" validate:"max=255"`
	Logo    string `json:"logo,omitempty"    validate:"omitempty,url"`
}

type StorePage struct {
	Stores     []Store    `json:"stores"`
	Pagination Pagination `json:"pagination"`
}
