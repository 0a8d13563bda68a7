package domain

import "time"

const (
	RoleAdmin      = "admin"
	RoleStaff      = "staff"
	RoleStoreOwner = "store_owner"
)

// UserProfile mirrors the server-side record of the signed-in user.
// It is cached next to the credential and invalidated together with it.
type UserProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Phone string `json:"phone,omitempty"`
}

// Credentials is the login form.
type Credentials struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginResult is the payload of a successful login.
type LoginResult struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Phone     string    `json:"phone,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type UserInput struct {
	Name     string `json:"name"            validate:"required,min=2,max=100"`
	Email    string `json:"email"           validate:"required,email"`
	Password string `json:"password"        validate:"required,min=8"`
	Role     string `json:"role"            validate:"required,oneof=admin staff store_owner"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,phone"`
}

type UserPatch struct {
	Name     *string `json:"name,omitempty"     validate:"omitempty,min=2,max=100"`
	Email    *string `json:"email,omitempty"    validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8"`
	Role     *string `json:"role,omitempty"     validate:"omitempty,oneof=admin staff store_owner"`
	Phone    *string `json:"phone,omitempty"    validate:"omitempty,phone"`
	Active   *bool   `json:"active,omitempty"`
}

type UserPage struct {
	Users      []User     `json:"users"`
	Pagination Pagination `json:"pagination"`
}
