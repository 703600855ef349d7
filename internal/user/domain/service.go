package domain

import (
	"context"
	"errors"
)

type CreateUserRequest struct {
	Role      Role
	Email     string
	Name      string
	Phone     string
	Password  string
	RegionIDs []string
}

type UpdateUserRequest struct {
	ID        string
	Role      *Role
	Email     *string
	Name      *string
	Phone     *string
	RegionIDs []string
}

type GetUserRequest struct {
	ID string
}

type ListUserRequest struct {
	Role   Role
	Email  string
	Offset int
	Limit  int
}

type ListUserFilter struct {
	Role   Role
	Email  string
	Query  string
	Offset int
	Limit  int
}

type ListUserResponse struct {
	Users  []User `json:"users"`
	Count  int64  `json:"count"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type Service interface {
	Create(context.Context, CreateUserRequest) (User, error)
	Update(context.Context, UpdateUserRequest) (User, error)
	GetByID(context.Context, GetUserRequest) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(context.Context, ListUserRequest) (ListUserResponse, error)
	// Filter is the free-text user search (name/email substring).
	Filter(ctx context.Context, q string, offset, limit int) (ListUserResponse, error)
	SetPassword(ctx context.Context, id, password string) error
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidEmail    = errors.New("invalid_email")
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidRole     = errors.New("invalid_role")
	ErrInvalidPassword = errors.New("invalid_password")
	ErrInvalidData     = errors.New("invalid_data")
	ErrInvalidID       = errors.New("invalid_id")
	ErrNotFound        = errors.New("not_found")
	ErrDuplicate       = errors.New("duplicate")
)
