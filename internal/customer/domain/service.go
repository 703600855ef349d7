package domain

import (
	"context"
	"errors"
)

type CreateCustomerRequest struct {
	Email     string
	FirstName string
	LastName  string
	Phone     string
	Company   string
}

type UpdateCustomerRequest struct {
	ID        string
	Email     *string
	FirstName *string
	LastName  *string
	Phone     *string
	Company   *string
}

type GetCustomerRequest struct {
	ID string
}

type ListCustomerRequest struct {
	Query  string
	Email  string
	Offset int
	Limit  int
}

type ListCustomerFilter struct {
	Query  string
	Email  string
	Offset int
	Limit  int
}

type ListCustomerResponse struct {
	Customers []Customer `json:"customers"`
	Count     int64      `json:"count"`
	Offset    int        `json:"offset"`
	Limit     int        `json:"limit"`
}

type Service interface {
	Create(context.Context, CreateCustomerRequest) (Customer, error)
	Update(context.Context, UpdateCustomerRequest) (Customer, error)
	GetByID(context.Context, GetCustomerRequest) (Customer, error)
	List(context.Context, ListCustomerRequest) (ListCustomerResponse, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidName    = errors.New("invalid_name")
	ErrInvalidEmail   = errors.New("invalid_email")
	ErrInvalidID      = errors.New("invalid_id")
	ErrNotFound       = errors.New("not_found")
	ErrDuplicateEmail = errors.New("duplicate_email")
)
