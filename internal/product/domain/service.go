package domain

import (
	"context"
	"errors"
)

type CreateProductRequest struct {
	Title       string
	Brand       string
	Description string
}

type UpdateProductRequest struct {
	ID          string
	Title       *string
	Brand       *string
	Description *string
}

type GetProductRequest struct {
	ID string
}

type ListProductRequest struct {
	Query  string
	Brand  string
	Offset int
	Limit  int
}

type ListProductFilter struct {
	Query  string
	Brand  string
	Offset int
	Limit  int
}

type ListProductResponse struct {
	Products []Product `json:"products"`
	Count    int64     `json:"count"`
	Offset   int       `json:"offset"`
	Limit    int       `json:"limit"`
}

type CreateHardwareLinkRequest struct {
	ProductParentID    string
	ProductAdditionsID string
}

type Service interface {
	Create(context.Context, CreateProductRequest) (Product, error)
	Update(context.Context, UpdateProductRequest) (Product, error)
	GetByID(context.Context, GetProductRequest) (Product, error)
	List(context.Context, ListProductRequest) (ListProductResponse, error)
	ListBrands(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, id string) error

	CreateHardwareLink(context.Context, CreateHardwareLinkRequest) (ProductAdditionalHardware, error)
	ListHardwareLinks(ctx context.Context, parentID string) ([]ProductAdditionalHardware, error)
	DeleteHardwareLink(ctx context.Context, id string) error
}

var (
	ErrInvalidTitle   = errors.New("invalid_title")
	ErrInvalidID      = errors.New("invalid_id")
	ErrInvalidProduct = errors.New("invalid_product")
	ErrNotFound       = errors.New("not_found")
)
