package domain

import (
	"context"
	"errors"
)

type CreateRegionRequest struct {
	Name         string
	CurrencyCode string
	TaxRate      float64
}

type UpdateRegionRequest struct {
	ID           string
	Name         *string
	CurrencyCode *string
	TaxRate      *float64
}

type GetRegionRequest struct {
	ID string
}

type ListRegionRequest struct {
	Name   string
	Offset int
	Limit  int
}

type ListRegionFilter struct {
	Name   string
	Offset int
	Limit  int
}

type ListRegionResponse struct {
	Regions []Region `json:"regions"`
	Count   int64    `json:"count"`
	Offset  int      `json:"offset"`
	Limit   int      `json:"limit"`
}

type Service interface {
	Create(context.Context, CreateRegionRequest) (Region, error)
	Update(context.Context, UpdateRegionRequest) (Region, error)
	GetByID(context.Context, GetRegionRequest) (Region, error)
	List(context.Context, ListRegionRequest) (ListRegionResponse, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidCurrency = errors.New("invalid_currency")
	ErrInvalidID       = errors.New("invalid_id")
	ErrNotFound        = errors.New("not_found")
)
