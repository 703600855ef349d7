package domain

import (
	"context"
	"errors"
)

type SetPriceRequest struct {
	ProductID string
	RegionID  string
	Price     int64
}

type ListPriceRequest struct {
	RegionID string
	Offset   int
	Limit    int
}

type ListPriceResponse struct {
	Prices []ProductPrice `json:"product_prices"`
	Count  int64          `json:"count"`
	Offset int            `json:"offset"`
	Limit  int            `json:"limit"`
}

type Service interface {
	// Set upserts the price for (product, region).
	Set(context.Context, SetPriceRequest) (ProductPrice, error)
	// Lookup returns the published price for (product, region), or nil
	// when none exists. Absence is not an error.
	Lookup(ctx context.Context, productID, regionID string) (*ProductPrice, error)
	ListByRegion(context.Context, ListPriceRequest) (ListPriceResponse, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidProduct = errors.New("invalid_product")
	ErrInvalidRegion  = errors.New("invalid_region")
	ErrInvalidPrice   = errors.New("invalid_price")
	ErrInvalidID      = errors.New("invalid_id")
	ErrNotFound       = errors.New("not_found")
)
