package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, price *ProductPrice) error
	Update(ctx context.Context, db *gorm.DB, price *ProductPrice) error
	// FindByProductAndRegion is the exact-match lookup used during
	// quotation pricing. Returns nil when no price is published.
	FindByProductAndRegion(ctx context.Context, db *gorm.DB, productID, regionID string) (*ProductPrice, error)
	FindByID(ctx context.Context, db *gorm.DB, id string) (*ProductPrice, error)
	ListByRegion(ctx context.Context, db *gorm.DB, regionID string, offset, limit int) ([]ProductPrice, error)
	CountByRegion(ctx context.Context, db *gorm.DB, regionID string) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, id string) error
}
