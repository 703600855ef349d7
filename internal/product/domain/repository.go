package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, product *Product) error
	Update(ctx context.Context, db *gorm.DB, product *Product) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*Product, error)
	FindByIDs(ctx context.Context, db *gorm.DB, ids []string) ([]Product, error)
	Delete(ctx context.Context, db *gorm.DB, id string) error
	List(ctx context.Context, db *gorm.DB, filter ListProductFilter) ([]Product, error)
	Count(ctx context.Context, db *gorm.DB, filter ListProductFilter) (int64, error)
	ListBrands(ctx context.Context, db *gorm.DB) ([]string, error)

	InsertHardwareLink(ctx context.Context, db *gorm.DB, link *ProductAdditionalHardware) error
	ListHardwareLinks(ctx context.Context, db *gorm.DB, parentID string) ([]ProductAdditionalHardware, error)
	DeleteHardwareLink(ctx context.Context, db *gorm.DB, id string) error
}
