package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, region *Region) error
	Update(ctx context.Context, db *gorm.DB, region *Region) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*Region, error)
	Delete(ctx context.Context, db *gorm.DB, id string) error
	FindByIDs(ctx context.Context, db *gorm.DB, ids []string) ([]Region, error)
	List(ctx context.Context, db *gorm.DB, filter ListRegionFilter) ([]Region, error)
	Count(ctx context.Context, db *gorm.DB, filter ListRegionFilter) (int64, error)
}
