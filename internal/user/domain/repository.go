package domain

import (
	"context"

	regiondomain "github.com/smallbiznis/quotehub/internal/region/domain"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, user *User) error
	Update(ctx context.Context, db *gorm.DB, user *User) error
	// ReplaceRegions swaps the user_region association set.
	ReplaceRegions(ctx context.Context, db *gorm.DB, user *User, regions []regiondomain.Region) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*User, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*User, error)
	Delete(ctx context.Context, db *gorm.DB, id string) error
	List(ctx context.Context, db *gorm.DB, filter ListUserFilter) ([]User, error)
	Count(ctx context.Context, db *gorm.DB, filter ListUserFilter) (int64, error)
}
