package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, customer *Customer) error
	Update(ctx context.Context, db *gorm.DB, customer *Customer) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*Customer, error)
	Delete(ctx context.Context, db *gorm.DB, id string) error
	List(ctx context.Context, db *gorm.DB, filter ListCustomerFilter) ([]Customer, error)
	Count(ctx context.Context, db *gorm.DB, filter ListCustomerFilter) (int64, error)
}
