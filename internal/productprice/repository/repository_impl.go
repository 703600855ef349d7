package repository

import (
	"context"
	"errors"

	"github.com/smallbiznis/quotehub/internal/productprice/domain"
	"github.com/smallbiznis/quotehub/pkg/db/option"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, price *domain.ProductPrice) error {
	return db.WithContext(ctx).Create(price).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, price *domain.ProductPrice) error {
	return db.WithContext(ctx).Save(price).Error
}

func (r *repo) FindByProductAndRegion(ctx context.Context, db *gorm.DB, productID, regionID string) (*domain.ProductPrice, error) {
	var price domain.ProductPrice
	err := db.WithContext(ctx).
		First(&price, "product_id = ? AND region_id = ?", productID, regionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &price, nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.ProductPrice, error) {
	var price domain.ProductPrice
	err := db.WithContext(ctx).First(&price, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &price, nil
}

func (r *repo) ListByRegion(ctx context.Context, db *gorm.DB, regionID string, offset, limit int) ([]domain.ProductPrice, error) {
	var prices []domain.ProductPrice
	stmt := db.WithContext(ctx).
		Model(&domain.ProductPrice{}).
		Where("region_id = ?", regionID)
	stmt = option.ApplyPagination(offset, limit).Apply(stmt)
	err := stmt.Order("created_at desc, id desc").Find(&prices).Error
	if err != nil {
		return nil, err
	}
	return prices, nil
}

func (r *repo) CountByRegion(ctx context.Context, db *gorm.DB, regionID string) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.ProductPrice{}).
		Where("region_id = ?", regionID).
		Count(&count).Error
	return count, err
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Delete(&domain.ProductPrice{}, "id = ?", id).Error
}
