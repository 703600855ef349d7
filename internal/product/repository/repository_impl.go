package repository

import (
	"context"
	"errors"

	"github.com/smallbiznis/quotehub/internal/product/domain"
	"github.com/smallbiznis/quotehub/pkg/db/option"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Create(product).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Save(product).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.Product, error) {
	var product domain.Product
	err := db.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repo) FindByIDs(ctx context.Context, db *gorm.DB, ids []string) ([]domain.Product, error) {
	var products []domain.Product
	if len(ids) == 0 {
		return products, nil
	}
	err := db.WithContext(ctx).Find(&products, "id IN ?", ids).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Delete(&domain.Product{}, "id = ?", id).Error
}

func applyFilter(stmt *gorm.DB, filter domain.ListProductFilter) *gorm.DB {
	if filter.Query != "" {
		stmt = stmt.Where("lower(title) LIKE lower(?)", "%"+filter.Query+"%")
	}
	if filter.Brand != "" {
		stmt = stmt.Where("brand = ?", filter.Brand)
	}
	return stmt
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListProductFilter) ([]domain.Product, error) {
	var products []domain.Product
	stmt := applyFilter(db.WithContext(ctx).Model(&domain.Product{}), filter)
	stmt = option.ApplyPagination(filter.Offset, filter.Limit).Apply(stmt)
	err := stmt.Order("created_at desc, id desc").Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repo) Count(ctx context.Context, db *gorm.DB, filter domain.ListProductFilter) (int64, error) {
	var count int64
	stmt := applyFilter(db.WithContext(ctx).Model(&domain.Product{}), filter)
	err := stmt.Count(&count).Error
	return count, err
}

func (r *repo) ListBrands(ctx context.Context, db *gorm.DB) ([]string, error) {
	var brands []string
	err := db.WithContext(ctx).
		Model(&domain.Product{}).
		Distinct("brand").
		Where("brand <> ''").
		Order("brand asc").
		Pluck("brand", &brands).Error
	if err != nil {
		return nil, err
	}
	return brands, nil
}

func (r *repo) InsertHardwareLink(ctx context.Context, db *gorm.DB, link *domain.ProductAdditionalHardware) error {
	return db.WithContext(ctx).Create(link).Error
}

func (r *repo) ListHardwareLinks(ctx context.Context, db *gorm.DB, parentID string) ([]domain.ProductAdditionalHardware, error) {
	var links []domain.ProductAdditionalHardware
	err := db.WithContext(ctx).
		Preload("ProductAdditions").
		Find(&links, "product_parent_id = ?", parentID).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

func (r *repo) DeleteHardwareLink(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Delete(&domain.ProductAdditionalHardware{}, "id = ?", id).Error
}
