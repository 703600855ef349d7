package repository

import (
	"context"
	"errors"

	"github.com/smallbiznis/quotehub/internal/region/domain"
	"github.com/smallbiznis/quotehub/pkg/db/option"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, region *domain.Region) error {
	return db.WithContext(ctx).Create(region).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, region *domain.Region) error {
	return db.WithContext(ctx).Save(region).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.Region, error) {
	var region domain.Region
	err := db.WithContext(ctx).First(&region, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &region, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Delete(&domain.Region{}, "id = ?", id).Error
}

func (r *repo) FindByIDs(ctx context.Context, db *gorm.DB, ids []string) ([]domain.Region, error) {
	var regions []domain.Region
	if len(ids) == 0 {
		return regions, nil
	}
	err := db.WithContext(ctx).Find(&regions, "id IN ?", ids).Error
	if err != nil {
		return nil, err
	}
	return regions, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListRegionFilter) ([]domain.Region, error) {
	var regions []domain.Region
	stmt := db.WithContext(ctx).Model(&domain.Region{})
	if filter.Name != "" {
		stmt = stmt.Where("name = ?", filter.Name)
	}
	stmt = option.ApplyPagination(filter.Offset, filter.Limit).Apply(stmt)
	err := stmt.Order("created_at desc, id desc").Find(&regions).Error
	if err != nil {
		return nil, err
	}
	return regions, nil
}

func (r *repo) Count(ctx context.Context, db *gorm.DB, filter domain.ListRegionFilter) (int64, error) {
	var count int64
	stmt := db.WithContext(ctx).Model(&domain.Region{})
	if filter.Name != "" {
		stmt = stmt.Where("name = ?", filter.Name)
	}
	err := stmt.Count(&count).Error
	return count, err
}
