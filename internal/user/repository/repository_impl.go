package repository

import (
	"context"
	"errors"

	regiondomain "github.com/smallbiznis/quotehub/internal/region/domain"
	"github.com/smallbiznis/quotehub/internal/user/domain"
	"github.com/smallbiznis/quotehub/pkg/db/option"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, user *domain.User) error {
	return db.WithContext(ctx).Create(user).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, user *domain.User) error {
	return db.WithContext(ctx).Omit("Regions").Save(user).Error
}

func (r *repo) ReplaceRegions(ctx context.Context, db *gorm.DB, user *domain.User, regions []regiondomain.Region) error {
	return db.WithContext(ctx).Model(user).Association("Regions").Replace(regions)
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	var user domain.User
	err := db.WithContext(ctx).Preload("Regions").First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repo) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.User, error) {
	var user domain.User
	err := db.WithContext(ctx).Preload("Regions").First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Delete(&domain.User{}, "id = ?", id).Error
}

func applyFilter(stmt *gorm.DB, filter domain.ListUserFilter) *gorm.DB {
	if filter.Role != "" {
		stmt = stmt.Where("role = ?", filter.Role)
	}
	if filter.Email != "" {
		stmt = stmt.Where("email = ?", filter.Email)
	}
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		stmt = stmt.Where("lower(name) LIKE lower(?) OR lower(email) LIKE lower(?)", like, like)
	}
	return stmt
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListUserFilter) ([]domain.User, error) {
	var users []domain.User
	stmt := applyFilter(db.WithContext(ctx).Model(&domain.User{}), filter)
	stmt = option.ApplyPagination(filter.Offset, filter.Limit).Apply(stmt)
	err := stmt.Preload("Regions").Order("created_at desc, id desc").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *repo) Count(ctx context.Context, db *gorm.DB, filter domain.ListUserFilter) (int64, error) {
	var count int64
	stmt := applyFilter(db.WithContext(ctx).Model(&domain.User{}), filter)
	err := stmt.Count(&count).Error
	return count, err
}
