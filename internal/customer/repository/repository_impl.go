package repository

import (
	"context"
	"errors"

	"github.com/smallbiznis/quotehub/internal/customer/domain"
	"github.com/smallbiznis/quotehub/pkg/db/option"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	return db.WithContext(ctx).Create(customer).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	return db.WithContext(ctx).Save(customer).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.Customer, error) {
	var customer domain.Customer
	err := db.WithContext(ctx).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Delete(&domain.Customer{}, "id = ?", id).Error
}

func applyFilter(stmt *gorm.DB, filter domain.ListCustomerFilter) *gorm.DB {
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		stmt = stmt.Where(
			"lower(first_name) LIKE lower(?) OR lower(last_name) LIKE lower(?) OR lower(email) LIKE lower(?)",
			like, like, like,
		)
	}
	if filter.Email != "" {
		stmt = stmt.Where("email = ?", filter.Email)
	}
	return stmt
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListCustomerFilter) ([]domain.Customer, error) {
	var customers []domain.Customer
	stmt := applyFilter(db.WithContext(ctx).Model(&domain.Customer{}), filter)
	stmt = option.ApplyPagination(filter.Offset, filter.Limit).Apply(stmt)
	err := stmt.Order("created_at desc, id desc").Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *repo) Count(ctx context.Context, db *gorm.DB, filter domain.ListCustomerFilter) (int64, error) {
	var count int64
	stmt := applyFilter(db.WithContext(ctx).Model(&domain.Customer{}), filter)
	err := stmt.Count(&count).Error
	return count, err
}
