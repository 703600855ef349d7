// Package option carries composable gorm query options applied by the
// repository layer.
package option

import "gorm.io/gorm"

// QueryOption mutates a gorm statement before execution.
type QueryOption interface {
	Apply(*gorm.DB) *gorm.DB
}

type optionFunc func(*gorm.DB) *gorm.DB

func (f optionFunc) Apply(stmt *gorm.DB) *gorm.DB { return f(stmt) }

// ApplyPagination applies offset/limit. Negative values are ignored so
// callers can pass zero-value pagination untouched.
func ApplyPagination(skip, take int) QueryOption {
	return optionFunc(func(stmt *gorm.DB) *gorm.DB {
		if skip > 0 {
			stmt = stmt.Offset(skip)
		}
		if take > 0 {
			stmt = stmt.Limit(take)
		}
		return stmt
	})
}

// ApplySort orders the statement by a raw order clause.
func ApplySort(order string) QueryOption {
	return optionFunc(func(stmt *gorm.DB) *gorm.DB {
		if order == "" {
			return stmt
		}
		return stmt.Order(order)
	})
}

// WithDeleted includes soft-deleted rows.
func WithDeleted() QueryOption {
	return optionFunc(func(stmt *gorm.DB) *gorm.DB {
		return stmt.Unscoped()
	})
}

// Select restricts the select list.
func Select(fields []string) QueryOption {
	return optionFunc(func(stmt *gorm.DB) *gorm.DB {
		if len(fields) == 0 {
			return stmt
		}
		return stmt.Select(fields)
	})
}
