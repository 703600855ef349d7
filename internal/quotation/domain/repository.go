package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// TimeComparison expresses created_at / updated_at range filters.
type TimeComparison struct {
	Lt  *time.Time
	Gt  *time.Time
	Lte *time.Time
	Gte *time.Time
}

// Filter holds the structured list predicates. Q is the free-text term;
// when set it supersedes exact matching on Code and Title.
type Filter struct {
	IDs           []string
	Q             string
	Code          string
	Title         string
	CustomerID    string
	SalePersionID string
	RegionID      string
	CreatedAt     *TimeComparison
	UpdatedAt     *TimeComparison
}

// FindOptions is the relation-free half of a lookup: predicates,
// pagination, ordering and column selection.
type FindOptions struct {
	Filter         Filter
	Offset         int
	Limit          int
	Order          string
	Fields         []string
	IncludeDeleted bool
}

type Repository interface {
	// Insert writes the quotation row only; lines are written through
	// InsertLines so parents land before their children.
	Insert(ctx context.Context, db *gorm.DB, quotation *Quotation) error
	InsertLines(ctx context.Context, db *gorm.DB, lines []QuotationLine) error

	FindWithRelations(ctx context.Context, db *gorm.DB, relations []string, opts FindOptions) ([]Quotation, error)
	FindWithRelationsAndCount(ctx context.Context, db *gorm.DB, relations []string, opts FindOptions) ([]Quotation, int64, error)
	FindOneWithRelations(ctx context.Context, db *gorm.DB, relations []string, opts FindOptions) (*Quotation, error)
	FindByIDs(ctx context.Context, db *gorm.DB, ids []string, relations []string, includeDeleted bool) ([]Quotation, error)

	// FreeTextSearchAndCount ORs a case-insensitive substring match over
	// code and title, AND-combined with the remaining structured
	// predicates. Structured code/title filters are stripped first.
	FreeTextSearchAndCount(ctx context.Context, db *gorm.DB, q string, opts FindOptions, relations []string) ([]Quotation, int64, error)

	// SoftDeleteTree soft-deletes the aggregate and its full line tree.
	SoftDeleteTree(ctx context.Context, db *gorm.DB, quotation *Quotation) error
}
