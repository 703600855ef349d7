package repository

import (
	"context"
	"strings"

	"github.com/smallbiznis/quotehub/internal/quotation/domain"
	"github.com/smallbiznis/quotehub/pkg/db/option"
	"gorm.io/gorm"
)

const defaultOrder = "created_at desc, id desc"

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, quotation *domain.Quotation) error {
	return db.WithContext(ctx).Omit("QuotationLines").Create(quotation).Error
}

func (r *repo) InsertLines(ctx context.Context, db *gorm.DB, lines []domain.QuotationLine) error {
	if len(lines) == 0 {
		return nil
	}
	return db.WithContext(ctx).Omit("ChildProduct").Create(&lines).Error
}

func applyComparison(stmt *gorm.DB, column string, cmp *domain.TimeComparison) *gorm.DB {
	if cmp == nil {
		return stmt
	}
	if cmp.Gt != nil {
		stmt = stmt.Where(column+" > ?", *cmp.Gt)
	}
	if cmp.Gte != nil {
		stmt = stmt.Where(column+" >= ?", *cmp.Gte)
	}
	if cmp.Lt != nil {
		stmt = stmt.Where(column+" < ?", *cmp.Lt)
	}
	if cmp.Lte != nil {
		stmt = stmt.Where(column+" <= ?", *cmp.Lte)
	}
	return stmt
}

func applyFilter(stmt *gorm.DB, f domain.Filter) *gorm.DB {
	if len(f.IDs) > 0 {
		stmt = stmt.Where("quotations.id IN ?", f.IDs)
	}
	if f.Code != "" {
		stmt = stmt.Where("code = ?", f.Code)
	}
	if f.Title != "" {
		stmt = stmt.Where("title = ?", f.Title)
	}
	if f.CustomerID != "" {
		stmt = stmt.Where("customer_id = ?", f.CustomerID)
	}
	if f.SalePersionID != "" {
		stmt = stmt.Where("sale_persion_id = ?", f.SalePersionID)
	}
	if f.RegionID != "" {
		stmt = stmt.Where("region_id = ?", f.RegionID)
	}
	stmt = applyComparison(stmt, "quotations.created_at", f.CreatedAt)
	stmt = applyComparison(stmt, "quotations.updated_at", f.UpdatedAt)
	return stmt
}

// queryIDs resolves the identity and order of the result set: a filtered,
// paginated query selecting only primary keys. The total count is computed
// before pagination, and only when asked for.
func (r *repo) queryIDs(ctx context.Context, db *gorm.DB, opts domain.FindOptions, shouldCount bool) ([]string, int64, error) {
	base := func() *gorm.DB {
		stmt := db.WithContext(ctx).Model(&domain.Quotation{})
		if opts.IncludeDeleted {
			stmt = option.WithDeleted().Apply(stmt)
		}
		return applyFilter(stmt, opts.Filter)
	}

	var count int64
	if shouldCount {
		if err := base().Count(&count).Error; err != nil {
			return nil, 0, err
		}
	}

	order := opts.Order
	if order == "" {
		order = defaultOrder
	}

	var ids []string
	stmt := option.ApplyPagination(opts.Offset, opts.Limit).Apply(base())
	if err := stmt.Order(order).Pluck("quotations.id", &ids).Error; err != nil {
		return nil, 0, err
	}
	return ids, count, nil
}

// groupRelationPaths splits dotted relation paths by their first segment.
// Paths sharing a top-level relation are hydrated in a single query so one
// join branch never duplicates rows from another.
func groupRelationPaths(paths []string) map[string][]string {
	grouped := make(map[string][]string, len(paths))
	for _, path := range paths {
		topLevel, _, _ := strings.Cut(path, ".")
		grouped[topLevel] = append(grouped[topLevel], path)
	}
	return grouped
}

// toPreloadPath maps a wire relation path ("quotation_lines.child_product")
// onto the model's association chain ("QuotationLines.ChildProduct").
func toPreloadPath(path string) string {
	segments := strings.Split(path, ".")
	for i, segment := range segments {
		parts := strings.Split(segment, "_")
		for j, part := range parts {
			if part == "" {
				continue
			}
			parts[j] = strings.ToUpper(part[:1]) + part[1:]
		}
		segments[i] = strings.Join(parts, "")
	}
	return strings.Join(segments, ".")
}

func preloadScope(includeDeleted bool) func(*gorm.DB) *gorm.DB {
	return func(stmt *gorm.DB) *gorm.DB {
		if includeDeleted {
			return stmt.Unscoped()
		}
		return stmt
	}
}

// parentLineScope restricts the top-level quotation_lines preload to parent
// lines; children hydrate under their parent's child_product.
func parentLineScope(includeDeleted bool) func(*gorm.DB) *gorm.DB {
	return func(stmt *gorm.DB) *gorm.DB {
		if includeDeleted {
			stmt = stmt.Unscoped()
		}
		return stmt.Where("parent_line_id IS NULL")
	}
}

// fetchWithRelations issues one query per top-level relation group, each
// restricted to the id set, and returns the partially hydrated aggregates.
func (r *repo) fetchWithRelations(ctx context.Context, db *gorm.DB, ids []string, grouped map[string][]string, includeDeleted bool, fields []string) ([]domain.Quotation, error) {
	var partials []domain.Quotation
	for topLevel, paths := range grouped {
		stmt := db.WithContext(ctx).Model(&domain.Quotation{})
		if includeDeleted {
			stmt = option.WithDeleted().Apply(stmt)
		}
		if len(fields) > 0 {
			stmt = option.Select(withRelationKeys(fields, topLevel)).Apply(stmt)
		}
		if topLevel == "quotation_lines" {
			stmt = stmt.Preload("QuotationLines", parentLineScope(includeDeleted))
		}
		for _, path := range paths {
			if path == "quotation_lines" {
				continue
			}
			stmt = stmt.Preload(toPreloadPath(path), preloadScope(includeDeleted))
		}

		var batch []domain.Quotation
		if err := stmt.Find(&batch, "quotations.id IN ?", ids).Error; err != nil {
			return nil, err
		}
		partials = append(partials, batch...)
	}
	return partials, nil
}

var relationForeignKeys = map[string]string{
	"customer":     "customer_id",
	"region":       "region_id",
	"sale_persion": "sale_persion_id",
}

// withRelationKeys keeps a narrowed select usable for hydration: the primary
// key is always present, and an expanded belongs-to relation keeps its
// foreign key column so the preload can still attach.
func withRelationKeys(fields []string, topLevel string) []string {
	out := make([]string, 0, len(fields)+2)
	seen := make(map[string]bool, len(fields)+2)
	add := func(column string) {
		if column != "" && !seen[column] {
			seen[column] = true
			out = append(out, column)
		}
	}
	add("id")
	for _, field := range fields {
		add(field)
	}
	if fk, ok := relationForeignKeys[topLevel]; ok {
		add(fk)
	}
	return out
}

// mergeByIdentity deep-merges the per-group partial aggregates into one
// aggregate per id, emitted in the authoritative id order.
func mergeByIdentity(orderedIDs []string, partials []domain.Quotation) []domain.Quotation {
	byID := make(map[string]*domain.Quotation, len(orderedIDs))
	for i := range partials {
		p := &partials[i]
		agg, ok := byID[p.ID]
		if !ok {
			cp := *p
			byID[p.ID] = &cp
			continue
		}
		if agg.SalePersion == nil {
			agg.SalePersion = p.SalePersion
		}
		if agg.Customer == nil {
			agg.Customer = p.Customer
		}
		if agg.Region == nil {
			agg.Region = p.Region
		}
		if agg.QuotationLines == nil {
			agg.QuotationLines = p.QuotationLines
		}
	}

	merged := make([]domain.Quotation, 0, len(orderedIDs))
	for _, id := range orderedIDs {
		if agg, ok := byID[id]; ok {
			merged = append(merged, *agg)
		}
	}
	return merged
}

// hydrate fetches fully assembled aggregates for an already resolved,
// ordered id set.
func (r *repo) hydrate(ctx context.Context, db *gorm.DB, ids []string, relations []string, includeDeleted bool, fields []string) ([]domain.Quotation, error) {
	if len(ids) == 0 {
		return []domain.Quotation{}, nil
	}

	if len(relations) == 0 {
		stmt := db.WithContext(ctx).Model(&domain.Quotation{})
		if includeDeleted {
			stmt = option.WithDeleted().Apply(stmt)
		}
		if len(fields) > 0 {
			stmt = option.Select(withRelationKeys(fields, "")).Apply(stmt)
		}
		var flat []domain.Quotation
		if err := stmt.Find(&flat, "quotations.id IN ?", ids).Error; err != nil {
			return nil, err
		}
		return mergeByIdentity(ids, flat), nil
	}

	grouped := groupRelationPaths(relations)
	partials, err := r.fetchWithRelations(ctx, db, ids, grouped, includeDeleted, fields)
	if err != nil {
		return nil, err
	}
	return mergeByIdentity(ids, partials), nil
}

func (r *repo) FindWithRelations(ctx context.Context, db *gorm.DB, relations []string, opts domain.FindOptions) ([]domain.Quotation, error) {
	ids, _, err := r.queryIDs(ctx, db, opts, false)
	if err != nil {
		return nil, err
	}
	return r.hydrate(ctx, db, ids, relations, opts.IncludeDeleted, opts.Fields)
}

func (r *repo) FindWithRelationsAndCount(ctx context.Context, db *gorm.DB, relations []string, opts domain.FindOptions) ([]domain.Quotation, int64, error) {
	ids, count, err := r.queryIDs(ctx, db, opts, true)
	if err != nil {
		return nil, 0, err
	}
	quotations, err := r.hydrate(ctx, db, ids, relations, opts.IncludeDeleted, opts.Fields)
	if err != nil {
		return nil, 0, err
	}
	return quotations, count, nil
}

func (r *repo) FindOneWithRelations(ctx context.Context, db *gorm.DB, relations []string, opts domain.FindOptions) (*domain.Quotation, error) {
	opts.Limit = 1
	quotations, err := r.FindWithRelations(ctx, db, relations, opts)
	if err != nil {
		return nil, err
	}
	if len(quotations) == 0 {
		return nil, nil
	}
	return &quotations[0], nil
}

func (r *repo) FindByIDs(ctx context.Context, db *gorm.DB, ids []string, relations []string, includeDeleted bool) ([]domain.Quotation, error) {
	return r.hydrate(ctx, db, ids, relations, includeDeleted, nil)
}

func (r *repo) FreeTextSearchAndCount(ctx context.Context, db *gorm.DB, q string, opts domain.FindOptions, relations []string) ([]domain.Quotation, int64, error) {
	// Free text supersedes exact matching on the columns it searches.
	opts.Filter.Code = ""
	opts.Filter.Title = ""

	like := "%" + q + "%"
	base := func() *gorm.DB {
		stmt := db.WithContext(ctx).Model(&domain.Quotation{})
		if opts.IncludeDeleted {
			stmt = option.WithDeleted().Apply(stmt)
		}
		stmt = applyFilter(stmt, opts.Filter)
		return stmt.Where("lower(code) LIKE lower(?) OR lower(title) LIKE lower(?)", like, like)
	}

	var count int64
	if err := base().Count(&count).Error; err != nil {
		return nil, 0, err
	}

	order := opts.Order
	if order == "" {
		order = defaultOrder
	}

	var ids []string
	stmt := option.ApplyPagination(opts.Offset, opts.Limit).Apply(base())
	if err := stmt.Order(order).Pluck("quotations.id", &ids).Error; err != nil {
		return nil, 0, err
	}

	quotations, err := r.hydrate(ctx, db, ids, relations, opts.IncludeDeleted, opts.Fields)
	if err != nil {
		return nil, 0, err
	}
	return quotations, count, nil
}

func (r *repo) SoftDeleteTree(ctx context.Context, db *gorm.DB, quotation *domain.Quotation) error {
	// Child lines carry the owning quotation id, so one statement covers
	// the whole tree.
	if err := db.WithContext(ctx).
		Delete(&domain.QuotationLine{}, "quotation_id = ?", quotation.ID).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).Delete(&domain.Quotation{}, "id = ?", quotation.ID).Error
}
