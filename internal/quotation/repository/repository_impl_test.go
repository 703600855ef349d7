package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	customerdomain "github.com/smallbiznis/quotehub/internal/customer/domain"
	"github.com/smallbiznis/quotehub/internal/quotation/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Quotation{}, &domain.QuotationLine{}))
	return db
}

func seedQuotation(t *testing.T, db *gorm.DB, id, code, title string) {
	t.Helper()
	require.NoError(t, db.Create(&domain.Quotation{
		ID:       id,
		Code:     code,
		Title:    title,
		RegionID: "reg_r1",
	}).Error)
}

func TestToPreloadPath(t *testing.T) {
	cases := map[string]string{
		"customer":                      "Customer",
		"region":                        "Region",
		"sale_persion":                  "SalePersion",
		"quotation_lines":               "QuotationLines",
		"quotation_lines.child_product": "QuotationLines.ChildProduct",
	}
	for in, want := range cases {
		assert.Equal(t, want, toPreloadPath(in), in)
	}
}

func TestGroupRelationPaths(t *testing.T) {
	grouped := groupRelationPaths([]string{
		"customer",
		"quotation_lines",
		"quotation_lines.child_product",
		"region",
	})

	assert.Len(t, grouped, 3)
	assert.Equal(t, []string{"customer"}, grouped["customer"])
	assert.Equal(t, []string{"region"}, grouped["region"])
	assert.Equal(t,
		[]string{"quotation_lines", "quotation_lines.child_product"},
		grouped["quotation_lines"],
	)
}

func TestMergeByIdentityKeepsOrderAndFillsRelations(t *testing.T) {
	lines := []domain.QuotationLine{{ID: "qline_1", QuotationID: "quot_b"}}
	partials := []domain.Quotation{
		{ID: "quot_a", Code: "A"},
		{ID: "quot_b", Code: "B"},
		{ID: "quot_b", Code: "B", QuotationLines: lines},
		{ID: "quot_a", Code: "A"},
	}

	merged := mergeByIdentity([]string{"quot_b", "quot_a"}, partials)

	require.Len(t, merged, 2)
	assert.Equal(t, "quot_b", merged[0].ID)
	assert.Equal(t, "quot_a", merged[1].ID)
	assert.Len(t, merged[0].QuotationLines, 1)
}

func TestMergeByIdentitySkipsUnknownIDs(t *testing.T) {
	merged := mergeByIdentity(
		[]string{"quot_missing", "quot_a"},
		[]domain.Quotation{{ID: "quot_a"}},
	)
	require.Len(t, merged, 1)
	assert.Equal(t, "quot_a", merged[0].ID)
}

func TestFindWithRelationsEmptyFilterResult(t *testing.T) {
	db := setupDB(t)
	r := Provide()

	// No matching ids: no relation queries are issued and the result is an
	// empty, non-nil slice.
	quotations, err := r.FindWithRelations(context.Background(), db, domain.DefaultRelations, domain.FindOptions{
		Filter: domain.Filter{Code: "no-such-code"},
	})
	require.NoError(t, err)
	assert.NotNil(t, quotations)
	assert.Empty(t, quotations)
}

func TestFindWithRelationsAndCountPaginates(t *testing.T) {
	db := setupDB(t)
	r := Provide()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		seedQuotation(t, db, fmt.Sprintf("quot_%02d", i), fmt.Sprintf("Q-%02d", i), "paging")
	}

	quotations, count, err := r.FindWithRelationsAndCount(ctx, db, nil, domain.FindOptions{
		Offset: 1,
		Limit:  2,
		Order:  "id asc",
	})
	require.NoError(t, err)

	// Count reflects the whole filtered set, not the page.
	assert.Equal(t, int64(5), count)
	require.Len(t, quotations, 2)
	assert.Equal(t, "quot_01", quotations[0].ID)
	assert.Equal(t, "quot_02", quotations[1].ID)
}

func TestFreeTextSearchMatchesCodeOrTitle(t *testing.T) {
	db := setupDB(t)
	r := Provide()
	ctx := context.Background()

	seedQuotation(t, db, "quot_1", "Q-ALPHA", "Plain title")
	seedQuotation(t, db, "quot_2", "Q-OTHER", "alpha expansion")
	seedQuotation(t, db, "quot_3", "Q-MISS", "unrelated")

	quotations, count, err := r.FreeTextSearchAndCount(ctx, db, "ALPHA", domain.FindOptions{
		Filter: domain.Filter{Code: "ignored", Title: "ignored"},
		Limit:  10,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Len(t, quotations, 2)
}

func TestFreeTextSearchKeepsScopeFilters(t *testing.T) {
	db := setupDB(t)
	r := Provide()
	ctx := context.Background()

	seedQuotation(t, db, "quot_1", "Q-ALPHA", "in region")
	require.NoError(t, db.Create(&domain.Quotation{
		ID: "quot_2", Code: "Q-ALPHA-2", Title: "other region", RegionID: "reg_r2",
	}).Error)

	quotations, count, err := r.FreeTextSearchAndCount(ctx, db, "alpha", domain.FindOptions{
		Filter: domain.Filter{RegionID: "reg_r1"},
		Limit:  10,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	require.Len(t, quotations, 1)
	assert.Equal(t, "quot_1", quotations[0].ID)
}

func TestHydrateMergesRelationGroups(t *testing.T) {
	db := setupDB(t)
	r := Provide()
	ctx := context.Background()

	seedQuotation(t, db, "quot_1", "Q-1", "grouped")
	parentID := "qline_parent"
	require.NoError(t, db.Create(&domain.QuotationLine{
		ID: parentID, QuotationID: "quot_1", ProductID: "prod_p1", Volume: 1, UnitPrice: 100,
	}).Error)
	require.NoError(t, db.Create(&domain.QuotationLine{
		ID: "qline_child", QuotationID: "quot_1", ParentLineID: &parentID,
		ProductID: "prod_addon", Volume: 2, UnitPrice: 25,
	}).Error)

	quotations, err := r.FindByIDs(ctx, db, []string{"quot_1"},
		[]string{"quotation_lines", "quotation_lines.child_product"}, false)
	require.NoError(t, err)
	require.Len(t, quotations, 1)

	// Children appear only nested under their parent, never at top level.
	require.Len(t, quotations[0].QuotationLines, 1)
	parent := quotations[0].QuotationLines[0]
	assert.Equal(t, parentID, parent.ID)
	require.Len(t, parent.ChildProduct, 1)
	assert.Equal(t, "qline_child", parent.ChildProduct[0].ID)
}

func TestWithRelationKeys(t *testing.T) {
	assert.Equal(t, []string{"id", "title", "customer_id"}, withRelationKeys([]string{"title"}, "customer"))
	assert.Equal(t, []string{"id", "title"}, withRelationKeys([]string{"title", "id"}, "quotation_lines"))
	assert.Equal(t, []string{"id", "sale_persion_id"}, withRelationKeys([]string{"sale_persion_id"}, "sale_persion"))
}

func TestFindWithRelationsFieldSelectionKeepsExpansions(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.AutoMigrate(&customerdomain.Customer{}))
	r := Provide()
	ctx := context.Background()

	require.NoError(t, db.Create(&customerdomain.Customer{
		ID: "cus_1", Email: "buyer@acme.test", FirstName: "Ana",
	}).Error)
	require.NoError(t, db.Create(&domain.Quotation{
		ID: "quot_1", Code: "Q-1", Title: "narrowed", RegionID: "reg_r1", CustomerID: "cus_1",
	}).Error)

	quotations, err := r.FindWithRelations(ctx, db, []string{"customer"}, domain.FindOptions{
		Filter: domain.Filter{IDs: []string{"quot_1"}},
		Fields: []string{"title"},
	})
	require.NoError(t, err)
	require.Len(t, quotations, 1)

	// A narrowed select keeps the FK column, so the expansion still attaches.
	assert.Equal(t, "narrowed", quotations[0].Title)
	require.NotNil(t, quotations[0].Customer)
	assert.Equal(t, "cus_1", quotations[0].Customer.ID)
	assert.Empty(t, quotations[0].Code)
}

func TestFreeTextSearchHonorsFieldSelection(t *testing.T) {
	db := setupDB(t)
	r := Provide()
	ctx := context.Background()

	seedQuotation(t, db, "quot_1", "Q-ALPHA", "selected title")

	quotations, count, err := r.FreeTextSearchAndCount(ctx, db, "alpha", domain.FindOptions{
		Fields: []string{"title"},
		Limit:  10,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	require.Len(t, quotations, 1)
	assert.Equal(t, "selected title", quotations[0].Title)
	assert.Empty(t, quotations[0].Code)
}

func TestFindByIDsIncludeDeleted(t *testing.T) {
	db := setupDB(t)
	r := Provide()
	ctx := context.Background()

	seedQuotation(t, db, "quot_1", "Q-1", "gone")
	require.NoError(t, db.Delete(&domain.Quotation{}, "id = ?", "quot_1").Error)

	quotations, err := r.FindByIDs(ctx, db, []string{"quot_1"}, nil, false)
	require.NoError(t, err)
	assert.Empty(t, quotations)

	quotations, err = r.FindByIDs(ctx, db, []string{"quot_1"}, nil, true)
	require.NoError(t, err)
	require.Len(t, quotations, 1)
	assert.True(t, quotations[0].DeletedAt.Valid)
}
