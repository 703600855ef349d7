package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/quotehub/internal/config"
	customerdomain "github.com/smallbiznis/quotehub/internal/customer/domain"
	pricedomain "github.com/smallbiznis/quotehub/internal/productprice/domain"
	pricerepository "github.com/smallbiznis/quotehub/internal/productprice/repository"
	"github.com/smallbiznis/quotehub/internal/quotation/domain"
	"github.com/smallbiznis/quotehub/internal/quotation/repository"
	regiondomain "github.com/smallbiznis/quotehub/internal/region/domain"
	userdomain "github.com/smallbiznis/quotehub/internal/user/domain"
	"github.com/smallbiznis/quotehub/pkg/entityid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (domain.Service, *gorm.DB, *entityid.Generator) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&regiondomain.Region{},
		&customerdomain.Customer{},
		&userdomain.User{},
		&pricedomain.ProductPrice{},
		&domain.Quotation{},
		&domain.QuotationLine{},
	)
	require.NoError(t, err)

	genID := entityid.NewGenerator()
	svc := New(Params{
		DB:        db,
		Log:       zap.NewNop(),
		GenID:     genID,
		Repo:      repository.Provide(),
		PriceRepo: pricerepository.Provide(),
		Documents: config.StaticDocumentConfigHolder(config.DefaultDocumentConfig()),
	})

	return svc, db, genID
}

func seedPrice(t *testing.T, db *gorm.DB, genID *entityid.Generator, productID, regionID string, amount int64) {
	t.Helper()
	require.NoError(t, db.Create(&pricedomain.ProductPrice{
		ID:        genID.Generate("prod_price"),
		ProductID: productID,
		RegionID:  regionID,
		Price:     amount,
	}).Error)
}

func baseRequest(lines []domain.CreateQuotationLineInput) domain.CreateQuotationRequest {
	return domain.CreateQuotationRequest{
		SalePersionID:  "usr_sales",
		CustomerID:     "cus_acme",
		RegionID:       "reg_r1",
		Code:           "Q-2024-001",
		Title:          "Factory line upgrade",
		QuotationLines: lines,
	}
}

func TestCreatePricesLinesFromRegion(t *testing.T) {
	svc, db, genID := setupService(t)
	ctx := context.Background()

	seedPrice(t, db, genID, "prod_p1", "reg_r1", 100)

	created, err := svc.Create(ctx, baseRequest([]domain.CreateQuotationLineInput{
		{ProductID: "prod_p1", Volume: 2, Game: "line-a"},
	}))
	require.NoError(t, err)

	full, err := svc.Retrieve(ctx, created.ID, domain.FindConfig{Relations: []string{"quotation_lines"}})
	require.NoError(t, err)
	require.Len(t, full.QuotationLines, 1)
	assert.Equal(t, "prod_p1", full.QuotationLines[0].ProductID)
	assert.Equal(t, 2, full.QuotationLines[0].Volume)
	assert.Equal(t, int64(100), full.QuotationLines[0].UnitPrice)
	assert.Equal(t, "line-a", full.QuotationLines[0].Game)
}

func TestCreateDropsUnpricedLines(t *testing.T) {
	svc, db, genID := setupService(t)
	ctx := context.Background()

	seedPrice(t, db, genID, "prod_p1", "reg_r1", 100)

	created, err := svc.Create(ctx, baseRequest([]domain.CreateQuotationLineInput{
		{ProductID: "prod_p1", Volume: 1},
		{ProductID: "prod_unpriced", Volume: 3},
	}))
	require.NoError(t, err)

	full, err := svc.Retrieve(ctx, created.ID, domain.FindConfig{Relations: []string{"quotation_lines"}})
	require.NoError(t, err)
	require.Len(t, full.QuotationLines, 1)
	assert.Equal(t, "prod_p1", full.QuotationLines[0].ProductID)
}

func TestCreateDropsChildrenWithDroppedParent(t *testing.T) {
	svc, db, genID := setupService(t)
	ctx := context.Background()

	// Child is priced, parent is not: the whole subtree goes.
	seedPrice(t, db, genID, "prod_child", "reg_r1", 50)

	created, err := svc.Create(ctx, baseRequest([]domain.CreateQuotationLineInput{
		{
			ProductID: "prod_unpriced",
			Volume:    1,
			ChildProduct: []domain.CreateQuotationLineChildInput{
				{ProductID: "prod_child", Volume: 1},
			},
		},
	}))
	require.NoError(t, err)

	full, err := svc.Retrieve(ctx, created.ID, domain.FindConfig{Relations: []string{"quotation_lines"}})
	require.NoError(t, err)
	assert.Empty(t, full.QuotationLines)
}

func TestCreateExcludesSelfReferencingChild(t *testing.T) {
	svc, db, genID := setupService(t)
	ctx := context.Background()

	seedPrice(t, db, genID, "prod_p1", "reg_r1", 100)
	seedPrice(t, db, genID, "prod_addon", "reg_r1", 25)

	created, err := svc.Create(ctx, baseRequest([]domain.CreateQuotationLineInput{
		{
			ProductID: "prod_p1",
			Volume:    1,
			ChildProduct: []domain.CreateQuotationLineChildInput{
				{ProductID: "prod_p1", Volume: 1},
				{ProductID: "prod_addon", Volume: 4},
			},
		},
	}))
	require.NoError(t, err)

	full, err := svc.Retrieve(ctx, created.ID, domain.FindConfig{
		Relations: []string{"quotation_lines", "quotation_lines.child_product"},
	})
	require.NoError(t, err)

	require.Len(t, full.QuotationLines, 1)
	parent := full.QuotationLines[0]
	require.Len(t, parent.ChildProduct, 1)
	assert.Equal(t, "prod_addon", parent.ChildProduct[0].ProductID)
	assert.Equal(t, int64(25), parent.ChildProduct[0].UnitPrice)
	// The parent keeps its own price, untouched by child pricing.
	assert.Equal(t, int64(100), parent.UnitPrice)
}

func TestCreateAppliesDocumentDefaults(t *testing.T) {
	svc, db, genID := setupService(t)
	ctx := context.Background()

	seedPrice(t, db, genID, "prod_p1", "reg_r1", 100)

	created, err := svc.Create(ctx, baseRequest([]domain.CreateQuotationLineInput{
		{ProductID: "prod_p1", Volume: 1},
	}))
	require.NoError(t, err)

	defaults := config.DefaultDocumentConfig()
	assert.Equal(t, defaults.PaymentTerm, created.PaymentTerm)
	assert.Equal(t, defaults.DeliveryLeadTime, created.DeliveryLeadTime)
	assert.Equal(t, defaults.Warranty, created.Warranty)
}

func TestCreateRejectsMissingFields(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	req := baseRequest([]domain.CreateQuotationLineInput{{ProductID: "prod_p1", Volume: 1}})
	req.CustomerID = ""
	_, err := svc.Create(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidData)

	req = baseRequest(nil)
	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidData)

	req = baseRequest([]domain.CreateQuotationLineInput{{ProductID: "prod_p1", Volume: 0}})
	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidData)
}

func TestDeleteIsIdempotent(t *testing.T) {
	svc, db, genID := setupService(t)
	ctx := context.Background()

	seedPrice(t, db, genID, "prod_p1", "reg_r1", 100)

	created, err := svc.Create(ctx, baseRequest([]domain.CreateQuotationLineInput{
		{ProductID: "prod_p1", Volume: 1},
	}))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Retrieve(ctx, created.ID, domain.FindConfig{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Second delete of the same id, and a delete of an id that never
	// existed, both succeed.
	assert.NoError(t, svc.Delete(ctx, created.ID))
	assert.NoError(t, svc.Delete(ctx, "quot_never_existed"))
}

func TestDeleteSoftDeletesLinesWithQuotation(t *testing.T) {
	svc, db, genID := setupService(t)
	ctx := context.Background()

	seedPrice(t, db, genID, "prod_p1", "reg_r1", 100)
	seedPrice(t, db, genID, "prod_addon", "reg_r1", 25)

	created, err := svc.Create(ctx, baseRequest([]domain.CreateQuotationLineInput{
		{
			ProductID: "prod_p1",
			Volume:    1,
			ChildProduct: []domain.CreateQuotationLineChildInput{
				{ProductID: "prod_addon", Volume: 2},
			},
		},
	}))
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, created.ID))

	var live int64
	require.NoError(t, db.Model(&domain.QuotationLine{}).
		Where("quotation_id = ?", created.ID).Count(&live).Error)
	assert.Zero(t, live)

	var all int64
	require.NoError(t, db.Unscoped().Model(&domain.QuotationLine{}).
		Where("quotation_id = ?", created.ID).Count(&all).Error)
	assert.Equal(t, int64(2), all)
}

func TestListFreeTextSupersedesStructuredFilters(t *testing.T) {
	svc, db, genID := setupService(t)
	ctx := context.Background()

	seedPrice(t, db, genID, "prod_p1", "reg_r1", 100)

	alpha := baseRequest([]domain.CreateQuotationLineInput{{ProductID: "prod_p1", Volume: 1}})
	alpha.Code = "Q-ALPHA-1"
	alpha.Title = "Warehouse retrofit"
	_, err := svc.Create(ctx, alpha)
	require.NoError(t, err)

	beta := baseRequest([]domain.CreateQuotationLineInput{{ProductID: "prod_p1", Volume: 1}})
	beta.Code = "Q-BETA-2"
	beta.Title = "Alpha site expansion"
	_, err = svc.Create(ctx, beta)
	require.NoError(t, err)

	// Free text matches code OR title, case-insensitively, and the exact
	// code filter passed alongside is ignored.
	results, count, err := svc.ListAndCount(ctx, domain.Filter{
		Q:    "alpha",
		Code: "does-not-exist",
	}, domain.FindConfig{}, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Len(t, results, 2)
}

func TestListAndCountScopesToRegion(t *testing.T) {
	svc, db, genID := setupService(t)
	ctx := context.Background()

	seedPrice(t, db, genID, "prod_p1", "reg_r1", 100)
	seedPrice(t, db, genID, "prod_p1", "reg_r2", 120)

	first := baseRequest([]domain.CreateQuotationLineInput{{ProductID: "prod_p1", Volume: 1}})
	_, err := svc.Create(ctx, first)
	require.NoError(t, err)

	second := baseRequest([]domain.CreateQuotationLineInput{{ProductID: "prod_p1", Volume: 1}})
	second.RegionID = "reg_r2"
	second.Code = "Q-2024-002"
	_, err = svc.Create(ctx, second)
	require.NoError(t, err)

	results, count, err := svc.ListAndCount(ctx, domain.Filter{}, domain.FindConfig{}, "reg_r2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	require.Len(t, results, 1)
	assert.Equal(t, "reg_r2", results[0].RegionID)
}

func TestRetrieveHydratesDefaultRelations(t *testing.T) {
	svc, db, genID := setupService(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&regiondomain.Region{
		ID: "reg_r1", Name: "EMEA", CurrencyCode: "eur",
	}).Error)
	require.NoError(t, db.Create(&customerdomain.Customer{
		ID: "cus_acme", Email: "ops@acme.test", FirstName: "Acme",
	}).Error)
	require.NoError(t, db.Create(&userdomain.User{
		ID: "usr_sales", Role: userdomain.RoleSaleman, Email: "sales@quotehub.test", Name: "Sam Seller",
	}).Error)
	seedPrice(t, db, genID, "prod_p1", "reg_r1", 100)

	created, err := svc.Create(ctx, baseRequest([]domain.CreateQuotationLineInput{
		{ProductID: "prod_p1", Volume: 1},
	}))
	require.NoError(t, err)

	full, err := svc.Retrieve(ctx, created.ID, domain.FindConfig{Relations: domain.DefaultRelations})
	require.NoError(t, err)

	require.NotNil(t, full.Customer)
	assert.Equal(t, "ops@acme.test", full.Customer.Email)
	require.NotNil(t, full.Region)
	assert.Equal(t, "EMEA", full.Region.Name)
	require.NotNil(t, full.SalePersion)
	assert.Equal(t, "Sam Seller", full.SalePersion.Name)
	require.Len(t, full.QuotationLines, 1)
}
