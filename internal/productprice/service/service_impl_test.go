package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/quotehub/internal/productprice/domain"
	"github.com/smallbiznis/quotehub/internal/productprice/repository"
	"github.com/smallbiznis/quotehub/pkg/entityid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupService(t *testing.T) domain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.ProductPrice{}))

	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: entityid.NewGenerator(),
		Repo:  repository.Provide(),
	})
}

func TestSetUpsertsByProductAndRegion(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	first, err := svc.Set(ctx, domain.SetPriceRequest{
		ProductID: "prod_p1", RegionID: "reg_r1", Price: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(100), first.Price)

	second, err := svc.Set(ctx, domain.SetPriceRequest{
		ProductID: "prod_p1", RegionID: "reg_r1", Price: 120,
	})
	require.NoError(t, err)

	// Same identity, new amount.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(120), second.Price)

	resp, err := svc.ListByRegion(ctx, domain.ListPriceRequest{RegionID: "reg_r1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Count)
}

func TestLookupAbsentPriceIsNil(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	price, err := svc.Lookup(ctx, "prod_p1", "reg_r1")
	require.NoError(t, err)
	assert.Nil(t, price)
}

func TestLookupIsRegionScoped(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.Set(ctx, domain.SetPriceRequest{
		ProductID: "prod_p1", RegionID: "reg_r1", Price: 100,
	})
	require.NoError(t, err)

	price, err := svc.Lookup(ctx, "prod_p1", "reg_r2")
	require.NoError(t, err)
	assert.Nil(t, price)

	price, err = svc.Lookup(ctx, "prod_p1", "reg_r1")
	require.NoError(t, err)
	require.NotNil(t, price)
	assert.Equal(t, int64(100), price.Price)
}

func TestSetValidation(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.Set(ctx, domain.SetPriceRequest{RegionID: "reg_r1", Price: 100})
	assert.ErrorIs(t, err, domain.ErrInvalidProduct)

	_, err = svc.Set(ctx, domain.SetPriceRequest{ProductID: "prod_p1", Price: 100})
	assert.ErrorIs(t, err, domain.ErrInvalidRegion)

	_, err = svc.Set(ctx, domain.SetPriceRequest{ProductID: "prod_p1", RegionID: "reg_r1", Price: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
}

func TestDeletePriceIdempotent(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	price, err := svc.Set(ctx, domain.SetPriceRequest{
		ProductID: "prod_p1", RegionID: "reg_r1", Price: 100,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, price.ID))
	assert.NoError(t, svc.Delete(ctx, price.ID))

	got, err := svc.Lookup(ctx, "prod_p1", "reg_r1")
	require.NoError(t, err)
	assert.Nil(t, got)
}
