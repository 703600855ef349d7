package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/quotehub/internal/region/domain"
	"github.com/smallbiznis/quotehub/internal/region/repository"
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
	require.NoError(t, db.AutoMigrate(&domain.Region{}))

	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: entityid.NewGenerator(),
		Repo:  repository.Provide(),
	})
}

func TestCreateRegionNormalizesCurrency(t *testing.T) {
	svc := setupService(t)

	region, err := svc.Create(context.Background(), domain.CreateRegionRequest{
		Name:         "  EMEA ",
		CurrencyCode: "EUR",
		TaxRate:      0.19,
	})
	require.NoError(t, err)
	assert.Equal(t, "EMEA", region.Name)
	assert.Equal(t, "eur", region.CurrencyCode)
	assert.Equal(t, "reg", entityid.Prefix(region.ID))
}

func TestCreateRegionValidation(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateRegionRequest{CurrencyCode: "usd"})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Create(ctx, domain.CreateRegionRequest{Name: "Americas"})
	assert.ErrorIs(t, err, domain.ErrInvalidCurrency)
}

func TestDeleteRegionIdempotent(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	region, err := svc.Create(ctx, domain.CreateRegionRequest{
		Name: "Americas", CurrencyCode: "usd",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, region.ID))
	assert.NoError(t, svc.Delete(ctx, region.ID))

	_, err = svc.GetByID(ctx, domain.GetRegionRequest{ID: region.ID})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
