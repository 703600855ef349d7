package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/quotehub/internal/customer/domain"
	"github.com/smallbiznis/quotehub/internal/customer/repository"
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
	require.NoError(t, db.AutoMigrate(&domain.Customer{}))

	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: entityid.NewGenerator(),
		Repo:  repository.Provide(),
	})
}

func TestCreateCustomerNormalizesEmail(t *testing.T) {
	svc := setupService(t)

	customer, err := svc.Create(context.Background(), domain.CreateCustomerRequest{
		Email:     "  Ops@Acme.Test ",
		FirstName: "Dana",
		Company:   "Acme GmbH",
	})
	require.NoError(t, err)
	assert.Equal(t, "ops@acme.test", customer.Email)
	assert.Equal(t, "cus", entityid.Prefix(customer.ID))
}

func TestCreateCustomerDuplicateEmail(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	req := domain.CreateCustomerRequest{Email: "ops@acme.test", FirstName: "Dana"}
	_, err := svc.Create(ctx, req)
	require.NoError(t, err)

	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestCreateCustomerValidation(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateCustomerRequest{Email: "nope", FirstName: "Dana"})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, err = svc.Create(ctx, domain.CreateCustomerRequest{Email: "a@b.test"})
	assert.ErrorIs(t, err, domain.ErrInvalidName)
}

func TestUpdateCustomerPartial(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	customer, err := svc.Create(ctx, domain.CreateCustomerRequest{
		Email: "ops@acme.test", FirstName: "Dana", Phone: "+1-555-0100",
	})
	require.NoError(t, err)

	company := "Acme Holdings"
	updated, err := svc.Update(ctx, domain.UpdateCustomerRequest{
		ID:      customer.ID,
		Company: &company,
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Holdings", updated.Company)
	// Untouched fields survive a partial update.
	assert.Equal(t, "+1-555-0100", updated.Phone)
	assert.Equal(t, "Dana", updated.FirstName)
}

func TestListCustomersFreeText(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	for _, req := range []domain.CreateCustomerRequest{
		{Email: "dana@acme.test", FirstName: "Dana", LastName: "Silva"},
		{Email: "lee@other.test", FirstName: "Lee", LastName: "Wong"},
	} {
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}

	resp, err := svc.List(ctx, domain.ListCustomerRequest{Query: "silva"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Count)
	require.Len(t, resp.Customers, 1)
	assert.Equal(t, "Dana", resp.Customers[0].FirstName)
}

func TestDeleteCustomerIdempotent(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	customer, err := svc.Create(ctx, domain.CreateCustomerRequest{
		Email: "ops@acme.test", FirstName: "Dana",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, customer.ID))
	assert.NoError(t, svc.Delete(ctx, customer.ID))

	_, err = svc.GetByID(ctx, domain.GetCustomerRequest{ID: customer.ID})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
