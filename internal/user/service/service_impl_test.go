package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	regiondomain "github.com/smallbiznis/quotehub/internal/region/domain"
	regionrepository "github.com/smallbiznis/quotehub/internal/region/repository"
	"github.com/smallbiznis/quotehub/internal/user/domain"
	"github.com/smallbiznis/quotehub/internal/user/password"
	"github.com/smallbiznis/quotehub/internal/user/repository"
	"github.com/smallbiznis/quotehub/pkg/entityid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&regiondomain.Region{}, &domain.User{}))

	svc := New(Params{
		DB:         db,
		Log:        zap.NewNop(),
		GenID:      entityid.NewGenerator(),
		Repo:       repository.Provide(),
		RegionRepo: regionrepository.Provide(),
	})

	return svc, db
}

func seedRegion(t *testing.T, db *gorm.DB, id, name string) {
	t.Helper()
	require.NoError(t, db.Create(&regiondomain.Region{
		ID: id, Name: name, CurrencyCode: "usd",
	}).Error)
}

func TestCreateUserAssignsRegions(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	seedRegion(t, db, "reg_r1", "Americas")
	seedRegion(t, db, "reg_r2", "EMEA")

	user, err := svc.Create(ctx, domain.CreateUserRequest{
		Email:     "Sales@QuoteHub.Test",
		Name:      "Sam Seller",
		Password:  "s3cret-enough",
		RegionIDs: []string{"reg_r1", "reg_r2"},
	})
	require.NoError(t, err)

	// Email is normalized, role defaults, and an API token is issued.
	assert.Equal(t, "sales@quotehub.test", user.Email)
	assert.Equal(t, domain.RoleSaleman, user.Role)
	assert.NotEmpty(t, user.APIToken)
	assert.Len(t, user.Regions, 2)

	fetched, err := svc.GetByID(ctx, domain.GetUserRequest{ID: user.ID})
	require.NoError(t, err)
	assert.Len(t, fetched.Regions, 2)
}

func TestCreateUserRejectsUnknownRegion(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	seedRegion(t, db, "reg_r1", "Americas")

	_, err := svc.Create(ctx, domain.CreateUserRequest{
		Email:     "sales@quotehub.test",
		Name:      "Sam Seller",
		Password:  "s3cret-enough",
		RegionIDs: []string{"reg_r1", "reg_missing"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidData)
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	req := domain.CreateUserRequest{
		Email:    "sales@quotehub.test",
		Name:     "Sam Seller",
		Password: "s3cret-enough",
	}
	_, err := svc.Create(ctx, req)
	require.NoError(t, err)

	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateUserValidation(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateUserRequest{
		Email: "not-an-email", Name: "X", Password: "s3cret-enough",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, err = svc.Create(ctx, domain.CreateUserRequest{
		Email: "a@b.test", Name: "X", Password: "short",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPassword)

	_, err = svc.Create(ctx, domain.CreateUserRequest{
		Email: "a@b.test", Name: "X", Password: "s3cret-enough", Role: "superuser",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestUpdateUserReplacesRegionSet(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	seedRegion(t, db, "reg_r1", "Americas")
	seedRegion(t, db, "reg_r2", "EMEA")

	user, err := svc.Create(ctx, domain.CreateUserRequest{
		Email:     "sales@quotehub.test",
		Name:      "Sam Seller",
		Password:  "s3cret-enough",
		RegionIDs: []string{"reg_r1"},
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, domain.UpdateUserRequest{
		ID:        user.ID,
		RegionIDs: []string{"reg_r2"},
	})
	require.NoError(t, err)
	require.Len(t, updated.Regions, 1)
	assert.Equal(t, "reg_r2", updated.Regions[0].ID)
}

func TestSetPasswordRehashes(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, domain.CreateUserRequest{
		Email:    "sales@quotehub.test",
		Name:     "Sam Seller",
		Password: "initial-pass",
	})
	require.NoError(t, err)

	require.NoError(t, svc.SetPassword(ctx, user.ID, "rotated-pass"))

	var stored domain.User
	require.NoError(t, db.First(&stored, "id = ?", user.ID).Error)

	assert.True(t, password.Verify("rotated-pass", stored.PasswordHash))
	assert.False(t, password.Verify("initial-pass", stored.PasswordHash))
}

func TestDeleteUserIsIdempotent(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, domain.CreateUserRequest{
		Email:    "sales@quotehub.test",
		Name:     "Sam Seller",
		Password: "s3cret-enough",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, user.ID))
	assert.NoError(t, svc.Delete(ctx, user.ID))

	_, err = svc.GetByID(ctx, domain.GetUserRequest{ID: user.ID})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFilterUsersFreeText(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	for _, u := range []domain.CreateUserRequest{
		{Email: "amara@quotehub.test", Name: "Amara Okafor", Password: "s3cret-enough"},
		{Email: "ben@quotehub.test", Name: "Ben Tran", Password: "s3cret-enough"},
	} {
		_, err := svc.Create(ctx, u)
		require.NoError(t, err)
	}

	resp, err := svc.Filter(ctx, "amara", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Count)
	require.Len(t, resp.Users, 1)
	assert.Equal(t, "Amara Okafor", resp.Users[0].Name)
}
