package seed

import (
	"errors"
	"time"

	regiondomain "github.com/smallbiznis/quotehub/internal/region/domain"
	userdomain "github.com/smallbiznis/quotehub/internal/user/domain"
	"github.com/smallbiznis/quotehub/internal/user/password"
	"github.com/smallbiznis/quotehub/pkg/entityid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultRegionName     = "Default"
	defaultRegionCurrency = "usd"
	defaultAdminEmail     = "admin@quotehub.local"
	defaultAdminPassword  = "changeme-now"
)

// EnsureDefaultRegion creates the fallback region on first boot so that
// prices and quotations have a region to attach to.
func EnsureDefaultRegion(db *gorm.DB, genID *entityid.Generator) error {
	var region regiondomain.Region
	err := db.First(&region, "name = ?", defaultRegionName).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	now := time.Now().UTC()
	return db.Create(&regiondomain.Region{
		ID:           genID.Generate("reg"),
		Name:         defaultRegionName,
		CurrencyCode: defaultRegionCurrency,
		Metadata:     datatypes.JSONMap{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}).Error
}

// EnsureBootstrapAdmin creates the initial admin account when no admin
// exists. The default password is meant to be rotated immediately.
func EnsureBootstrapAdmin(db *gorm.DB, genID *entityid.Generator) error {
	var admin userdomain.User
	err := db.First(&admin, "role = ?", userdomain.RoleAdmin).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := password.Hash(defaultAdminPassword)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	return db.Create(&userdomain.User{
		ID:           genID.Generate("usr"),
		Role:         userdomain.RoleAdmin,
		Email:        defaultAdminEmail,
		Name:         "Administrator",
		PasswordHash: hash,
		Metadata:     datatypes.JSONMap{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}).Error
}
