package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	customerdomain "github.com/smallbiznis/quotehub/internal/customer/domain"
	productdomain "github.com/smallbiznis/quotehub/internal/product/domain"
	pricedomain "github.com/smallbiznis/quotehub/internal/productprice/domain"
	quotationdomain "github.com/smallbiznis/quotehub/internal/quotation/domain"
	regiondomain "github.com/smallbiznis/quotehub/internal/region/domain"
	userdomain "github.com/smallbiznis/quotehub/internal/user/domain"
	"gorm.io/gorm"
)

// RunMigrations applies the embedded SQL migrations. Postgres only; other
// dialects go through AutoMigrate.
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	// Do not call migrator.Close here because it would close the shared *sql.DB.

	return nil
}

// AutoMigrate builds the schema through gorm for non-postgres dialects
// (sqlite and mysql dev setups).
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&regiondomain.Region{},
		&customerdomain.Customer{},
		&productdomain.Product{},
		&productdomain.ProductAdditionalHardware{},
		&pricedomain.ProductPrice{},
		&userdomain.User{},
		&quotationdomain.Quotation{},
		&quotationdomain.QuotationLine{},
	)
}
