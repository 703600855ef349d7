package migration

import (
	"github.com/smallbiznis/quotehub/internal/config"
	"github.com/smallbiznis/quotehub/internal/seed"
	"github.com/smallbiznis/quotehub/pkg/entityid"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, genID *entityid.Generator) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			if err := AutoMigrate(conn); err != nil {
				return err
			}
		}

		if cfg.BootstrapDefaults {
			if err := seed.EnsureDefaultRegion(conn, genID); err != nil {
				return err
			}
			return seed.EnsureBootstrapAdmin(conn, genID)
		}
		return nil
	}),
)
