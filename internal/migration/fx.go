package migration

import (
	"github.com/acueductoapp/acueducto/internal/config"
	"github.com/acueductoapp/acueducto/internal/seed"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(Apply),
)

// Apply runs the embedded migrations and seeds the billing counter. Schema
// management for non-postgres databases belongs to the caller, so both steps
// are skipped there.
func Apply(conn *gorm.DB, cfg config.Config, log *zap.Logger) error {
	if cfg.DBType != "postgres" {
		log.Warn("skipping migrations for non-postgres database", zap.String("type", cfg.DBType))
		return nil
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}

	if err := RunMigrations(sqlDB); err != nil {
		return err
	}

	return seed.EnsureBillingConfig(conn)
}
