package migration

import (
	"github.com/nestlog/nestlog/internal/config"
	eventdomain "github.com/nestlog/nestlog/internal/event/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, log *zap.Logger) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
			log.Info("schema migrations applied")
			return nil
		}

		// sqlite and mysql local runs bootstrap the schema directly.
		if err := conn.AutoMigrate(&eventdomain.Event{}); err != nil {
			return err
		}
		log.Info("schema auto-migrated", zap.String("type", cfg.DBType))
		return nil
	}),
)
