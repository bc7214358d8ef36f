package database

import (
	"fmt"

	"github.com/lshigami/Surveyor/config"
	"github.com/lshigami/Surveyor/internal/logger"
	"github.com/lshigami/Surveyor/internal/model"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDatabase opens the configured database. SQLite connections get foreign
// keys switched on so cascades behave as they do on Postgres.
func NewDatabase(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "sqlite":
		dialector = sqlite.Open(sqliteDSN(cfg.Database.DSN()))
	default:
		dialector = postgres.Open(cfg.Database.DSN())
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.NewGormLogger(), TranslateError: true})
	if err != nil {
		log.Error().Err(err).Str("driver", cfg.Database.Driver).Msg("Failed to connect to database")
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if cfg.Database.Driver == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// A single connection keeps in-memory databases alive and serializes writers.
		sqlDB.SetMaxOpenConns(1)
	}

	log.Info().Str("driver", cfg.Database.Driver).Msg("Database connection established")
	return db, nil
}

func sqliteDSN(path string) string {
	if path == ":memory:" {
		return "file::memory:?_foreign_keys=on"
	}
	return fmt.Sprintf("file:%s?_foreign_keys=on", path)
}

// AutoMigrate creates or updates the schema for every model.
func AutoMigrate(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	if err := db.AutoMigrate(model.All()...); err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
