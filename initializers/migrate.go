package initializers

import (
	"errors"
	"fmt"

	"github.com/Itish41/ActionScribe/models"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// MigrationsURL is where golang-migrate looks for the SQL files.
var MigrationsURL = "file://db/migrations"

// Migrate brings the schema up to date. Postgres runs the versioned SQL
// migrations; sqlite is only used for local runs and tests and is
// auto-migrated from the models.
func Migrate(cfg Config, logger *zap.Logger) error {
	logger.Info("Starting database migration...", zap.String("driver", cfg.DBDriver))

	if DB == nil {
		return fmt.Errorf("database is not connected")
	}

	if cfg.DBDriver == "sqlite" {
		if err := DB.AutoMigrate(&models.Note{}, &models.ActionItem{}); err != nil {
			return fmt.Errorf("error auto-migrating sqlite schema: %w", err)
		}
		logger.Info("Migration completed successfully!")
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("error getting underlying *sql.DB: %w", err)
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{
		MigrationsTable: "schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("could not create the postgres driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(MigrationsURL, "postgres", driver)
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running migrations: %w", err)
	}

	logger.Info("Migration completed successfully!")
	return nil
}
