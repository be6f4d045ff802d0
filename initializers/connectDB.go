package initializers

import (
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB // Migrate and the services share this handle

// ConnectDB opens the database selected by cfg.DBDriver and stores it in DB.
func ConnectDB(cfg Config, logger *zap.Logger) error {
	logger.Info("Connecting to database", zap.String("driver", cfg.DBDriver))

	dialector, err := dialectorFor(cfg)
	if err != nil {
		return err
	}

	gormCfg := &gorm.Config{
		PrepareStmt:          false,
		DisableAutomaticPing: true,
		Logger:               gormlogger.Default.LogMode(gormlogger.Warn),
	}
	if cfg.LogLevel == "debug" {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	}

	DB, err = gorm.Open(dialector, gormCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to the database: %w", err)
	}

	logger.Info("Database connection successful")
	return nil
}

func dialectorFor(cfg Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "postgres", "":
		if cfg.DSN == "" {
			return nil, fmt.Errorf("env variable DIRECT_URL is empty")
		}
		// Configure Postgres driver
		return postgres.New(postgres.Config{
			PreferSimpleProtocol: true, // Disable implicit prepared statement usage
			DriverName:           "postgres",
			DSN:                  cfg.DSN,
		}), nil
	case "sqlite":
		if cfg.SQLitePath != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
				return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
			}
		}
		return sqlite.Open(cfg.SQLitePath + "?_foreign_keys=on"), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}
