package database

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/11Jagan/Expense-Tracker/internal/config"
	"github.com/11Jagan/Expense-Tracker/internal/logging"
	"github.com/11Jagan/Expense-Tracker/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DB struct {
	*gorm.DB
	config *config.DatabaseConfig
}

func dialector(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverPostgres, "":
		return postgres.Open(cfg.DSN()), nil
	case config.DriverSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
			}
		}
		return sqlite.Open(cfg.SQLitePath + "?_foreign_keys=on"), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func New(cfg *config.DatabaseConfig) (*DB, error) {
	dial, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(dial, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if cfg.Driver == config.DriverSQLite {
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxConnections)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{
		DB:     db,
		config: cfg,
	}, nil
}

func (db *DB) AutoMigrate() error {
	return db.DB.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.BlacklistedToken{},
		&models.Expense{},
		&models.Income{},
		&models.Budget{},
	)
}

func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (db *DB) HealthCheck() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CleanupExpiredTokens removes refresh and blacklisted tokens past their
// expiry and returns how many rows were deleted
func (db *DB) CleanupExpiredTokens() (int64, error) {
	now := time.Now()

	refresh := db.DB.Where("expires_at < ?", now).Delete(&models.RefreshToken{})
	if refresh.Error != nil {
		return 0, fmt.Errorf("failed to cleanup expired refresh tokens: %w", refresh.Error)
	}

	blacklisted := db.DB.Where("expires_at < ?", now).Delete(&models.BlacklistedToken{})
	if blacklisted.Error != nil {
		return refresh.RowsAffected, fmt.Errorf("failed to cleanup expired blacklisted tokens: %w", blacklisted.Error)
	}

	return refresh.RowsAffected + blacklisted.RowsAffected, nil
}

// Initialize opens the configured database and brings its schema up to date.
// Postgres runs the embedded SQL migrations and falls back to gorm
// AutoMigrate if they fail; sqlite always uses AutoMigrate.
func Initialize(cfg *config.Config, log *slog.Logger) (*DB, error) {
	log = logging.WithComponent(log, logging.ComponentDatabase)

	db, err := New(&cfg.Database)
	if err != nil {
		return nil, err
	}

	if !cfg.Database.AutoMigrate {
		log.Info("schema migration disabled", "driver", cfg.Database.Driver)
		return db, nil
	}

	if cfg.Database.Driver == config.DriverSQLite {
		if err := db.AutoMigrate(); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Info("database initialized", "driver", cfg.Database.Driver, "path", cfg.Database.SQLitePath)
		return db, nil
	}

	if err := RunPostgresMigrations(cfg.Database.URL(), log); err != nil {
		log.Warn("migration runner failed, falling back to gorm AutoMigrate", logging.FieldError, err)

		if err := db.AutoMigrate(); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	log.Info("database initialized", "driver", cfg.Database.Driver, "host", cfg.Database.Host)

	return db, nil
}
