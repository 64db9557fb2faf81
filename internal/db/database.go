package db

import (
	"fmt"
	"time"

	"github.com/lifeboard/lifeboard-backend/config"
	appLogger "github.com/lifeboard/lifeboard-backend/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	maxIdleConns    = 10
	maxOpenConns    = 100
	connMaxLifetime = time.Hour

	// Startup tolerates a database that is still booting, e.g. when both
	// come up together under compose.
	connectAttempts = 5
	connectBackoff  = 2 * time.Second
)

var DB *gorm.DB

// Initialize opens the Postgres connection and configures the pool. The
// connection is retried a few times before giving up.
func Initialize(cfg *config.DatabaseConfig) error {
	appLogger.Info("Connecting to database", map[string]interface{}{
		"host":     cfg.Host,
		"port":     cfg.Port,
		"database": cfg.DBName,
		"user":     cfg.User,
	})

	var err error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		DB, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent), // queries are logged by our own logger
		})
		if err == nil {
			break
		}
		if attempt < connectAttempts {
			appLogger.Warn("Database not ready, retrying", map[string]interface{}{
				"attempt": attempt,
				"error":   err.Error(),
			})
			time.Sleep(connectBackoff)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	appLogger.Info("Database connection established", map[string]interface{}{
		"max_idle_conns": maxIdleConns,
		"max_open_conns": maxOpenConns,
	})
	return nil
}

// Close closes the database connection
func Close() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
