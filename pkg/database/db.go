// Package database opens the GORM connection with an explicit lifecycle:
// Connect at startup, Close at shutdown. No package-level handle exists; the
// *gorm.DB is handed to the repositories that need it.
package database

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	poolMaxOpen     = 25
	poolMaxIdle     = 10
	poolMaxLifetime = 5 * time.Minute
	poolMaxIdleTime = 2 * time.Minute
)

var dialectors = map[string]func(string) gorm.Dialector{
	"sqlite":    sqlite.Open,
	"postgres":  postgres.Open,
	"mysql":     mysql.Open,
	"sqlserver": sqlserver.Open,
}

// Connect opens driver/dsn, configures the pool, and verifies the connection
// with a ping.
func Connect(driver, dsn string) (*gorm.DB, error) {
	open, ok := dialectors[driver]
	if !ok {
		return nil, fmt.Errorf("database: unsupported DB_DRIVER %q (supported: sqlite, postgres, mysql, sqlserver)", driver)
	}

	db, err := gorm.Open(open(dsn), &gorm.Config{
		// Query logging goes through pkg/logger, not GORM's own logger.
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("database: open: %w", err)
	}

	pool, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database: get sql.DB: %w", err)
	}
	pool.SetMaxOpenConns(poolMaxOpen)
	pool.SetMaxIdleConns(poolMaxIdle)
	pool.SetConnMaxLifetime(poolMaxLifetime)
	pool.SetConnMaxIdleTime(poolMaxIdleTime)

	if err := pool.Ping(); err != nil {
		return nil, fmt.Errorf("database: ping: %w", err)
	}
	return db, nil
}

// Close releases the connection pool.
func Close(db *gorm.DB) error {
	pool, err := db.DB()
	if err != nil {
		return err
	}
	return pool.Close()
}
