package db

import (
	"fmt"
	"log"
	"time"

	"github.com/diewo77/go-dairy/internal/config"
	"github.com/diewo77/go-dairy/internal/store"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	connectAttempts = 5
	connectBackoff  = 2 * time.Second
)

// Connect opens the database selected by cfg.Driver, retrying while the server starts.
func Connect(cfg config.DatabaseConfig, dev bool) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.SQLitePath)
		log.Printf("Connecting to database: driver=sqlite path=%s", cfg.SQLitePath)
	case "postgres":
		dsn := NormalizeDSN(cfg.DSN())
		dialector = postgres.Open(dsn)
		log.Printf("Connecting to database: driver=postgres dsn=%s", MaskDSN(dsn))
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}

	logLevel := logger.Silent
	if dev {
		logLevel = logger.Warn
	}
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	var db *gorm.DB
	var err error
	for i := 0; i < connectAttempts; i++ {
		db, err = gorm.Open(dialector, gcfg)
		if err == nil {
			break
		}
		log.Printf("Database connection attempt %d/%d failed: %v", i+1, connectAttempts, err)
		time.Sleep(connectBackoff)
	}
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}

// Migrate creates the records table backing the record store.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&store.Record{}); err != nil {
		return fmt.Errorf("automigrate records: %w", err)
	}
	return nil
}
