package database

import (
	"fmt"
	"strings"

	"admin-console/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultSQLitePath = "admin_console.db"

// Connect opens the console's local database. Postgres DSNs (URL or key=value
// form) use the postgres driver; anything else is treated as a SQLite path.
func Connect(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		dsn = defaultSQLitePath
	}

	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	var dialector gorm.Dialector
	if isPostgresDSN(dsn) {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(strings.TrimPrefix(dsn, "sqlite://"))
	}

	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.LocalSlot{}); err != nil {
		return fmt.Errorf("failed to migrate local_slots: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
