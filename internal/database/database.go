package database

import (
	"fmt"
	"sync"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	mu        sync.Mutex
	cached    *gorm.DB
	cachedDSN string
)

// Get returns a process-wide gorm handle for the given DSN. The handle is
// dialed lazily and reused across calls; a changed DSN forces a re-dial.
func Get(databaseURL string) (*gorm.DB, error) {
	mu.Lock()
	defer mu.Unlock()

	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cached != nil && cachedDSN == databaseURL {
		return cached, nil
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	cached = db
	cachedDSN = databaseURL
	return cached, nil
}
