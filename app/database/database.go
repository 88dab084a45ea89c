// Package database opens the Store selected by configuration.
package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/mytheresa/go-storefront/app/config"
	"github.com/mytheresa/go-storefront/models"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open returns the configured store and a function releasing it.
func Open(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (models.Store, func() error, error) {
	log := logger.WithField("store", cfg.StoreDriver)

	switch cfg.StoreDriver {
	case "memory":
		log.Warn("Using in-memory store; nothing survives a restart")
		return models.NewMemoryStore(), func() error { return nil }, nil

	case "sqlite":
		store, err := models.OpenSQLiteStore(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		log.WithField("path", cfg.SQLitePath).Info("Store opened")
		return store, store.Close, nil

	case "postgres":
		db, err := OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		log.Info("Store opened")
		return models.NewKVRepository(db), sqlDB.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

// OpenPostgres connects with gorm, checks the connection and migrates the
// kv_entries table.
func OpenPostgres(ctx context.Context, databaseURL string) (*gorm.DB, error) {
	dsn, err := postgresDSN(databaseURL)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if err := db.WithContext(ctx).AutoMigrate(&models.KVEntry{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate kv_entries: %w", err)
	}
	return db, nil
}

// postgresDSN turns a postgres:// URL into a key/value connection string.
// Anything else is assumed to be a connection string already.
func postgresDSN(databaseURL string) (string, error) {
	if databaseURL == "" {
		return "", fmt.Errorf("database URL cannot be empty")
	}
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		dsn, err := pq.ParseURL(databaseURL)
		if err != nil {
			return "", fmt.Errorf("invalid database URL: %w", err)
		}
		return dsn, nil
	}
	return databaseURL, nil
}
