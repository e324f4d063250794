package db

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"school-hub-backend/config"
	"school-hub-backend/internal/model"
)

// Conn owns the database handle. The connection is established lazily on the
// first Get and reused until Invalidate discards it, after which the next Get
// re-establishes it. The mutex guards the cold-start race: concurrent
// requests on a fresh process must not bootstrap more than one handle.
type Conn struct {
	cfg *config.DatabaseConfig

	mu sync.Mutex
	db *gorm.DB
}

// New creates a connection handle. No network activity happens here.
func New(cfg *config.DatabaseConfig) *Conn {
	return &Conn{cfg: cfg}
}

// Get returns the shared gorm handle, establishing it first if needed.
func (c *Conn) Get(ctx context.Context) (*gorm.DB, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db != nil {
		return c.db, nil
	}

	db, err := openDB(c.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if err := migrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	c.db = db
	log.Printf("database connection established (%s:%d/%s)", c.cfg.Host, c.cfg.Port, c.cfg.Name)
	return c.db, nil
}

// Invalidate discards the cached handle so the next Get reconnects. Called by
// the store after infrastructure failures; constraint violations do not
// indicate a broken connection and must not trigger this.
func (c *Conn) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db == nil {
		return
	}
	if sqlDB, err := c.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	c.db = nil
	log.Println("database connection invalidated; will reconnect on next use")
}

// openDB is a variable so tests can substitute an in-memory database.
var openDB = func(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)

	return db, nil
}

// migrate issues the idempotent schema creation for the schools table.
func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.School{}); err != nil {
		return fmt.Errorf("automigrate failed: %w", err)
	}
	return nil
}
