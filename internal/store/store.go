// Package store opens the database every service shares.
package store

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gramtop961/backend-repo-yn7l2phg-bsg8iw/internal/model"
)

type Options struct {
	// Driver is "postgres" or "sqlite".
	Driver string
	DSN    string
	Silent bool
}

// Open connects with the chosen driver and migrates every table. Timestamps
// are written in UTC so time-window filters compare the same way on both
// drivers.
func Open(opts Options) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch opts.Driver {
	case "postgres":
		dial = postgres.Open(opts.DSN)
	case "sqlite":
		dsn := opts.DSN
		if dsn == "" {
			dsn = "shopearn.db"
		}
		dial = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unknown database driver %q", opts.Driver)
	}

	level := logger.Warn
	if opts.Silent {
		level = logger.Silent
	}
	db, err := gorm.Open(dial, &gorm.Config{
		Logger:  logger.Default.LogMode(level),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}
	if opts.Driver == "sqlite" {
		// single writer; also keeps a shared in-memory database alive
		if s, err := db.DB(); err == nil {
			s.SetMaxOpenConns(1)
		}
	}

	if err := db.AutoMigrate(model.All()...); err != nil {
		return nil, err
	}
	return db, nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) {
	if s, err := db.DB(); err == nil {
		_ = s.Close()
	}
}
